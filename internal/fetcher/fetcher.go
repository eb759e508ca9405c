package fetcher

import "context"

// Quote holds the market data collected for a single asset.
type Quote struct {
	// PriceUSD is the current price in US dollars.
	PriceUSD float64

	// MarketCapUSD is the market capitalization in US dollars.
	MarketCapUSD float64
}

// QuoteFetcher retrieves current market data for a single asset.
// Each implementation knows how to call one upstream market-data API
// and provides a hierarchical key identifying what it fetches.
type QuoteFetcher interface {
	// Fetch retrieves the asset's current price and market cap.
	// Returns an error if the fetch operation fails.
	Fetch(ctx context.Context) (Quote, error)

	// Key returns a hierarchical key for this fetcher, logged when a
	// fetch runs.
	// Format: fetcher:{source}:{identifier}
	// Example: fetcher:coingecko:bitcoin
	Key() string
}

// Insight is the generated analysis for an asset.
type Insight struct {
	// Text is the natural-language analysis produced by the model.
	Text string

	// Sentiment is the label parsed out of Text.
	Sentiment Sentiment
}

// InsightGenerator produces a short natural-language analysis of an
// asset from its market data.
type InsightGenerator interface {
	// Generate builds a prompt from the asset name and quote, calls the
	// completion service, and returns the generated insight.
	Generate(ctx context.Context, asset string, quote Quote) (Insight, error)
}
