package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"resty.dev/v3"

	"cryptoinsight/internal/fetcher"
	"cryptoinsight/internal/ratelimit"
)

// aliases maps common ticker symbols to CoinGecko asset ids
var aliases = map[string]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"doge": "dogecoin",
	"dot":  "polkadot",
	"ada":  "cardano",
	"sol":  "solana",
	"xrp":  "ripple",
}

// priceEntry is one asset's entry in the /simple/price response.
// Pointers distinguish a missing field from a zero value.
type priceEntry struct {
	USD          *float64 `json:"usd"`
	USDMarketCap *float64 `json:"usd_market_cap"`
}

// simplePriceResponse represents the CoinGecko /simple/price response,
// keyed by asset id
type simplePriceResponse map[string]priceEntry

// QuoteFetcher fetches crypto prices and market caps from CoinGecko
type QuoteFetcher struct {
	assetName string
	apiID     string
	client    *resty.Client
	limiter   *ratelimit.Limiter
}

// NewQuoteFetcher creates a market-data fetcher for one asset name
func NewQuoteFetcher(assetName, baseURL string) *QuoteFetcher {
	return &QuoteFetcher{
		assetName: assetName,
		apiID:     APIID(assetName),
		client:    fetcher.NewHTTPClient(baseURL),
		limiter:   ratelimit.GetLimiter(),
	}
}

// APIID normalizes a user-supplied asset name into a CoinGecko id:
// lowercase, common ticker symbols mapped to full ids, spaces collapsed
// to hyphens for multi-word names.
func APIID(assetName string) string {
	id := strings.ToLower(strings.TrimSpace(assetName))
	if mapped, ok := aliases[id]; ok {
		return mapped
	}
	return strings.Join(strings.Fields(id), "-")
}

// Fetch retrieves the current price and market cap in USD.
// One request per invocation; failures map onto the pipeline error
// taxonomy (unknown asset, network, parse).
func (f *QuoteFetcher) Fetch(ctx context.Context) (fetcher.Quote, error) {
	if err := f.limiter.Wait(ctx, ratelimit.APICoinGecko); err != nil {
		return fetcher.Quote{}, fetcher.NewNetworkError(err)
	}

	var result simplePriceResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                f.apiID,
			"vs_currencies":      "usd",
			"include_market_cap": "true",
		}).
		SetResult(&result).
		Get("/simple/price")

	if err != nil {
		// A 200 body the client could not decode is a malformed response,
		// not a transport failure
		if fetcher.IsDecodeError(err) {
			return fetcher.Quote{}, fetcher.NewParseError(
				fmt.Sprintf("malformed market-data response for %s: %v", f.apiID, err))
		}
		return fetcher.Quote{}, fetcher.NewNetworkError(err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return fetcher.Quote{}, fetcher.NewUnknownAssetError(f.assetName)
	}

	if !resp.IsSuccess() {
		return fetcher.Quote{}, fetcher.NewUpstreamError(resp.StatusCode())
	}

	// CoinGecko answers 200 with the id simply absent when it doesn't
	// recognize the asset
	entry, ok := result[f.apiID]
	if !ok {
		return fetcher.Quote{}, fetcher.NewUnknownAssetError(f.assetName)
	}

	if entry.USD == nil || entry.USDMarketCap == nil {
		return fetcher.Quote{}, fetcher.NewParseError(
			fmt.Sprintf("price or market cap missing in response for %s", f.apiID))
	}

	if *entry.USD < 0 || *entry.USDMarketCap < 0 {
		return fetcher.Quote{}, fetcher.NewParseError(
			fmt.Sprintf("negative price or market cap in response for %s", f.apiID))
	}

	return fetcher.Quote{
		PriceUSD:     *entry.USD,
		MarketCapUSD: *entry.USDMarketCap,
	}, nil
}

// Key returns the hierarchical fetcher key for this asset
func (f *QuoteFetcher) Key() string {
	return fmt.Sprintf("fetcher:coingecko:%s", f.apiID)
}
