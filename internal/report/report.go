package report

import (
	"fmt"
	"io"
	"strings"

	"cryptoinsight/internal/fetcher"
)

// Placeholder is printed in place of any value that could not be collected.
const Placeholder = "data unavailable"

const bannerWidth = 50

// QueryResult is the transient record built up over a single run.
// It is constructed empty, filled progressively as pipeline steps succeed,
// printed, and discarded. Nil pointer fields mean the lookup failed.
type QueryResult struct {
	AssetName    string
	PriceUSD     *float64
	MarketCapUSD *float64
	AnalysisText string
	Sentiment    fetcher.Sentiment
}

// NewQueryResult creates an empty result for the given asset name.
func NewQueryResult(assetName string) QueryResult {
	return QueryResult{
		AssetName: assetName,
		Sentiment: fetcher.SentimentUnknown,
	}
}

// Printer renders query results as a human-readable report.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to the given stream.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Print writes the report block for a fully or partially filled result.
// Absent fields are replaced with a placeholder; Print never fails on
// missing data.
func (p *Printer) Print(r QueryResult) {
	banner := strings.Repeat("=", bannerWidth)

	price := Placeholder
	if r.PriceUSD != nil {
		price = FormatUSD(*r.PriceUSD)
	}

	marketCap := Placeholder
	if r.MarketCapUSD != nil {
		marketCap = FormatUSD(*r.MarketCapUSD)
	}

	analysis := Placeholder
	if r.AnalysisText != "" {
		analysis = r.AnalysisText
	}

	sentiment := r.Sentiment
	if sentiment == "" {
		sentiment = fetcher.SentimentUnknown
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, banner)
	fmt.Fprintf(p.out, "Analysis Report for %s\n", Title(r.AssetName))
	fmt.Fprintln(p.out, banner)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Market Data ---")
	fmt.Fprintf(p.out, "   Current Price: %s\n", price)
	fmt.Fprintf(p.out, "   Market Cap:    %s\n", marketCap)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- AI-Generated Summary ---")
	fmt.Fprintf(p.out, "   %s\n", strings.ReplaceAll(analysis, "\n", "\n   "))
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Sentiment: %s\n", sentiment)
	fmt.Fprintln(p.out, banner)
}
