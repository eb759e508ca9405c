package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"cryptoinsight/internal/fetcher"
	"cryptoinsight/internal/report"
)

// QuoteFactory builds a market-data fetcher for a user-supplied asset name
type QuoteFactory func(assetName string) fetcher.QuoteFetcher

// Options configures an Agent
type Options struct {
	In         io.Reader
	Out        io.Writer
	Quotes     QuoteFactory
	Insights   fetcher.InsightGenerator
	RunTimeout time.Duration
}

// Agent runs the input -> market data -> insight -> report pipeline.
// Each run is strictly sequential: the quote feeds the prompt, so the
// steps cannot overlap.
type Agent struct {
	in         *bufio.Reader
	out        io.Writer
	collector  *Collector
	quotes     QuoteFactory
	insights   fetcher.InsightGenerator
	printer    *report.Printer
	runTimeout time.Duration
}

// New creates an agent from the given options
func New(opts Options) *Agent {
	in := bufio.NewReader(opts.In)
	return &Agent{
		in:         in,
		out:        opts.Out,
		collector:  NewCollector(in, opts.Out),
		quotes:     opts.Quotes,
		insights:   opts.Insights,
		printer:    report.NewPrinter(opts.Out),
		runTimeout: opts.RunTimeout,
	}
}

// RunOnce executes a single pass of the pipeline. Failures past the input
// step are reported in the printed output rather than returned: a failed
// market-data lookup skips the completion call and the report falls back
// to placeholders; a failed completion still reports the market data.
func (a *Agent) RunOnce(ctx context.Context) error {
	name, err := a.collector.Collect()
	if err != nil {
		return err
	}

	result := report.NewQueryResult(name)

	fmt.Fprintf(a.out, "Fetching market data for %s...\n", report.Title(name))

	qf := a.quotes(name)
	slog.Debug("fetching market data", "key", qf.Key())

	quote, err := qf.Fetch(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not fetch market data: %v\n", err)
		a.printer.Print(result)
		return nil
	}

	result.PriceUSD = &quote.PriceUSD
	result.MarketCapUSD = &quote.MarketCapUSD

	fmt.Fprintln(a.out, "Generating analysis... Please wait.")

	insight, err := a.insights.Generate(ctx, name, quote)
	if err != nil {
		fmt.Fprintf(a.out, "Could not generate analysis: %v\n", err)
	} else {
		result.AnalysisText = insight.Text
		result.Sentiment = insight.Sentiment
	}

	a.printer.Print(result)
	return nil
}

// Run executes the pipeline repeatedly until the user declines to
// continue or input is exhausted. Handled failures are reported as text
// and do not abort the loop; empty input ends the session cleanly.
func (a *Agent) Run(ctx context.Context) error {
	for {
		runCtx, cancel := context.WithTimeout(ctx, a.runTimeout)
		err := a.RunOnce(runCtx)
		cancel()

		if err != nil {
			if fetcher.IsType(err, fetcher.ErrorTypeEmptyInput) {
				fmt.Fprintln(a.out, "No input provided. Exiting.")
				return nil
			}
			return err
		}

		if ctx.Err() != nil {
			return nil
		}

		if !a.askAgain() {
			return nil
		}
	}
}

// askAgain prompts for another run; anything but y/yes ends the session
func (a *Agent) askAgain() bool {
	fmt.Fprint(a.out, "\nAnalyze another? (y/N): ")

	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
