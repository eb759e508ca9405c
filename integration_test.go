package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cryptoinsight/internal/agent"
	"cryptoinsight/internal/coingecko"
	"cryptoinsight/internal/fetcher"
	"cryptoinsight/internal/openai"
)

// newTestServers creates mock CoinGecko and OpenAI servers for end-to-end runs
func newTestServers(t *testing.T) (*httptest.Server, *httptest.Server) {
	t.Helper()

	coingeckoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("path = %q, want /simple/price", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		switch r.URL.Query().Get("ids") {
		case "ethereum":
			w.Write([]byte(`{"ethereum": {"usd": 3000.0, "usd_market_cap": 360000000000.0}}`))
		case "bitcoin":
			w.Write([]byte(`{"bitcoin": {"usd": 40000.0, "usd_market_cap": 780000000000.0}}`))
		default:
			// Unknown ids are simply absent from the response
			w.Write([]byte(`{}`))
		}
	}))

	openaiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test_key" {
			t.Errorf("Authorization = %q, want Bearer test_key", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"choices": [
				{"message": {"role": "assistant", "content": "A major smart-contract platform with healthy activity. Overall Sentiment: Positive. Strong network usage supports the valuation."}}
			]
		}`))
	}))

	return coingeckoServer, openaiServer
}

func newTestAgent(input string, out *bytes.Buffer, coingeckoURL, openaiURL string) *agent.Agent {
	return agent.New(agent.Options{
		In:  strings.NewReader(input),
		Out: out,
		Quotes: func(assetName string) fetcher.QuoteFetcher {
			return coingecko.NewQuoteFetcher(assetName, coingeckoURL)
		},
		Insights:   openai.NewClient("test_key", "test-model", openaiURL),
		RunTimeout: 5 * time.Second,
	})
}

// TestIntegration_EthereumScenario runs the full pipeline against mock
// upstreams and checks the printed report
func TestIntegration_EthereumScenario(t *testing.T) {
	coingeckoServer, openaiServer := newTestServers(t)
	defer coingeckoServer.Close()
	defer openaiServer.Close()

	var out bytes.Buffer
	ag := newTestAgent("Ethereum\nn\n", &out, coingeckoServer.URL, openaiServer.URL)

	if err := ag.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	wantFragments := []string{
		"Analysis Report for Ethereum",
		"Current Price: $3,000.00",
		"Market Cap:    $360,000,000,000.00",
		"smart-contract platform",
		"Sentiment: Positive",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(out.String(), fragment) {
			t.Errorf("output missing %q:\n%s", fragment, out.String())
		}
	}
}

// TestIntegration_UnknownAsset verifies the completion call is skipped and
// the report falls back to placeholders
func TestIntegration_UnknownAsset(t *testing.T) {
	coingeckoServer, openaiServer := newTestServers(t)
	defer coingeckoServer.Close()
	defer openaiServer.Close()

	openaiCalls := 0
	countingOpenAI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		openaiCalls++
		w.WriteHeader(http.StatusOK)
	}))
	defer countingOpenAI.Close()

	var out bytes.Buffer
	ag := newTestAgent("Notarealcoinxyz\nn\n", &out, coingeckoServer.URL, countingOpenAI.URL)

	if err := ag.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if openaiCalls != 0 {
		t.Errorf("completion calls = %d, want 0 after unknown asset", openaiCalls)
	}
	if !strings.Contains(out.String(), "Could not fetch market data") {
		t.Errorf("output missing failure message:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "data unavailable") {
		t.Errorf("output missing placeholders:\n%s", out.String())
	}
}

// TestIntegration_MarketDataDown verifies upstream outages are reported as
// text rather than crashing the run
func TestIntegration_MarketDataDown(t *testing.T) {
	downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer downServer.Close()

	coingeckoServer, openaiServer := newTestServers(t)
	coingeckoServer.Close()
	defer openaiServer.Close()

	var out bytes.Buffer
	ag := newTestAgent("Bitcoin\nn\n", &out, downServer.URL, openaiServer.URL)

	if err := ag.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !strings.Contains(out.String(), "Could not fetch market data") {
		t.Errorf("output missing failure message:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Sentiment: Unknown") {
		t.Errorf("output missing unknown sentiment:\n%s", out.String())
	}
}

// TestIntegration_CompletionDown verifies market data is still reported
// when the completion service fails
func TestIntegration_CompletionDown(t *testing.T) {
	coingeckoServer, openaiServer := newTestServers(t)
	openaiServer.Close()
	defer coingeckoServer.Close()

	downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota"}}`))
	}))
	defer downServer.Close()

	var out bytes.Buffer
	ag := newTestAgent("Bitcoin\nn\n", &out, coingeckoServer.URL, downServer.URL)

	if err := ag.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !strings.Contains(out.String(), "Current Price: $40,000.00") {
		t.Errorf("output missing market data:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Could not generate analysis") {
		t.Errorf("output missing failure message:\n%s", out.String())
	}
}

// TestIntegration_RunTimeout verifies a hanging upstream is cut off by the
// per-run deadline instead of blocking forever
func TestIntegration_RunTimeout(t *testing.T) {
	hangingServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer hangingServer.Close()

	coingeckoServer, openaiServer := newTestServers(t)
	coingeckoServer.Close()
	defer openaiServer.Close()

	var out bytes.Buffer
	ag := agent.New(agent.Options{
		In:  strings.NewReader("Bitcoin\nn\n"),
		Out: &out,
		Quotes: func(assetName string) fetcher.QuoteFetcher {
			return coingecko.NewQuoteFetcher(assetName, hangingServer.URL)
		},
		Insights:   openai.NewClient("test_key", "test-model", openaiServer.URL),
		RunTimeout: 100 * time.Millisecond,
	})

	start := time.Now()
	err := ag.Run(context.Background())
	duration := time.Since(start)

	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if duration > time.Second {
		t.Errorf("run deadline not respected, took %v", duration)
	}
	if !strings.Contains(out.String(), "Could not fetch market data") {
		t.Errorf("output missing failure message:\n%s", out.String())
	}
}
