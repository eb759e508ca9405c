package testutil

import (
	"context"

	"cryptoinsight/internal/fetcher"
)

// MockQuoteFetcher is a mock implementation of the QuoteFetcher interface for testing
type MockQuoteFetcher struct {
	FetchFunc func(ctx context.Context) (fetcher.Quote, error)
	KeyFunc   func() string

	// FetchCalls counts invocations so tests can assert no network step ran
	FetchCalls int
}

// Fetch implements the QuoteFetcher interface
func (m *MockQuoteFetcher) Fetch(ctx context.Context) (fetcher.Quote, error) {
	m.FetchCalls++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return fetcher.Quote{}, nil
}

// Key implements the QuoteFetcher interface
func (m *MockQuoteFetcher) Key() string {
	if m.KeyFunc != nil {
		return m.KeyFunc()
	}
	return "mock:key"
}

// NewMockQuoteFetcher creates a simple mock fetcher with predefined values
func NewMockQuoteFetcher(key string, quote fetcher.Quote, err error) *MockQuoteFetcher {
	return &MockQuoteFetcher{
		FetchFunc: func(ctx context.Context) (fetcher.Quote, error) {
			return quote, err
		},
		KeyFunc: func() string {
			return key
		},
	}
}

// MockInsightGenerator is a mock implementation of the InsightGenerator interface for testing
type MockInsightGenerator struct {
	GenerateFunc func(ctx context.Context, asset string, quote fetcher.Quote) (fetcher.Insight, error)

	// GenerateCalls counts invocations so tests can assert the completion
	// step was skipped after a market-data failure
	GenerateCalls int
}

// Generate implements the InsightGenerator interface
func (m *MockInsightGenerator) Generate(ctx context.Context, asset string, quote fetcher.Quote) (fetcher.Insight, error) {
	m.GenerateCalls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, asset, quote)
	}
	return fetcher.Insight{}, nil
}
