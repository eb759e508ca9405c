package openai

import (
	"context"
	"fmt"
	"net/http"

	"resty.dev/v3"

	"cryptoinsight/internal/fetcher"
	"cryptoinsight/internal/ratelimit"
	"cryptoinsight/internal/report"
)

const (
	systemPrompt = "You are a helpful financial analyst for beginners."

	// Keep the analysis fairly consistent and short
	temperature = 0.5
	maxTokens   = 300
)

const promptTemplate = `You are a financial analyst providing a very brief, easy-to-understand summary for a beginner.
Analyze the cryptocurrency '%s' based on the following data:
- Current Price: %s
- Market Cap: %s

Please provide the following in two distinct sections:

1. Brief Analysis: In 2-3 sentences, explain what this cryptocurrency is and what the data might suggest in simple terms.
2. Overall Sentiment: State the sentiment as a single word: Positive, Neutral, or Negative. Then, add one sentence explaining why.

Keep your response concise and focused on the provided data.`

// chatMessage is one turn of a chat-completion conversation
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat-completions request payload
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatResponse is the subset of the chat-completions response we read
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// apiError is the error envelope returned on non-2xx responses
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client generates asset insights via the OpenAI chat-completions API
type Client struct {
	apiKey  string
	model   string
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewClient creates an insight generator backed by the completion service
func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		client:  fetcher.NewHTTPClient(baseURL),
		limiter: ratelimit.GetLimiter(),
	}
}

// BuildPrompt constructs the analysis prompt for an asset. The same name,
// price, and market cap always yield the same prompt text.
func BuildPrompt(asset string, quote fetcher.Quote) string {
	return fmt.Sprintf(promptTemplate,
		report.Title(asset),
		report.FormatUSD(quote.PriceUSD),
		report.CompactUSD(quote.MarketCapUSD))
}

// Generate asks the completion service for a short analysis of the asset
// and parses a sentiment label out of the reply. Single synchronous call,
// no streaming, no retries.
func (c *Client) Generate(ctx context.Context, asset string, quote fetcher.Quote) (fetcher.Insight, error) {
	if err := c.limiter.Wait(ctx, ratelimit.APIOpenAI); err != nil {
		return fetcher.Insight{}, fetcher.NewNetworkError(err)
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(asset, quote)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var result chatResponse
	var apiErr apiError

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")

	if err != nil {
		// A body the client could not decode is a malformed response,
		// not a transport failure
		if fetcher.IsDecodeError(err) {
			return fetcher.Insight{}, fetcher.NewCompletionError(0,
				fmt.Sprintf("malformed completion response: %v", err))
		}
		return fetcher.Insight{}, fetcher.NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return fetcher.Insight{}, classifyStatus(resp.StatusCode(), apiErr.Error.Message)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return fetcher.Insight{}, fetcher.NewCompletionError(0, "no content in completion response")
	}

	text := result.Choices[0].Message.Content

	return fetcher.Insight{
		Text:      text,
		Sentiment: fetcher.ParseSentiment(text),
	}, nil
}

// classifyStatus maps completion-service status codes onto the error taxonomy
func classifyStatus(statusCode int, message string) *fetcher.FetchError {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fetcher.NewCompletionError(statusCode, withDetail("authentication failed", message))
	case http.StatusTooManyRequests:
		return fetcher.NewCompletionError(statusCode, withDetail("quota exhausted or rate limited", message))
	default:
		return fetcher.NewCompletionError(statusCode, withDetail("completion request failed", message))
	}
}

func withDetail(summary, detail string) string {
	if detail == "" {
		return summary
	}
	return fmt.Sprintf("%s: %s", summary, detail)
}
