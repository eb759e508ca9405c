package fetcher

import (
	"log/slog"

	"resty.dev/v3"
)

// NewHTTPClient creates an HTTP client for one upstream API.
// Each invocation of the pipeline issues exactly one request per upstream,
// so no retry policy is configured.
func NewHTTPClient(baseURL string) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		AddResponseMiddleware(logResponse)

	return client
}

// logResponse logs completed requests for observability
func logResponse(c *resty.Client, r *resty.Response) error {
	slog.Debug("upstream request completed",
		"method", r.Request.Method,
		"url", r.Request.URL,
		"status_code", r.StatusCode())
	return nil
}
