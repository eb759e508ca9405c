package fetcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error that occurred during a run
type ErrorType string

const (
	// ErrorTypeEmptyInput indicates the user supplied no asset name
	ErrorTypeEmptyInput ErrorType = "empty_input"
	// ErrorTypeUnknownAsset indicates the market-data provider does not recognize the asset
	ErrorTypeUnknownAsset ErrorType = "unknown_asset"
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, timeout, upstream 5xx)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParse indicates the response was received but the expected fields were missing or invalid
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeCompletion indicates the text-completion service failed (auth, quota, malformed response)
	ErrorTypeCompletion ErrorType = "completion"
	// ErrorTypeMissingCredential indicates a required credential was not configured
	ErrorTypeMissingCredential ErrorType = "missing_credential"
	// ErrorTypeUnknown indicates an error of unknown type
	ErrorTypeUnknown ErrorType = "unknown"
)

// FetchError represents a structured error from any step of the pipeline
type FetchError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// IsType reports whether err is (or wraps) a FetchError of the given type
func IsType(err error, t ErrorType) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == t
}

// IsDecodeError reports whether err stems from decoding a JSON response
// body. The HTTP client parses response bodies into the registered result
// struct and surfaces decode failures through the request error, so callers
// need this to tell a malformed body apart from a transport failure.
func IsDecodeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	return errors.As(err, &typeErr) || errors.As(err, &syntaxErr)
}

// NewEmptyInputError creates an empty-input error
func NewEmptyInputError() *FetchError {
	return &FetchError{
		Type:    ErrorTypeEmptyInput,
		Message: "no asset name provided",
	}
}

// NewUnknownAssetError creates an unknown-asset error for the given name
func NewUnknownAssetError(asset string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeUnknownAsset,
		Message: fmt.Sprintf("asset %q not recognized by the market-data provider", asset),
	}
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeNetwork,
		Message: "network request failed",
		Cause:   cause,
	}
}

// NewUpstreamError creates a network error carrying the upstream HTTP status
func NewUpstreamError(statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeNetwork,
		StatusCode: statusCode,
		Message:    "upstream returned an error",
	}
}

// NewParseError creates a parse error
func NewParseError(message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeParse,
		Message: message,
	}
}

// NewCompletionError creates a completion error
func NewCompletionError(statusCode int, message string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeCompletion,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewMissingCredentialError creates a missing-credential error listing the absent variables
func NewMissingCredentialError(names ...string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeMissingCredential,
		Message: fmt.Sprintf("missing required configuration: %s", strings.Join(names, ", ")),
	}
}
