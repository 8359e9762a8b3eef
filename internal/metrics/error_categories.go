package metrics

import (
	"context"
	"errors"
	"net"

	"go-ao-staking/internal/models"
)

// ErrorCategory represents a categorized error type for AO requests
type ErrorCategory string

const (
	// NoError indicates a successful request
	NoError ErrorCategory = "none"

	// NetworkError indicates network-related issues (timeouts, connection resets, etc.)
	NetworkError ErrorCategory = "network_error"

	// NotReadyError indicates the result was still being computed when polling gave up
	NotReadyError ErrorCategory = "not_ready"

	// ProcessError indicates the process evaluated the message and failed
	ProcessError ErrorCategory = "process_error"

	// MissingDataError indicates a well-formed response without the expected data
	MissingDataError ErrorCategory = "missing_data"

	// ParseError indicates a response that could not be decoded
	ParseError ErrorCategory = "parse_error"

	// SignerError indicates a write without a usable signer
	SignerError ErrorCategory = "signer_error"

	// InvalidRequestError indicates a request that could not be sent as built
	InvalidRequestError ErrorCategory = "invalid_request"

	// UnknownError indicates unclassified errors
	UnknownError ErrorCategory = "unknown_error"
)

// CategorizeError takes an error and returns the appropriate ErrorCategory
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return NoError
	}

	switch {
	case errors.Is(err, models.ErrResultNotReady):
		return NotReadyError
	case errors.Is(err, models.ErrProcess):
		return ProcessError
	case errors.Is(err, models.ErrMissingData):
		return MissingDataError
	case errors.Is(err, models.ErrMalformedResponse):
		return ParseError
	case errors.Is(err, models.ErrNoSigner):
		return SignerError
	case errors.Is(err, models.ErrInvalidRequest):
		return InvalidRequestError
	}

	// Check for network-related errors
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NetworkError
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NetworkError
	}

	// Default to unknown error
	return UnknownError
}
