package models

import (
	"context"
	"errors"
)

var (
	// ErrMissingData means a well-formed response lacked an expected message or field
	ErrMissingData = errors.New("missing data in process response")
	// ErrMalformedResponse means a response payload could not be decoded
	ErrMalformedResponse = errors.New("malformed process response")
	// ErrResultNotReady means the compute unit has not evaluated the message yet
	ErrResultNotReady = errors.New("result not yet available")
	// ErrNoSigner means a write was attempted without a signer configured
	ErrNoSigner = errors.New("no signer configured for write")
	// ErrProcess means the process evaluated the message and reported an error
	ErrProcess = errors.New("process returned an error")
	// ErrInvalidRequest means the request cannot be sent as built
	ErrInvalidRequest = errors.New("invalid request")
)

// IsPermanent reports whether retrying err cannot change the outcome
func IsPermanent(err error) bool {
	return errors.Is(err, ErrMissingData) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrNoSigner) ||
		errors.Is(err, ErrProcess) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, context.Canceled)
}
