package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-ao-staking/internal/models"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCategory
	}{
		{name: "nil error", err: nil, expected: NoError},
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: NetworkError},
		{name: "wrapped cancel", err: fmt.Errorf("dispatch: %w", context.Canceled), expected: NetworkError},
		{name: "net op error", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, expected: NetworkError},
		{name: "not ready", err: fmt.Errorf("poll: %w", models.ErrResultNotReady), expected: NotReadyError},
		{name: "process error", err: fmt.Errorf("%w: insufficient balance", models.ErrProcess), expected: ProcessError},
		{name: "missing data", err: models.ErrMissingData, expected: MissingDataError},
		{name: "parse error", err: fmt.Errorf("%w: unexpected EOF", models.ErrMalformedResponse), expected: ParseError},
		{name: "no signer", err: models.ErrNoSigner, expected: SignerError},
		{name: "invalid request", err: models.ErrInvalidRequest, expected: InvalidRequestError},
		{name: "other", err: errors.New("something else"), expected: UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeError(tt.err))
		})
	}
}
