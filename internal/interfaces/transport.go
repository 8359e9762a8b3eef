package interfaces

import (
	"context"

	"go-ao-staking/internal/models"
)

//go:generate mockgen -package=mock -source=transport.go -destination=mock/transport.go

// Transport is the boundary to the message-passing network
type Transport interface {
	// Dispatch submits the request and returns a dispatch identifier, not the result
	Dispatch(ctx context.Context, req *models.Request) (string, error)
	// Result fetches the result correlated to a dispatch identifier.
	// It returns models.ErrResultNotReady while the result is not available.
	Result(ctx context.Context, processID, dispatchID string) (*models.Response, error)
}
