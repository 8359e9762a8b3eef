package interfaces

import (
	"context"

	"go-ao-staking/internal/models"
)

//go:generate mockgen -package=mock -source=signer.go -destination=mock/signer.go

// Signer turns a request into a signed data item on behalf of a wallet
type Signer interface {
	Address(ctx context.Context) (string, error)
	Sign(ctx context.Context, req *models.Request) ([]byte, error)
}
