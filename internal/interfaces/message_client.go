package interfaces

import (
	"context"

	"go-ao-staking/internal/models"
)

//go:generate mockgen -package=mock -source=message_client.go -destination=mock/message_client.go

// MessageClient sends a request to a process and resolves its result
type MessageClient interface {
	SendAndGetResult(ctx context.Context, req *models.Request) (*models.Response, error)
}
