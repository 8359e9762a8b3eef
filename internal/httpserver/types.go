package httpserver

import (
	"time"

	"go-ao-staking/internal/poller"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SnapshotResponse exposes a polled value together with its freshness
type SnapshotResponse[T any] struct {
	Status    poller.Status `json:"status"`
	Data      T             `json:"data,omitempty"`
	Error     string        `json:"error,omitempty"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
}

// TokenRequest asks for a bearer token for a wallet address
type TokenRequest struct {
	Address string `json:"address"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newSnapshotResponse[T any](snap poller.Snapshot[T]) SnapshotResponse[T] {
	resp := SnapshotResponse[T]{Status: snap.Status, Data: snap.Data}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	if !snap.UpdatedAt.IsZero() {
		updatedAt := snap.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
