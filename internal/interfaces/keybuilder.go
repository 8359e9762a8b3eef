package interfaces

import "go-ao-staking/internal/models"

// KeyBuilder canonizes process requests into deterministic cache keys
type KeyBuilder interface {
	Build(processID string, tags models.Tags, discriminator string) (string, error)
}
