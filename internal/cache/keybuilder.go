package cache

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

const (
	keyPrefix       = "ao"
	noDiscriminator = "-"
	// a present discriminator is marked so that "" and "-" never share a key
	discriminatorMark = "@"
)

// fieldEscaper keeps ':' inside a field from reading as a separator
var fieldEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key for a single process request.
// Key layout: ao:<process>:<action>:<@discriminator|->[:<tags digest>]
// Fields are escaped so that no two distinct requests share a key.
func (kb *KeyBuilderImpl) Build(processID string, tags models.Tags, discriminator string) (string, error) {
	if processID == "" {
		return "", errors.New("process id cannot be empty")
	}

	action := tags.Action()
	if action == "" {
		return "", errors.New("request action cannot be empty")
	}

	disc := noDiscriminator
	if discriminator != "" {
		disc = discriminatorMark + fieldEscaper.Replace(discriminator)
	}

	key := fmt.Sprintf("%s:%s:%s:%s", keyPrefix, fieldEscaper.Replace(processID), fieldEscaper.Replace(action), disc)

	digest, err := tagsDigest(tags)
	if err != nil {
		return "", err
	}
	if digest != "" {
		key += ":" + digest
	}

	return key, nil
}

// tagsDigest hashes every tag except the first Action tag, keeping order.
// Returns empty string when there is nothing besides the action.
func tagsDigest(tags models.Tags) (string, error) {
	rest := make(models.Tags, 0, len(tags))
	skipped := false
	for _, tag := range tags {
		if !skipped && tag.Name == models.TagAction {
			skipped = true
			continue
		}
		rest = append(rest, tag)
	}
	if len(rest) == 0 {
		return "", nil
	}

	payload, err := json.Marshal(rest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}

	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:16]), nil
}
