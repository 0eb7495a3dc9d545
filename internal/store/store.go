// Package store persists tailored content payloads under string keys.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TailoredContentKey is the fixed key tailored content is stored under.
const TailoredContentKey = "tailoredContent"

// KV is a key-value slot for raw JSON payloads. Values are stored verbatim;
// callers reconcile them on read.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionKey scopes the tailored content key to one session.
func SessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", TailoredContentKey, sessionID)
}
