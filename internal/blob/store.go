// Package blob implements the key-value blob store backing all session
// state: the cart, the recently-viewed list, the last order and the stored
// coupon code. Values are JSON text blobs keyed by string, mirroring the
// web client's local storage layout.
//
// Writes are whole-value: the caller's value is serialized in full and then
// stored in a single operation, so a failed write never leaves a partially
// written blob behind. A stored blob that no longer parses is treated as
// absent rather than surfaced as an error.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"furnistore/internal/config"

	"github.com/rs/zerolog"
)

// Well-known blob keys. The names match the keys the web client has always
// used, so existing session state carries over.
const (
	KeyCart         = "cart"
	KeyViewed       = "viewedProducts"
	KeyLastOrder    = "lastOrder"
	KeyCouponCode   = "couponCode"
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserInfo     = "userInfo"
)

// Store is a JSON key-value blob store.
type Store interface {
	// Get unmarshals the blob stored under key into into. It returns false
	// when the key is absent or the stored blob is corrupt.
	Get(ctx context.Context, key string, into any) (bool, error)

	// Set marshals value and stores it under key, replacing any previous
	// blob atomically.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the blob stored under key. Deleting an absent key is
	// a no-op.
	Delete(ctx context.Context, key string) error
}

// NewFromConfig constructs the blob store backend selected by the
// configuration.
func NewFromConfig(cfg config.BlobConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir, logger)
	case "redis":
		return NewRedisStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", cfg.Backend)
	}
}

// memoryStore is an in-process Store used in tests and single-run tools.
type memoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() Store {
	return &memoryStore{blobs: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string, into any) (bool, error) {
	s.mu.RLock()
	data, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		// Corrupt blob reads as absent.
		return false, nil
	}
	return true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal blob %s: %w", key, err)
	}
	s.mu.Lock()
	s.blobs[key] = data
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}

// prefixStore namespaces every key of an underlying store.
type prefixStore struct {
	inner  Store
	prefix string
}

// WithPrefix returns a view of store in which every key is prefixed. It is
// used to scope session state: WithPrefix(store, "sess:<id>:").
func WithPrefix(store Store, prefix string) Store {
	return &prefixStore{inner: store, prefix: prefix}
}

func (s *prefixStore) Get(ctx context.Context, key string, into any) (bool, error) {
	return s.inner.Get(ctx, s.prefix+key, into)
}

func (s *prefixStore) Set(ctx context.Context, key string, value any) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *prefixStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
