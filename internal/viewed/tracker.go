// Package viewed keeps the bounded most-recently-viewed product list. The
// list stores trimmed snapshots captured at view time, most recent first,
// deduplicated by product id and capped at ten entries.
package viewed

import (
	"context"
	"fmt"

	"furnistore/internal/blob"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// MaxEntries is the persisted cap. The display layer shows fewer.
const MaxEntries = 10

// DefaultDisplayLimit is how many entries product pages show.
const DefaultDisplayLimit = 4

// Tracker records and lists recently viewed products for one session.
type Tracker struct {
	blobs  blob.Store
	logger zerolog.Logger
}

// NewTracker creates a tracker over the session's blob store.
func NewTracker(blobs blob.Store, logger zerolog.Logger) *Tracker {
	return &Tracker{
		blobs:  blobs,
		logger: logger.With().Str("component", "recently-viewed").Logger(),
	}
}

// load reads the persisted list; absent or corrupt reads as empty.
func (t *Tracker) load(ctx context.Context) ([]model.ViewedProduct, error) {
	var entries []model.ViewedProduct
	ok, err := t.blobs.Get(ctx, blob.KeyViewed, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently viewed list: %w", err)
	}
	if !ok {
		return []model.ViewedProduct{}, nil
	}
	return entries, nil
}

// Record puts a product snapshot at the front of the list. Re-viewing a
// product moves its entry to the front instead of duplicating it; the
// oldest entry is evicted when the list would exceed the cap. The list is
// persisted after every call.
func (t *Tracker) Record(ctx context.Context, snapshot model.ViewedProduct) error {
	entries, err := t.load(ctx)
	if err != nil {
		return err
	}

	// Drop any existing entry for this product before prepending.
	filtered := entries[:0]
	for _, e := range entries {
		if e.ID != snapshot.ID {
			filtered = append(filtered, e)
		}
	}

	entries = append([]model.ViewedProduct{snapshot}, filtered...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := t.blobs.Set(ctx, blob.KeyViewed, entries); err != nil {
		return fmt.Errorf("failed to persist recently viewed list: %w", err)
	}

	t.logger.Debug().
		Int64("product_id", snapshot.ID).
		Int("entries", len(entries)).
		Msg("recorded product view")

	return nil
}

// List returns up to limit entries, most recent first, optionally
// excluding one product id (the product currently being viewed). limit <= 0
// selects the default display limit. The persisted list itself always
// keeps up to MaxEntries regardless of how many are shown.
func (t *Tracker) List(ctx context.Context, excludeID int64, limit int) ([]model.ViewedProduct, error) {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}

	entries, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.ViewedProduct, 0, limit)
	for _, e := range entries {
		if excludeID != 0 && e.ID == excludeID {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}
