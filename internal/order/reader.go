// Package order reads the most recent order record for the confirmation
// page. The record is consumed read-only; only checkout writes it.
package order

import (
	"context"
	"fmt"

	"furnistore/internal/blob"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// Reader reads the session's most recent order.
type Reader struct {
	blobs  blob.Store
	logger zerolog.Logger
}

// NewReader creates an order reader over the session's blob store.
func NewReader(blobs blob.Store, logger zerolog.Logger) *Reader {
	return &Reader{
		blobs:  blobs,
		logger: logger.With().Str("component", "order-reader").Logger(),
	}
}

// Last returns the most recent order, or model.ErrNoOrder when no order has
// been placed. The confirmation page redirects home on ErrNoOrder.
func (r *Reader) Last(ctx context.Context) (*model.Order, error) {
	var order model.Order
	ok, err := r.blobs.Get(ctx, blob.KeyLastOrder, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to read last order: %w", err)
	}
	if !ok {
		r.logger.Debug().Msg("no order stored for session")
		return nil, model.ErrNoOrder
	}
	return &order, nil
}
