package handler

import (
	"net/http"

	"furnistore/internal/blob"
	"furnistore/internal/order"

	"github.com/rs/zerolog"
)

// OrderHandler serves the confirmation page's order record.
type OrderHandler struct {
	blobs  blob.Store
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(blobs blob.Store, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		blobs:  blobs,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// Last handles GET /api/orders/last. When no order has been placed the
// response is a 404 carrying a home redirect, which the confirmation page
// follows.
func (h *OrderHandler) Last(w http.ResponseWriter, r *http.Request) {
	reader := order.NewReader(sessionBlobs(r, h.blobs), h.logger)

	o, err := reader.Last(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, o)
}
