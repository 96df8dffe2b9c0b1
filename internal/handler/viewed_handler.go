package handler

import (
	"net/http"
	"strconv"

	"furnistore/internal/blob"
	"furnistore/internal/model"
	"furnistore/internal/viewed"

	"github.com/rs/zerolog"
)

// ViewedHandler handles the recently-viewed list.
type ViewedHandler struct {
	blobs  blob.Store
	logger zerolog.Logger
}

// NewViewedHandler creates a new recently-viewed handler.
func NewViewedHandler(blobs blob.Store, logger zerolog.Logger) *ViewedHandler {
	return &ViewedHandler{
		blobs:  blobs,
		logger: logger.With().Str("handler", "viewed").Logger(),
	}
}

func (h *ViewedHandler) tracker(r *http.Request) *viewed.Tracker {
	return viewed.NewTracker(sessionBlobs(r, h.blobs), h.logger)
}

// Record handles POST /api/viewed. Product pages post the snapshot of the
// product being viewed.
func (h *ViewedHandler) Record(w http.ResponseWriter, r *http.Request) {
	var snapshot model.ViewedProduct
	if !decodeJSON(w, r, &snapshot, h.logger) {
		return
	}
	if snapshot.ID == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "id is required", h.logger)
		return
	}

	if err := h.tracker(r).Record(r.Context(), snapshot); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/viewed?exclude=42&limit=4.
func (h *ViewedHandler) List(w http.ResponseWriter, r *http.Request) {
	var excludeID int64
	if v := r.URL.Query().Get("exclude"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid exclude parameter", h.logger)
			return
		}
		excludeID = id
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid limit parameter", h.logger)
			return
		}
		limit = n
	}

	entries, err := h.tracker(r).List(r.Context(), excludeID, limit)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
