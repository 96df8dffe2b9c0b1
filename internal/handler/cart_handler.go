package handler

import (
	"net/http"
	"strconv"

	"furnistore/internal/blob"
	"furnistore/internal/cart"
	"furnistore/internal/model"
	"furnistore/internal/money"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	blobs     blob.Store
	resolvers ResolverFactory
	logger    zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(blobs blob.Store, resolvers ResolverFactory, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		blobs:     blobs,
		resolvers: resolvers,
		logger:    logger.With().Str("handler", "cart").Logger(),
	}
}

func (h *CartHandler) store(r *http.Request) *cart.Store {
	return cart.New(sessionBlobs(r, h.blobs), h.logger)
}

// cartResponse is the cart as pages render it.
type cartResponse struct {
	Lines []model.CartLine `json:"lines"`
	Count int              `json:"count"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	lines, err := h.store(r).Lines(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Lines: lines, Count: lines.Count()})
}

type addLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  *int  `json:"quantity"`
}

// Add handles POST /api/cart/items. A missing quantity defaults to one,
// matching the add-to-cart buttons on listing pages.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	store := h.store(r)
	if err := store.Add(r.Context(), req.ProductID, quantity); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	lines, err := store.Lines(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Lines: lines, Count: lines.Count()})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity handles PUT /api/cart/items/{id}.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product id", h.logger)
		return
	}

	var req setQuantityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	store := h.store(r)
	if err := store.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	lines, err := store.Lines(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Lines: lines, Count: lines.Count()})
}

// Remove handles DELETE /api/cart/items/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product id", h.logger)
		return
	}

	store := h.store(r)
	if err := store.Remove(r.Context(), productID); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	lines, err := store.Lines(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Lines: lines, Count: lines.Count()})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store(r).Clear(r.Context()); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Lines: model.Cart{}, Count: 0})
}

// totalResponse carries the cart total both as an amount and as the
// display string the page shows.
type totalResponse struct {
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
}

// Total handles GET /api/cart/total. The total is computed at current
// catalogue prices; unresolvable lines are skipped.
func (h *CartHandler) Total(w http.ResponseWriter, r *http.Request) {
	resolver := h.resolvers(sessionBlobs(r, h.blobs))
	total, err := h.store(r).Total(r.Context(), resolver)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, totalResponse{Total: total, Formatted: money.VND(total)})
}

type couponRequest struct {
	Code string `json:"code"`
}

type couponResponse struct {
	Code string `json:"code"`
}

// GetCoupon handles GET /api/cart/coupon.
func (h *CartHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	code, err := h.store(r).CouponCode(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, couponResponse{Code: code})
}

// SaveCoupon handles POST /api/cart/coupon. The code is stored for the
// order record; it does not change the totals.
func (h *CartHandler) SaveCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	store := h.store(r)
	if req.Code == "" {
		if err := store.ClearCouponCode(r.Context()); err != nil {
			writeDomainError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, couponResponse{Code: ""})
		return
	}

	if err := store.SaveCouponCode(r.Context(), req.Code); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, couponResponse{Code: req.Code})
}
