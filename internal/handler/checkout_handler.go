package handler

import (
	"net/http"

	"furnistore/internal/blob"
	"furnistore/internal/cart"
	"furnistore/internal/checkout"
	"furnistore/internal/config"
	"furnistore/internal/model"
	"furnistore/internal/money"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout-related HTTP requests.
type CheckoutHandler struct {
	blobs     blob.Store
	resolvers ResolverFactory
	cfg       config.CheckoutConfig
	logger    zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(blobs blob.Store, resolvers ResolverFactory, cfg config.CheckoutConfig, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		blobs:     blobs,
		resolvers: resolvers,
		cfg:       cfg,
		logger:    logger.With().Str("handler", "checkout").Logger(),
	}
}

func (h *CheckoutHandler) aggregator(r *http.Request) *checkout.Aggregator {
	blobs := sessionBlobs(r, h.blobs)
	resolver := h.resolvers(blobs)
	return checkout.NewAggregator(cart.New(blobs, h.logger), resolver, blobs, h.cfg, h.logger)
}

// quoteResponse decorates a quote with display strings and the state, so
// the page renders totals without re-formatting.
type quoteResponse struct {
	State   string          `json:"state"`
	Quote   *checkout.Quote `json:"quote"`
	Display displayTotals   `json:"display"`
}

type displayTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// Quote handles GET /api/checkout/quote?shipping_method=express. Changing
// the shipping method just quotes again; nothing is persisted, which is
// what lets the totals re-render without a page reload.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	method := model.ShippingMethod(r.URL.Query().Get("shipping_method"))
	if method == "" {
		method = model.ShippingStandard
	}

	agg := h.aggregator(r)

	state, err := agg.State(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if state == checkout.StateEmpty {
		writeDomainError(w, r, model.ErrEmptyCart, h.logger)
		return
	}

	quote, err := agg.Quote(r.Context(), method)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		State: state.String(),
		Quote: quote,
		Display: displayTotals{
			Subtotal: money.VND(quote.Subtotal),
			Discount: money.VND(quote.Discount),
			Shipping: money.VND(quote.Shipping),
			Total:    money.VND(quote.Total),
		},
	})
}

// Submit handles POST /api/checkout: the one-way Ready to Submitted
// transition. On success the order record is returned and the cart is
// already cleared.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkout.SubmitRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.aggregator(r).Submit(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
