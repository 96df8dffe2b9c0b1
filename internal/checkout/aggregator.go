// Package checkout computes order totals and assembles the immutable order
// record. The aggregator is a three-state machine: Empty (no cart lines,
// submission blocked), Ready (totals computed, submission accepted) and
// Submitted (terminal). Empty and Ready follow the cart live; Ready to
// Submitted is one-way and never retried automatically.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"furnistore/internal/address"
	"furnistore/internal/blob"
	"furnistore/internal/cart"
	"furnistore/internal/catalog"
	"furnistore/internal/config"
	"furnistore/internal/model"
	"furnistore/internal/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is the checkout state machine's state.
type State int

const (
	// StateEmpty means the cart has no lines; submission is blocked.
	StateEmpty State = iota
	// StateReady means the cart has lines and submission is accepted.
	StateReady
	// StateSubmitted is terminal: the order record exists and the cart
	// has been cleared.
	StateSubmitted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

// QuoteLine is one resolved cart line inside a quote.
type QuoteLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// Quote carries the computed totals for the current cart under a chosen
// shipping method. Amounts are integer VND.
type Quote struct {
	Lines             []QuoteLine          `json:"lines"`
	Subtotal          int64                `json:"subtotal"`
	Discount          int64                `json:"discount"`
	Shipping          int64                `json:"shipping"`
	Total             int64                `json:"total"`
	ShippingMethod    model.ShippingMethod `json:"shipping_method"`
	EstimatedDelivery model.DeliveryWindow `json:"estimated_delivery"`
}

// SubmitRequest is the checkout form payload.
type SubmitRequest struct {
	Customer       model.Customer        `json:"customer"`
	Shipping       model.ShippingAddress `json:"shipping"`
	ShippingMethod model.ShippingMethod  `json:"shipping_method"`
	PaymentMethod  model.PaymentMethod   `json:"payment_method"`
}

// Aggregator reads the cart, re-resolves each line's product and computes
// the order totals. One aggregator serves one checkout page view.
type Aggregator struct {
	cart      *cart.Store
	resolver  catalog.Resolver
	blobs     blob.Store
	cfg       config.CheckoutConfig
	now       func() time.Time
	logger    zerolog.Logger
	submitted bool
}

// NewAggregator creates a checkout aggregator for one session.
func NewAggregator(
	cartStore *cart.Store,
	resolver catalog.Resolver,
	blobs blob.Store,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) *Aggregator {
	return &Aggregator{
		cart:     cartStore,
		resolver: resolver,
		blobs:    blobs,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

// WithClock replaces the aggregator's clock. Tests pin "today" with it.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// State derives the current checkout state from the cart.
func (a *Aggregator) State(ctx context.Context) (State, error) {
	if a.submitted {
		return StateSubmitted, nil
	}

	count, err := a.cart.Count(ctx)
	if err != nil {
		return StateEmpty, err
	}
	if count == 0 {
		return StateEmpty, nil
	}
	return StateReady, nil
}

// Quote computes totals for the current cart under the given shipping
// method. Selecting a different method simply quotes again; nothing is
// persisted. Unresolved products are skipped from the lines and the
// subtotal.
func (a *Aggregator) Quote(ctx context.Context, method model.ShippingMethod) (*Quote, error) {
	if !method.Valid() {
		return nil, model.ErrInvalidShipping
	}

	lines, err := a.cart.Lines(ctx)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Lines:             []QuoteLine{},
		ShippingMethod:    method,
		EstimatedDelivery: EstimateDelivery(a.now(), method),
	}

	for _, line := range lines {
		product, err := a.resolver.Resolve(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			a.logger.Warn().
				Int64("product_id", line.ProductID).
				Msg("skipping unresolved product in checkout quote")
			continue
		}

		lineTotal := product.Price * int64(line.Quantity)
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		quote.Subtotal += lineTotal
	}

	// The stored coupon code is recorded on the order but never applied
	// to the totals; discount stays zero.
	quote.Discount = 0

	if method == model.ShippingExpress {
		quote.Shipping = a.cfg.ExpressFee
	}

	quote.Total = quote.Subtotal - quote.Discount + quote.Shipping
	if quote.Total < 0 {
		quote.Total = 0
	}

	return quote, nil
}

// Submit performs the one-way Ready to Submitted transition: it snapshots
// the cart into an immutable order record, persists it as the most recent
// order, clears the cart and marks the aggregator terminal.
func (a *Aggregator) Submit(ctx context.Context, req *SubmitRequest) (*model.Order, error) {
	if a.submitted {
		return nil, model.ErrOrderSubmitted
	}

	if err := a.validateSubmitRequest(req); err != nil {
		return nil, err
	}

	quote, err := a.Quote(ctx, req.ShippingMethod)
	if err != nil {
		return nil, err
	}
	if len(quote.Lines) == 0 {
		a.logger.Warn().Msg("checkout submitted with empty cart")
		return nil, model.ErrEmptyCart
	}

	couponCode, err := a.cart.CouponCode(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, len(quote.Lines))
	for i, line := range quote.Lines {
		items[i] = model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		}
	}

	order := &model.Order{
		ID:        uuid.New(),
		Number:    NewOrderNumber(a.cfg.OrderPrefix),
		OrderDate: a.now(),
		Customer:  req.Customer,
		Shipping:  req.Shipping,
		ShippingDisplay: address.Format(
			req.Shipping.Address,
			req.Shipping.Ward,
			req.Shipping.District,
			req.Shipping.Province,
		),
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		Items:          items,
		Totals: model.OrderTotals{
			Subtotal: money.VND(quote.Subtotal),
			Discount: money.VND(quote.Discount),
			Shipping: money.VND(quote.Shipping),
			Total:    money.VND(quote.Total),
		},
		EstimatedDelivery: quote.EstimatedDelivery,
	}
	if couponCode != "" {
		order.CouponCode = &couponCode
	}

	if err := a.blobs.Set(ctx, blob.KeyLastOrder, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if err := a.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear cart after order: %w", err)
	}

	a.submitted = true

	a.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.Number).
		Int("item_count", len(order.Items)).
		Str("total", order.Totals.Total).
		Msg("order placed")

	return order, nil
}

// validateSubmitRequest validates the checkout form payload.
func (a *Aggregator) validateSubmitRequest(req *SubmitRequest) error {
	if req == nil {
		return fmt.Errorf("submit request is nil")
	}

	if !req.ShippingMethod.Valid() {
		return model.ErrInvalidShipping
	}
	if !req.PaymentMethod.Valid() {
		return model.ErrInvalidPayment
	}

	required := map[string]string{
		"fullname": req.Customer.FullName,
		"phone":    req.Customer.Phone,
		"address":  req.Shipping.Address,
		"province": req.Shipping.Province,
		"district": req.Shipping.District,
		"ward":     req.Shipping.Ward,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	return nil
}
