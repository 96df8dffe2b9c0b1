package checkout

import (
	"context"
	"testing"
	"time"

	"furnistore/internal/blob"
	"furnistore/internal/cart"
	"furnistore/internal/config"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver resolves product ids from a fixed product table.
type stubResolver struct {
	products map[int64]model.Product
}

func (r *stubResolver) Resolve(_ context.Context, id int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

var testCheckoutConfig = config.CheckoutConfig{
	ExpressFee:  50000,
	OrderPrefix: "FURNI-",
}

func testFixture(t *testing.T) (*Aggregator, *cart.Store, blob.Store) {
	t.Helper()
	blobs := blob.NewMemoryStore()
	cartStore := cart.New(blobs, zerolog.Nop())
	resolver := &stubResolver{products: map[int64]model.Product{
		1: {ID: 1, Name: "Sofa da Milano", Price: 100000, Image: "/images/sofa.jpg"},
		2: {ID: 2, Name: "Kệ tivi gỗ", Price: 50000, Image: "/images/ke-tivi.jpg"},
	}}
	agg := NewAggregator(cartStore, resolver, blobs, testCheckoutConfig, zerolog.Nop()).
		WithClock(func() time.Time {
			return time.Date(2026, time.January, 7, 9, 0, 0, 0, time.UTC)
		})
	return agg, cartStore, blobs
}

func validSubmitRequest() *SubmitRequest {
	return &SubmitRequest{
		Customer: model.Customer{
			FullName: "Nguyễn Văn An",
			Phone:    "0901234567",
			Email:    "an.nguyen@example.com",
		},
		Shipping: model.ShippingAddress{
			Address:  "12 Lý Thường Kiệt",
			Province: "hanoi",
			District: "hoankiem",
			Ward:     "hangbac",
		},
		ShippingMethod: model.ShippingStandard,
		PaymentMethod:  model.PaymentCOD,
	}
}

func TestAggregator_State(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	state, err := agg.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)

	// Empty -> Ready follows the cart live.
	require.NoError(t, cartStore.Add(ctx, 1, 1))
	state, err = agg.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)

	// And back when the cart empties again.
	require.NoError(t, cartStore.Clear(ctx))
	state, err = agg.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)
}

func TestAggregator_Quote_Standard(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, 1, 2))
	require.NoError(t, cartStore.Add(ctx, 2, 1))

	quote, err := agg.Quote(ctx, model.ShippingStandard)
	require.NoError(t, err)

	assert.Equal(t, int64(250000), quote.Subtotal)
	assert.Equal(t, int64(0), quote.Discount)
	assert.Equal(t, int64(0), quote.Shipping)
	assert.Equal(t, int64(250000), quote.Total)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, int64(200000), quote.Lines[0].LineTotal)
}

func TestAggregator_Quote_ExpressSurcharge(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	// Scenario: subtotal 250000 + express 50000 = 300000.
	require.NoError(t, cartStore.Add(ctx, 1, 2))
	require.NoError(t, cartStore.Add(ctx, 2, 1))

	quote, err := agg.Quote(ctx, model.ShippingExpress)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), quote.Subtotal)
	assert.Equal(t, int64(50000), quote.Shipping)
	assert.Equal(t, int64(300000), quote.Total)
}

func TestAggregator_Quote_SkipsUnresolvedLines(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, 1, 1))
	require.NoError(t, cartStore.Add(ctx, 99, 4))

	quote, err := agg.Quote(ctx, model.ShippingStandard)
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, int64(100000), quote.Subtotal)
}

func TestAggregator_Quote_RejectsUnknownMethod(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, 1, 1))

	_, err := agg.Quote(ctx, model.ShippingMethod("drone"))
	assert.ErrorIs(t, err, model.ErrInvalidShipping)
}

func TestAggregator_Submit_EmptyCart(t *testing.T) {
	agg, _, _ := testFixture(t)

	_, err := agg.Submit(context.Background(), validSubmitRequest())
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestAggregator_Submit_PlacesOrderAndClearsCart(t *testing.T) {
	agg, cartStore, blobs := testFixture(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, 1, 2))
	require.NoError(t, cartStore.Add(ctx, 2, 1))
	require.NoError(t, cartStore.SaveCouponCode(ctx, "GIAM10"))

	req := validSubmitRequest()
	req.ShippingMethod = model.ShippingExpress
	req.PaymentMethod = model.PaymentMomo

	order, err := agg.Submit(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Regexp(t, `^FURNI-\d{6}$`, order.Number)
	assert.Equal(t, model.ShippingExpress, order.ShippingMethod)
	assert.Equal(t, model.PaymentMomo, order.PaymentMethod)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "GIAM10", *order.CouponCode)

	// The cascade codes are resolved into the display address.
	assert.Equal(t, "12 Lý Thường Kiệt, Phường Hàng Bạc, Quận Hoàn Kiếm, Hà Nội", order.ShippingDisplay)

	// Item snapshots carry resolved name and price.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Sofa da Milano", order.Items[0].Name)
	assert.Equal(t, int64(100000), order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Totals are display strings; coupon recorded but discount zero.
	assert.Equal(t, "250.000₫", order.Totals.Subtotal)
	assert.Equal(t, "0₫", order.Totals.Discount)
	assert.Equal(t, "50.000₫", order.Totals.Shipping)
	assert.Equal(t, "300.000₫", order.Totals.Total)

	// The order is persisted as the most recent order.
	var stored model.Order
	ok, err := blobs.Get(ctx, blob.KeyLastOrder, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, order.Number, stored.Number)

	// The cart is cleared and checkout shows Empty on re-entry.
	lines, err := cartStore.Lines(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	fresh := NewAggregator(cartStore, &stubResolver{}, blobs, testCheckoutConfig, zerolog.Nop())
	state, err := fresh.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)
}

func TestAggregator_Submit_IsOneWay(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, 1, 1))

	_, err := agg.Submit(ctx, validSubmitRequest())
	require.NoError(t, err)

	state, err := agg.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, state)

	_, err = agg.Submit(ctx, validSubmitRequest())
	assert.ErrorIs(t, err, model.ErrOrderSubmitted)
}

func TestAggregator_Submit_OverwritesPreviousOrder(t *testing.T) {
	_, cartStore, blobs := testFixture(t)
	ctx := context.Background()

	resolver := &stubResolver{products: map[int64]model.Product{
		1: {ID: 1, Name: "Sofa", Price: 100000},
	}}

	require.NoError(t, cartStore.Add(ctx, 1, 1))
	first, err := NewAggregator(cartStore, resolver, blobs, testCheckoutConfig, zerolog.Nop()).
		Submit(ctx, validSubmitRequest())
	require.NoError(t, err)

	require.NoError(t, cartStore.Add(ctx, 1, 2))
	second, err := NewAggregator(cartStore, resolver, blobs, testCheckoutConfig, zerolog.Nop()).
		Submit(ctx, validSubmitRequest())
	require.NoError(t, err)

	var stored model.Order
	ok, err := blobs.Get(ctx, blob.KeyLastOrder, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.ID, stored.ID)
	assert.NotEqual(t, first.ID, stored.ID)
}

func TestAggregator_Submit_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *SubmitRequest)
		wantCode string
	}{
		{
			name:     "missing fullname",
			mutate:   func(req *SubmitRequest) { req.Customer.FullName = " " },
			wantCode: model.ErrCodeMissingField,
		},
		{
			name:     "missing phone",
			mutate:   func(req *SubmitRequest) { req.Customer.Phone = "" },
			wantCode: model.ErrCodeMissingField,
		},
		{
			name:     "missing address",
			mutate:   func(req *SubmitRequest) { req.Shipping.Address = "" },
			wantCode: model.ErrCodeMissingField,
		},
		{
			name:     "missing ward",
			mutate:   func(req *SubmitRequest) { req.Shipping.Ward = "" },
			wantCode: model.ErrCodeMissingField,
		},
		{
			name:     "bad shipping method",
			mutate:   func(req *SubmitRequest) { req.ShippingMethod = "pigeon" },
			wantCode: model.ErrCodeInvalidShipping,
		},
		{
			name:     "bad payment method",
			mutate:   func(req *SubmitRequest) { req.PaymentMethod = "barter" },
			wantCode: model.ErrCodeInvalidPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, cartStore, _ := testFixture(t)
			ctx := context.Background()
			require.NoError(t, cartStore.Add(ctx, 1, 1))

			req := validSubmitRequest()
			tt.mutate(req)

			_, err := agg.Submit(ctx, req)
			require.Error(t, err)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)

			// A rejected submission leaves the cart untouched.
			count, err := cartStore.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestAggregator_Submit_DeliveryWindowMatchesMethod(t *testing.T) {
	agg, cartStore, _ := testFixture(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, 1, 1))

	req := validSubmitRequest()
	req.ShippingMethod = model.ShippingExpress

	order, err := agg.Submit(ctx, req)
	require.NoError(t, err)

	// Clock is pinned to Wednesday 2026-01-07: start Thursday 8th, end
	// Saturday 10th.
	assert.Equal(t, 8, order.EstimatedDelivery.From.Day())
	assert.Equal(t, 10, order.EstimatedDelivery.To.Day())
}
