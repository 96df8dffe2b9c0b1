// Package cart implements the shopping cart store. The store owns the only
// mutable reference to the cart; readers get copies. Every mutation
// persists the whole cart synchronously before returning and then notifies
// the badge listeners with the new item count.
package cart

import (
	"context"
	"fmt"
	"sync"

	"furnistore/internal/blob"
	"furnistore/internal/catalog"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// Store holds one session's cart.
type Store struct {
	blobs  blob.Store
	logger zerolog.Logger

	mu        sync.Mutex
	listeners []func(count int)
}

// New creates a cart store over the session's blob store.
func New(blobs blob.Store, logger zerolog.Logger) *Store {
	return &Store{
		blobs:  blobs,
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// load reads the persisted cart. An absent or corrupt blob yields an empty
// cart.
func (s *Store) load(ctx context.Context) (model.Cart, error) {
	var cart model.Cart
	ok, err := s.blobs.Get(ctx, blob.KeyCart, &cart)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !ok {
		return model.Cart{}, nil
	}
	return cart, nil
}

// persist writes the full cart in one blob write, then notifies badge
// listeners.
func (s *Store) persist(ctx context.Context, cart model.Cart) error {
	if err := s.blobs.Set(ctx, blob.KeyCart, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.notify(cart.Count())
	return nil
}

// OnBadgeChange registers a listener invoked with the total item count
// after every successful mutation. This is how quantity badges stay in
// sync with the store.
func (s *Store) OnBadgeChange(fn func(count int)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify(count int) {
	s.mu.Lock()
	listeners := make([]func(int), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(count)
	}
}

// Lines returns a copy of the cart's ordered lines.
func (s *Store) Lines(ctx context.Context) (model.Cart, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(model.Cart, len(cart))
	copy(out, cart)
	return out, nil
}

// Count returns the sum of all line quantities.
func (s *Store) Count(ctx context.Context) (int, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}

// Add puts quantity units of a product into the cart. Re-adding a product
// already present increments its line instead of appending a duplicate, so
// product ids stay unique and insertion order is preserved.
func (s *Store) Add(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		s.logger.Warn().
			Int64("product_id", productID).
			Int("quantity", quantity).
			Msg("rejected add with non-positive quantity")
		return model.ErrInvalidQuantity
	}

	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	if i := cart.Find(productID); i >= 0 {
		cart[i].Quantity += quantity
	} else {
		cart = append(cart, model.CartLine{ProductID: productID, Quantity: quantity})
	}

	if err := s.persist(ctx, cart); err != nil {
		return err
	}

	s.logger.Debug().
		Int64("product_id", productID).
		Int("quantity", quantity).
		Int("cart_count", cart.Count()).
		Msg("product added to cart")

	return nil
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line. Setting the quantity of a product that is not in the
// cart is a no-op: the quantity controls can race against a removal
// elsewhere on the page, and treating that as an error would surface
// spurious failures.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := cart.Find(productID)
	if i < 0 {
		s.logger.Debug().
			Int64("product_id", productID).
			Msg("set quantity for product not in cart, ignoring")
		return nil
	}

	cart[i].Quantity = quantity
	return s.persist(ctx, cart)
}

// Remove deletes a product's line from the cart. Removing an absent
// product is a no-op.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := cart.Find(productID)
	if i < 0 {
		return nil
	}

	cart = append(cart[:i], cart[i+1:]...)
	return s.persist(ctx, cart)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.persist(ctx, model.Cart{}); err != nil {
		return err
	}
	s.logger.Debug().Msg("cart cleared")
	return nil
}

// Total computes the cart total at current catalogue prices. Prices are
// never cached on the lines: a price change between add-to-cart and
// checkout is reflected, not locked in. Lines whose product cannot be
// resolved are skipped, not counted as zero and not fatal.
func (s *Store) Total(ctx context.Context, resolver catalog.Resolver) (int64, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, line := range cart {
		product, err := resolver.Resolve(ctx, line.ProductID)
		if err != nil {
			return 0, err
		}
		if product == nil {
			s.logger.Warn().
				Int64("product_id", line.ProductID).
				Msg("skipping unresolved product in cart total")
			continue
		}
		total += product.Price * int64(line.Quantity)
	}

	return total, nil
}

// SaveCouponCode stores the entered coupon code. The code is recorded on
// the order at checkout but is not applied to the totals.
func (s *Store) SaveCouponCode(ctx context.Context, code string) error {
	if err := s.blobs.Set(ctx, blob.KeyCouponCode, code); err != nil {
		return fmt.Errorf("failed to store coupon code: %w", err)
	}
	return nil
}

// CouponCode returns the stored coupon code, or "" when none is stored.
func (s *Store) CouponCode(ctx context.Context) (string, error) {
	var code string
	ok, err := s.blobs.Get(ctx, blob.KeyCouponCode, &code)
	if err != nil {
		return "", fmt.Errorf("failed to read coupon code: %w", err)
	}
	if !ok {
		return "", nil
	}
	return code, nil
}

// ClearCouponCode removes the stored coupon code.
func (s *Store) ClearCouponCode(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, blob.KeyCouponCode); err != nil {
		return fmt.Errorf("failed to clear coupon code: %w", err)
	}
	return nil
}
