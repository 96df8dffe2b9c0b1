// Package catalog is the product lookup collaborator: a client for the
// backend catalogue API plus a static sample catalogue used when the API
// cannot be reached. Resolution is two-tier: one primary attempt against
// the API, one fallback attempt against the sample data, then the product
// is treated as unresolved. There are no retries beyond that.
package catalog

import (
	"context"

	"furnistore/internal/model"
)

// Filters narrows a product listing request.
type Filters struct {
	Category string
	Search   string
	Ordering string
	Page     int
	PageSize int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Results []model.Product `json:"results"`
	Count   int             `json:"count"`
}

// Client reads the backend catalogue API.
type Client interface {
	// Product fetches a single product. Returns (nil, nil) when the
	// backend reports not-found.
	Product(ctx context.Context, id int64) (*model.Product, error)

	// Products fetches a filtered product listing.
	Products(ctx context.Context, filters Filters) (*ProductPage, error)

	// Categories fetches all product categories.
	Categories(ctx context.Context) ([]model.Category, error)
}

// Resolver resolves a product id to its current attributes. Returns
// (nil, nil) when the product cannot be resolved anywhere; callers skip
// such products rather than failing.
type Resolver interface {
	Resolve(ctx context.Context, id int64) (*model.Product, error)
}
