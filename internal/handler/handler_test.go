package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sort"
	"testing"

	"furnistore/internal/blob"
	"furnistore/internal/catalog"
	"furnistore/internal/config"
	"furnistore/internal/middleware"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubCatalog serves the backend catalogue from fixed tables.
type stubCatalog struct {
	products   map[int64]model.Product
	categories []model.Category
}

func (s *stubCatalog) Product(_ context.Context, id int64) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *stubCatalog) Products(_ context.Context, filters catalog.Filters) (*catalog.ProductPage, error) {
	var results []model.Product
	for _, p := range s.products {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return &catalog.ProductPage{Results: results, Count: len(results)}, nil
}

func (s *stubCatalog) Categories(context.Context) ([]model.Category, error) {
	return s.categories, nil
}

// fixture runs the full handler stack behind a test server. The client
// carries a cookie jar so the session cookie behaves like a browser's.
type fixture struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	blobs  blob.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := &stubCatalog{
		products: map[int64]model.Product{
			1: {ID: 1, Name: "Sofa da Milano", Price: 100000, Image: "/images/sofa.jpg", Category: "sofa"},
			2: {ID: 2, Name: "Kệ tivi gỗ", Price: 50000, Image: "/images/ke-tivi.jpg", Category: "ke"},
		},
		categories: []model.Category{
			{ID: 1, Name: "Sofa", Slug: "sofa"},
			{ID: 2, Name: "Kệ", Slug: "ke"},
		},
	}
	clients := func(blob.Store) catalog.Client { return backend }
	resolvers := func(blob.Store) catalog.Resolver {
		return catalog.NewResolver(backend, nil, zerolog.Nop())
	}
	return newFixtureWith(t, clients, resolvers)
}

// newFixtureWith builds the stack around the given per-session catalogue
// factories.
func newFixtureWith(t *testing.T, clients ClientFactory, resolvers ResolverFactory) *fixture {
	t.Helper()

	blobs := blob.NewMemoryStore()
	logger := zerolog.Nop()
	cfg := config.CheckoutConfig{ExpressFee: 50000, OrderPrefix: "FURNI-"}

	mux := http.NewServeMux()
	cartHandler := NewCartHandler(blobs, resolvers, logger)
	checkoutHandler := NewCheckoutHandler(blobs, resolvers, cfg, logger)
	orderHandler := NewOrderHandler(blobs, logger)
	viewedHandler := NewViewedHandler(blobs, logger)
	addressHandler := NewAddressHandler(logger)
	catalogHandler := NewCatalogHandler(blobs, clients, resolvers, logger)

	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("POST /api/cart/items", cartHandler.Add)
	mux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.Remove)
	mux.HandleFunc("GET /api/cart/total", cartHandler.Total)
	mux.HandleFunc("GET /api/cart/coupon", cartHandler.GetCoupon)
	mux.HandleFunc("POST /api/cart/coupon", cartHandler.SaveCoupon)
	mux.HandleFunc("GET /api/checkout/quote", checkoutHandler.Quote)
	mux.HandleFunc("POST /api/checkout", checkoutHandler.Submit)
	mux.HandleFunc("GET /api/orders/last", orderHandler.Last)
	mux.HandleFunc("POST /api/viewed", viewedHandler.Record)
	mux.HandleFunc("GET /api/viewed", viewedHandler.List)
	mux.HandleFunc("GET /api/products", catalogHandler.List)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.Get)
	mux.HandleFunc("GET /api/categories", catalogHandler.Categories)
	mux.HandleFunc("GET /api/addresses/provinces", addressHandler.Provinces)
	mux.HandleFunc("GET /api/addresses/provinces/{code}/districts", addressHandler.Districts)
	mux.HandleFunc("GET /api/addresses/districts/{code}/wards", addressHandler.Wards)

	server := httptest.NewServer(middleware.Session(logger)(mux))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &fixture{
		t:      t,
		server: server,
		client: &http.Client{Jar: jar},
		blobs:  blobs,
	}
}

// sessionID returns the session id the server set for this fixture's
// client, making one request first if no cookie exists yet.
func (f *fixture) sessionID() string {
	f.t.Helper()
	f.get("/api/cart", nil)
	u, err := url.Parse(f.server.URL)
	require.NoError(f.t, err)
	for _, c := range f.client.Jar.Cookies(u) {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	f.t.Fatal("no session cookie set")
	return ""
}

// do issues a request and decodes the JSON response into out when out is
// non-nil.
func (f *fixture) do(method, path string, body, out any) *http.Response {
	f.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(f.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	require.NoError(f.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(f.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (f *fixture) get(path string, out any) *http.Response {
	return f.do(http.MethodGet, path, nil, out)
}

func (f *fixture) post(path string, body, out any) *http.Response {
	return f.do(http.MethodPost, path, body, out)
}

func (f *fixture) put(path string, body, out any) *http.Response {
	return f.do(http.MethodPut, path, body, out)
}

func (f *fixture) delete(path string, out any) *http.Response {
	return f.do(http.MethodDelete, path, nil, out)
}
