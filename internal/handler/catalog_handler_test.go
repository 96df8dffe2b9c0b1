package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"furnistore/internal/auth"
	"furnistore/internal/blob"
	"furnistore/internal/catalog"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_List(t *testing.T) {
	f := newFixture(t)

	var page catalog.ProductPage
	res := f.get("/api/products", &page)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Sofa da Milano", page.Results[0].Name)
}

func TestCatalogHandler_ListFiltersByCategory(t *testing.T) {
	f := newFixture(t)

	var page catalog.ProductPage
	f.get("/api/products?category=sofa", &page)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(1), page.Results[0].ID)
}

func TestCatalogHandler_ListRejectsBadPage(t *testing.T) {
	f := newFixture(t)

	res := f.get("/api/products?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCatalogHandler_Get(t *testing.T) {
	f := newFixture(t)

	var p model.Product
	res := f.get("/api/products/1", &p)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Sofa da Milano", p.Name)
}

func TestCatalogHandler_GetUnknownProduct(t *testing.T) {
	f := newFixture(t)

	var errResp model.ErrorResponse
	res := f.get("/api/products/999", &errResp)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, model.ErrCodeProductNotFound, errResp.Error)
}

func TestCatalogHandler_Categories(t *testing.T) {
	f := newFixture(t)

	var categories []model.Category
	res := f.get("/api/categories", &categories)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, categories, 2)
	assert.Equal(t, "sofa", categories[0].Slug)
}

// newTokenFixture runs the stack against a real catalogue HTTP client and
// a per-session token source, both pointed at the given backend.
func newTokenFixture(t *testing.T, backend *httptest.Server) *fixture {
	t.Helper()
	clients := func(session blob.Store) catalog.Client {
		tokens := auth.NewSession(session, backend.URL, backend.Client(), zerolog.Nop())
		return catalog.NewHTTPClient(backend.URL, backend.Client(), tokens, zerolog.Nop())
	}
	resolvers := func(session blob.Store) catalog.Resolver {
		return catalog.NewResolver(clients(session), nil, zerolog.Nop())
	}
	return newFixtureWith(t, clients, resolvers)
}

func (f *fixture) seedToken(key, value string) {
	f.t.Helper()
	id := f.sessionID()
	err := f.blobs.Set(context.Background(), "sess:"+id+":"+key, value)
	require.NoError(f.t, err)
}

func TestCatalogCalls_CarrySessionToken(t *testing.T) {
	var authHeader string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.Product{ID: 1, Name: "Sofa da Milano", Price: 100000})
	}))
	defer backend.Close()

	f := newTokenFixture(t, backend)
	f.seedToken(blob.KeyAccessToken, "access-1")
	f.post("/api/cart/items", map[string]any{"productId": 1, "quantity": 2}, nil)

	var total totalResponse
	res := f.get("/api/cart/total", &total)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(200000), total.Total)
	assert.Equal(t, "Bearer access-1", authHeader)
}

func TestCatalogCalls_ExpiredSessionRedirectsToLogin(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Both the catalogue call and the token refresh are rejected.
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	f := newTokenFixture(t, backend)
	f.seedToken(blob.KeyAccessToken, "stale")
	f.seedToken(blob.KeyRefreshToken, "dead")
	f.post("/api/cart/items", map[string]any{"productId": 1, "quantity": 1}, nil)

	var errResp model.ErrorResponse
	res := f.get("/api/cart/total", &errResp)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, model.ErrCodeSessionExpired, errResp.Error)
	assert.Equal(t, "/login.html?next=%2Fapi%2Fcart%2Ftotal", errResp.Redirect)

	// The failed refresh cleared the stored credentials.
	id := f.sessionID()
	var token string
	ok, err := f.blobs.Get(context.Background(), "sess:"+id+":"+blob.KeyAccessToken, &token)
	require.NoError(t, err)
	assert.False(t, ok)
}
