package handler

import (
	"net/http"
	"strconv"

	"furnistore/internal/blob"
	"furnistore/internal/catalog"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// CatalogHandler passes product listings and categories through to the
// backend catalogue, with the session's token attached. Single-product
// lookups go through the resolver so the sample fallback applies.
type CatalogHandler struct {
	blobs     blob.Store
	clients   ClientFactory
	resolvers ResolverFactory
	logger    zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(blobs blob.Store, clients ClientFactory, resolvers ResolverFactory, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		blobs:     blobs,
		clients:   clients,
		resolvers: resolvers,
		logger:    logger.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /api/products with the listing pages' filter params.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := catalog.Filters{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid page parameter", h.logger)
			return
		}
		filters.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid page_size parameter", h.logger)
			return
		}
		filters.PageSize = n
	}

	client := h.clients(sessionBlobs(r, h.blobs))
	page, err := client.Products(r.Context(), filters)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /api/products/{id}. Resolution is two-tier, so a product
// the backend cannot serve may still come from the sample catalogue.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product id", h.logger)
		return
	}

	resolver := h.resolvers(sessionBlobs(r, h.blobs))
	product, err := resolver.Resolve(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if product == nil {
		writeDomainError(w, r, model.ErrProductNotFound, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	client := h.clients(sessionBlobs(r, h.blobs))
	categories, err := client.Categories(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
