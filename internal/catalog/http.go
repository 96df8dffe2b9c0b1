package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"furnistore/internal/auth"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// httpClient implements Client against the backend REST API.
type httpClient struct {
	baseURL string
	client  *http.Client
	tokens  auth.TokenSource
	logger  zerolog.Logger
}

// NewHTTPClient creates a catalogue client for the backend API at baseURL.
// tokens may be nil for a fully anonymous client.
func NewHTTPClient(baseURL string, client *http.Client, tokens auth.TokenSource, logger zerolog.Logger) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger.With().Str("component", "catalog-client").Logger(),
	}
}

// get performs one GET, attaching the bearer token when present. On a 401
// it makes a single refresh attempt and retries once.
func (c *httpClient) get(ctx context.Context, path string) ([]byte, int, error) {
	token := ""
	if c.tokens != nil {
		var err error
		token, err = c.tokens.Token(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("failed to read session token, proceeding anonymously")
			token = ""
		}
	}

	status, body, err := c.doGet(ctx, path, token)
	if err != nil {
		return nil, 0, err
	}

	if status == http.StatusUnauthorized && c.tokens != nil && token != "" {
		refreshed, refreshErr := c.tokens.Refresh(ctx)
		if refreshErr != nil {
			return nil, 0, refreshErr
		}
		status, body, err = c.doGet(ctx, path, refreshed)
		if err != nil {
			return nil, 0, err
		}
	}

	return body, status, nil
}

func (c *httpClient) doGet(ctx context.Context, path, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// Product fetches a single product by id.
func (c *httpClient) Product(ctx context.Context, id int64) (*model.Product, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/products/products/%d/", id))
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		c.logger.Debug().Int64("product_id", id).Msg("product not found in catalog")
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for product %d", status, id)
	}

	var p model.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product %d: %w", id, err)
	}
	return &p, nil
}

// Products fetches a filtered listing. The backend answers either a
// paginated {results, count} envelope or a bare array; both are accepted.
func (c *httpClient) Products(ctx context.Context, filters Filters) (*ProductPage, error) {
	q := url.Values{}
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Ordering != "" {
		q.Set("ordering", filters.Ordering)
	}
	if filters.Page > 0 {
		q.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(filters.PageSize))
	}

	path := "/products/products/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	body, status, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for product listing", status)
	}

	var page ProductPage
	if err := json.Unmarshal(body, &page); err == nil && page.Results != nil {
		return &page, nil
	}

	var bare []model.Product
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to decode product listing: %w", err)
	}
	return &ProductPage{Results: bare, Count: len(bare)}, nil
}

// Categories fetches all product categories.
func (c *httpClient) Categories(ctx context.Context) ([]model.Category, error) {
	body, status, err := c.get(ctx, "/products/categories/")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for categories", status)
	}

	var categories []model.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}
