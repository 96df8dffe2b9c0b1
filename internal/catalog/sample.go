package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// Source loads the sample catalogue data from somewhere.
type Source interface {
	Load(ctx context.Context) ([]model.Product, error)
}

// fileSource reads the sample catalogue from a local JSON file.
type fileSource struct {
	path   string
	logger zerolog.Logger
}

// NewFileSource creates a file-based sample catalogue source.
func NewFileSource(path string, logger zerolog.Logger) Source {
	return &fileSource{
		path:   path,
		logger: logger.With().Str("component", "sample-file-source").Logger(),
	}
}

// Load reads and decodes the sample catalogue file.
func (s *fileSource) Load(_ context.Context) ([]model.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample catalog %s: %w", s.path, err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode sample catalog %s: %w", s.path, err)
	}

	s.logger.Info().
		Str("file", s.path).
		Int("products", len(products)).
		Msg("sample catalog loaded")

	return products, nil
}

// Sample is the static fallback catalogue, indexed by product id. It is
// read-only after construction.
type Sample struct {
	products map[int64]model.Product
}

// NewSample loads the sample catalogue from the given source.
func NewSample(ctx context.Context, source Source) (*Sample, error) {
	products, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &Sample{products: byID}, nil
}

// Product returns the sample entry for id, or nil when the id is absent
// from the sample data too.
func (s *Sample) Product(id int64) *model.Product {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return &p
}

// Len returns the number of sample products.
func (s *Sample) Len() int {
	return len(s.products)
}
