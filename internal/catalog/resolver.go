package catalog

import (
	"context"
	"errors"

	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// resolver implements the two-tier resolution strategy: the live catalogue
// first, the static sample second, unresolved last.
type resolver struct {
	client Client
	sample *Sample
	logger zerolog.Logger
}

// NewResolver creates a resolver over the live client and the sample
// catalogue. Either may be nil, in which case that tier is skipped.
func NewResolver(client Client, sample *Sample, logger zerolog.Logger) Resolver {
	return &resolver{
		client: client,
		sample: sample,
		logger: logger.With().Str("component", "catalog-resolver").Logger(),
	}
}

// Resolve looks the product up in the live catalogue, then the sample
// catalogue. A session-expiry error from the live tier is propagated so
// the caller can redirect to login; any other failure just moves on to the
// fallback. Returns (nil, nil) when both tiers miss.
func (r *resolver) Resolve(ctx context.Context, id int64) (*model.Product, error) {
	if r.client != nil {
		p, err := r.client.Product(ctx, id)
		if err == nil && p != nil {
			return p, nil
		}
		if err != nil {
			var domainErr *model.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeSessionExpired {
				return nil, err
			}
			r.logger.Warn().
				Int64("product_id", id).
				Err(err).
				Msg("live catalog lookup failed, trying sample catalog")
		}
	}

	if r.sample != nil {
		if p := r.sample.Product(id); p != nil {
			r.logger.Debug().Int64("product_id", id).Msg("product resolved from sample catalog")
			return p, nil
		}
	}

	r.logger.Debug().Int64("product_id", id).Msg("product unresolved")
	return nil, nil
}
