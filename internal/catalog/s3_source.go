package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"furnistore/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Source reads the sample catalogue JSON from an S3 object, so the
// fallback data can be updated without redeploying.
type s3Source struct {
	client *s3.Client
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Source creates an S3-based sample catalogue source.
func NewS3Source(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Source, error) {
	logger = logger.With().Str("component", "sample-s3-source").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("key", key).
		Str("region", region).
		Msg("S3 sample source initialised")

	return &s3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
		logger: logger,
	}, nil
}

// Load fetches and decodes the sample catalogue object.
func (s *s3Source) Load(ctx context.Context) ([]model.Product, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to get sample catalog from S3")
		return nil, fmt.Errorf("failed to get sample catalog from S3 (bucket=%s, key=%s): %w", s.bucket, s.key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample catalog from S3: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode sample catalog from S3: %w", err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Int("products", len(products)).
		Msg("sample catalog loaded from S3")

	return products, nil
}

// fallbackSource tries S3 first, then the local file. If the S3 source is
// nil it only uses the file source.
type fallbackSource struct {
	s3Source   Source
	fileSource Source
	logger     zerolog.Logger
}

// NewFallbackSource creates a source that tries S3 first, then falls back
// to the local file system.
func NewFallbackSource(s3Src, fileSrc Source, logger zerolog.Logger) Source {
	return &fallbackSource{
		s3Source:   s3Src,
		fileSource: fileSrc,
		logger:     logger.With().Str("component", "sample-fallback-source").Logger(),
	}
}

// Load attempts the S3 source, falling back to the local file on failure.
func (s *fallbackSource) Load(ctx context.Context) ([]model.Product, error) {
	if s.s3Source != nil {
		products, err := s.s3Source.Load(ctx)
		if err == nil {
			return products, nil
		}
		s.logger.Warn().
			Err(err).
			Msg("failed to load sample catalog from S3, falling back to local file")
	}

	return s.fileSource.Load(ctx)
}
