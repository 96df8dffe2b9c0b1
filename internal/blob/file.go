package blob

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore persists each blob as one JSON file under a directory. It is
// the default backend: durable across restarts with no external service,
// the closest analogue to the browser's local storage.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed blob store rooted at dir. The
// directory is created if it does not exist.
func NewFileStore(dir string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %s: %w", dir, err)
	}
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "blob-file").Logger(),
	}, nil
}

// path maps a key to a file name. Keys contain session prefixes with ':'
// separators, so they are encoded rather than used as raw path elements.
func (s *fileStore) path(key string) string {
	name := base64.URLEncoding.EncodeToString([]byte(key))
	return filepath.Join(s.dir, name+".json")
}

func (s *fileStore) Get(_ context.Context, key string, into any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read blob %s: %w", key, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warn().
			Str("key", key).
			Err(err).
			Msg("stored blob is corrupt, treating as absent")
		return false, nil
	}

	return true, nil
}

func (s *fileStore) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal blob %s: %w", key, err)
	}

	// Write to a temp file in the same directory, then rename over the
	// final path. Readers never observe a half-written blob.
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".blob-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for blob %s: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close blob %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store blob %s: %w", key, err)
	}

	return nil
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
