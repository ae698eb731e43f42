package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store on the local filesystem. Files are written
// under a single directory and referenced by "<publicPrefix>/<key>" paths,
// which the server exposes as a static route.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore creates a LocalStore writing into dir. References are
// composed with publicPrefix, e.g. "/files".
func NewLocalStore(dir, publicPrefix string) *LocalStore {
	return &LocalStore{
		dir:          dir,
		publicPrefix: publicPrefix,
	}
}

// Write stores content at <dir>/<key> and returns the public reference.
// The key is flattened to its base name so callers cannot escape the
// storage directory.
func (s *LocalStore) Write(ctx context.Context, key string, content []byte) (string, error) {
	name := filepath.Base(filepath.Clean(key))
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", name, err)
	}

	return s.publicPrefix + "/" + name, nil
}
