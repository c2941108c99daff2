package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/utils/safe"
)

// LocalStore persists attachment payloads under a fixed media directory.
// Writes go to a uuid-suffixed temp file and are renamed into place, so
// concurrent saves of the same basename never interleave partial content;
// the last rename wins.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir. The directory is created on
// first save, not here, so construction never touches the filesystem.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Dir returns the media directory path.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes the payload under the given name and returns the final path.
// The name is reduced to its basename: upstream-supplied names must not
// escape the media directory.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create media directory", goerr.V("dir", s.dir))
	}

	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) {
		return "", goerr.New("invalid attachment name", goerr.V("name", name))
	}

	tmpPath := filepath.Join(s.dir, "."+base+"."+uuid.NewString()+".tmp")
	f, err := os.Create(tmpPath) // #nosec G304 - path is confined to the media directory
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temp file", goerr.V("path", tmpPath))
	}

	if _, err := io.Copy(f, r); err != nil {
		safe.Close(ctx, f)
		removeTemp(tmpPath)
		return "", goerr.Wrap(err, "failed to write attachment", goerr.V("path", tmpPath))
	}
	if err := f.Close(); err != nil {
		removeTemp(tmpPath)
		return "", goerr.Wrap(err, "failed to flush attachment", goerr.V("path", tmpPath))
	}

	finalPath := filepath.Join(s.dir, base)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		removeTemp(tmpPath)
		return "", goerr.Wrap(err, "failed to finalize attachment", goerr.V("path", finalPath))
	}

	return finalPath, nil
}

// removeTemp is best effort: a stray temp file is harmless but noisy.
func removeTemp(path string) {
	_ = os.Remove(path)
}
