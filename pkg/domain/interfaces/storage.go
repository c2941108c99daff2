package interfaces

import (
	"context"
	"io"
)

// FileStore persists downloaded attachment payloads. Save returns the final
// path of the stored file. Implementations must tolerate concurrent saves of
// the same name.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
