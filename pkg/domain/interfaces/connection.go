package interfaces

import "context"

// ConnectionStore tracks whether any OAuth exchange has ever succeeded.
// The current semantics are process-wide and sticky: the flag only ever
// transitions false to true. The interface is deliberately narrow so that a
// session- or installation-keyed store can replace the in-memory backend
// without touching callers.
type ConnectionStore interface {
	IsConnected(ctx context.Context) bool
	MarkConnected(ctx context.Context)
}
