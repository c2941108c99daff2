package memory

import (
	"context"
	"sync/atomic"
)

// ConnectionStore is the in-memory, process-lifetime implementation of
// interfaces.ConnectionStore. The flag only ever transitions false to true,
// so a single atomic write is enough: there is no read-modify-write race to
// guard against.
type ConnectionStore struct {
	connected atomic.Bool
}

// NewConnectionStore creates a store with the flag unset.
func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{}
}

// IsConnected reports whether any exchange has succeeded in this process.
func (s *ConnectionStore) IsConnected(_ context.Context) bool {
	return s.connected.Load()
}

// MarkConnected sets the flag. It is never cleared; a failed exchange after
// a successful one does not revert it.
func (s *ConnectionStore) MarkConnected(_ context.Context) {
	s.connected.Store(true)
}
