package registry

import "sync/atomic"

var current atomic.Pointer[state]

func init() {
	current.Store(newState())
}

// Load returns the current registry snapshot. Safe for concurrent use
// while another goroutine calls Store (spec.md §5).
func Load() *state {
	return current.Load()
}

// Store atomically replaces the registry snapshot.
func Store(s *state) {
	current.Store(s)
}

// Reset discards all custom-type registrations. Exposed for tests that
// need isolation from the process-wide default.
func Reset() {
	current.Store(newState())
}
