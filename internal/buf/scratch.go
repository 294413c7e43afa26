// Package buf provides the growable scratch buffer used by the writer side
// of the codec.
//
// It is adapted from the teacher's internal/pool.ByteBuffer (arloliu/mebo)
// but deliberately drops the sync.Pool layer: spec.md §5 ("Buffer policy")
// requires fresh, unpooled buffers with fixed initial capacities — 64 bytes
// for the top-level freeze call, 32 bytes for uncounted-collection scratch
// (spec.md §4.3 rule 2) — so pooling them would violate the spec's resource
// model rather than merely waste memory.
package buf

// TopLevelCapacity is the initial capacity of the scratch buffer used by a
// top-level Freeze call (spec.md §5).
const TopLevelCapacity = 64

// UncountedCapacity is the initial capacity of the scratch buffer used to
// buffer an uncounted (lazy) collection's items while counting them
// (spec.md §4.3 rule 2, §5).
const UncountedCapacity = 32

// Scratch is a growable byte buffer. Unlike the teacher's pooled
// ByteBuffer, a Scratch is owned by a single call and discarded when that
// call returns.
type Scratch struct {
	b []byte
}

// New allocates a Scratch with the given initial capacity.
func New(capacity int) *Scratch {
	return &Scratch{b: make([]byte, 0, capacity)}
}

// Bytes returns the buffer's contents. The returned slice is only valid
// until the next Write call.
func (s *Scratch) Bytes() []byte {
	return s.b
}

// Len returns the number of bytes written so far.
func (s *Scratch) Len() int {
	return len(s.b)
}

// Write appends data, growing the buffer if necessary.
func (s *Scratch) Write(data []byte) {
	s.b = append(s.b, data...)
}

// WriteByte appends a single byte.
func (s *Scratch) WriteByte(b byte) {
	s.b = append(s.b, b)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating, using the teacher's amortized growth strategy: double the
// default increment for small buffers, 25% of current capacity for large
// ones, never less than what's actually required.
func (s *Scratch) Grow(requiredBytes int) {
	available := cap(s.b) - len(s.b)
	if available >= requiredBytes {
		return
	}

	growBy := max(cap(s.b)/4, requiredBytes, TopLevelCapacity)

	newBuf := make([]byte, len(s.b), len(s.b)+growBy)
	copy(newBuf, s.b)
	s.b = newBuf
}
