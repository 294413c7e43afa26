// Package wire implements the polymorphic write/read dispatch engine
// (spec.md §4.3, §4.4): the part of the codec that, given an arbitrary Go
// value, picks the matching tagged encoding and appends it to a byte
// buffer, and the inverse operation that reconstructs a value from a tag
// byte and its payload.
//
// It is grounded on the teacher's (arloliu/mebo) columnar encoder/decoder
// pair in the deleted encoding/ti package: a Writer that owns a growable
// buffer and a set of per-variant Write* methods, paired with a Reader
// that owns a read cursor and a set of per-variant Read* methods, each
// driven by a leading tag/flag byte. The variant set and size-class
// machinery here is new (dictated by SPEC_FULL.md §3), but the writer/
// reader split and the "append to owned buffer, advance owned cursor"
// idiom is the teacher's.
package wire

import (
	"fmt"

	"github.com/mtlynch/friz/internal/buf"
)

// maxDepth bounds recursive Freeze/Thaw nesting. The format has no cycle
// detection of its own (spec.md §9 "Cyclic values"); this is the
// "SHOULD detect excessive nesting depth" mitigation.
const maxDepth = 1000

// Writer accumulates the polymorphic encoding of a sequence of values. It
// satisfies registry.Sink structurally.
type Writer struct {
	out   *buf.Scratch
	depth int
}

// NewWriter returns a Writer with a scratch buffer sized for a top-level
// Freeze call (spec.md §5 buffer policy).
func NewWriter() *Writer {
	return &Writer{out: buf.New(buf.TopLevelCapacity)}
}

// newNestedWriter returns a Writer sharing depth accounting with parent,
// used for uncounted-collection buffering (spec.md §4.3 rule 2) so the
// nested traversal's depth still counts against maxDepth.
func newNestedWriter(parent *Writer, capacity int) *Writer {
	return &Writer{out: buf.New(capacity), depth: parent.depth}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.out.Bytes()
}

// WriteRaw appends p verbatim. Part of the registry.Sink interface.
func (w *Writer) WriteRaw(p []byte) {
	w.out.Write(p)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.out.WriteByte(b)
}

// Freeze dispatches v to its tagged encoding (spec.md §4.3). It is the
// method every recursive call point — collection elements, map
// keys/values, metadata, custom-type payloads — goes through, so the
// dispatch rules apply uniformly everywhere a value appears.
func (w *Writer) Freeze(v any) error {
	w.depth++
	defer func() { w.depth-- }()

	if w.depth > maxDepth {
		return fmt.Errorf("wire: nesting depth exceeds %d, possible cyclic value", maxDepth)
	}

	if meta, raw, ok := extractMeta(v); ok {
		return w.freezeWithMeta(meta, raw)
	}

	if ok, err := w.freezeConcrete(v); ok {
		return err
	}

	return w.freezeFallback(v)
}
