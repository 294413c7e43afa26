package wire

import (
	"fmt"

	"github.com/mtlynch/friz/errs"
	"github.com/mtlynch/friz/format"
)

// Reader consumes a polymorphic encoding produced by Writer. It satisfies
// registry.Source structurally.
type Reader struct {
	data  []byte
	pos   int
	depth int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining reports how many unread bytes remain.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadRaw consumes and returns exactly n raw bytes. Part of the
// registry.Source interface.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("wire: need %d bytes, have %d", n, r.Remaining())
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n

	return out, nil
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.ReadRaw(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) peekTag() (format.Tag, error) {
	if r.Remaining() < 1 {
		return 0, fmt.Errorf("wire: no tag byte available")
	}

	return format.Tag(r.data[r.pos]), nil
}

// Thaw reads one tag byte and reconstructs the value it opens (spec.md
// §4.4). It is the recursive entry point used for collection elements,
// map keys/values, metadata, and custom-type payloads.
func (r *Reader) Thaw() (any, error) {
	r.depth++
	defer func() { r.depth-- }()

	if r.depth > maxDepth {
		return nil, fmt.Errorf("wire: nesting depth exceeds %d while reading", maxDepth)
	}

	tag, err := r.peekTag()
	if err != nil {
		return nil, err
	}

	if tag == format.MetaTag {
		return r.thawWithMeta()
	}

	v, handled, err := r.thawConcrete(tag)
	if err != nil {
		return nil, errs.NewThawFailed(tag, err)
	}
	if handled {
		return v, nil
	}

	return nil, errs.NewThawFailed(tag, fmt.Errorf("unrecognized tag %d", tag))
}

func (r *Reader) thawWithMeta() (any, error) {
	if _, err := r.readByte(); err != nil { // consume META_TAG
		return nil, err
	}

	meta, err := r.Thaw()
	if err != nil {
		return nil, fmt.Errorf("wire: reading metadata: %w", err)
	}
	metaMap, _ := meta.(map[any]any)

	inner, err := r.Thaw()
	if err != nil {
		return nil, fmt.Errorf("wire: reading metadata-wrapped value: %w", err)
	}

	return withMetaValue(metaMap, inner), nil
}
