package wire

import (
	"fmt"
	"reflect"

	"github.com/mtlynch/friz/encoding"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/internal/buf"
	"github.com/mtlynch/friz/registry"
	"github.com/mtlynch/friz/value"
)

// freezeVector writes a plain []any as the Vector variant, using the
// dedicated VEC_2/VEC_3 tags that omit the length prefix entirely
// (spec.md §4.3 rule 3) and falling back to the size-classed VEC_0/SM/MD/
// LG tags otherwise.
func (w *Writer) freezeVector(items []any) error {
	switch len(items) {
	case 0:
		w.WriteByte(byte(format.Vec0))
		return nil
	case 2:
		w.WriteByte(byte(format.Vec2))
		return w.freezeEach(items)
	case 3:
		w.WriteByte(byte(format.Vec3))
		return w.freezeEach(items)
	default:
		w.WriteRaw(encoding.AppendClassedCount(nil, format.VecSm, format.VecMd, format.VecLg, len(items)))
		return w.freezeEach(items)
	}
}

// freezeCountedCollection writes items under the given (sm, md, lg) tag
// triple. Used for List/Set/SortedSet/Queue, whose length is always known
// up front (spec.md §4.3 "Counted").
func (w *Writer) freezeCountedCollection(smTag, mdTag, lgTag format.Tag, items []any) error {
	w.WriteRaw(encoding.AppendClassedCount(nil, smTag, mdTag, lgTag, len(items)))

	return w.freezeEach(items)
}

func (w *Writer) freezeEach(items []any) error {
	for i, item := range items {
		if err := w.Freeze(item); err != nil {
			return fmt.Errorf("wire: element %d: %w", i, err)
		}
	}

	return nil
}

// freezeSeq implements the uncounted path (spec.md §4.3 rule 2): a lazily
// produced sequence is drained exactly once into a scratch sink while
// counting, then emitted as an ordinary counted Seq.
func (w *Writer) freezeSeq(s value.Seq) error {
	if s.Lazy == nil {
		return w.freezeCountedCollection(format.SeqSm, format.SeqMd, format.SeqLg, s.Items)
	}

	nested := newNestedWriter(w, buf.UncountedCapacity)
	count := 0
	var freezeErr error
	s.Lazy(func(item any) bool {
		if err := nested.Freeze(item); err != nil {
			freezeErr = fmt.Errorf("wire: uncounted element %d: %w", count, err)
			return false
		}
		count++
		return true
	})
	if freezeErr != nil {
		return freezeErr
	}

	w.WriteRaw(encoding.AppendClassedCount(nil, format.SeqSm, format.SeqMd, format.SeqLg, count))
	w.WriteRaw(nested.Bytes())

	return nil
}

// freezeMap writes map[any]any in the presented iteration order (spec.md
// §4.3 "Ordering policy": Go map iteration order stands in for the
// source's undefined order).
func (w *Writer) freezeMap(m map[any]any) error {
	w.WriteRaw(encoding.AppendClassedCount(nil, format.MapSm, format.MapMd, format.MapLg, len(m)))
	for k, v := range m {
		if err := w.Freeze(k); err != nil {
			return fmt.Errorf("wire: map key: %w", err)
		}
		if err := w.Freeze(v); err != nil {
			return fmt.Errorf("wire: map value for key %v: %w", k, err)
		}
	}

	return nil
}

// freezeSortedMap writes a SortedMap's Keys/Values in the caller-supplied
// order; no comparator crosses the wire (spec.md §4.3 "Ordering policy").
func (w *Writer) freezeSortedMap(m value.SortedMap) error {
	n := len(m.Keys)
	w.WriteRaw(encoding.AppendClassedCount(nil, format.SortedMapSm, format.SortedMapMd, format.SortedMapLg, n))
	for i := 0; i < n; i++ {
		if err := w.Freeze(m.Keys[i]); err != nil {
			return fmt.Errorf("wire: sorted-map key %d: %w", i, err)
		}
		if err := w.Freeze(m.Values[i]); err != nil {
			return fmt.Errorf("wire: sorted-map value %d: %w", i, err)
		}
	}

	return nil
}

func (w *Writer) freezeUUID(u value.UUID) error {
	w.WriteByte(byte(format.UUIDTag))
	w.WriteRaw(encoding.AppendFixedInt64(nil, int64(u.Hi))) //nolint:gosec
	w.WriteRaw(encoding.AppendFixedInt64(nil, int64(u.Lo))) //nolint:gosec

	return nil
}

// freezeRecord writes the type name as a _sm/_md string followed by the
// record body as an ordinary map (spec.md §4.3 rule 4).
func (w *Writer) freezeRecord(r value.Record) error {
	w.WriteByte(byte(format.RecordTag))
	if err := w.freezeNamed(format.StrSm, format.StrMd, r.TypeName); err != nil {
		return fmt.Errorf("wire: record type name: %w", err)
	}

	return w.freezeSortedMap(value.SortedMap{Keys: r.Keys, Values: r.Values})
}

// lookupCustomEncoder resolves v's registered custom encoder, if any
// (spec.md §4.5).
func lookupCustomEncoder(v any) (registry.CustomID, registry.EncodeFunc, bool) {
	return registry.LookupFreezeByType(reflect.TypeOf(v))
}

func (w *Writer) freezeCustom(id registry.CustomID, fn registry.EncodeFunc, v any) error {
	if id.IsByte() {
		w.WriteByte(byte(format.CustomTag(id.ByteValue())))
		return fn(w, v)
	}

	h, ok := registry.KeywordHashOf(id.Name())
	if !ok {
		return fmt.Errorf("wire: custom type %q has no registered hash", id.Name())
	}
	w.WriteByte(byte(format.PrefixedCustom))
	w.WriteRaw(encoding.AppendFixedInt16(nil, h))

	return fn(w, v)
}
