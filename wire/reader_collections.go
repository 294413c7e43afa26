package wire

import (
	"fmt"

	"github.com/mtlynch/friz/encoding"
	"github.com/mtlynch/friz/errs"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/value"
)

// thawItemCount reads the count from a tag whose size class is smTag's
// 1-byte, mdTag's 2-byte, or otherwise a 4-byte count (the collection
// variants sharing the "no distinct _0 tag" scheme, spec.md §3).
func (r *Reader) thawItemCount(tag, smTag, mdTag format.Tag) (int, error) {
	switch tag {
	case smTag:
		b, err := r.readByte()
		return int(b), err
	case mdTag:
		payload, err := r.ReadRaw(2)
		if err != nil {
			return 0, err
		}
		n, _, err := encoding.ReadFixedInt16(payload)
		return int(n), err
	default:
		payload, err := r.ReadRaw(4)
		if err != nil {
			return 0, err
		}
		n, _, err := encoding.ReadFixedInt32(payload)
		return int(n), err
	}
}

// thawClassedItems decodes tag's count (advancing past the tag byte
// first) and reads that many values using bulk construction (spec.md
// §4.4 "Counted collections"): for Go there is no separate
// transient/builder path to switch into past a size threshold, since
// append already amortizes.
func (r *Reader) thawClassedItems(tag, smTag, mdTag format.Tag) ([]any, error) {
	r.pos++
	n, err := r.thawItemCount(tag, smTag, mdTag)
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := r.Thaw()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, v)
	}

	return items, nil
}

func (r *Reader) thawVector(tag format.Tag) (any, bool, error) {
	switch tag {
	case format.Vec0:
		r.pos++
		return []any{}, true, nil
	case format.Vec2, format.Vec3:
		r.pos++
		n := 2
		if tag == format.Vec3 {
			n = 3
		}
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v, err := r.Thaw()
			if err != nil {
				return nil, true, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, v)
		}

		return items, true, nil
	default:
		items, err := r.thawClassedItems(tag, format.VecSm, format.VecMd)
		return items, true, err
	}
}

func (r *Reader) thawMap(tag format.Tag) (any, bool, error) {
	r.pos++
	n, err := r.thawItemCount(tag, format.MapSm, format.MapMd)
	if err != nil {
		return nil, true, err
	}

	m := make(map[any]any, n)
	for i := 0; i < n; i++ {
		k, err := r.Thaw()
		if err != nil {
			return nil, true, fmt.Errorf("map key %d: %w", i, err)
		}
		v, err := r.Thaw()
		if err != nil {
			return nil, true, fmt.Errorf("map value %d: %w", i, err)
		}
		m[k] = v
	}

	return m, true, nil
}

// thawMapDepr2 decodes the deprecated MAP_DEPR2 layout: a 32-bit count
// that is twice the entry count, for historical reasons (spec.md §4.4).
// Writers never emit this tag (spec.md §4.1); it is decode-only.
func (r *Reader) thawMapDepr2() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(4)
	if err != nil {
		return nil, true, err
	}
	doubled, _, err := encoding.ReadFixedInt32(payload)
	if err != nil {
		return nil, true, err
	}
	n := int(doubled) / 2

	m := make(map[any]any, n)
	for i := 0; i < n; i++ {
		k, err := r.Thaw()
		if err != nil {
			return nil, true, fmt.Errorf("legacy map key %d: %w", i, err)
		}
		v, err := r.Thaw()
		if err != nil {
			return nil, true, fmt.Errorf("legacy map value %d: %w", i, err)
		}
		m[k] = v
	}

	return m, true, nil
}

func (r *Reader) thawSortedMap(tag format.Tag) (any, bool, error) {
	r.pos++
	n, err := r.thawItemCount(tag, format.SortedMapSm, format.SortedMapMd)
	if err != nil {
		return nil, true, err
	}

	sm := value.SortedMap{Keys: make([]any, 0, n), Values: make([]any, 0, n)}
	for i := 0; i < n; i++ {
		k, err := r.Thaw()
		if err != nil {
			return nil, true, fmt.Errorf("sorted-map key %d: %w", i, err)
		}
		v, err := r.Thaw()
		if err != nil {
			return nil, true, fmt.Errorf("sorted-map value %d: %w", i, err)
		}
		sm.Keys = append(sm.Keys, k)
		sm.Values = append(sm.Values, v)
	}

	return sm, true, nil
}

func (r *Reader) thawRecord() (any, bool, error) {
	r.pos++
	tag, err := r.peekTag()
	if err != nil {
		return nil, true, err
	}
	typeName, err := r.thawNamed(tag, format.StrSm)
	if err != nil {
		return nil, true, &errs.PartialValueFailure{Kind: "record", Cause: err}
	}

	body, err := r.Thaw()
	if err != nil {
		return &errs.PartialValueFailure{Kind: "record", Cause: err, ClassName: typeName}, true, nil
	}
	sm, ok := body.(value.SortedMap)
	if !ok {
		return &errs.PartialValueFailure{
			Kind:      "record",
			Cause:     fmt.Errorf("record body decoded as %T, not a map", body),
			ClassName: typeName,
		}, true, nil
	}

	return value.Record{TypeName: typeName, Keys: sm.Keys, Values: sm.Values}, true, nil
}

func (r *Reader) thawSerializableFallback() (any, bool, error) {
	r.pos++
	typeName, err := r.thawLengthPrefixedString()
	if err != nil {
		return nil, true, err
	}
	raw, err := r.thawLengthPrefixedBytesLg()
	if err != nil {
		return &errs.PartialValueFailure{Kind: "serializable", Cause: err, ClassName: typeName}, true, nil
	}

	v, decodeErr := decodeSerializable(typeName, raw)
	if decodeErr != nil {
		return &errs.PartialValueFailure{Kind: "serializable", Cause: decodeErr, ClassName: typeName, RawContent: raw}, true, nil
	}

	return v, true, nil
}

func (r *Reader) thawReadableFallback() (any, bool, error) {
	r.pos++
	typeName, err := r.thawLengthPrefixedString()
	if err != nil {
		return nil, true, err
	}
	text, err := r.thawLengthPrefixedString()
	if err != nil {
		return &errs.PartialValueFailure{Kind: "readable", Cause: err, ClassName: typeName}, true, nil
	}

	return &errs.PartialValueFailure{
		Kind:       "readable",
		Cause:      fmt.Errorf("no reader registered to reconstruct %q from its textual form", typeName),
		ClassName:  typeName,
		RawContent: []byte(text),
	}, true, nil
}

func (r *Reader) thawUnfreezableMarker() (any, bool, error) {
	r.pos++
	v, err := r.Thaw()
	if err != nil {
		return nil, true, err
	}
	m, ok := v.(map[any]any)
	if !ok {
		return nil, true, fmt.Errorf("unfreezable marker body decoded as %T, not a map", v)
	}

	return m, true, nil
}

// thawLengthPrefixedString reads a Str0/StrSm/StrMd/StrLg-tagged value
// (used by the fallback tags to carry a type name and a textual body).
func (r *Reader) thawLengthPrefixedString() (string, error) {
	v, err := r.Thaw()
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}

	return s, nil
}

// thawLengthPrefixedBytesLg reads a Bytes-tagged raw payload.
func (r *Reader) thawLengthPrefixedBytesLg() ([]byte, error) {
	v, err := r.Thaw()
	if err != nil {
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("expected bytes, got %T", v)
	}

	return b, nil
}
