package wire

import (
	"encoding"
	"fmt"

	"github.com/mtlynch/friz/errs"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/registry"
)

// freezeFallback runs the configured fallback chain for a value with no
// concrete dispatch (spec.md §4.6): a process-wide custom callable, if
// installed, takes over entirely; otherwise try a host-native
// serializable encoding, then a textual encoding, then either an
// "unfreezable" marker or a hard error depending on policy.
func (w *Writer) freezeFallback(v any) error {
	policy, custom := registry.Fallback()
	if custom != nil {
		return custom(w, v)
	}

	if err := w.freezeSerializable(v); err == nil {
		return nil
	}

	if err := w.freezeReadable(v); err == nil {
		return nil
	}

	if policy == registry.PolicyWriteUnfreezable {
		return w.freezeUnfreezableMarker(v)
	}

	return fmt.Errorf("%w: %T", errs.ErrUnfreezable, v)
}

// freezeSerializable is the Go analogue of "host-native object
// serialization": a value implementing encoding.BinaryMarshaler is the
// closest stdlib equivalent of Java's Serializable that spec.md §4.6
// names as the first fallback step.
func (w *Writer) freezeSerializable(v any) error {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return fmt.Errorf("wire: %T is not encoding.BinaryMarshaler", v)
	}

	data, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("wire: MarshalBinary failed for %T: %w", v, err)
	}

	typeName := fmt.Sprintf("%T", v)
	w.WriteByte(byte(format.SerializableFallback))
	if err := w.freezeString(typeName); err != nil {
		return err
	}

	return w.freezeBytes(data)
}

// freezeReadable is the textual ("EDN-like") fallback (spec.md §4.6).
// It only applies to values that can produce a meaningful textual form
// on their own (fmt.Stringer or error); anything else is left to the
// next step rather than accepting Go's generic "%v" rendering of
// arbitrary structs, which would round-trip to noise, not text worth
// reading back.
func (w *Writer) freezeReadable(v any) error {
	var text string
	switch val := v.(type) {
	case fmt.Stringer:
		text = val.String()
	case error:
		text = val.Error()
	default:
		return fmt.Errorf("wire: %T has no meaningful textual representation", v)
	}

	typeName := fmt.Sprintf("%T", v)
	w.WriteByte(byte(format.ReadableFallback))
	if err := w.freezeString(typeName); err != nil {
		return err
	}

	return w.freezeString(text)
}

func (w *Writer) freezeUnfreezableMarker(v any) error {
	w.WriteByte(byte(format.UnfreezableMarker))

	marker := map[any]any{
		"type":        fmt.Sprintf("%T", v),
		"unfreezable": fmt.Sprintf("%v", v),
	}

	return w.freezeMap(marker)
}
