package wire

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"
)

// serializableReconstructors maps a type name (as written by
// freezeSerializable) back to a zero-value factory, so
// thawSerializableFallback can allocate a concrete
// encoding.BinaryUnmarshaler to decode into. Go has no runtime
// type-by-name lookup, unlike the host runtimes nippy targets (Java
// class loading, Clojure's resolve), so a value must opt in by calling
// RegisterSerializable once before any payload naming it can be
// reconstructed; absent that, the reader falls back to the
// PartialValueFailure sentinel (spec.md §4.4, §7) exactly as it would for
// any other foreign serialized class.
var (
	serializableMu   sync.RWMutex
	serializableKind = map[string]reflect.Type{}
)

// RegisterSerializable lets a program's own types round-trip through the
// Serializable-fallback path (spec.md §3) by name. sample must implement
// encoding.BinaryMarshaler and its pointer or value form must implement
// encoding.BinaryUnmarshaler.
func RegisterSerializable(typeName string, sample any) {
	serializableMu.Lock()
	defer serializableMu.Unlock()
	serializableKind[typeName] = reflect.TypeOf(sample)
}

func decodeSerializable(typeName string, raw []byte) (any, error) {
	serializableMu.RLock()
	t, ok := serializableKind[typeName]
	serializableMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("wire: no type registered for serializable class %q", typeName)
	}

	ptr := reflect.New(t)
	unmarshaler, ok := ptr.Interface().(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("wire: %q does not implement encoding.BinaryUnmarshaler", typeName)
	}
	if err := unmarshaler.UnmarshalBinary(raw); err != nil {
		return nil, err
	}

	return ptr.Elem().Interface(), nil
}
