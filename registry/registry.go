// Package registry holds the codec's process-wide mutable state: the
// custom-type registry (spec.md §4.5) and the fallback/auto-compressor
// policy (spec.md §4.6, §4.7). Both are described by the spec as
// process-wide, runtime-extensible, and safe to mutate underneath
// concurrent readers via atomic replace-the-whole-map (spec.md §5) — the
// same requirement the teacher's blobBase/indexMaps types satisfy for
// their own (read-only, build-once) index structures, generalized here to
// a mutable registry using atomic.Pointer instead of construct-once maps.
package registry

import (
	"fmt"
	"log"
	"reflect"

	"github.com/mtlynch/friz/errs"
	"github.com/mtlynch/friz/internal/hash"
)

// Sink is the minimal surface a custom EncodeFunc needs to write its
// payload. wire.Writer satisfies it structurally; this package does not
// import wire to avoid a dependency cycle (wire imports registry to
// perform custom-type dispatch).
type Sink interface {
	// WriteRaw appends opaque bytes to the stream.
	WriteRaw(p []byte)
	// Freeze recursively encodes a nested value (so a custom encoder can
	// embed ordinary values inside its payload).
	Freeze(v any) error
}

// Source is the read-side counterpart of Sink.
type Source interface {
	// ReadRaw consumes and returns exactly n raw bytes.
	ReadRaw(n int) ([]byte, error)
	// Thaw recursively decodes a nested value.
	Thaw() (any, error)
}

// EncodeFunc writes value's custom payload to sink.
type EncodeFunc func(sink Sink, value any) error

// DecodeFunc reconstructs a value from its custom payload.
type DecodeFunc func(source Source) (any, error)

// CustomID names a custom type using one of the two schemes spec.md §4.5
// defines: a small positive byte id, or an arbitrary keyword-like name
// hashed to 16 bits.
type CustomID struct {
	name   string
	byteID uint8
	isByte bool
}

// ByteID names a custom type by a positive id in 1..128.
func ByteID(id uint8) CustomID {
	return CustomID{byteID: id, isByte: true}
}

// KeywordID names a custom type by an arbitrary string, hashed at
// registration time.
func KeywordID(name string) CustomID {
	return CustomID{name: name}
}

// IsByte reports whether id uses the byte-id scheme.
func (id CustomID) IsByte() bool { return id.isByte }

// ByteValue returns the byte id (only meaningful when IsByte is true).
func (id CustomID) ByteValue() uint8 { return id.byteID }

// Name returns the keyword name (only meaningful when IsByte is false).
func (id CustomID) Name() string { return id.name }

type encoderEntry struct {
	id CustomID
	fn EncodeFunc
}

type state struct {
	byteEncoders    map[reflect.Type]encoderEntry
	byteDecoders    map[uint8]DecodeFunc
	keywordEncoders map[reflect.Type]encoderEntry
	keywordDecoders map[int16]DecodeFunc
	keywordHashes   map[string]int16
}

func newState() *state {
	return &state{
		byteEncoders:    make(map[reflect.Type]encoderEntry),
		byteDecoders:    make(map[uint8]DecodeFunc),
		keywordEncoders: make(map[reflect.Type]encoderEntry),
		keywordDecoders: make(map[int16]DecodeFunc),
		keywordHashes:   make(map[string]int16),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.byteEncoders {
		c.byteEncoders[k] = v
	}
	for k, v := range s.byteDecoders {
		c.byteDecoders[k] = v
	}
	for k, v := range s.keywordEncoders {
		c.keywordEncoders[k] = v
	}
	for k, v := range s.keywordDecoders {
		c.keywordDecoders[k] = v
	}
	for k, v := range s.keywordHashes {
		c.keywordHashes[k] = v
	}

	return c
}

// reservedLow and reservedHigh bound the band carved out for byte-id
// custom tags (-128..-1, spec.md §4.5), which keyword-id hashes must
// never land in.
const (
	reservedLow  = -128
	reservedHigh = -1
)

// KeywordHash maps name to its 16-bit wire hash, refusing any hash that
// falls in the byte-id reserved band (spec.md §4.5).
func KeywordHash(name string) (int16, error) {
	h := int16(hash.ID(name)) //nolint:gosec
	if h >= reservedLow && h <= reservedHigh {
		return 0, fmt.Errorf("%w: %q hashes to %d", errs.ErrCustomHashReserved, name, h)
	}

	return h, nil
}

// ExtendFreeze registers an encoder for values of the same concrete type
// as sample, under id. Re-registering a type that already has an encoder
// is allowed and logs a warning (spec.md §4.5).
func ExtendFreeze(sample any, id CustomID, fn EncodeFunc) error {
	t := reflect.TypeOf(sample)

	cur := Load()
	next := cur.clone()

	if id.isByte {
		if id.byteID < 1 || id.byteID > 128 {
			return fmt.Errorf("registry: byte id %d out of range 1..128", id.byteID)
		}
		if _, exists := next.byteEncoders[t]; exists {
			log.Printf("registry: re-registering freeze encoder for %s (byte id %d)", t, id.byteID)
		}
		next.byteEncoders[t] = encoderEntry{id: id, fn: fn}
	} else {
		h, err := KeywordHash(id.name)
		if err != nil {
			return err
		}
		if _, exists := next.keywordEncoders[t]; exists {
			log.Printf("registry: re-registering freeze encoder for %s (keyword %q)", t, id.name)
		}
		next.keywordEncoders[t] = encoderEntry{id: id, fn: fn}
		next.keywordHashes[id.name] = h
	}

	Store(next)

	return nil
}

// ExtendThaw registers a decoder for id. Re-registration logs a warning.
func ExtendThaw(id CustomID, fn DecodeFunc) error {
	cur := Load()
	next := cur.clone()

	if id.isByte {
		if id.byteID < 1 || id.byteID > 128 {
			return fmt.Errorf("registry: byte id %d out of range 1..128", id.byteID)
		}
		if _, exists := next.byteDecoders[id.byteID]; exists {
			log.Printf("registry: re-registering thaw decoder for byte id %d", id.byteID)
		}
		next.byteDecoders[id.byteID] = fn
	} else {
		h, err := KeywordHash(id.name)
		if err != nil {
			return err
		}
		if _, exists := next.keywordDecoders[h]; exists {
			log.Printf("registry: re-registering thaw decoder for keyword %q", id.name)
		}
		next.keywordDecoders[h] = fn
		next.keywordHashes[id.name] = h
	}

	Store(next)

	return nil
}

// LookupFreezeByType returns the custom encoder registered for t, if any.
func LookupFreezeByType(t reflect.Type) (id CustomID, fn EncodeFunc, ok bool) {
	s := Load()
	if e, found := s.byteEncoders[t]; found {
		return e.id, e.fn, true
	}
	if e, found := s.keywordEncoders[t]; found {
		return e.id, e.fn, true
	}

	return CustomID{}, nil, false
}

// KeywordHashOf returns the hash to write on the wire for a registered
// keyword-id type's name.
func KeywordHashOf(name string) (int16, bool) {
	s := Load()
	h, ok := s.keywordHashes[name]

	return h, ok
}

// LookupThawByByteID returns the decoder registered for a negative
// (unprefixed) custom tag's byte id.
func LookupThawByByteID(id uint8) (DecodeFunc, bool) {
	s := Load()
	fn, ok := s.byteDecoders[id]

	return fn, ok
}

// LookupThawByHash returns the decoder registered for a PrefixedCustom
// hash.
func LookupThawByHash(h int16) (DecodeFunc, bool) {
	s := Load()
	fn, ok := s.keywordDecoders[h]

	return fn, ok
}
