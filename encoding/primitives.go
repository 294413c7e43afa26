// Package encoding provides the length-prefixed byte/string primitives and
// the minimal-width signed-long writer that every higher-level variant in
// wire builds on (spec.md §4.2).
//
// All multi-byte integers are big-endian (spec.md §6.1); that's a fixed
// property of the wire format rather than a per-call choice, so unlike the
// teacher's endian.EndianEngine abstraction (which lets mebo pick
// little- or big-endian per blob) this package has no engine parameter —
// see DESIGN.md for why that abstraction was dropped rather than adapted.
package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mtlynch/friz/format"
)

// MaxSmallLength is the largest length that fits the 1-byte unsigned
// "small" size-class prefix.
const MaxSmallLength = 127

// MaxMediumLength is the largest length that fits the 2-byte signed
// "medium" size-class prefix.
const MaxMediumLength = 32767

// WriteLengthPrefixedBytes appends data using the narrowest size-class tag
// that fits its length, choosing among the four (emptyTag, smallTag,
// mediumTag, largeTag) supplied by the caller for the relevant variant
// (spec.md §4.2 "self-classifying bytes/string writers").
func WriteLengthPrefixedBytes(dst []byte, emptyTag, smallTag, mediumTag, largeTag format.Tag, data []byte) []byte {
	n := len(data)
	switch format.ClassifyLength(n) {
	case format.SizeEmpty:
		return append(dst, byte(emptyTag))
	case format.SizeSmall:
		dst = append(dst, byte(smallTag), uint8(n)) //nolint:gosec
	case format.SizeMedium:
		dst = append(dst, byte(mediumTag))
		dst = binary.BigEndian.AppendUint16(dst, uint16(n)) //nolint:gosec
	default:
		dst = append(dst, byte(largeTag))
		dst = binary.BigEndian.AppendUint32(dst, uint32(n)) //nolint:gosec
	}

	return append(dst, data...)
}

// AppendClassedCount appends the narrowest of (smallTag, mediumTag,
// largeTag) for n along with its count payload. Unlike AppendCountPrefix,
// there is no distinct empty-collection tag here: n==0 is written as the
// small class with an explicit zero count, matching variants (List, Map,
// Seq, Set, SortedSet, SortedMap, Queue) that spec.md §3 gives only
// _sm/_md/_lg tags, no _0.
func AppendClassedCount(dst []byte, smallTag, mediumTag, largeTag format.Tag, n int) []byte {
	switch format.ClassifyLength(n) {
	case format.SizeEmpty, format.SizeSmall:
		return append(dst, byte(smallTag), uint8(n)) //nolint:gosec
	case format.SizeMedium:
		dst = append(dst, byte(mediumTag))
		return binary.BigEndian.AppendUint16(dst, uint16(n)) //nolint:gosec
	default:
		dst = append(dst, byte(largeTag))
		return binary.BigEndian.AppendUint32(dst, uint32(n)) //nolint:gosec
	}
}

// ReadSmallLength reads a 1-byte unsigned length prefix.
func ReadSmallLength(src []byte) (int, []byte, error) {
	if len(src) < 1 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for small length prefix")
	}

	return int(src[0]), src[1:], nil
}

// ReadMediumLength reads a 2-byte big-endian signed length prefix.
func ReadMediumLength(src []byte) (int, []byte, error) {
	if len(src) < 2 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for medium length prefix")
	}

	return int(int16(binary.BigEndian.Uint16(src))), src[2:], nil //nolint:gosec
}

// ReadLargeLength reads a 4-byte big-endian signed length prefix.
func ReadLargeLength(src []byte) (int, []byte, error) {
	if len(src) < 4 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for large length prefix")
	}

	return int(int32(binary.BigEndian.Uint32(src))), src[4:], nil //nolint:gosec
}

// ReadBytesForClass reads the length-prefix width matching class (the tag
// already having been consumed by the caller) followed by that many raw
// bytes.
func ReadBytesForClass(class format.SizeClass, src []byte) (data []byte, rest []byte, err error) {
	var n int
	switch class {
	case format.SizeEmpty:
		return nil, src, nil
	case format.SizeSmall:
		n, src, err = ReadSmallLength(src)
	case format.SizeMedium:
		n, src, err = ReadMediumLength(src)
	default:
		n, src, err = ReadLargeLength(src)
	}
	if err != nil {
		return nil, nil, err
	}
	if n < 0 || n > len(src) {
		return nil, nil, fmt.Errorf("encoding: invalid length %d (have %d bytes)", n, len(src))
	}

	return src[:n], src[n:], nil
}

// AppendFixedInt appends a fixed-width big-endian signed integer.
func AppendFixedInt8(dst []byte, v int8) []byte {
	return append(dst, byte(v)) //nolint:gosec
}

func AppendFixedInt16(dst []byte, v int16) []byte {
	return binary.BigEndian.AppendUint16(dst, uint16(v)) //nolint:gosec
}

func AppendFixedInt32(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v)) //nolint:gosec
}

func AppendFixedInt64(dst []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v)) //nolint:gosec
}

func ReadFixedInt8(src []byte) (int8, []byte, error) {
	if len(src) < 1 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for int8")
	}

	return int8(src[0]), src[1:], nil //nolint:gosec
}

func ReadFixedInt16(src []byte) (int16, []byte, error) {
	if len(src) < 2 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for int16")
	}

	return int16(binary.BigEndian.Uint16(src)), src[2:], nil //nolint:gosec
}

func ReadFixedInt32(src []byte) (int32, []byte, error) {
	if len(src) < 4 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for int32")
	}

	return int32(binary.BigEndian.Uint32(src)), src[4:], nil //nolint:gosec
}

func ReadFixedInt64(src []byte) (int64, []byte, error) {
	if len(src) < 8 {
		return 0, nil, fmt.Errorf("encoding: insufficient data for int64")
	}

	return int64(binary.BigEndian.Uint64(src)), src[8:], nil //nolint:gosec
}

// AppendFloat32/AppendFloat64 append IEEE-754 payloads.
func AppendFloat32(dst []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(v))
}

func AppendFloat64(dst []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(v))
}

func ReadFloat32(src []byte) (float32, []byte, error) {
	v, rest, err := ReadFixedInt32(src)
	if err != nil {
		return 0, nil, err
	}

	return math.Float32frombits(uint32(v)), rest, nil //nolint:gosec
}

func ReadFloat64(src []byte) (float64, []byte, error) {
	v, rest, err := ReadFixedInt64(src)
	if err != nil {
		return 0, nil, err
	}

	return math.Float64frombits(uint64(v)), rest, nil //nolint:gosec
}
