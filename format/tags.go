// Package format defines the fixed on-wire vocabulary of the codec: the
// 1-byte type tags that open every encoded value and the 4-byte stream
// header metadata table.
//
// Tags are assigned once and never reassigned; new variants take unused
// slots. Deprecated tags stay in the table forever as decode-only entries.
package format

// Tag identifies the variant (and, for variable-length variants, the size
// class) encoded at the start of a value. It is signed so that user
// byte-id custom types (spec.md §4.5) can occupy the negative half of the
// space, disjoint from every built-in tag below.
type Tag int8

// Built-in tags. StrSm, Vec0, MapSm and PrefixedCustom are fixed by the
// worked examples in spec.md §8 (S1-S6) and must never change. Every other
// value below is a first assignment for this implementation and is fixed
// from here on (see DESIGN.md).
const (
	Nil Tag = iota
	BoolTrue
	BoolFalse
	Char

	ByteTag
	ShortTag
	IntTag
	LongFull

	LongZero
	LongSm
	LongMd
	LongLg
	LongXl

	FloatTag
	DoubleTag

	BigInt
	BigDecimal
	_reservedVec0 // keeps iota off the value pinned to Vec0 (17) below
	Ratio

	Str0
	StrMd
	StrLg

	KwSm
	KwMd
	SymSm
	SymMd

	RegexTag

	Bytes0
	BytesSm
	BytesMd
	BytesLg

	Vec2
	Vec3
	VecSm
	VecMd
	VecLg

	ListSm
	ListMd
	ListLg

	SeqSm
	SeqMd
	SeqLg

	SetSm
	SetMd
	SetLg

	SortedSetSm
	SortedSetMd
	SortedSetLg

	QueueSm
	QueueMd
	QueueLg

	MapMd
	MapLg

	SortedMapSm
	SortedMapMd
	SortedMapLg

	DateTag
	UUIDTag

	RecordTag

	MetaTag

	SerializableFallback
	ReadableFallback
	UnfreezableMarker

	// Deprecated: decode-only, preserved for backward compatibility.
	// Writers never emit these (spec.md §4.1).

	MapDepr2      // historical map encoding: 32-bit count that is twice the entry count
	BoolLegacy    // superseded by BoolTrue/BoolFalse
	UTFLegacyStr  // superseded by size-classed string tags
	VecLegacyLg32 // superseded by VecLg (kept identical semantics, older tag byte)
)

// StrSm, Vec0, MapSm, PrefixedCustom and LONG_SM's numeric identity are
// pinned by spec.md's worked examples (§8, S1-S6) rather than by iota
// position, so they are declared with explicit values outside the block
// above and must never collide with it.
const (
	StrSm          Tag = 105
	Vec0           Tag = 17
	MapSm          Tag = 112
	PrefixedCustom Tag = 82
)

// NoTag is a sentinel used when wrapping a failure that has no
// associated tag byte (e.g. a compression or decryption failure caught
// before any tag was read) in an errs.ThawFailed. It sits well above the
// dense iota block above and outside the negative custom-byte-id band,
// so it can never collide with a real tag.
const NoTag Tag = 127

// CustomByteIDBase is the tag value corresponding to user byte-id 1; user
// byte ids 1..128 are stored as the negation of the id (spec.md §3,
// "Invariants"). CustomTag(1) == -1 ... CustomTag(128) == -128.
func CustomTag(id uint8) Tag {
	return Tag(-int16(id)) //nolint:gosec
}

// CustomIDFromTag recovers the user byte id from a negative custom tag.
// Only valid for tags produced by CustomTag (i.e. t < 0).
func CustomIDFromTag(t Tag) uint8 {
	return uint8(-int16(t)) //nolint:gosec
}

// IsCustomByteTag reports whether t is in the negative custom-byte-id band.
func IsCustomByteTag(t Tag) bool {
	return t < 0
}

func (t Tag) String() string {
	if IsCustomByteTag(t) {
		return "CustomByte"
	}
	switch t {
	case Nil:
		return "Nil"
	case BoolTrue, BoolFalse, BoolLegacy:
		return "Bool"
	case Char:
		return "Char"
	case ByteTag:
		return "Byte"
	case ShortTag:
		return "Short"
	case IntTag:
		return "Int"
	case LongFull:
		return "Long"
	case LongZero, LongSm, LongMd, LongLg, LongXl:
		return "Long(sized)"
	case FloatTag:
		return "Float"
	case DoubleTag:
		return "Double"
	case BigInt:
		return "BigInt"
	case BigDecimal:
		return "BigDecimal"
	case Ratio:
		return "Ratio"
	case StrSm, Str0, StrMd, StrLg, UTFLegacyStr:
		return "String"
	case KwSm, KwMd:
		return "Keyword"
	case SymSm, SymMd:
		return "Symbol"
	case RegexTag:
		return "Regex"
	case Bytes0, BytesSm, BytesMd, BytesLg:
		return "Bytes"
	case Vec0, Vec2, Vec3, VecSm, VecMd, VecLg, VecLegacyLg32:
		return "Vector"
	case ListSm, ListMd, ListLg:
		return "List"
	case SeqSm, SeqMd, SeqLg:
		return "Seq"
	case SetSm, SetMd, SetLg:
		return "Set"
	case SortedSetSm, SortedSetMd, SortedSetLg:
		return "SortedSet"
	case QueueSm, QueueMd, QueueLg:
		return "Queue"
	case MapSm, MapMd, MapLg, MapDepr2:
		return "Map"
	case SortedMapSm, SortedMapMd, SortedMapLg:
		return "SortedMap"
	case DateTag:
		return "Date"
	case UUIDTag:
		return "UUID"
	case RecordTag:
		return "Record"
	case MetaTag:
		return "Meta"
	case PrefixedCustom:
		return "PrefixedCustom"
	case SerializableFallback:
		return "SerializableFallback"
	case ReadableFallback:
		return "ReadableFallback"
	case UnfreezableMarker:
		return "UnfreezableMarker"
	case NoTag:
		return "NoTag"
	default:
		return "Unknown"
	}
}

// SizeClass enumerates the four length-prefix widths used throughout the
// wire format (spec.md §4.1, §4.2).
type SizeClass uint8

const (
	SizeEmpty SizeClass = iota
	SizeSmall           // uint8 length, 0..127
	SizeMedium          // int16 length, 0..32767
	SizeLarge           // int32 length, 0..2^31-1
)

// ClassifyLength returns the narrowest SizeClass that fits n, per the
// testable boundary table in spec.md §8 property 2.
func ClassifyLength(n int) SizeClass {
	switch {
	case n == 0:
		return SizeEmpty
	case n <= 127:
		return SizeSmall
	case n <= 32767:
		return SizeMedium
	default:
		return SizeLarge
	}
}
