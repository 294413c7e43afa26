package wire

import (
	"fmt"
	"math/big"
	"time"

	"github.com/mtlynch/friz/encoding"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/registry"
	"github.com/mtlynch/friz/value"
)

func withMetaValue(meta map[any]any, inner any) value.WithMeta {
	return value.WithMeta{Meta: meta, Value: inner}
}

// thawConcrete consumes tag (already peeked, not yet read) and decodes
// its payload, the inverse of Writer.freezeConcrete (spec.md §4.4).
// handled is false for a tag this function doesn't recognize; the caller
// then reports ThawFailed (spec.md §8 property 8).
func (r *Reader) thawConcrete(tag format.Tag) (v any, handled bool, err error) {
	if format.IsCustomByteTag(tag) {
		return r.thawCustomByte(tag)
	}

	switch tag {
	case format.Nil:
		r.pos++
		return nil, true, nil
	case format.BoolTrue, format.BoolFalse, format.BoolLegacy:
		r.pos++
		return tag == format.BoolTrue, true, nil
	case format.Char:
		return r.thawChar()

	case format.ByteTag:
		return r.thawByte()
	case format.ShortTag:
		return r.thawShort()
	case format.IntTag:
		return r.thawInt()
	case format.LongFull, format.LongZero, format.LongSm, format.LongMd, format.LongLg, format.LongXl:
		return r.thawLong(tag)

	case format.FloatTag:
		return r.thawFloat()
	case format.DoubleTag:
		return r.thawDouble()

	case format.BigInt:
		return r.thawBigInt()
	case format.Ratio:
		return r.thawRatio()
	case format.BigDecimal:
		return r.thawBigDecimal()

	case format.Str0, format.StrSm, format.StrMd, format.StrLg, format.UTFLegacyStr:
		return r.thawString(tag)
	case format.KwSm, format.KwMd:
		return r.thawKeyword(tag)
	case format.SymSm, format.SymMd:
		return r.thawSymbol(tag)
	case format.RegexTag:
		return r.thawRegex()

	case format.Bytes0, format.BytesSm, format.BytesMd, format.BytesLg:
		return r.thawBytes(tag)

	case format.Vec0, format.Vec2, format.Vec3, format.VecSm, format.VecMd, format.VecLg, format.VecLegacyLg32:
		return r.thawVector(tag)
	case format.ListSm, format.ListMd, format.ListLg:
		items, e := r.thawClassedItems(tag, format.ListSm, format.ListMd)
		return value.List(items), true, e
	case format.SeqSm, format.SeqMd, format.SeqLg:
		items, e := r.thawClassedItems(tag, format.SeqSm, format.SeqMd)
		return value.Seq{Items: items}, true, e
	case format.SetSm, format.SetMd, format.SetLg:
		items, e := r.thawClassedItems(tag, format.SetSm, format.SetMd)
		return value.Set(items), true, e
	case format.SortedSetSm, format.SortedSetMd, format.SortedSetLg:
		items, e := r.thawClassedItems(tag, format.SortedSetSm, format.SortedSetMd)
		return value.SortedSet(items), true, e
	case format.QueueSm, format.QueueMd, format.QueueLg:
		items, e := r.thawClassedItems(tag, format.QueueSm, format.QueueMd)
		return value.Queue(items), true, e

	case format.MapSm, format.MapMd, format.MapLg:
		return r.thawMap(tag)
	case format.MapDepr2:
		return r.thawMapDepr2()
	case format.SortedMapSm, format.SortedMapMd, format.SortedMapLg:
		return r.thawSortedMap(tag)

	case format.DateTag:
		return r.thawDate()
	case format.UUIDTag:
		return r.thawUUID()
	case format.RecordTag:
		return r.thawRecord()

	case format.PrefixedCustom:
		return r.thawPrefixedCustom()

	case format.SerializableFallback:
		return r.thawSerializableFallback()
	case format.ReadableFallback:
		return r.thawReadableFallback()
	case format.UnfreezableMarker:
		return r.thawUnfreezableMarker()

	default:
		return nil, false, nil
	}
}

func (r *Reader) thawChar() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(2)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadFixedInt16(payload)

	return value.Char(v), true, err
}

func (r *Reader) thawByte() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(1)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadFixedInt8(payload)

	return v, true, err
}

func (r *Reader) thawShort() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(2)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadFixedInt16(payload)

	return v, true, err
}

func (r *Reader) thawInt() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(4)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadFixedInt32(payload)

	return v, true, err
}

// thawLong handles both the fixed-width LONG_FULL legacy tag and the
// minimal-width LONG_ZERO/SM/MD/LG/XL family, always returning int64.
func (r *Reader) thawLong(tag format.Tag) (any, bool, error) {
	r.pos++
	if tag == format.LongFull {
		payload, err := r.ReadRaw(8)
		if err != nil {
			return nil, true, err
		}
		v, _, err := encoding.ReadFixedInt64(payload)

		return v, true, err
	}

	n := longPayloadSize(tag)
	payload, err := r.ReadRaw(n)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadMinimalLong(tag, payload)

	return v, true, err
}

func longPayloadSize(tag format.Tag) int {
	switch tag {
	case format.LongZero:
		return 0
	case format.LongSm:
		return 1
	case format.LongMd:
		return 2
	case format.LongLg:
		return 4
	case format.LongXl:
		return 8
	default:
		return 0
	}
}

func (r *Reader) thawFloat() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(4)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadFloat32(payload)

	return v, true, err
}

func (r *Reader) thawDouble() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(8)
	if err != nil {
		return nil, true, err
	}
	v, _, err := encoding.ReadFloat64(payload)

	return v, true, err
}

func (r *Reader) readSignedMagnitude() (*big.Int, error) {
	signByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	n, err := r.readSmMdCount()
	if err != nil {
		return nil, err
	}
	magnitude, err := r.ReadRaw(n)
	if err != nil {
		return nil, err
	}

	v := new(big.Int).SetBytes(magnitude)
	if signByte == 1 {
		v.Neg(v)
	}

	return v, nil
}

// readSmMdCount is the inverse of lengthPrefixedSmMd's count encoding.
func (r *Reader) readSmMdCount() (int, error) {
	width, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if width == 0 {
		b, err := r.readByte()
		return int(b), err
	}

	payload, err := r.ReadRaw(4)
	if err != nil {
		return 0, err
	}
	n, _, err := encoding.ReadFixedInt32(payload)

	return int(n), err
}

func (r *Reader) thawBigInt() (any, bool, error) {
	r.pos++
	v, err := r.readSignedMagnitude()

	return v, true, err
}

func (r *Reader) thawRatio() (any, bool, error) {
	r.pos++
	num, err := r.thawRequireBigInt()
	if err != nil {
		return nil, true, err
	}
	den, err := r.thawRequireBigInt()
	if err != nil {
		return nil, true, err
	}

	return value.Ratio{Numerator: num, Denominator: den}, true, nil
}

func (r *Reader) thawRequireBigInt() (*big.Int, error) {
	v, err := r.Thaw()
	if err != nil {
		return nil, err
	}
	bi, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("wire: expected BigInt, got %T", v)
	}

	return bi, nil
}

func (r *Reader) thawBigDecimal() (any, bool, error) {
	r.pos++
	scalePayload, err := r.ReadRaw(4)
	if err != nil {
		return nil, true, err
	}
	scale, _, err := encoding.ReadFixedInt32(scalePayload)
	if err != nil {
		return nil, true, err
	}
	unscaled, err := r.readSignedMagnitude()
	if err != nil {
		return nil, true, err
	}

	return value.BigDecimal{Unscaled: unscaled, Scale: scale}, true, nil
}

func (r *Reader) thawString(tag format.Tag) (any, bool, error) {
	r.pos++
	data, err := r.readClassedBytes(tag, format.Str0, format.StrSm, format.StrMd)

	return string(data), true, err
}

// readClassedBytes reads the length-prefix width matching tag's size
// class then that many raw bytes. emptyTag/smallTag/mediumTag identify
// the variant's own tag values (anything else is large).
func (r *Reader) readClassedBytes(tag, emptyTag, smallTag, mediumTag format.Tag) ([]byte, error) {
	class := classOfTag(tag, emptyTag, smallTag, mediumTag)
	data, rest, err := encoding.ReadBytesForClass(class, r.data[r.pos:])
	if err != nil {
		return nil, err
	}
	r.pos = len(r.data) - len(rest)

	return data, nil
}

func classOfTag(tag, emptyTag, smallTag, mediumTag format.Tag) format.SizeClass {
	switch tag {
	case emptyTag:
		return format.SizeEmpty
	case smallTag:
		return format.SizeSmall
	case mediumTag:
		return format.SizeMedium
	default:
		return format.SizeLarge
	}
}

func (r *Reader) thawKeyword(tag format.Tag) (any, bool, error) {
	name, err := r.thawNamed(tag, format.KwSm)
	return parseNamed[value.Keyword](name), true, err
}

func (r *Reader) thawSymbol(tag format.Tag) (any, bool, error) {
	name, err := r.thawNamed(tag, format.SymSm)
	return parseNamed[value.Symbol](name), true, err
}

// thawNamed reads a keyword/symbol/record-name payload: smTag carries a
// 1-byte count, anything else (the md tag) a 2-byte count.
func (r *Reader) thawNamed(tag, smTag format.Tag) (string, error) {
	r.pos++
	var n int
	var err error
	if tag == smTag {
		var v int8
		v, _, err = encoding.ReadFixedInt8(r.data[r.pos:])
		n = int(v)
		r.pos++
	} else {
		var v int16
		v, _, err = encoding.ReadFixedInt16(r.data[r.pos:])
		n = int(v)
		r.pos += 2
	}
	if err != nil {
		return "", err
	}

	data, err := r.ReadRaw(n)

	return string(data), err
}

func parseNamed[T value.Keyword | value.Symbol](name string) T {
	ns, local := splitNamespace(name)

	var zero T
	switch any(zero).(type) {
	case value.Keyword:
		return any(value.Keyword{Namespace: ns, Name: local}).(T) //nolint:forcetypeassert
	default:
		return any(value.Symbol{Namespace: ns, Name: local}).(T) //nolint:forcetypeassert
	}
}

func splitNamespace(name string) (namespace, local string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '/' && i > 0 && i < len(name)-1 {
			return name[:i], name[i+1:]
		}
	}

	return "", name
}

func (r *Reader) thawRegex() (any, bool, error) {
	r.pos++
	v, err := r.Thaw()
	if err != nil {
		return nil, true, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, true, fmt.Errorf("wire: regex source was %T, not string", v)
	}

	return value.Regex{Source: s}, true, nil
}

func (r *Reader) thawBytes(tag format.Tag) (any, bool, error) {
	r.pos++
	data, err := r.readClassedBytes(tag, format.Bytes0, format.BytesSm, format.BytesMd)

	return data, true, err
}

func (r *Reader) thawDate() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(8)
	if err != nil {
		return nil, true, err
	}
	ms, _, err := encoding.ReadFixedInt64(payload)
	if err != nil {
		return nil, true, err
	}

	return time.UnixMilli(ms).UTC(), true, nil
}

func (r *Reader) thawUUID() (any, bool, error) {
	r.pos++
	hiPayload, err := r.ReadRaw(8)
	if err != nil {
		return nil, true, err
	}
	hi, _, err := encoding.ReadFixedInt64(hiPayload)
	if err != nil {
		return nil, true, err
	}
	loPayload, err := r.ReadRaw(8)
	if err != nil {
		return nil, true, err
	}
	lo, _, err := encoding.ReadFixedInt64(loPayload)

	return value.UUID{Hi: uint64(hi), Lo: uint64(lo)}, true, err //nolint:gosec
}

func (r *Reader) thawPrefixedCustom() (any, bool, error) {
	r.pos++
	payload, err := r.ReadRaw(2)
	if err != nil {
		return nil, true, err
	}
	h, _, err := encoding.ReadFixedInt16(payload)
	if err != nil {
		return nil, true, err
	}

	fn, ok := registry.LookupThawByHash(h)
	if !ok {
		return nil, true, fmt.Errorf("wire: no custom decoder registered for hash %d", h)
	}
	v, err := fn(r)

	return v, true, err
}

func (r *Reader) thawCustomByte(tag format.Tag) (any, bool, error) {
	r.pos++
	id := format.CustomIDFromTag(tag)
	fn, ok := registry.LookupThawByByteID(id)
	if !ok {
		return nil, false, nil
	}
	v, err := fn(r)

	return v, true, err
}
