package encoding

import "github.com/mtlynch/friz/format"

// AppendMinimalLong appends v as whichever of LONG_ZERO/LONG_SM/LONG_MD/
// LONG_LG/LONG_XL is narrowest for its value (spec.md §4.2 property 3),
// mirroring nippy's `biginteger`-free minimal-width long writer.
func AppendMinimalLong(dst []byte, v int64) []byte {
	switch {
	case v == 0:
		return append(dst, byte(format.LongZero))
	case v >= -128 && v <= 127:
		dst = append(dst, byte(format.LongSm))
		return AppendFixedInt8(dst, int8(v))
	case v >= -32768 && v <= 32767:
		dst = append(dst, byte(format.LongMd))
		return AppendFixedInt16(dst, int16(v))
	case v >= -2147483648 && v <= 2147483647:
		dst = append(dst, byte(format.LongLg))
		return AppendFixedInt32(dst, int32(v))
	default:
		dst = append(dst, byte(format.LongXl))
		return AppendFixedInt64(dst, v)
	}
}

// ReadMinimalLong decodes the payload following one of the minimal-width
// long tags. tag must already have been consumed by the caller.
func ReadMinimalLong(tag format.Tag, src []byte) (int64, []byte, error) {
	switch tag {
	case format.LongZero:
		return 0, src, nil
	case format.LongSm:
		v, rest, err := ReadFixedInt8(src)
		return int64(v), rest, err
	case format.LongMd:
		v, rest, err := ReadFixedInt16(src)
		return int64(v), rest, err
	case format.LongLg:
		v, rest, err := ReadFixedInt32(src)
		return int64(v), rest, err
	case format.LongXl:
		return ReadFixedInt64(src)
	default:
		return 0, nil, errInvalidLongTag(tag)
	}
}

func errInvalidLongTag(tag format.Tag) error {
	return &invalidLongTagError{tag: tag}
}

type invalidLongTagError struct{ tag format.Tag }

func (e *invalidLongTagError) Error() string {
	return "encoding: tag " + e.tag.String() + " is not a minimal-width long tag"
}
