package wire

import (
	"math/big"
	"time"

	"github.com/mtlynch/friz/encoding"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/value"
)

func (w *Writer) freezeBool(b bool) error {
	if b {
		w.WriteByte(byte(format.BoolTrue))
	} else {
		w.WriteByte(byte(format.BoolFalse))
	}

	return nil
}

func (w *Writer) freezeChar(c value.Char) error {
	w.WriteByte(byte(format.Char))
	w.WriteRaw(encoding.AppendFixedInt16(nil, int16(c))) //nolint:gosec

	return nil
}

func (w *Writer) freezeByte(v int8) error {
	w.WriteByte(byte(format.ByteTag))
	w.WriteRaw(encoding.AppendFixedInt8(nil, v))

	return nil
}

func (w *Writer) freezeShort(v int16) error {
	w.WriteByte(byte(format.ShortTag))
	w.WriteRaw(encoding.AppendFixedInt16(nil, v))

	return nil
}

func (w *Writer) freezeInt(v int32) error {
	w.WriteByte(byte(format.IntTag))
	w.WriteRaw(encoding.AppendFixedInt32(nil, v))

	return nil
}

// freezeLong implements the minimal-width signed-long writer (spec.md
// §4.2, §8 property 3): the default path for Go's int/int64.
func (w *Writer) freezeLong(v int64) error {
	w.WriteRaw(encoding.AppendMinimalLong(nil, v))

	return nil
}

func (w *Writer) freezeFloat(v float32) error {
	w.WriteByte(byte(format.FloatTag))
	w.WriteRaw(encoding.AppendFloat32(nil, v))

	return nil
}

func (w *Writer) freezeDouble(v float64) error {
	w.WriteByte(byte(format.DoubleTag))
	w.WriteRaw(encoding.AppendFloat64(nil, v))

	return nil
}

func (w *Writer) freezeBigInt(v *big.Int) error {
	w.WriteByte(byte(format.BigInt))
	w.WriteRaw(lengthPrefixedSmMd(v.Bytes(), v.Sign() < 0))

	return nil
}

// freezeRatio writes numerator and denominator as nested BigInt payloads,
// so no dedicated size-classed writer is needed for it.
func (w *Writer) freezeRatio(r value.Ratio) error {
	w.WriteByte(byte(format.Ratio))
	if err := w.freezeBigInt(r.Numerator); err != nil {
		return err
	}

	return w.freezeBigInt(r.Denominator)
}

func (w *Writer) freezeBigDecimal(d value.BigDecimal) error {
	w.WriteByte(byte(format.BigDecimal))
	w.WriteRaw(encoding.AppendFixedInt32(nil, d.Scale))
	w.WriteRaw(lengthPrefixedSmMd(d.Unscaled.Bytes(), d.Unscaled.Sign() < 0))

	return nil
}

// lengthPrefixedSmMd encodes a BigInteger's magnitude bytes as
// [signByte][widthByte][count][magnitude]: widthByte is 0 for a 1-byte
// count (magnitude length ≤127, the common case) or 1 for a 4-byte count.
// The explicit width byte (rather than inferring width from the count
// value itself) avoids ambiguity: a bare big-endian count cannot be
// told apart from a small count by its leading byte alone, since large
// magnitudes under 2^24 bytes have a zero leading byte. BigInt/BigDecimal
// traffic is rare enough on the wire that nippy itself has no dedicated
// _md class for them; two width classes are enough here.
func lengthPrefixedSmMd(magnitude []byte, negative bool) []byte {
	n := len(magnitude)

	out := make([]byte, 0, n+6)
	if negative {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}

	if n <= encoding.MaxSmallLength {
		out = append(out, 0, byte(n)) //nolint:gosec
	} else {
		out = append(out, 1)
		out = encoding.AppendFixedInt32(out, int32(n)) //nolint:gosec
	}

	return append(out, magnitude...)
}

func (w *Writer) freezeString(s string) error {
	w.WriteRaw(encoding.WriteLengthPrefixedBytes(nil, format.Str0, format.StrSm, format.StrMd, format.StrLg, []byte(s)))

	return nil
}

func (w *Writer) freezeKeyword(k value.Keyword) error {
	return w.freezeNamed(format.KwSm, format.KwMd, k.String()[1:])
}

func (w *Writer) freezeSymbol(s value.Symbol) error {
	return w.freezeNamed(format.SymSm, format.SymMd, s.String())
}

// freezeNamed writes a keyword/symbol name using the two-class (_sm/_md)
// scheme spec.md §3 describes for Keyword/Symbol; names longer than
// _md's 32767-byte ceiling are not expected for identifiers, so there is
// no _lg class.
func (w *Writer) freezeNamed(smTag, mdTag format.Tag, name string) error {
	data := []byte(name)
	if format.ClassifyLength(len(data)) == format.SizeSmall || format.ClassifyLength(len(data)) == format.SizeEmpty {
		w.WriteByte(byte(smTag))
		w.WriteRaw(encoding.AppendFixedInt8(nil, int8(len(data)))) //nolint:gosec
		w.WriteRaw(data)

		return nil
	}

	w.WriteByte(byte(mdTag))
	w.WriteRaw(encoding.AppendFixedInt16(nil, int16(len(data)))) //nolint:gosec
	w.WriteRaw(data)

	return nil
}

func (w *Writer) freezeRegex(r value.Regex) error {
	w.WriteByte(byte(format.RegexTag))

	return w.freezeString(r.Source)
}

// freezeDate writes a time.Time as milliseconds since the Unix epoch
// (spec.md §3 "Date"). Monotonic readings and location are not part of
// the wire representation; Thaw reconstructs a UTC time.Time.
func (w *Writer) freezeDate(t time.Time) error {
	w.WriteByte(byte(format.DateTag))
	w.WriteRaw(encoding.AppendFixedInt64(nil, t.UnixMilli()))

	return nil
}

func (w *Writer) freezeBytes(b []byte) error {
	w.WriteRaw(encoding.WriteLengthPrefixedBytes(nil, format.Bytes0, format.BytesSm, format.BytesMd, format.BytesLg, b))

	return nil
}
