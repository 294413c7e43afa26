package format

import "fmt"

// HeaderMagic is the 3-byte ASCII marker opening every framed stream
// (spec.md §6.1).
var HeaderMagic = [3]byte{'N', 'P', 'Y'}

// HeaderSize is the total size in bytes of the stream header.
const HeaderSize = 4

// CompressorID and EncryptorID identify the algorithm family recorded in
// the header's meta byte. They are never written to the wire directly —
// only the derived meta byte (see MetaByte) is.
type (
	CompressorID uint8
	EncryptorID  uint8
)

const (
	CompressorNone CompressorID = iota
	CompressorSnappy
	CompressorLZ4
	CompressorLZMA2
	CompressorCustom
)

const (
	EncryptorNone EncryptorID = iota
	EncryptorAES128SHA512
	EncryptorCustom
)

func (c CompressorID) String() string {
	switch c {
	case CompressorNone:
		return "none"
	case CompressorSnappy:
		return "snappy"
	case CompressorLZ4:
		return "lz4"
	case CompressorLZMA2:
		return "lzma2"
	case CompressorCustom:
		return "custom"
	default:
		return "unknown"
	}
}

func (e EncryptorID) String() string {
	switch e {
	case EncryptorNone:
		return "none"
	case EncryptorAES128SHA512:
		return "aes128-sha512"
	case EncryptorCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// metaEntry is one row of the closed table in spec.md §6.1.
type metaEntry struct {
	compressor CompressorID
	encryptor  EncryptorID
}

// metaTable is the closed, ordered table of (compressor, encryptor) pairs
// selectable by the header's 4th byte. Row order and contents are fixed by
// spec.md §6.1 and must not change.
var metaTable = [14]metaEntry{
	0:  {CompressorNone, EncryptorNone},
	1:  {CompressorSnappy, EncryptorNone},
	2:  {CompressorNone, EncryptorAES128SHA512},
	3:  {CompressorSnappy, EncryptorAES128SHA512},
	4:  {CompressorNone, EncryptorCustom},
	5:  {CompressorCustom, EncryptorNone},
	6:  {CompressorCustom, EncryptorCustom},
	7:  {CompressorSnappy, EncryptorCustom},
	8:  {CompressorLZ4, EncryptorNone},
	9:  {CompressorLZ4, EncryptorAES128SHA512},
	10: {CompressorLZ4, EncryptorCustom},
	11: {CompressorLZMA2, EncryptorNone},
	12: {CompressorLZMA2, EncryptorAES128SHA512},
	13: {CompressorLZMA2, EncryptorCustom},
}

// MetaByteFor looks up the table row matching (compressor, encryptor) and
// returns its index as the header's 4th byte. ok is false if no row in the
// closed table covers that exact combination.
func MetaByteFor(compressor CompressorID, encryptor EncryptorID) (byte, bool) {
	for i, row := range metaTable {
		if row.compressor == compressor && row.encryptor == encryptor {
			return byte(i), true //nolint:gosec
		}
	}

	return 0, false
}

// DecodeMetaByte resolves a header's 4th byte back to (compressor,
// encryptor). ok is false for any value outside the closed 0..13 table —
// callers must surface format.ErrUnrecognizedHeader-equivalent behavior
// (see errs.ErrUnrecognizedHeader) in that case, per spec.md §6.1/§8
// property 9.
func DecodeMetaByte(b byte) (CompressorID, EncryptorID, bool) {
	if int(b) >= len(metaTable) {
		return 0, 0, false
	}
	row := metaTable[b]

	return row.compressor, row.encryptor, true
}

// Header is the decoded form of the 4-byte stream prefix.
type Header struct {
	Compressor CompressorID
	Encryptor  EncryptorID
}

// Encode renders h as the 4-byte wire header.
func (h Header) Encode() ([HeaderSize]byte, error) {
	var out [HeaderSize]byte
	copy(out[0:3], HeaderMagic[:])

	b, ok := MetaByteFor(h.Compressor, h.Encryptor)
	if !ok {
		return out, fmt.Errorf("format: no header slot for compressor=%s encryptor=%s", h.Compressor, h.Encryptor)
	}
	out[3] = b

	return out, nil
}

// DecodeHeader parses the 4-byte prefix of data. present is false when data
// is too short or doesn't start with the magic bytes (the caller then falls
// back to headerless handling, spec.md §4.7 thaw step 1). recognized is
// false when the magic bytes matched but the meta byte is outside the
// closed table (spec.md §8 property 9 / "UnrecognizedHeader").
func DecodeHeader(data []byte) (hdr Header, present, recognized bool) {
	if len(data) < HeaderSize {
		return Header{}, false, false
	}
	if data[0] != HeaderMagic[0] || data[1] != HeaderMagic[1] || data[2] != HeaderMagic[2] {
		return Header{}, false, false
	}

	compressor, encryptor, ok := DecodeMetaByte(data[3])
	if !ok {
		return Header{}, true, false
	}

	return Header{Compressor: compressor, Encryptor: encryptor}, true, true
}
