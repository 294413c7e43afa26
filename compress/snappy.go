package compress

import "github.com/klauspost/compress/s2"

// SnappyCodec implements the "snappy" entry of the compressor table.
// klauspost/compress/s2 is a strict extension of the Snappy block format —
// s2.EncodeSnappy produces output any Snappy decoder can read, and s2.Decode
// transparently accepts both Snappy- and S2-framed data — so it serves as
// the real backing library the teacher already depends on (compress/s2.go
// in arloliu/mebo used s2 the same way, just under the S2 identifier rather
// than Snappy compatibility mode).
type SnappyCodec struct{}

var _ Codec = SnappyCodec{}

// Compress produces a Snappy-compatible block.
func (SnappyCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeSnappy(nil, data), nil
}

// Decompress accepts Snappy- or S2-framed blocks.
func (SnappyCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
