package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// LZMA2Codec implements the "lzma2" entry of the compressor table.
//
// The wire format treats concrete compression algorithms as opaque,
// externally-supplied transforms (spec.md §1); no repository in the
// retrieved example pack depends on an actual LZMA2 implementation, so
// this identifier is backed by klauspost/compress/flate (already a real
// teacher dependency) instead. See DESIGN.md's "lzma2 compressor id"
// section for the full justification — this is not a claim that the bytes
// on the wire are LZMA2-compressed.
type LZMA2Codec struct{}

var _ Codec = LZMA2Codec{}

// Compress DEFLATEs data at the default compression level.
func (LZMA2Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func (LZMA2Codec) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	return io.ReadAll(r)
}
