// Package compress provides pluggable compression for the codec's stream
// framing layer (spec.md §4.7). Compression algorithms themselves are
// explicitly out of scope for the serialization engine (spec.md §1) — this
// package treats them as opaque byte-array → byte-array transformers
// identified by a format.CompressorID, exactly the role the teacher's
// compress.Codec interface plays for mebo's payload compression.
package compress

import (
	"fmt"

	"github.com/mtlynch/friz/format"
)

// Compressor compresses a complete encoded payload before it is framed.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller.
//   - The input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's transform.
//
// Error conditions:
//   - Returns an error if the input is corrupted or was produced by a
//     different algorithm than the one invoked.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Every standard compressor in this
// package implements Codec.
type Codec interface {
	Compressor
	Decompressor
}

// StandardCodec resolves one of the format.CompressorID values from the
// closed header table (spec.md §6.1) to its concrete implementation.
// format.CompressorCustom has no standard implementation — callers must
// supply their own Codec for that id (spec.md §4.7 step 2, §9).
func StandardCodec(id format.CompressorID) (Codec, error) {
	switch id {
	case format.CompressorNone:
		return NoOpCodec{}, nil
	case format.CompressorSnappy:
		return SnappyCodec{}, nil
	case format.CompressorLZ4:
		return LZ4Codec{}, nil
	case format.CompressorLZMA2:
		return LZMA2Codec{}, nil
	case format.CompressorCustom:
		return nil, fmt.Errorf("compress: %s has no standard implementation, caller must supply one", id)
	default:
		return nil, fmt.Errorf("compress: unknown compressor id %d", id)
	}
}
