package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the type carries
// internal state that benefits from reuse across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec implements the "lz4" entry of the compressor table. Grounded on
// the teacher's LZ4Compressor (compress/lz4.go in arloliu/mebo); renamed
// to match the Codec/StandardCodec naming used here.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// Compress compresses data using an LZ4 block compressor drawn from a pool.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// lz4DecompressGrowthFactor is the initial scratch-buffer size relative to
// the compressed input, chosen for friz's own payload mix: wire-encoded
// structured values compress closer to 4:1 than the 2:1 typical of
// arbitrary binary blobs.
const lz4DecompressGrowthFactor = 4

// lz4MaxDecompressBufferSize bounds the scratch-buffer doubling loop so a
// corrupt or adversarial block can't force unbounded allocation.
const lz4MaxDecompressBufferSize = 128 * 1024 * 1024

// Decompress reverses Compress. lz4.UncompressBlock needs a
// destination sized to hold the decompressed output up front, but the
// block format carries no uncompressed-size header, so Decompress guesses
// and doubles on ErrInvalidSourceShortBuffer.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * lz4DecompressGrowthFactor

	for bufSize <= lz4MaxDecompressBufferSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < lz4MaxDecompressBufferSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
