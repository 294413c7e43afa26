package compress

import (
	"bytes"
	"testing"

	"github.com/mtlynch/friz/format"
)

func roundTripCodec(t *testing.T, c Codec, data []byte) {
	t.Helper()

	compressed, err := c.Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	got, err := c.Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
}

func sampleCorpus() []byte {
	return bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)
}

func TestNoOpCodecRoundTrip(t *testing.T) {
	roundTripCodec(t, NoOpCodec{}, sampleCorpus())
}

func TestLZ4CodecRoundTrip(t *testing.T) {
	roundTripCodec(t, LZ4Codec{}, sampleCorpus())
}

func TestSnappyCodecRoundTrip(t *testing.T) {
	roundTripCodec(t, SnappyCodec{}, sampleCorpus())
}

func TestLZMA2CodecRoundTrip(t *testing.T) {
	roundTripCodec(t, LZMA2Codec{}, sampleCorpus())
}

func TestZstdCodecRoundTrip(t *testing.T) {
	roundTripCodec(t, ZstdCodec{}, sampleCorpus())
}

func TestCodecsRoundTripEmptyInput(t *testing.T) {
	codecs := map[string]Codec{
		"noop":   NoOpCodec{},
		"lz4":    LZ4Codec{},
		"snappy": SnappyCodec{},
		"lzma2":  LZMA2Codec{},
		"zstd":   ZstdCodec{},
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := c.Compress(nil)
			if err != nil {
				t.Fatalf("Compress(nil): %v", err)
			}
			got, err := c.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty output, got %d bytes", len(got))
			}
		})
	}
}

func TestStandardCodecResolvesEveryTableEntry(t *testing.T) {
	ids := []format.CompressorID{
		format.CompressorNone,
		format.CompressorSnappy,
		format.CompressorLZ4,
		format.CompressorLZMA2,
	}
	for _, id := range ids {
		if _, err := StandardCodec(id); err != nil {
			t.Errorf("StandardCodec(%s): %v", id, err)
		}
	}
}

func TestStandardCodecRejectsCustom(t *testing.T) {
	if _, err := StandardCodec(format.CompressorCustom); err == nil {
		t.Error("expected StandardCodec(CompressorCustom) to fail; custom has no standard implementation")
	}
}

func TestLZ4DecompressRejectsCorruptInput(t *testing.T) {
	if _, err := (LZ4Codec{}).Decompress([]byte{0xFF, 0xFF, 0xFF}); err == nil {
		t.Error("expected an error decompressing corrupt LZ4 data")
	}
}
