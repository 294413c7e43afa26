package compress

// NoOpCodec implements the "none" entry of the compressor table. Grounded
// on the teacher's NoOpCompressor (compress/noop.go in arloliu/mebo).
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// Compress returns data unchanged. The returned slice shares the input's
// underlying array — callers must not mutate data afterwards.
func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
