package compress

// ZstdCodec is the worked example of a caller-supplied compressor
// (spec.md §4.7's "explicit instance" / "callable auto-compressor" path):
// zstd has no slot in the closed header table, so any blob compressed with
// it is framed under format.CompressorCustom and the Thaw caller must pass
// this same Codec back explicitly (see the package doc and DESIGN.md's
// Open Question log).
//
// Two build-tagged implementations exist, mirroring the teacher's split
// (compress/zstd_cgo.go / compress/zstd_pure.go in arloliu/mebo):
// zstd_cgo.go uses the cgo-backed valyala/gozstd for higher throughput,
// zstd_pure.go falls back to the pure-Go klauspost/compress/zstd when cgo
// is unavailable.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
