// Package friz implements a self-describing binary serialization format
// for richly-typed structured data: scalars, strings, collections, and
// domain records convert to a compact byte stream and back, with
// pluggable compression and authenticated encryption layered on top
// (spec.md §1).
//
// The root package is a thin wrapper the way the teacher's mebo.go wraps
// NewNumericEncoder/NewDefaultNumericEncoder: it owns the public API
// surface and the stream-framing pipeline (header + compress + encrypt),
// delegating the actual tagged encoding to wire.Writer/wire.Reader and
// process-wide configuration to registry.
package friz

import (
	"fmt"

	"github.com/mtlynch/friz/compress"
	"github.com/mtlynch/friz/errs"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/registry"
	"github.com/mtlynch/friz/value"
	"github.com/mtlynch/friz/wire"
)

// Domain value types (spec.md §3). Defined in package value so wire can
// switch on their concrete types without importing this package; aliased
// here under their natural names so callers never see package value.
type (
	Char       = value.Char
	Keyword    = value.Keyword
	Symbol     = value.Symbol
	Regex      = value.Regex
	Ratio      = value.Ratio
	BigDecimal = value.BigDecimal
	UUID       = value.UUID
	List       = value.List
	Seq        = value.Seq
	Set        = value.Set
	SortedSet  = value.SortedSet
	Queue      = value.Queue
	SortedMap  = value.SortedMap
	Record     = value.Record
	WithMeta   = value.WithMeta
)

// Writer and Reader are the low-level, unframed encode/decode cursors
// (spec.md §6.2 "freeze-to-sink"/"thaw-from-source").
type (
	Writer = wire.Writer
	Reader = wire.Reader
)

// NewWriter returns a Writer ready to accept FreezeToSink calls.
func NewWriter() *Writer { return wire.NewWriter() }

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader { return wire.NewReader(data) }

// FreezeToSink encodes value onto sink without any stream framing
// (spec.md §6.2).
func FreezeToSink(sink registry.Sink, value any) error {
	return sink.Freeze(value)
}

// ThawFromSource decodes one value from source without any stream
// framing (spec.md §6.2).
func ThawFromSource(source registry.Source) (any, error) {
	return source.Thaw()
}

// Custom-type registry surface (spec.md §4.5, §6.2).
type (
	CustomID   = registry.CustomID
	EncodeFunc = registry.EncodeFunc
	DecodeFunc = registry.DecodeFunc
)

// ByteID names a custom type by a positive id in 1..128.
func ByteID(id uint8) CustomID { return registry.ByteID(id) }

// KeywordID names a custom type by an arbitrary string, hashed at
// registration time.
func KeywordID(name string) CustomID { return registry.KeywordID(name) }

// ExtendFreeze registers an encoder for values of the same concrete type
// as sample (spec.md §6.2 "extend-freeze").
func ExtendFreeze(sample any, id CustomID, fn EncodeFunc) error {
	return registry.ExtendFreeze(sample, id, fn)
}

// ExtendThaw registers a decoder for id (spec.md §6.2 "extend-thaw").
func ExtendThaw(id CustomID, fn DecodeFunc) error {
	return registry.ExtendThaw(id, fn)
}

// RegisterSerializable lets a user type round-trip through the
// Serializable-fallback path by name (spec.md §3, §4.6).
func RegisterSerializable(typeName string, sample any) {
	wire.RegisterSerializable(typeName, sample)
}

// FallbackPolicy selects strict vs. permissive behavior for values with
// no direct encoding (spec.md §4.6).
type FallbackPolicy = registry.FallbackPolicy

const (
	PolicyStrict           = registry.PolicyStrict
	PolicyWriteUnfreezable = registry.PolicyWriteUnfreezable
)

// SetFreezeFallback installs the process-wide fallback policy.
func SetFreezeFallback(policy FallbackPolicy) { registry.SetFreezeFallback(policy) }

// SetCustomFreezeFallback installs a callable that takes over the entire
// fallback chain.
func SetCustomFreezeFallback(fn EncodeFunc) { registry.SetCustomFreezeFallback(fn) }

// SetAutoCompressor installs the process-wide callable consulted by
// `auto` compressor resolution (spec.md §4.7 step 2).
func SetAutoCompressor(fn func(data []byte) compress.Compressor) {
	registry.SetAutoCompressor(registry.AutoCompressorFunc(fn))
}

// autoCompressSizeThreshold is the raw-payload size above which `auto`
// picks LZ4 absent any other signal (spec.md §4.7 step 2).
const autoCompressSizeThreshold = 8192

// Freeze serializes value into a framed byte stream (spec.md §6.2
// "freeze", §4.7).
func Freeze(value any, opts ...Option) ([]byte, error) {
	cfg := newConfig()
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	if err := w.Freeze(value); err != nil {
		return nil, err
	}
	body := w.Bytes()

	compressor, compressorID, err := cfg.resolveWriteCompressor(body)
	if err != nil {
		return nil, err
	}
	if compressor != nil {
		body, err = compressor.Compress(body)
		if err != nil {
			return nil, fmt.Errorf("friz: compressing payload: %w", err)
		}
	}

	encryptorID := format.EncryptorNone
	if len(cfg.password) > 0 {
		sealed, err := cfg.encryptor().Seal(cfg.password, body)
		if err != nil {
			return nil, fmt.Errorf("friz: encrypting payload: %w", err)
		}
		body = sealed
		encryptorID = cfg.encryptorID()
	}

	if cfg.noHeader {
		return body, nil
	}

	hdr := format.Header{Compressor: compressorID, Encryptor: encryptorID}
	header, err := hdr.Encode()
	if err != nil {
		return nil, fmt.Errorf("friz: %w", err)
	}

	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header[:]...)
	out = append(out, body...)

	return out, nil
}

// Thaw deserializes a framed (or, with WithNoHeader, unframed) byte
// stream produced by Freeze (spec.md §6.2 "thaw", §4.7).
func Thaw(data []byte, opts ...Option) (any, error) {
	cfg := newConfig()
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	payload, compressorID, encryptorID, headerless, err := cfg.splitFrame(data)
	if err != nil {
		return nil, err
	}

	if encryptorID != format.EncryptorNone {
		if len(cfg.password) == 0 {
			return nil, errs.ErrPasswordRequired
		}
		opened, err := cfg.encryptorFor(encryptorID).Open(cfg.password, payload)
		if err != nil {
			return nil, err
		}
		payload = opened
	}

	decompressor, err := cfg.resolveReadCompressor(compressorID)
	if err != nil {
		return nil, err
	}
	switch {
	case decompressor != nil:
		decoded, decErr := decompressor.Decompress(payload)
		switch {
		case decErr == nil:
			payload = decoded
		case cfg.v1Compat:
			payload, err = v1HeaderlessHeuristic(payload)
			if err != nil {
				return nil, errs.NewThawFailed(format.NoTag, decErr)
			}
		default:
			return nil, errs.NewThawFailed(format.NoTag, decErr)
		}
	case headerless && cfg.v1Compat:
		// No header and no explicit compressor resolved (compressorMode is
		// auto or none): this is the legacy v1 case spec.md §4.7/§9
		// describes. Try Snappy, then fall back to raw bytes.
		payload, err = v1HeaderlessHeuristic(payload)
		if err != nil {
			return nil, errs.NewThawFailed(format.NoTag, err)
		}
	}

	v, err := wire.NewReader(payload).Thaw()
	if err != nil {
		return nil, err
	}

	return v, nil
}

// v1HeaderlessHeuristic implements the legacy "try Snappy, then raw"
// fallback for headerless v1 payloads (spec.md §4.7 thaw step 1, §9
// "Legacy heuristic for v1 data").
func v1HeaderlessHeuristic(payload []byte) ([]byte, error) {
	snappy := compress.SnappyCodec{}
	if decoded, err := snappy.Decompress(payload); err == nil {
		return decoded, nil
	}

	return payload, nil
}

// Inspect reports diagnostic information about a framed blob without
// requiring the caller to fully decode it (spec.md §6.2 "inspect").
type InspectReport struct {
	HeaderPresent    bool
	HeaderRecognized bool
	Compressor       format.CompressorID
	Encryptor        format.EncryptorID
	PayloadOffset    int
	PayloadLength    int
	ThawSucceeded    bool
	ThawError        error
}

// Inspect decodes only as much of data as needed to report header
// presence, compressor/encryptor ids, payload bounds, and whether a full
// Thaw would succeed.
func Inspect(data []byte, opts ...Option) InspectReport {
	hdr, present, recognized := format.DecodeHeader(data)

	report := InspectReport{
		HeaderPresent:    present,
		HeaderRecognized: recognized,
		PayloadOffset:    0,
		PayloadLength:    len(data),
	}
	if present && recognized {
		report.Compressor = hdr.Compressor
		report.Encryptor = hdr.Encryptor
		report.PayloadOffset = format.HeaderSize
		report.PayloadLength = len(data) - format.HeaderSize
	}

	v, err := Thaw(data, opts...)
	report.ThawSucceeded = err == nil
	report.ThawError = err
	_ = v

	return report
}
