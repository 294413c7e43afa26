package friz

import (
	"fmt"

	"github.com/mtlynch/friz/compress"
	"github.com/mtlynch/friz/crypt"
	"github.com/mtlynch/friz/errs"
	"github.com/mtlynch/friz/format"
	"github.com/mtlynch/friz/internal/options"
	"github.com/mtlynch/friz/registry"
)

// Option configures a Freeze or Thaw call (spec.md §6.2 "options").
type Option = options.Option[*config]

type compressorMode int

const (
	compressorAuto compressorMode = iota
	compressorNone
	compressorExplicit
	compressorCallable
)

type config struct {
	compressorMode compressorMode
	compressor     compress.Compressor
	compressorFn   func([]byte) compress.Compressor

	encryptorInstance crypt.Encryptor
	password          []byte

	v1Compat bool
	noHeader bool
}

func newConfig() *config {
	return &config{compressorMode: compressorAuto}
}

func applyOptions(cfg *config, opts []Option) error {
	return options.Apply(cfg, opts...)
}

// WithCompressor installs an explicit compressor instance (spec.md §4.7
// step 2 "explicit instance").
func WithCompressor(c compress.Compressor) Option {
	return options.NoError(func(cfg *config) {
		cfg.compressorMode = compressorExplicit
		cfg.compressor = c
	})
}

// WithCompressorFunc installs a callable that picks a compressor from
// the raw encoded payload (spec.md §4.7 step 2 "callable").
func WithCompressorFunc(fn func(data []byte) compress.Compressor) Option {
	return options.NoError(func(cfg *config) {
		cfg.compressorMode = compressorCallable
		cfg.compressorFn = fn
	})
}

// WithNoCompression disables compression outright.
func WithNoCompression() Option {
	return options.NoError(func(cfg *config) {
		cfg.compressorMode = compressorNone
	})
}

// WithEncryptor installs an explicit Encryptor, overriding the default
// AES-128 + SHA-512 implementation used whenever a password is supplied.
func WithEncryptor(e crypt.Encryptor) Option {
	return options.NoError(func(cfg *config) {
		cfg.encryptorInstance = e
	})
}

// WithPassword supplies the key material for encryption (spec.md §6.2
// "password"); its absence disables encryption on write and forbids
// headers declaring an encryptor on read.
func WithPassword(password string) Option {
	return options.NoError(func(cfg *config) {
		cfg.password = []byte(password)
	})
}

// WithV1Compatibility enables the legacy headerless decode heuristic on
// Thaw (spec.md §4.7 thaw step 1, §9).
func WithV1Compatibility() Option {
	return options.NoError(func(cfg *config) {
		cfg.v1Compat = true
	})
}

// WithNoHeader suppresses the 4-byte stream header; the caller must then
// manage compressor/encryptor selection out-of-band (spec.md §6.2
// "no-header").
func WithNoHeader() Option {
	return options.NoError(func(cfg *config) {
		cfg.noHeader = true
	})
}

// WithSkipHeader is an alias for WithNoHeader (spec.md §6.2 lists both
// "no-header" and "skip-header" as recognized option names).
func WithSkipHeader() Option { return WithNoHeader() }

func (cfg *config) encryptor() crypt.Encryptor {
	if cfg.encryptorInstance != nil {
		return cfg.encryptorInstance
	}

	return crypt.AES128SHA512{}
}

func (cfg *config) encryptorID() format.EncryptorID {
	if cfg.encryptorInstance != nil {
		if _, ok := cfg.encryptorInstance.(crypt.AES128SHA512); !ok {
			return format.EncryptorCustom
		}
	}

	return format.EncryptorAES128SHA512
}

func (cfg *config) encryptorFor(id format.EncryptorID) crypt.Encryptor {
	if id == format.EncryptorCustom {
		return cfg.encryptor()
	}

	return crypt.AES128SHA512{}
}

// resolveWriteCompressor implements spec.md §4.7 step 2's selection
// rules for Freeze.
func (cfg *config) resolveWriteCompressor(raw []byte) (compress.Compressor, format.CompressorID, error) {
	switch cfg.compressorMode {
	case compressorNone:
		return nil, format.CompressorNone, nil
	case compressorExplicit:
		return cfg.compressor, compressorIDFor(cfg.compressor), nil
	case compressorCallable:
		c := cfg.compressorFn(raw)
		if c == nil {
			return nil, format.CompressorNone, nil
		}
		return c, compressorIDFor(c), nil
	default: // compressorAuto
		if cfg.noHeader {
			return compress.LZ4Codec{}, format.CompressorLZ4, nil
		}
		if fn, ok := registry.AutoCompressor(); ok {
			if c := fn(raw); c != nil {
				return c, compressorIDFor(c), nil
			}
			return nil, format.CompressorNone, nil
		}
		if len(raw) > autoCompressSizeThreshold {
			return compress.LZ4Codec{}, format.CompressorLZ4, nil
		}
		return nil, format.CompressorNone, nil
	}
}

// compressorIDFor maps a concrete Compressor back to its header id,
// format.CompressorCustom for anything outside the standard set (spec.md
// §9's flagged ":else" design smell).
func compressorIDFor(c compress.Compressor) format.CompressorID {
	switch c.(type) {
	case compress.NoOpCodec:
		return format.CompressorNone
	case compress.SnappyCodec:
		return format.CompressorSnappy
	case compress.LZ4Codec:
		return format.CompressorLZ4
	case compress.LZMA2Codec:
		return format.CompressorLZMA2
	default:
		return format.CompressorCustom
	}
}

// splitFrame locates the payload within data, returning the compressor
// and encryptor ids that applied to it (spec.md §4.7 thaw steps 1-2) and
// whether data carried no recognizable header at all — the condition
// under which WithV1Compatibility's legacy heuristic applies.
func (cfg *config) splitFrame(data []byte) (payload []byte, compressorID format.CompressorID, encryptorID format.EncryptorID, headerless bool, err error) {
	if cfg.noHeader {
		return data, cfg.headerlessCompressorID(), cfg.headerlessEncryptorID(), true, nil
	}

	hdr, present, recognized := format.DecodeHeader(data)
	if !present {
		return data, cfg.headerlessCompressorID(), cfg.headerlessEncryptorID(), true, nil
	}
	if !recognized {
		return nil, 0, 0, false, errs.ErrUnrecognizedHeader
	}

	return data[format.HeaderSize:], hdr.Compressor, hdr.Encryptor, false, nil
}

func (cfg *config) headerlessCompressorID() format.CompressorID {
	if cfg.compressorMode == compressorExplicit {
		return compressorIDFor(cfg.compressor)
	}

	return format.CompressorNone
}

func (cfg *config) headerlessEncryptorID() format.EncryptorID {
	if len(cfg.password) > 0 {
		return format.EncryptorAES128SHA512
	}

	return format.EncryptorNone
}

// resolveReadCompressor implements spec.md §4.7 thaw step 2: `auto`
// resolves standard ids to their implementation; format.CompressorCustom
// requires the caller to have supplied one via WithCompressor.
func (cfg *config) resolveReadCompressor(id format.CompressorID) (compress.Decompressor, error) {
	if id == format.CompressorNone {
		return nil, nil
	}
	if id == format.CompressorCustom {
		if cfg.compressorMode != compressorExplicit {
			return nil, errs.ErrCompressorRequired
		}
		d, ok := cfg.compressor.(compress.Decompressor)
		if !ok {
			return nil, fmt.Errorf("friz: custom compressor does not implement Decompress")
		}
		return d, nil
	}

	return compress.StandardCodec(id)
}
