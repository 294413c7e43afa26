// Package errs collects the codec's sentinel errors.
//
// The teacher (arloliu/mebo) imports a dedicated errs package throughout
// blob/ and section/ (errs.ErrInvalidHeaderSize and friends) but that
// package's source was not present in the retrieved pack — this package
// reconstructs the same shape (package-level sentinels, wrapped with
// fmt.Errorf at call sites, checked with errors.Is) for this codec's own
// error kinds (spec.md §7).
package errs

import (
	"errors"
	"fmt"

	"github.com/mtlynch/friz/format"
)

var (
	// ErrUnfreezable is returned when a value has no encoder and the
	// active fallback policy declines to produce one (spec.md §4.6, §7).
	ErrUnfreezable = errors.New("friz: value cannot be frozen")

	// ErrUnrecognizedHeader is returned when a stream opens with the
	// magic bytes but carries a meta byte outside the closed table
	// (spec.md §6.1, §8 property 9).
	ErrUnrecognizedHeader = errors.New("friz: unrecognized header metadata byte")

	// ErrPasswordRequired is returned when a header declares an encryptor
	// but no password was supplied to Thaw (spec.md §4.7 step 3).
	ErrPasswordRequired = errors.New("friz: password required to decrypt this stream")

	// ErrCryptoFailure is returned when decryption does not authenticate;
	// it is always wrapped into ThawFailed before reaching the caller
	// (spec.md §7, CryptoFailure).
	ErrCryptoFailure = errors.New("friz: decryption failed authentication")

	// ErrCustomHashReserved is returned by registry.ExtendFreeze when a
	// keyword id hashes into the band reserved for byte-id collisions
	// (spec.md §4.5).
	ErrCustomHashReserved = errors.New("friz: keyword id hash falls in the byte-id reserved band")

	// ErrCompressorRequired is returned by Thaw when a header names a
	// custom compressor id but the caller did not supply a concrete one
	// (spec.md §4.7 step 2, the ":else" design smell flagged in §9).
	ErrCompressorRequired = errors.New("friz: header names a custom compressor; caller must supply one")
)

// ThawFailed wraps a low-level decode failure with the offending tag and
// chained cause (spec.md §4.4, §7).
type ThawFailed struct {
	Tag   format.Tag
	Cause error
}

func (e *ThawFailed) Error() string {
	return fmt.Sprintf("friz: thaw failed at tag %s (%d): %v", e.Tag, e.Tag, e.Cause)
}

func (e *ThawFailed) Unwrap() error {
	return e.Cause
}

// NewThawFailed wraps cause with the tag that was being decoded when it
// occurred.
func NewThawFailed(tag format.Tag, cause error) *ThawFailed {
	return &ThawFailed{Tag: tag, Cause: cause}
}

// PartialValueFailure is the non-fatal sentinel returned in place of a
// value whose record/native-object/textual reconstruction failed
// (spec.md §4.4, §7). It is a value, not an error: callers receive it
// inline and decide whether to treat it as fatal.
type PartialValueFailure struct {
	Kind       string // "record", "serializable", or "readable"
	Cause      error
	ClassName  string
	RawContent []byte
}

func (p *PartialValueFailure) Error() string {
	return fmt.Sprintf("friz: partial value failure (%s) for %q: %v", p.Kind, p.ClassName, p.Cause)
}
