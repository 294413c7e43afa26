// Package value defines the domain value types the codec round-trips that
// have no direct Go built-in equivalent (spec.md §3): Keyword/Symbol,
// Regex, arbitrary-precision Ratio, BigDecimal, the distinct
// List/Seq/Set/SortedSet/Queue collection flavors, SortedMap, UUID, Record,
// and metadata-wrapped values.
//
// It exists as its own package (rather than living directly under the
// root friz package) so that wire, which needs to switch on these
// concrete types during dispatch, does not import the root package that
// in turn imports wire. The root package re-exports every type here under
// the same name, so callers never see this package directly.
package value

import (
	"fmt"
	"iter"
	"math/big"
)

// Char is a single UTF-16 code unit (spec.md §3). It is a distinct named
// type rather than a plain rune/int32 so the writer can tell a Char value
// apart from a fixed-width 32-bit Int during dispatch.
type Char rune

// Keyword is a namespaced-or-bare interned name, written with a leading
// ':' in its textual form (spec.md §3 "Keyword / Symbol").
type Keyword struct {
	Namespace string
	Name      string
}

func (k Keyword) String() string {
	if k.Namespace == "" {
		return ":" + k.Name
	}

	return ":" + k.Namespace + "/" + k.Name
}

// Symbol is the unquoted counterpart of Keyword.
type Symbol struct {
	Namespace string
	Name      string
}

func (s Symbol) String() string {
	if s.Namespace == "" {
		return s.Name
	}

	return s.Namespace + "/" + s.Name
}

// Regex carries a pattern source string without requiring it to compile
// (spec.md §3 lists Regex as intentionally non-comparable for round-trip
// testing purposes, since two equivalent patterns may not compare equal).
type Regex struct {
	Source string
}

// Ratio is an exact numerator/denominator pair of arbitrary-precision
// integers.
type Ratio struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// BigDecimal is an arbitrary-precision decimal: Unscaled * 10^-Scale.
type BigDecimal struct {
	Unscaled *big.Int
	Scale    int32
}

func (d BigDecimal) String() string {
	return fmt.Sprintf("%sE-%d", d.Unscaled.String(), d.Scale)
}

// UUID is a 128-bit identifier transmitted as two 64-bit halves
// (spec.md §3).
type UUID struct {
	Hi uint64
	Lo uint64
}

// List is an ordered sequence with list semantics (distinct wire variant
// from Vector/Seq despite an identical Go representation).
type List []any

// Seq is an ordered sequence that may be lazily produced; the writer
// buffers it once to learn its length (spec.md §4.3 "uncounted").
type Seq struct {
	// Items is eagerly available content.
	Items []any
	// Lazy, when non-nil, takes priority over Items and is drained exactly
	// once during freeze (spec.md §4.3 rule 2 "uncounted").
	Lazy iter.Seq[any]
}

// Set is an unordered collection with set semantics; duplicates are the
// caller's responsibility, matching the host map's source value's
// iteration content.
type Set []any

// SortedSet preserves its input order on the wire; the codec does not
// transmit a comparator (spec.md §4.3 "Ordering policy"). Callers are
// expected to present Items already in sorted order.
type SortedSet []any

// Queue is an ordered sequence with FIFO semantics.
type Queue []any

// SortedMap is a Map variant whose Keys/Values are presented in the
// caller's intended order; like SortedSet, no comparator crosses the
// wire.
type SortedMap struct {
	Keys   []any
	Values []any
}

// Record is a named typed map: a fully-qualified class/type name plus an
// ordinary map body (spec.md §4.3 rule 4).
type Record struct {
	TypeName string
	Keys     []any
	Values   []any
}

// WithMeta wraps Value with an associated metadata map, encoded as a
// META_TAG prefix rather than a container (spec.md §4.3 rule 1, §9).
//
// The non-fatal "unthawable sentinel" value returned for a failed
// record/native-object/textual reconstruction (spec.md §4.4, §7) is
// errs.PartialValueFailure rather than a type in this package, since it
// is fundamentally an error carrying inline data rather than a domain
// value.
type WithMeta struct {
	Meta  map[any]any
	Value any
}
