// Package hash provides the stable hash used for the registry's
// keyword-id custom types (spec.md §4.5). Grounded verbatim on
// internal/hash/id.go in arloliu/mebo, which uses the same xxHash64
// primitive for its own metric-name identification.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the 64-bit xxHash of data.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
