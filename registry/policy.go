package registry

import (
	"sync/atomic"

	"github.com/mtlynch/friz/compress"
)

// FallbackPolicy selects the behavior of the fallback chain (spec.md §4.6)
// when a value has no direct or custom encoder.
type FallbackPolicy uint8

const (
	// PolicyStrict raises Unfreezable once every fallback step fails.
	PolicyStrict FallbackPolicy = iota
	// PolicyWriteUnfreezable encodes an UnfreezableMarker map instead of
	// raising.
	PolicyWriteUnfreezable
)

type fallbackConfig struct {
	policy FallbackPolicy
	custom EncodeFunc // replaces the entire chain when non-nil
}

var fallback atomic.Pointer[fallbackConfig]

func init() {
	fallback.Store(&fallbackConfig{policy: PolicyStrict})
}

// SetFreezeFallback installs the process-wide fallback policy
// (spec.md §4.6, §6.2). It clears any previously installed custom
// fallback callable.
func SetFreezeFallback(policy FallbackPolicy) {
	fallback.Store(&fallbackConfig{policy: policy})
}

// SetCustomFreezeFallback installs a callable that takes over the entire
// fallback chain (spec.md §4.6).
func SetCustomFreezeFallback(fn EncodeFunc) {
	fallback.Store(&fallbackConfig{custom: fn})
}

// Fallback returns the active policy and, if installed, the custom
// fallback callable (which takes precedence over policy when non-nil).
func Fallback() (FallbackPolicy, EncodeFunc) {
	cfg := fallback.Load()

	return cfg.policy, cfg.custom
}

// AutoCompressorFunc picks a compressor based on the raw encoded payload,
// the "callable" form of the compressor option (spec.md §4.7 step 2).
// A nil return means "use none".
type AutoCompressorFunc func(data []byte) compress.Compressor

var autoCompressor atomic.Pointer[AutoCompressorFunc]

// SetAutoCompressor installs the process-wide callable consulted by
// `auto` compressor resolution when no explicit compressor/size heuristic
// applies (spec.md §4.7 step 2, §6.2).
func SetAutoCompressor(fn AutoCompressorFunc) {
	autoCompressor.Store(&fn)
}

// AutoCompressor returns the installed callable, if any.
func AutoCompressor() (AutoCompressorFunc, bool) {
	p := autoCompressor.Load()
	if p == nil {
		return nil, false
	}

	return *p, true
}
