// Package options provides a small generic functional-options helper,
// reused across the codec's config surfaces (wire.Writer construction,
// the top-level friz.Freeze/Thaw call options). Carried over from
// internal/options in arloliu/mebo, which uses the identical pattern to
// configure its NumericEncoder/TextEncoder — the pattern itself has no
// domain content to adapt, only the call sites that use it do.
package options

// Option configures a target of type T, failing fast on invalid input.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps fn as an Option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs every opt against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)

			return nil
		},
	}
}
