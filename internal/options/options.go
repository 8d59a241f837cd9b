// Package options implements the functional-option pattern shared by the
// configurable types in this module.
package options

// Option configures a value of type T and may reject invalid settings.
type Option[T any] func(T) error

// New adapts a fallible configuration function into an Option.
func New[T any](fn func(T) error) Option[T] {
	return fn
}

// NoError adapts a configuration function that cannot fail into an Option.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)

		return nil
	}
}

// Apply runs the options against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}
