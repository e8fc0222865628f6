package option

// Option holds either a value of type T or nothing.
type Option[T any] struct {
	value  T
	isSome bool
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, isSome: true}
}

func (x *Option[T]) IsSome() bool {
	return x.isSome
}

func (x *Option[T]) IsNone() bool {
	return !x.isSome
}

func (x *Option[T]) Get() T {
	if !x.isSome {
		panic("option is none")
	}
	return x.value
}

// GetOr returns the contained value or the given fallback.
func (x *Option[T]) GetOr(fallback T) T {
	if !x.isSome {
		return fallback
	}
	return x.value
}

// Ptr returns a pointer to a copy of the contained value, or nil.
func (x *Option[T]) Ptr() *T {
	if !x.isSome {
		return nil
	}
	v := x.value
	return &v
}

// FromPtr converts a possibly-nil pointer into an option.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}
