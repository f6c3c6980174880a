// Package untagged provides Option, a slot that either holds a T or
// nothing, without a discriminant.
//
// Option[T] has exactly the size and alignment of T. It does not know
// whether it holds a value, so every accessor trusts the caller. Presence
// must be tracked outside the slot: a side flag, a shared bitmap (see
// pkg/slots), or structural reasoning such as "set during construction,
// never cleared".
//
// Option never calls Close, Release, or any other method on the value it
// holds. A resource-owning value placed in a slot must be taken out with
// Take and released by the caller, or it leaks. Assigning a new Option
// over one that still holds such a value leaks the old value as well.
//
// Option has no synchronization. Concurrent use of a slot and of the
// caller's presence state must be ordered by the caller.
package untagged

// Option is storage for a T that may or may not be initialized.
//
// The zero Option is the none state. Reading it as a T yields the zero
// pattern, which is only meaningful if the caller put it there.
type Option[T any] struct {
	some T
}

// None returns an Option holding no value.
//
// Calling any accessor on the result violates the Option contract.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Some returns an Option containing v.
//
// v is not released when the Option is discarded. Call Take if v
// needs to be released.
func Some[T any](v T) Option[T] {
	return Option[T]{some: v}
}

// AssumeInitRef returns a read view of the stored T.
//
// The caller must know that o holds a live value and must not write
// through the returned pointer. No check is made.
func (o *Option[T]) AssumeInitRef() *T {
	return &o.some
}

// AssumeInitMut returns a read/write view of the stored T.
//
// The caller must either know that o holds a live value, or be about to
// overwrite it completely. Overwriting a resource-owning value without
// releasing it first leaks that resource.
func (o *Option[T]) AssumeInitMut() *T {
	return &o.some
}

// Take moves the T out of o and leaves o holding no value.
//
// This is how a value is handed back for release. Requires that o holds
// a live T.
func (o *Option[T]) Take() T {
	v := o.some
	var zero T
	o.some = zero
	return v
}
