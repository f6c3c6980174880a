// Package slots is a fixed-length array of optional values whose
// presence is kept in one shared bitmap.
//
// Each slot is an untagged.Option, so a Slots[T] of length n costs
// n*sizeof(T) bytes plus (n+7)/8 bytes of bitmap. An array of tagged
// optionals pays a discriminant, and usually padding, per element.
//
// Slots is the safe layer over untagged.Option. Every access checks the
// bitmap first, and every path that drops a present value runs the
// release hook. Slots is not safe for concurrent use.
package slots

import (
	"iter"

	"github.com/rawbytedev/untagged"
	"github.com/rawbytedev/untagged/internal/common"
)

type Slots[T any] struct {
	vals    []untagged.Option[T]
	present []byte
	release func(*T)
}

// New returns n empty slots. release, if non-nil, is called on every
// value that leaves the array without being handed back to the caller:
// on overwrite by Set, on Clear, and on Close.
func New[T any](n int, release func(*T)) *Slots[T] {
	if n < 0 {
		panic("slots: negative length")
	}
	return &Slots[T]{
		vals:    make([]untagged.Option[T], n),
		present: make([]byte, common.BitmapLen(n)),
		release: release,
	}
}

func (s *Slots[T]) Len() int { return len(s.vals) }

// Count returns the number of present values.
func (s *Slots[T]) Count() int { return common.PopCount(s.present) }

func (s *Slots[T]) Has(i int) bool {
	s.check(i)
	return common.TestBit(s.present, i)
}

// Get returns a copy of the value in slot i and whether one was present.
func (s *Slots[T]) Get(i int) (T, bool) {
	if !s.Has(i) {
		var zero T
		return zero, false
	}
	return *s.vals[i].AssumeInitRef(), true
}

// Ref returns a pointer to the value in slot i, or nil if the slot is
// empty. The pointer is valid until the slot is next Set, Taken or Cleared.
func (s *Slots[T]) Ref(i int) *T {
	if !s.Has(i) {
		return nil
	}
	return s.vals[i].AssumeInitMut()
}

// Set stores v in slot i. If a value was already present it is released
// with the hook; without a hook the old value is returned so the caller
// can release it.
func (s *Slots[T]) Set(i int, v T) (prev T, replaced bool) {
	if s.Has(i) {
		replaced = true
		if s.release != nil {
			s.release(s.vals[i].AssumeInitMut())
		} else {
			prev = *s.vals[i].AssumeInitRef()
		}
	}
	*s.vals[i].AssumeInitMut() = v
	common.SetBit(s.present, i)
	return prev, replaced
}

// Take moves the value out of slot i without releasing it.
func (s *Slots[T]) Take(i int) (T, bool) {
	if !s.Has(i) {
		var zero T
		return zero, false
	}
	common.ClearBit(s.present, i)
	return s.vals[i].Take(), true
}

// Clear releases the value in slot i, if any, and empties the slot.
func (s *Slots[T]) Clear(i int) bool {
	v, ok := s.Take(i)
	if ok && s.release != nil {
		s.release(&v)
	}
	return ok
}

// Close releases every present value and empties all slots. The slots
// stay usable afterwards.
func (s *Slots[T]) Close() error {
	for i := range s.vals {
		if common.TestBit(s.present, i) {
			s.Clear(i)
		}
	}
	return nil
}

// All iterates over present values in index order. The yielded pointer
// follows the same rules as Ref.
func (s *Slots[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range s.vals {
			if !common.TestBit(s.present, i) {
				continue
			}
			if !yield(i, s.vals[i].AssumeInitMut()) {
				return
			}
		}
	}
}

func (s *Slots[T]) check(i int) {
	if i < 0 || i >= len(s.vals) {
		panic(errIndex(i, len(s.vals)))
	}
}
