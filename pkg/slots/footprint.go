package slots

import (
	"unsafe"

	"github.com/rawbytedev/untagged"
	"github.com/rawbytedev/untagged/internal/common"
)

// tagged is the layout of a conventional optional: value plus flag.
type tagged[T any] struct {
	value T
	ok    bool
}

// Footprint returns the bytes of backing storage a Slots[T] of length n
// uses: the values plus the presence bitmap. Slice headers are not counted.
func Footprint[T any](n int) uintptr {
	return uintptr(n)*untagged.Size[T]() + uintptr(common.BitmapLen(n))
}

// TaggedFootprint returns the bytes used by n tagged optionals of T laid
// out in an array, padding included.
func TaggedFootprint[T any](n int) uintptr {
	var t tagged[T]
	return uintptr(n) * unsafe.Sizeof(t)
}

// TaggedSize and TaggedAlign report the layout of one tagged optional of T.
func TaggedSize[T any]() uintptr {
	var t tagged[T]
	return unsafe.Sizeof(t)
}

func TaggedAlign[T any]() uintptr {
	var t tagged[T]
	return unsafe.Alignof(t)
}

// Footprint returns the backing storage of s in bytes.
func (s *Slots[T]) Footprint() uintptr {
	return Footprint[T](s.Len())
}
