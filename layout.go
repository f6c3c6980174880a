package untagged

import "unsafe"

// Size returns the size in bytes of Option[T], which is always the size of T.
func Size[T any]() uintptr {
	var o Option[T]
	return unsafe.Sizeof(o)
}

// Align returns the alignment of Option[T], which is always the alignment of T.
func Align[T any]() uintptr {
	var o Option[T]
	return unsafe.Alignof(o)
}

// Bytes returns the raw storage of o, Size[T]() bytes long, aliasing o.
//
// Bytes written here are read back by the accessors as a T without
// conversion. This is only sound for T that contain no pointers; the
// garbage collector does not see pointers written as bytes.
func (o *Option[T]) Bytes() []byte {
	n := unsafe.Sizeof(o.some)
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&o.some)), n)
}
