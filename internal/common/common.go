package common

import (
	"math/bits"
	"reflect"
)

// IsFixedKind reports whether k is a fixed-size primitive kind.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int, reflect.Uint, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// IsPlain reports whether values of t can be copied as raw bytes: no
// pointers, strings, slices, maps, interfaces, chans or funcs anywhere
// inside.
func IsPlain(t reflect.Type) bool {
	switch k := t.Kind(); {
	case IsFixedKind(k):
		return true
	case k == reflect.Array:
		return IsPlain(t.Elem())
	case k == reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !IsPlain(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// BitmapLen returns the number of bytes needed for n presence bits.
func BitmapLen(n int) int {
	return (n + 7) / 8
}

// TestBit reports whether bit i of bm is set.
func TestBit(bm []byte, i int) bool {
	return bm[i>>3]&(1<<(i&7)) != 0
}

// SetBit sets bit i of bm.
func SetBit(bm []byte, i int) {
	bm[i>>3] |= 1 << (i & 7)
}

// ClearBit clears bit i of bm.
func ClearBit(bm []byte, i int) {
	bm[i>>3] &^= 1 << (i & 7)
}

// PopCount returns the number of set bits in bm.
func PopCount(bm []byte) int {
	n := 0
	for _, b := range bm {
		n += bits.OnesCount8(b)
	}
	return n
}

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [10]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// It returns 0, 0 if b ends before the varint does or the varint overflows.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == 10 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
