// Package layout provides the aligned byte buffers that back the runtime
// tables, along with the typed views used to read and write values in place.
//
// Every value stored in a buffer must be bitwise-relocatable: growing a buffer
// moves its bytes verbatim, and the garbage collector never scans it. The
// PointerFree trait is the check that enforces this for Go types.
package layout

import (
	"reflect"
	"unsafe"
)

// BaseAlignment is the alignment of every buffer returned by Alloc and Grow.
const BaseAlignment = 8

// Align rounds offset up to the next multiple of alignment, which must be a
// power of two.
func Align(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	return (offset + alignment - 1) &^ (alignment - 1)
}

// Alloc returns a zeroed buffer of the given size whose first byte is
// BaseAlignment-aligned.
func Alloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	words := make([]uint64, (size+BaseAlignment-1)/BaseAlignment)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
}

// Grow reallocates buf so that it holds at least required bytes. The new size
// is max(2*len(buf), required). The first used bytes are moved verbatim.
func Grow(buf []byte, used, required int) []byte {
	if required <= len(buf) {
		return buf
	}
	size := max(2*len(buf), required)
	grown := Alloc(size)
	copy(grown, buf[:used])
	return grown
}

// At returns a typed view of buf at off. T must be pointer-free and off must
// satisfy T's alignment.
func At[T any](buf []byte, off int) *T {
	return (*T)(unsafe.Pointer(&buf[off]))
}

// PointerFree reports whether values of t contain no Go pointers, which makes
// them safe to store in a buffer and to move with a byte copy.
func PointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || PointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !PointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SizeAlign returns the in-buffer footprint of t. Zero-sized types occupy one
// byte so that every entry has a distinct, addressable offset.
func SizeAlign(t reflect.Type) (size, align int) {
	size, align = int(t.Size()), t.Align()
	if size == 0 {
		size = 1
	}
	if align < 1 {
		align = 1
	}
	return size, align
}
