package layout

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	testCases := []struct {
		offset, alignment, expected int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 4, 12},
		{5, 1, 5},
		{5, 0, 5},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Align(tc.offset, tc.alignment), "Align(%d, %d)", tc.offset, tc.alignment)
	}
}

func TestAlloc_BaseAlignment(t *testing.T) {
	for _, size := range []int{1, 3, 8, 17, 1024} {
		buf := Alloc(size)
		require.Len(t, buf, size)
		assert.Zero(t, uintptr(unsafe.Pointer(&buf[0]))%BaseAlignment)
	}
	assert.Nil(t, Alloc(0))
}

func TestGrow_MovesUsedBytes(t *testing.T) {
	buf := Alloc(16)
	*At[uint64](buf, 0) = 0xdeadbeef
	*At[uint32](buf, 8) = 42

	grown := Grow(buf, 12, 20)

	assert.Len(t, grown, 32, "growth doubles when that covers the requirement")
	assert.Equal(t, uint64(0xdeadbeef), *At[uint64](grown, 0))
	assert.Equal(t, uint32(42), *At[uint32](grown, 8))

	huge := Grow(grown, 12, 100)
	assert.Len(t, huge, 100, "growth jumps straight to the requirement when doubling is not enough")
	assert.Equal(t, uint32(42), *At[uint32](huge, 8))

	same := Grow(huge, 12, 50)
	assert.Equal(t, len(huge), len(same))
}

func TestPointerFree(t *testing.T) {
	type pod struct {
		A float64
		B [3]int32
		C bool
	}
	type withString struct {
		Name string
	}
	type nested struct {
		Inner pod
		Tags  []int
	}

	assert.True(t, PointerFree(reflect.TypeFor[pod]()))
	assert.True(t, PointerFree(reflect.TypeFor[[4]float64]()))
	assert.False(t, PointerFree(reflect.TypeFor[withString]()))
	assert.False(t, PointerFree(reflect.TypeFor[nested]()))
	assert.False(t, PointerFree(reflect.TypeFor[*pod]()))
	assert.False(t, PointerFree(reflect.TypeFor[any]()))
}

func TestSizeAlign_ZeroSized(t *testing.T) {
	size, align := SizeAlign(reflect.TypeFor[struct{}]())
	assert.Equal(t, 1, size)
	assert.Equal(t, 1, align)
}
