package datatable

import (
	"github.com/specialistvlad/camrig/internal/layout"
)

// arrayStorage is the type-erased growable array behind an array entry.
// Elements use the same slot representation as scalar entries of the same
// kind, at a stride of the aligned element size.
type arrayStorage struct {
	elem valueOps
	data []byte
	len  int
}

func (a *arrayStorage) stride() int {
	return layout.Align(a.elem.size, a.elem.align)
}

func (a *arrayStorage) at(i int) []byte {
	s := a.stride()
	return a.data[i*s : (i+1)*s]
}

// resize constructs or destructs elements at the tail so that the array holds
// n elements. Elements below min(len, n) are untouched.
func (a *arrayStorage) resize(t *Table, n int) {
	if n < 0 {
		n = 0
	}
	s := a.stride()
	if n > a.len {
		a.data = layout.Grow(a.data, a.len*s, n*s)
		for i := a.len; i < n; i++ {
			a.elem.construct(t, a.at(i))
		}
	} else {
		for i := n; i < a.len; i++ {
			a.elem.destruct(t, a.at(i))
		}
	}
	a.len = n
}

func (a *arrayStorage) copyFrom(dst, src *Table, other *arrayStorage) {
	a.resize(dst, other.len)
	for i := range other.len {
		a.elem.copy(dst, a.at(i), src, other.at(i))
	}
}
