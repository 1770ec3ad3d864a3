package datatable

import (
	"github.com/specialistvlad/camrig/internal/layout"
)

// valueOps is the construct/destruct/copy routine set of one value kind, as
// it is laid out in a buffer slot. Every slot representation is
// bitwise-relocatable: either pointer-free inline bytes or an arena index.
type valueOps struct {
	size, align int
	inline      bool
	construct   func(t *Table, p []byte)
	destruct    func(t *Table, p []byte)
	copy        func(dst *Table, dp []byte, src *Table, sp []byte)
}

// opsFor returns the slot routines for a kind, or false when the combination
// of kind and type object is not supported.
func opsFor(typ Type, container ContainerType, obj TypeObject) (valueOps, bool) {
	elem, ok := elementOps(typ, obj)
	if !ok {
		return valueOps{}, false
	}
	switch container {
	case ContainerScalar:
		return elem, true
	case ContainerArray:
		return arrayOps(elem), true
	default:
		return valueOps{}, false
	}
}

func elementOps(typ Type, obj TypeObject) (valueOps, bool) {
	switch typ {
	case TypeName:
		return podOps(4, 4, nil), true
	case TypeEnum:
		if et, ok := obj.(*EnumType); !ok || et == nil {
			return valueOps{}, false
		}
		return podOps(4, 4, nil), true
	case TypeString:
		return refOps(""), true
	case TypeObjectRef:
		return refOps(ObjectRef{}), true
	case TypeClass:
		return refOps(ClassRef{}), true
	case TypeStruct:
		st, ok := obj.(*StructType)
		if !ok || st == nil {
			return valueOps{}, false
		}
		if st.inline {
			return podOps(st.size, st.align, st.defaultBytes), true
		}
		return refOps(st.defaultValue), true
	default:
		return valueOps{}, false
	}
}

// podOps handles values stored directly in the slot.
func podOps(size, align int, def []byte) valueOps {
	return valueOps{
		size:   size,
		align:  align,
		inline: true,
		construct: func(_ *Table, p []byte) {
			if def != nil {
				copy(p, def)
			} else {
				clear(p)
			}
		},
		destruct: func(_ *Table, p []byte) {
			clear(p)
		},
		copy: func(_ *Table, dp []byte, _ *Table, sp []byte) {
			copy(dp, sp)
		},
	}
}

// refOps handles values kept in the table's arena; the slot holds the index.
func refOps(def any) valueOps {
	return valueOps{
		size:  4,
		align: 4,
		construct: func(t *Table, p []byte) {
			*layout.At[uint32](p, 0) = t.refs.alloc(def)
		},
		destruct: func(t *Table, p []byte) {
			t.refs.release(*layout.At[uint32](p, 0))
		},
		copy: func(dst *Table, dp []byte, src *Table, sp []byte) {
			dst.refs.set(*layout.At[uint32](dp, 0), src.refs.get(*layout.At[uint32](sp, 0)))
		},
	}
}

func arrayOps(elem valueOps) valueOps {
	return valueOps{
		size:  4,
		align: 4,
		construct: func(t *Table, p []byte) {
			*layout.At[uint32](p, 0) = t.refs.alloc(&arrayStorage{elem: elem})
		},
		destruct: func(t *Table, p []byte) {
			idx := *layout.At[uint32](p, 0)
			t.refs.get(idx).(*arrayStorage).resize(t, 0)
			t.refs.release(idx)
		},
		copy: func(dst *Table, dp []byte, src *Table, sp []byte) {
			da := dst.refs.get(*layout.At[uint32](dp, 0)).(*arrayStorage)
			sa := src.refs.get(*layout.At[uint32](sp, 0)).(*arrayStorage)
			da.copyFrom(dst, src, sa)
		},
	}
}
