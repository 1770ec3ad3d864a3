package datatable

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/specialistvlad/camrig/internal/ensure"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/layout"
)

// classify maps a Go value type to the entry kind it reads and writes. Any
// type that is not one of the built-in value types is an opaque struct.
func classify[T any]() (Type, reflect.Type) {
	switch any((*T)(nil)).(type) {
	case *Name:
		return TypeName, nil
	case *string:
		return TypeString, nil
	case *EnumValue:
		return TypeEnum, nil
	case *ObjectRef:
		return TypeObjectRef, nil
	case *ClassRef:
		return TypeClass, nil
	default:
		return TypeStruct, reflect.TypeFor[T]()
	}
}

// matches reports whether an entry can be accessed as the given kind.
func (e *entry) matches(typ Type, container ContainerType, goType reflect.Type) bool {
	if e.typ != typ || e.container != container {
		return false
	}
	if typ == TypeStruct {
		st, _ := e.typeObject.(*StructType)
		return st != nil && st.goType == goType
	}
	return true
}

// resolve finds the entry for an accessor, asserting on a missing identity or
// a kind mismatch.
func resolve[T any](t *Table, id identity.ID, container ContainerType) *entry {
	e := t.lookup(id)
	if !ensure.That(e != nil, "datatable: no entry with id %s", id) {
		return nil
	}
	return check[T](e, container)
}

// tryResolve is resolve without the missing-identity assertion.
func tryResolve[T any](t *Table, id identity.ID, container ContainerType) *entry {
	e := t.lookup(id)
	if e == nil {
		return nil
	}
	return check[T](e, container)
}

func check[T any](e *entry, container ContainerType) *entry {
	typ, goType := classify[T]()
	if !ensure.That(e.matches(typ, container, goType),
		"datatable: entry %s is %s %s, accessed as %s %s (%v)", e.id, e.container, e.typ, container, typ, reflect.TypeFor[T]()) {
		return nil
	}
	return e
}

// Get returns the value of a scalar entry.
func Get[T any](t *Table, id identity.ID) T {
	var zero T
	e := resolve[T](t, id, ContainerScalar)
	if e == nil {
		return zero
	}
	return read[T](t, e.typeObject, t.slot(e))
}

// TryGet returns the value of a scalar entry, or false when no entry has the
// given identity.
func TryGet[T any](t *Table, id identity.ID) (T, bool) {
	var zero T
	e := tryResolve[T](t, id, ContainerScalar)
	if e == nil {
		return zero, false
	}
	return read[T](t, e.typeObject, t.slot(e)), true
}

// Set writes a scalar entry and marks it written this frame.
func Set[T any](t *Table, id identity.ID, v T) {
	set(t, id, v, true)
}

// SetNoFrame writes a scalar entry without marking it written this frame.
func SetNoFrame[T any](t *Table, id identity.ID, v T) {
	set(t, id, v, false)
}

func set[T any](t *Table, id identity.ID, v T, thisFrame bool) {
	e := resolve[T](t, id, ContainerScalar)
	if e == nil {
		return
	}
	if !write(t, e.typeObject, t.slot(e), v) {
		return
	}
	t.markWritten(e, thisFrame)
}

// ArrayLen returns the element count of an array entry.
func (t *Table) ArrayLen(id identity.ID) int {
	a := t.arrayFor(id)
	if a == nil {
		return 0
	}
	return a.len
}

// ResizeArray grows or shrinks an array entry to n elements, constructing or
// destructing only the elements past the shorter of the two lengths.
func (t *Table) ResizeArray(id identity.ID, n int) {
	if a := t.arrayFor(id); a != nil {
		a.resize(t, n)
	}
}

func (t *Table) arrayFor(id identity.ID) *arrayStorage {
	e := t.lookup(id)
	if !ensure.That(e != nil, "datatable: no entry with id %s", id) {
		return nil
	}
	if !ensure.That(e.container == ContainerArray, "datatable: entry %s is not an array", id) {
		return nil
	}
	return t.array(e)
}

func (t *Table) array(e *entry) *arrayStorage {
	return t.refs.get(*layout.At[uint32](t.slot(e), 0)).(*arrayStorage)
}

// GetArray returns a copy of the elements of an array entry.
func GetArray[T any](t *Table, id identity.ID) []T {
	e := resolve[T](t, id, ContainerArray)
	if e == nil {
		return nil
	}
	return readArray[T](t, e)
}

// TryGetArray is GetArray that returns false instead of asserting when no
// entry has the given identity.
func TryGetArray[T any](t *Table, id identity.ID) ([]T, bool) {
	e := tryResolve[T](t, id, ContainerArray)
	if e == nil {
		return nil, false
	}
	return readArray[T](t, e), true
}

func readArray[T any](t *Table, e *entry) []T {
	a := t.array(e)
	out := make([]T, a.len)
	for i := range out {
		out[i] = read[T](t, e.typeObject, a.at(i))
	}
	return out
}

// SetArray replaces the contents of an array entry.
func SetArray[T any](t *Table, id identity.ID, values []T) {
	e := resolve[T](t, id, ContainerArray)
	if e == nil {
		return
	}
	a := t.array(e)
	a.resize(t, len(values))
	for i, v := range values {
		if !write(t, e.typeObject, a.at(i), v) {
			return
		}
	}
	t.markWritten(e, true)
}

// ArrayAt returns one element of an array entry.
func ArrayAt[T any](t *Table, id identity.ID, i int) T {
	var zero T
	e := resolve[T](t, id, ContainerArray)
	if e == nil {
		return zero
	}
	a := t.array(e)
	if !ensure.That(i >= 0 && i < a.len, "datatable: index %d out of range [0,%d) for entry %s", i, a.len, id) {
		return zero
	}
	return read[T](t, e.typeObject, a.at(i))
}

// SetArrayAt writes one element of an array entry.
func SetArrayAt[T any](t *Table, id identity.ID, i int, v T) {
	e := resolve[T](t, id, ContainerArray)
	if e == nil {
		return
	}
	a := t.array(e)
	if !ensure.That(i >= 0 && i < a.len, "datatable: index %d out of range [0,%d) for entry %s", i, a.len, id) {
		return
	}
	if write(t, e.typeObject, a.at(i), v) {
		t.markWritten(e, true)
	}
}

func read[T any](t *Table, obj TypeObject, p []byte) T {
	var out T
	switch dst := any(&out).(type) {
	case *Name:
		*dst = Name{handle: *layout.At[uint32](p, 0)}
	case *EnumValue:
		*dst = EnumValue{Enum: obj.(*EnumType), Index: *layout.At[int32](p, 0)}
	case *string, *ObjectRef, *ClassRef:
		out = t.refs.get(*layout.At[uint32](p, 0)).(T)
	default:
		if obj.(*StructType).inline {
			out = *layout.At[T](p, 0)
		} else {
			out = t.refs.get(*layout.At[uint32](p, 0)).(T)
		}
	}
	return out
}

func write[T any](t *Table, obj TypeObject, p []byte, v T) bool {
	switch src := any(v).(type) {
	case Name:
		*layout.At[uint32](p, 0) = src.handle
	case EnumValue:
		et := obj.(*EnumType)
		if !ensure.That(src.Enum == nil || src.Enum == et, "datatable: enum value of %s written to %s entry", enumName(src.Enum), et.name) {
			return false
		}
		if !ensure.That(src.Index >= 0 && int(src.Index) < et.Len(), "datatable: enum index %d out of range for %s", src.Index, et.name) {
			return false
		}
		*layout.At[int32](p, 0) = src.Index
	case string, ObjectRef, ClassRef:
		t.refs.set(*layout.At[uint32](p, 0), src)
	default:
		if obj.(*StructType).inline {
			*layout.At[T](p, 0) = v
		} else {
			t.refs.set(*layout.At[uint32](p, 0), v)
		}
	}
	return true
}

func enumName(e *EnumType) string {
	if e == nil {
		return "<nil>"
	}
	return e.name
}

// Value returns the value of any entry as an untyped Go value: the value type
// for scalars and a slice of it for arrays.
func (t *Table) Value(id identity.ID) (any, bool) {
	e := t.lookup(id)
	if e == nil {
		return nil, false
	}
	if e.container == ContainerScalar {
		return readAny(t, e.typ, e.typeObject, t.slot(e)), true
	}
	a := t.array(e)
	out := make([]any, a.len)
	for i := range out {
		out[i] = readAny(t, e.typ, e.typeObject, a.at(i))
	}
	return out, true
}

// SetValue writes any entry from an untyped Go value. Array entries accept a
// slice of the element type or []any. Unlike the typed accessors it reports a
// mismatch as an error, which makes it suitable for loaders.
func (t *Table) SetValue(id identity.ID, v any) error {
	e := t.lookup(id)
	if e == nil {
		return fmt.Errorf("no context data entry with id %s", id)
	}
	if e.container == ContainerScalar {
		if err := writeAny(t, e.typ, e.typeObject, t.slot(e), v); err != nil {
			return fmt.Errorf("entry %s: %w", id, err)
		}
		t.markWritten(e, true)
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("entry %s: array entry requires a slice, got %T", id, v)
	}
	a := t.array(e)
	a.resize(t, rv.Len())
	for i := range rv.Len() {
		if err := writeAny(t, e.typ, e.typeObject, a.at(i), rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("entry %s[%d]: %w", id, i, err)
		}
	}
	t.markWritten(e, true)
	return nil
}

func readAny(t *Table, typ Type, obj TypeObject, p []byte) any {
	switch typ {
	case TypeName:
		return Name{handle: *layout.At[uint32](p, 0)}
	case TypeEnum:
		return EnumValue{Enum: obj.(*EnumType), Index: *layout.At[int32](p, 0)}
	case TypeStruct:
		st := obj.(*StructType)
		if st.inline {
			return reflect.NewAt(st.goType, unsafe.Pointer(&p[0])).Elem().Interface()
		}
	}
	return t.refs.get(*layout.At[uint32](p, 0))
}

func writeAny(t *Table, typ Type, obj TypeObject, p []byte, v any) error {
	switch typ {
	case TypeName:
		switch n := v.(type) {
		case Name:
			*layout.At[uint32](p, 0) = n.handle
		case string:
			*layout.At[uint32](p, 0) = MakeName(n).handle
		default:
			return fmt.Errorf("expected a name, got %T", v)
		}
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", v)
		}
		t.refs.set(*layout.At[uint32](p, 0), s)
	case TypeEnum:
		et := obj.(*EnumType)
		var idx int32
		switch ev := v.(type) {
		case EnumValue:
			if ev.Enum != nil && ev.Enum != et {
				return fmt.Errorf("expected a value of enum %s, got %s", et.name, ev.Enum.name)
			}
			idx = ev.Index
		case string:
			i, ok := et.Index(ev)
			if !ok {
				return fmt.Errorf("enum %s has no value %q", et.name, ev)
			}
			idx = i
		default:
			return fmt.Errorf("expected an enum value, got %T", v)
		}
		if idx < 0 || int(idx) >= et.Len() {
			return fmt.Errorf("enum index %d out of range for %s", idx, et.name)
		}
		*layout.At[int32](p, 0) = idx
	case TypeObjectRef:
		r, ok := v.(ObjectRef)
		if !ok {
			return fmt.Errorf("expected an object reference, got %T", v)
		}
		t.refs.set(*layout.At[uint32](p, 0), r)
	case TypeClass:
		r, ok := v.(ClassRef)
		if !ok {
			return fmt.Errorf("expected a class reference, got %T", v)
		}
		t.refs.set(*layout.At[uint32](p, 0), r)
	case TypeStruct:
		st := obj.(*StructType)
		if reflect.TypeOf(v) != st.goType {
			return fmt.Errorf("expected struct %s (%v), got %T", st.name, st.goType, v)
		}
		if st.inline {
			reflect.NewAt(st.goType, unsafe.Pointer(&p[0])).Elem().Set(reflect.ValueOf(v))
		} else {
			t.refs.set(*layout.At[uint32](p, 0), v)
		}
	default:
		return fmt.Errorf("unsupported data type %s", typ)
	}
	return nil
}
