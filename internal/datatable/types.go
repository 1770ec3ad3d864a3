package datatable

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/specialistvlad/camrig/internal/layout"
)

// Type is the value kind of a table entry.
type Type uint8

const (
	TypeName Type = iota
	TypeString
	TypeEnum
	TypeStruct
	TypeObjectRef
	TypeClass
)

var typeNames = [...]string{
	TypeName:      "name",
	TypeString:    "string",
	TypeEnum:      "enum",
	TypeStruct:    "struct",
	TypeObjectRef: "object",
	TypeClass:     "class",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType returns the Type with the given lower-case name.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown data type %q", s)
}

// ContainerType says whether an entry holds one value or a resizable array.
type ContainerType uint8

const (
	ContainerScalar ContainerType = iota
	ContainerArray
)

func (c ContainerType) String() string {
	switch c {
	case ContainerScalar:
		return "scalar"
	case ContainerArray:
		return "array"
	default:
		return fmt.Sprintf("ContainerType(%d)", uint8(c))
	}
}

// ParseContainerType returns the ContainerType with the given name. The empty
// string means scalar.
func ParseContainerType(s string) (ContainerType, error) {
	switch s {
	case "", "scalar":
		return ContainerScalar, nil
	case "array":
		return ContainerArray, nil
	default:
		return 0, fmt.Errorf("unknown container type %q", s)
	}
}

// TypeObject is the auxiliary type of an enum, struct or class entry.
// Type objects are compared by pointer identity.
type TypeObject interface {
	TypeName() string
}

// EnumType describes the values of an enum entry. The first value is the
// default.
type EnumType struct {
	name   string
	values []string
}

// NewEnumType creates an enum type with at least one value.
func NewEnumType(name string, values ...string) *EnumType {
	if len(values) == 0 {
		panic(fmt.Sprintf("enum type %q must declare at least one value", name))
	}
	return &EnumType{name: name, values: slices.Clone(values)}
}

func (e *EnumType) TypeName() string { return e.name }

// Len returns the number of values.
func (e *EnumType) Len() int { return len(e.values) }

// ValueName returns the name of the value at index i.
func (e *EnumType) ValueName(i int32) string {
	if i < 0 || int(i) >= len(e.values) {
		return fmt.Sprintf("%s(%d)", e.name, i)
	}
	return e.values[i]
}

// Index returns the index of the named value.
func (e *EnumType) Index(value string) (int32, bool) {
	i := slices.Index(e.values, value)
	return int32(i), i >= 0
}

// ClassType names a class of objects. Class references store a ClassType.
type ClassType struct {
	name   string
	parent *ClassType
}

// NewClassType creates a class, optionally derived from parent.
func NewClassType(name string, parent *ClassType) *ClassType {
	return &ClassType{name: name, parent: parent}
}

func (c *ClassType) TypeName() string { return c.name }

// IsChildOf reports whether c is base or derives from it.
func (c *ClassType) IsChildOf(base *ClassType) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur == base {
			return true
		}
	}
	return false
}

// StructType describes an opaque struct entry backed by a Go struct type.
type StructType struct {
	name         string
	goType       reflect.Type
	inline       bool
	size, align  int
	defaultValue any
	defaultBytes []byte
}

// NewStructType registers the Go type T as an opaque struct kind with the
// given default value. Pointer-free types are stored inline in the table
// buffer; other types are kept in the reference arena.
func NewStructType[T any](name string, def T) *StructType {
	rt := reflect.TypeFor[T]()
	st := &StructType{
		name:         name,
		goType:       rt,
		inline:       layout.PointerFree(rt),
		defaultValue: def,
	}
	st.size, st.align = 4, 4
	if st.inline {
		st.size, st.align = layout.SizeAlign(rt)
		st.defaultBytes = layout.Alloc(st.size)
		*layout.At[T](st.defaultBytes, 0) = def
	}
	return st
}

func (s *StructType) TypeName() string { return s.name }

// GoType returns the Go type backing the struct.
func (s *StructType) GoType() reflect.Type { return s.goType }

// Inline reports whether values are stored directly in the table buffer.
func (s *StructType) Inline() bool { return s.inline }

// Default returns the default value, as a T.
func (s *StructType) Default() any { return s.defaultValue }

// EnumValue is the Go representation of an enum entry value.
type EnumValue struct {
	Enum  *EnumType
	Index int32
}

func (v EnumValue) String() string {
	if v.Enum == nil {
		return fmt.Sprintf("%d", v.Index)
	}
	return v.Enum.ValueName(v.Index)
}

// ObjectRef is the Go representation of an object reference entry. The zero
// value is the null reference.
type ObjectRef struct {
	Target any
}

// IsNull reports whether the reference points at nothing.
func (r ObjectRef) IsNull() bool { return r.Target == nil }

// ClassRef is the Go representation of a class reference entry. The zero
// value is the null class.
type ClassRef struct {
	Class *ClassType
}

// IsNull reports whether the reference points at nothing.
func (r ClassRef) IsNull() bool { return r.Class == nil }
