package vartable

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/layout"
	"golang.org/x/image/math/f64"
)

// Type is the value kind of a variable.
type Type uint8

const (
	TypeBool Type = iota
	TypeInt32
	TypeFloat
	TypeDouble
	TypeVector2d
	TypeVector3d
	TypeVector4d
	TypeRotator3d
	TypeTransform3d
	TypeBlendableStruct
)

var typeNames = [...]string{
	TypeBool:            "bool",
	TypeInt32:           "int32",
	TypeFloat:           "float",
	TypeDouble:          "double",
	TypeVector2d:        "vector2d",
	TypeVector3d:        "vector3d",
	TypeVector4d:        "vector4d",
	TypeRotator3d:       "rotator3d",
	TypeTransform3d:     "transform3d",
	TypeBlendableStruct: "blendable_struct",
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
	return 0, fmt.Errorf("unknown variable type %q", s)
}

// Rotator3d is an Euler rotation in degrees.
type Rotator3d struct {
	Pitch, Yaw, Roll float64
}

// Transform3d is a location, a rotation quaternion (x, y, z, w) and a scale.
type Transform3d struct {
	Location f64.Vec3
	Rotation f64.Vec4
	Scale    f64.Vec3
}

// IdentityTransform is the default transform value.
var IdentityTransform = Transform3d{
	Rotation: f64.Vec4{0, 0, 0, 1},
	Scale:    f64.Vec3{1, 1, 1},
}

// goType returns the Go type of a built-in kind, or nil for blendable structs.
func (t Type) goType() reflect.Type {
	switch t {
	case TypeBool:
		return reflect.TypeFor[bool]()
	case TypeInt32:
		return reflect.TypeFor[int32]()
	case TypeFloat:
		return reflect.TypeFor[float32]()
	case TypeDouble:
		return reflect.TypeFor[float64]()
	case TypeVector2d:
		return reflect.TypeFor[f64.Vec2]()
	case TypeVector3d:
		return reflect.TypeFor[f64.Vec3]()
	case TypeVector4d:
		return reflect.TypeFor[f64.Vec4]()
	case TypeRotator3d:
		return reflect.TypeFor[Rotator3d]()
	case TypeTransform3d:
		return reflect.TypeFor[Transform3d]()
	default:
		return nil
	}
}

// valueGoType resolves the Go type of a variable, using st for blendable
// structs. It returns false when the pair is not a valid blendable kind.
func valueGoType(t Type, st *datatable.StructType) (reflect.Type, bool) {
	if t == TypeBlendableStruct {
		if st == nil || !st.Inline() {
			return nil, false
		}
		return st.GoType(), true
	}
	rt := t.goType()
	return rt, rt != nil
}

// DefaultValue returns the default value of a variable kind.
func DefaultValue(t Type, st *datatable.StructType) any {
	switch t {
	case TypeTransform3d:
		return IdentityTransform
	case TypeBlendableStruct:
		if st == nil {
			return nil
		}
		return st.Default()
	}
	if rt := t.goType(); rt != nil {
		return reflect.Zero(rt).Interface()
	}
	return nil
}

func sizeAlign(t Type, st *datatable.StructType) (int, int, bool) {
	rt, ok := valueGoType(t, st)
	if !ok {
		return 0, 0, false
	}
	if !layout.PointerFree(rt) {
		return 0, 0, false
	}
	size, align := layout.SizeAlign(rt)
	return size, align, true
}

// TypeFor returns the kind whose Go type is T. Any other type is treated as a
// blendable struct.
func TypeFor[T any]() Type {
	rt := reflect.TypeFor[T]()
	for t := TypeBool; t < TypeBlendableStruct; t++ {
		if t.goType() == rt {
			return t
		}
	}
	return TypeBlendableStruct
}
