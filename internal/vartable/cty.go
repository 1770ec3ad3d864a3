package vartable

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	"golang.org/x/image/math/f64"
)

// FromCty converts an HCL literal into the Go value of a variable kind.
// Vectors and rotators are number lists, transforms are objects with optional
// location, rotation and scale attributes, and blendable structs decode
// through gocty using the struct's cty tags. A null value yields the kind's
// default.
func FromCty(t Type, st *datatable.StructType, v cty.Value) (any, error) {
	if v.IsNull() {
		return DefaultValue(t, st), nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%s value must be known", t)
	}

	switch t {
	case TypeBool:
		return decode[bool](v, cty.Bool)
	case TypeInt32:
		return decode[int32](v, cty.Number)
	case TypeFloat:
		return decode[float32](v, cty.Number)
	case TypeDouble:
		return decode[float64](v, cty.Number)
	case TypeVector2d:
		var out f64.Vec2
		if err := numbers(v, out[:]); err != nil {
			return nil, err
		}
		return out, nil
	case TypeVector3d:
		var out f64.Vec3
		if err := numbers(v, out[:]); err != nil {
			return nil, err
		}
		return out, nil
	case TypeVector4d:
		var out f64.Vec4
		if err := numbers(v, out[:]); err != nil {
			return nil, err
		}
		return out, nil
	case TypeRotator3d:
		var r [3]float64
		if err := numbers(v, r[:]); err != nil {
			return nil, err
		}
		return Rotator3d{Pitch: r[0], Yaw: r[1], Roll: r[2]}, nil
	case TypeTransform3d:
		return transformFromCty(v)
	case TypeBlendableStruct:
		if st == nil {
			return nil, fmt.Errorf("blendable struct value has no struct type")
		}
		ptr := reflect.New(st.GoType())
		ptr.Elem().Set(reflect.ValueOf(st.Default()))
		if err := gocty.FromCtyValue(v, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", st.TypeName(), err)
		}
		return ptr.Elem().Interface(), nil
	}
	return nil, fmt.Errorf("unsupported variable type %s", t)
}

func decode[T any](v cty.Value, want cty.Type) (any, error) {
	cv, err := convert.Convert(v, want)
	if err != nil {
		return nil, err
	}
	var out T
	if err := gocty.FromCtyValue(cv, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func numbers(v cty.Value, out []float64) error {
	list, err := convert.Convert(v, cty.List(cty.Number))
	if err != nil {
		return fmt.Errorf("expected a list of %d numbers: %w", len(out), err)
	}
	if n := list.LengthInt(); n != len(out) {
		return fmt.Errorf("expected a list of %d numbers, got %d", len(out), n)
	}
	var vals []float64
	if err := gocty.FromCtyValue(list, &vals); err != nil {
		return err
	}
	copy(out, vals)
	return nil
}

var transformType = cty.ObjectWithOptionalAttrs(map[string]cty.Type{
	"location": cty.List(cty.Number),
	"rotation": cty.List(cty.Number),
	"scale":    cty.List(cty.Number),
}, []string{"location", "rotation", "scale"})

func transformFromCty(v cty.Value) (Transform3d, error) {
	out := IdentityTransform
	obj, err := convert.Convert(v, transformType)
	if err != nil {
		return out, fmt.Errorf("expected a transform object: %w", err)
	}
	fields := []struct {
		name string
		dst  []float64
	}{
		{"location", out.Location[:]},
		{"rotation", out.Rotation[:]},
		{"scale", out.Scale[:]},
	}
	for _, f := range fields {
		attr := obj.GetAttr(f.name)
		if attr.IsNull() {
			continue
		}
		if err := numbers(attr, f.dst); err != nil {
			return out, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return out, nil
}
