package vartable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/image/math/f64"
)

func nums(vs ...float64) cty.Value {
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.NumberFloatVal(v)
	}
	return cty.TupleVal(out)
}

func TestFromCty(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		in   cty.Value
		want any
	}{
		{"bool", TypeBool, cty.True, true},
		{"bool from string", TypeBool, cty.StringVal("true"), true},
		{"int32", TypeInt32, cty.NumberIntVal(-3), int32(-3)},
		{"float", TypeFloat, cty.NumberFloatVal(90), float32(90)},
		{"double", TypeDouble, cty.NumberFloatVal(0.25), 0.25},
		{"vector2d", TypeVector2d, nums(1, 2), f64.Vec2{1, 2}},
		{"vector3d", TypeVector3d, nums(0, 40, 10), f64.Vec3{0, 40, 10}},
		{"vector4d", TypeVector4d, nums(1, 2, 3, 4), f64.Vec4{1, 2, 3, 4}},
		{"rotator3d", TypeRotator3d, nums(-10, 45, 0), Rotator3d{Pitch: -10, Yaw: 45}},
		{"null is default", TypeTransform3d, cty.NullVal(cty.DynamicPseudoType), IdentityTransform},
		{
			"transform keeps unset parts",
			TypeTransform3d,
			cty.ObjectVal(map[string]cty.Value{"location": nums(1, 2, 3)}),
			Transform3d{Location: f64.Vec3{1, 2, 3}, Rotation: f64.Vec4{0, 0, 0, 1}, Scale: f64.Vec3{1, 1, 1}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromCty(tc.typ, nil, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromCty_BlendableStruct(t *testing.T) {
	got, err := FromCty(TypeBlendableStruct, springType, cty.ObjectVal(map[string]cty.Value{
		"stiffness": cty.NumberIntVal(4),
		"damping":   cty.NumberFloatVal(0.75),
	}))
	require.NoError(t, err)
	assert.Equal(t, spring{Stiffness: 4, Damping: 0.75}, got)
}

func TestFromCty_Errors(t *testing.T) {
	_, err := FromCty(TypeVector3d, nil, nums(1, 2))
	assert.ErrorContains(t, err, "expected a list of 3 numbers")

	_, err = FromCty(TypeInt32, nil, cty.NumberFloatVal(1.5))
	assert.Error(t, err)

	_, err = FromCty(TypeDouble, nil, cty.UnknownVal(cty.Number))
	assert.Error(t, err)

	_, err = FromCty(TypeBlendableStruct, nil, cty.EmptyObjectVal)
	assert.Error(t, err)
}
