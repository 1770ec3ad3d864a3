package vartable

import (
	"testing"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

type spring struct {
	Stiffness float64 `cty:"stiffness"`
	Damping   float64 `cty:"damping"`
}

var springType = datatable.NewStructType("Spring", spring{Stiffness: 1, Damping: 0.5})

const (
	idEnabled identity.ID = iota + 1
	idCount
	idFOV
	idDistance
	idScreen
	idOffset
	idColor
	idRotation
	idPivot
	idSpring
)

func allKinds() AllocationInfo {
	return AllocationInfo{Variables: []VariableDefinition{
		{ID: idEnabled, Type: TypeBool, AutoReset: true},
		{ID: idCount, Type: TypeInt32},
		{ID: idFOV, Type: TypeFloat, Name: "FieldOfView"},
		{ID: idDistance, Type: TypeDouble},
		{ID: idScreen, Type: TypeVector2d},
		{ID: idOffset, Type: TypeVector3d},
		{ID: idColor, Type: TypeVector4d},
		{ID: idRotation, Type: TypeRotator3d},
		{ID: idPivot, Type: TypeTransform3d},
		{ID: idSpring, Type: TypeBlendableStruct, StructType: springType},
	}}
}

func TestInitialize_DefaultValues(t *testing.T) {
	tbl := New(allKinds())

	require.Equal(t, 10, tbl.Len())
	assert.False(t, Get[bool](tbl, idEnabled))
	assert.Zero(t, Get[int32](tbl, idCount))
	assert.Zero(t, Get[float32](tbl, idFOV))
	assert.Zero(t, Get[float64](tbl, idDistance))
	assert.Equal(t, f64.Vec2{}, Get[f64.Vec2](tbl, idScreen))
	assert.Equal(t, f64.Vec3{}, Get[f64.Vec3](tbl, idOffset))
	assert.Equal(t, f64.Vec4{}, Get[f64.Vec4](tbl, idColor))
	assert.Equal(t, Rotator3d{}, Get[Rotator3d](tbl, idRotation))
	assert.Equal(t, IdentityTransform, Get[Transform3d](tbl, idPivot))
	assert.Equal(t, spring{Stiffness: 1, Damping: 0.5}, Get[spring](tbl, idSpring))
}

func TestEntries_AlignedOffsets(t *testing.T) {
	tbl := New(allKinds())

	for _, e := range tbl.Entries() {
		_, align, ok := sizeAlign(e.Definition.Type, e.Definition.StructType)
		require.True(t, ok)
		assert.Zero(t, e.Offset%align, "variable %v", e.Definition)
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	tbl := New(allKinds())

	pivot := Transform3d{Location: f64.Vec3{1, 2, 3}, Rotation: f64.Vec4{0, 0, 0.7071, 0.7071}, Scale: f64.Vec3{2, 2, 2}}
	Set(tbl, idEnabled, true)
	Set(tbl, idCount, int32(-4))
	Set(tbl, idFOV, float32(90))
	Set(tbl, idDistance, 350.5)
	Set(tbl, idScreen, f64.Vec2{0.25, 0.75})
	Set(tbl, idOffset, f64.Vec3{0, 50, 10})
	Set(tbl, idColor, f64.Vec4{1, 0, 0, 1})
	Set(tbl, idRotation, Rotator3d{Pitch: -15, Yaw: 90})
	Set(tbl, idPivot, pivot)
	Set(tbl, idSpring, spring{Stiffness: 8, Damping: 2})

	assert.True(t, Get[bool](tbl, idEnabled))
	assert.Equal(t, int32(-4), Get[int32](tbl, idCount))
	assert.Equal(t, float32(90), Get[float32](tbl, idFOV))
	assert.Equal(t, 350.5, Get[float64](tbl, idDistance))
	assert.Equal(t, f64.Vec2{0.25, 0.75}, Get[f64.Vec2](tbl, idScreen))
	assert.Equal(t, f64.Vec3{0, 50, 10}, Get[f64.Vec3](tbl, idOffset))
	assert.Equal(t, f64.Vec4{1, 0, 0, 1}, Get[f64.Vec4](tbl, idColor))
	assert.Equal(t, Rotator3d{Pitch: -15, Yaw: 90}, Get[Rotator3d](tbl, idRotation))
	assert.Equal(t, pivot, Get[Transform3d](tbl, idPivot))
	assert.Equal(t, spring{Stiffness: 8, Damping: 2}, Get[spring](tbl, idSpring))
}

func TestTryGet(t *testing.T) {
	tbl := New(allKinds())
	Set(tbl, idFOV, float32(70))

	v, ok := TryGet[float32](tbl, idFOV)
	require.True(t, ok)
	assert.Equal(t, float32(70), v)

	_, ok = TryGet[float32](tbl, 999)
	assert.False(t, ok)
}

func TestAddVariable_KeepsExistingValues(t *testing.T) {
	tbl := New(AllocationInfo{Variables: []VariableDefinition{{ID: idDistance, Type: TypeDouble}}})
	Set(tbl, idDistance, 12.5)

	for i := range 40 {
		id := identity.ID(1000 + i)
		tbl.AddVariable(VariableDefinition{ID: id, Type: TypeTransform3d})
		Set(tbl, id, Transform3d{Location: f64.Vec3{float64(i), 0, 0}})
		require.Equal(t, 12.5, Get[float64](tbl, idDistance))
	}
	for i := range 40 {
		assert.Equal(t, float64(i), Get[Transform3d](tbl, identity.ID(1000+i)).Location[0])
	}
}

func TestFrameFlags(t *testing.T) {
	tbl := New(allKinds())

	Set(tbl, idEnabled, true)
	Set(tbl, idCount, int32(1))
	assert.True(t, tbl.IsValueWritten(idEnabled))
	assert.True(t, tbl.IsValueWrittenThisFrame(idEnabled))

	tbl.ClearAllWrittenThisFrameFlags()
	assert.True(t, tbl.IsValueWritten(idEnabled))
	assert.False(t, tbl.IsValueWrittenThisFrame(idEnabled))

	tbl.AutoResetValues()
	assert.False(t, tbl.IsValueWritten(idEnabled))
	assert.True(t, tbl.IsValueWritten(idCount))

	SetNoFrame(tbl, idFOV, float32(60))
	assert.True(t, tbl.IsValueWritten(idFOV))
	assert.False(t, tbl.IsValueWrittenThisFrame(idFOV))

	tbl.UnsetValue(idCount)
	assert.False(t, tbl.IsValueWritten(idCount))
}

func TestUnsetAllValues_KeepsValues(t *testing.T) {
	tbl := New(allKinds())
	Set(tbl, idEnabled, true)
	Set(tbl, idFOV, float32(55))
	SetNoFrame(tbl, idDistance, 300.0)

	tbl.UnsetAllValues()

	for _, id := range []identity.ID{idEnabled, idFOV, idDistance} {
		assert.False(t, tbl.IsValueWritten(id), id)
		assert.False(t, tbl.IsValueWrittenThisFrame(id), id)
	}
	assert.True(t, Get[bool](tbl, idEnabled))
	assert.Equal(t, float32(55), Get[float32](tbl, idFOV))
	assert.Equal(t, 300.0, Get[float64](tbl, idDistance))
}

func TestSetValue(t *testing.T) {
	tbl := New(allKinds())

	require.NoError(t, tbl.SetValue(idOffset, f64.Vec3{1, 2, 3}))
	v, ok := tbl.Value(idOffset)
	require.True(t, ok)
	assert.Equal(t, f64.Vec3{1, 2, 3}, v)
	assert.True(t, tbl.IsValueWritten(idOffset))

	assert.Error(t, tbl.SetValue(idOffset, []float64{1, 2, 3}))
	assert.Error(t, tbl.SetValue(999, true))
}

func TestOverride(t *testing.T) {
	a := New(AllocationInfo{Variables: []VariableDefinition{
		{ID: 1, Type: TypeDouble},
		{ID: 2, Type: TypeBool},
	}})
	b := New(AllocationInfo{Variables: []VariableDefinition{
		{ID: 1, Type: TypeDouble},
		{ID: 3, Type: TypeVector3d},
	}})
	Set(b, 1, 4.0)
	Set(b, 3, f64.Vec3{7, 8, 9})

	a.OverrideKnown(b)
	assert.Equal(t, 4.0, Get[float64](a, 1))
	assert.False(t, a.Contains(3))
	assert.True(t, a.IsValueWrittenThisFrame(1))

	a.OverrideAll(b)
	require.True(t, a.Contains(3))
	assert.Equal(t, f64.Vec3{7, 8, 9}, Get[f64.Vec3](a, 3))

	b.ClearAllWrittenThisFrameFlags()
	SetNoFrame(b, 1, 5.0)
	a.Override(b, datatable.FilterChangedOnly)
	assert.Equal(t, 4.0, Get[float64](a, 1))
}

func TestClone_Independent(t *testing.T) {
	tbl := New(allKinds())
	Set(tbl, idDistance, 1.0)

	c := tbl.Clone()
	Set(c, idDistance, 2.0)

	assert.Equal(t, 1.0, Get[float64](tbl, idDistance))
	assert.Equal(t, 2.0, Get[float64](c, idDistance))
	assert.True(t, tbl.AllocationInfo().Equal(c.AllocationInfo()))
}

func TestAllocationInfo_Add(t *testing.T) {
	var info AllocationInfo
	require.NoError(t, info.Add(VariableDefinition{ID: 1, Type: TypeFloat}))
	require.NoError(t, info.Add(VariableDefinition{ID: 1, Type: TypeFloat}))
	assert.Len(t, info.Variables, 1)

	assert.Error(t, info.Add(VariableDefinition{ID: 1, Type: TypeDouble}))
	assert.Error(t, info.Add(VariableDefinition{ID: identity.Invalid, Type: TypeDouble}))

	other := AllocationInfo{Variables: []VariableDefinition{{ID: 2, Type: TypeBool}, {ID: 1, Type: TypeFloat}}}
	require.NoError(t, info.Combine(other))
	assert.Len(t, info.Variables, 2)
}

func TestTypeFor(t *testing.T) {
	assert.Equal(t, TypeFloat, TypeFor[float32]())
	assert.Equal(t, TypeVector3d, TypeFor[f64.Vec3]())
	assert.Equal(t, TypeTransform3d, TypeFor[Transform3d]())
	assert.Equal(t, TypeBlendableStruct, TypeFor[spring]())
}
