package integration_tests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/nodes"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/rigbuild"
	"github.com/specialistvlad/camrig/internal/testutil"
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

const shoulderRig = `
variable "Aim" {
  guid       = "71829304-a5b6-47c8-99da-eb0c1d2e3f40"
  type       = vector3d
  auto_reset = true
}

rig "shoulder" {
  root = "array_blend.main"

  node "array_blend" "main" {
    children = ["offset.shoulder", "look_at.aim", "lens.main"]
  }

  node "offset" "shoulder" {}

  node "look_at" "aim" {
    param "TargetPoint" { variable = "Aim" }
  }

  node "lens" "main" {}

  blendable_parameter "Shoulder" {
    guid     = "8293a4b5-c6d7-48e9-aa0b-1c2d3e4f5061"
    type     = vector3d
    target   = "offset.shoulder"
    property = "TranslationOffset"
    default  = [0, 35, 5]
  }

  blendable_parameter "FieldOfView" {
    guid     = "93a4b5c6-d7e8-49fa-8b1c-2d3e4f506172"
    type     = float
    target   = "lens.main"
    property = "FieldOfView"
    default  = 80
  }
}
`

// TestRigLifecycle walks a rig through build, rebuild, instantiation and a
// few frames of evaluation state.
func TestRigLifecycle(t *testing.T) {
	// --- Arrange ---
	p, reg := testutil.LoadRigs(t, shoulderRig)
	r := p.Rig("shoulder")
	b := rigbuild.New(reg)

	// --- Act: first build ---
	first := b.Build(testutil.Context(), r)

	// --- Assert ---
	require.Equal(t, rig.StatusClean, first.Status, first.Log.Messages())
	require.True(t, first.Changed)
	committed := r.AllocationInfo

	// A second build without edits commits nothing.
	second := b.Build(testutil.Context(), r)
	assert.False(t, second.Changed)
	assert.Empty(t, cmp.Diff(committed, r.AllocationInfo))

	// --- Act: instantiate and run frames ---
	inst, err := rig.Instantiate(r, p.Variables...)
	require.NoError(t, err)

	shoulder := r.Interface.FindBlendable("Shoulder")
	fov := r.Interface.FindBlendable("FieldOfView")
	aim := p.Variable("Aim")

	assert.Equal(t, f64.Vec3{0, 35, 5}, vartable.Get[f64.Vec3](inst.Variables, shoulder.PrivateVariableID))
	assert.Equal(t, float32(80), vartable.Get[float32](inst.Variables, fov.PrivateVariableID))
	assert.False(t, inst.Variables.IsValueWritten(aim.ID()))

	vartable.Set(inst.Variables, aim.ID(), f64.Vec3{100, 0, 0})
	vartable.Set(inst.Variables, fov.PrivateVariableID, float32(65))
	assert.True(t, inst.Variables.IsValueWrittenThisFrame(aim.ID()))

	inst.BeginFrame()

	// Auto-reset variables read as unwritten again; the others stay written.
	assert.False(t, inst.Variables.IsValueWritten(aim.ID()))
	assert.True(t, inst.Variables.IsValueWritten(fov.PrivateVariableID))
	assert.False(t, inst.Variables.IsValueWrittenThisFrame(fov.PrivateVariableID))
	assert.Equal(t, float32(65), vartable.Get[float32](inst.Variables, fov.PrivateVariableID))
}

// TestRigLifecycle_EditAndRebuild removes an interface parameter between
// builds and checks that only the affected node is flagged.
func TestRigLifecycle_EditAndRebuild(t *testing.T) {
	p, reg := testutil.LoadRigs(t, shoulderRig)
	r := p.Rig("shoulder")
	b := rigbuild.New(reg)
	require.Equal(t, rig.StatusClean, b.Build(testutil.Context(), r).Status)

	lens := r.FindNode("lens.main").(*nodes.Lens)
	offset := r.FindNode("offset.shoulder").(*nodes.Offset)
	fov := r.Interface.FindBlendable("FieldOfView")
	require.Equal(t, fov.PrivateVariableID, lens.FieldOfView.VariableID)

	r.Interface.Blendables = []*rig.BlendableInterfaceParameter{r.Interface.FindBlendable("Shoulder")}
	res := b.Build(testutil.Context(), r)

	assert.True(t, res.Changed)
	assert.True(t, lens.Modified())
	assert.False(t, offset.Modified())
	assert.False(t, lens.FieldOfView.VariableID.IsValid())
	assert.Equal(t, []string{"Binding removed"}, testutil.Summaries(res, buildlog.Info))
	assert.False(t, r.AllocationInfo.Variables.Contains(fov.PrivateVariableID))
}

// TestRigLifecycle_FailedBuildKeepsLastGood breaks a rig after a good build
// and checks that instances can still be created from the last good layout.
func TestRigLifecycle_FailedBuildKeepsLastGood(t *testing.T) {
	p, reg := testutil.LoadRigs(t, shoulderRig)
	r := p.Rig("shoulder")
	b := rigbuild.New(reg)
	require.Equal(t, rig.StatusClean, b.Build(testutil.Context(), r).Status)
	good := r.AllocationInfo

	dup := *r.Interface.FindBlendable("FieldOfView")
	dup.Name = "Zoom"
	dup.GUID = uuid.New()
	r.Interface.Blendables = append(r.Interface.Blendables, &dup)
	res := b.Build(testutil.Context(), r)

	require.Equal(t, rig.StatusError, res.Status)
	assert.Equal(t, []string{"Duplicate binding"}, testutil.Summaries(res, buildlog.Error))
	assert.Empty(t, cmp.Diff(good, r.AllocationInfo))

	_, err := rig.Instantiate(r, p.Variables...)
	assert.NoError(t, err)
}
