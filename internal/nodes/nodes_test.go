package nodes_test

import (
	"testing"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/nodes"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/rigbuild"
	"github.com/specialistvlad/camrig/internal/testutil"
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_RegistersNodeTypes(t *testing.T) {
	reg := registry.New(nodes.Module{})

	assert.Equal(t, []string{
		"array_blend", "attach_to_target", "boom_arm", "framing", "lens",
		"look_at", "offset", "rig_ref", "target_list",
	}, reg.Names())

	for _, name := range []string{"FramingMode", "Actor", "Pawn", "FramingZone", "SpringDamping"} {
		_, ok := reg.LookupTypeObject(name)
		assert.True(t, ok, name)
	}
}

func TestBoomArm_NegativeLength(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "r" {
  node "boom_arm" "main" {
    param "Length" { value = -5 }
  }
}`)
	res := testutil.BuildAll(t, reg, p)["r"]

	assert.Equal(t, []string{"Invalid boom length"}, testutil.Summaries(res, buildlog.Error))
	assert.Equal(t, rig.StatusError, res.Status)
}

func TestBoomArm_ReservesState(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "r" {
  node "boom_arm" "main" {}
}`)
	res := testutil.BuildAll(t, reg, p)["r"]
	require.Equal(t, rig.StatusClean, res.Status)

	ev := p.Rig("r").AllocationInfo.Evaluator
	assert.Positive(t, ev.TotalSize)
	assert.Equal(t, 8, ev.MaxAlignment)
}

func TestArrayBlend(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "r" {
  root = "array_blend.main"
  node "array_blend" "main" { children = ["array_blend.empty", "lens.a"] }
  node "array_blend" "empty" {}
  node "lens" "a" {}
}`)
	res := testutil.BuildAll(t, reg, p)["r"]

	assert.Equal(t, rig.StatusCleanWithWarnings, res.Status)
	assert.Equal(t, []string{"Empty blend"}, testutil.Summaries(res, buildlog.Warning))
	// Two weights for main, none for the empty blend.
	assert.Equal(t, rig.EvaluatorAllocationInfo{TotalSize: 8, MaxAlignment: 4}, p.Rig("r").AllocationInfo.Evaluator)
}

func TestAttachToTarget_AddsResolvedTarget(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "r" {
  node "attach_to_target" "player" {}
}`)
	testutil.BuildAll(t, reg, p)

	n := p.Rig("r").Root.(*nodes.AttachToTarget)
	def, ok := p.Rig("r").AllocationInfo.ContextData.Find(n.ResolvedTargetID())
	require.True(t, ok)
	assert.Equal(t, datatable.TypeObjectRef, def.Type)
	assert.True(t, def.AutoReset)
}

func TestFraming_BindsStructAndEnum(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "r" {
  node "framing" "main" {}

  data_parameter "Zone" {
    guid     = "9a0b1c2d-3e4f-4051-8263-748596a7b8c9"
    type     = struct("FramingZone")
    target   = "framing.main"
    property = "Zone"
    default  = { left = 0.3, top = 0.3, right = 0.7, bottom = 0.7 }
  }

  data_parameter "Mode" {
    guid     = "0a1b2c3d-4e5f-4061-8273-8495a6b7c8d9"
    type     = enum("FramingMode")
    target   = "framing.main"
    property = "Mode"
    default  = "Dead_Zone"
  }
}`)
	res := testutil.BuildAll(t, reg, p)["r"]
	require.Equal(t, rig.StatusClean, res.Status, res.Log.Messages())

	r := p.Rig("r")
	n := r.Root.(*nodes.Framing)
	zone := r.Interface.FindData("Zone")
	assert.Equal(t, zone.PrivateDataID, n.Zone.DataID)

	inst, err := rig.Instantiate(r)
	require.NoError(t, err)
	assert.Equal(t, nodes.FramingZone{Left: 0.3, Top: 0.3, Right: 0.7, Bottom: 0.7},
		datatable.Get[nodes.FramingZone](inst.ContextData, zone.PrivateDataID))
	mode, ok := inst.ContextData.Value(r.Interface.FindData("Mode").PrivateDataID)
	require.True(t, ok)
	assert.Equal(t, datatable.EnumValue{Enum: nodes.FramingMode, Index: 2}, mode)
}

func TestTargetList_ClassTypeMustMatch(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "r" {
  node "target_list" "main" {}

  data_parameter "Class" {
    guid     = "1b2c3d4e-5f60-4172-8384-95a6b7c8d9e0"
    type     = class("Pawn")
    target   = "target_list.main"
    property = "TargetClass"
  }
}`)
	res := testutil.BuildAll(t, reg, p)["r"]

	assert.Equal(t, []string{"Type mismatch"}, testutil.Summaries(res, buildlog.Error))
}

func TestRigRef(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `variable "Zoom" {
  guid = "2c3d4e5f-6071-4283-9495-a6b7c8d9e0f1"
  type = float
}

rig "outer" {
  node "rig_ref" "inner" {
    rig = "inner"
    param "FieldOfView" { variable = "Zoom" }
  }

  blendable_parameter "Aperture" {
    guid     = "3d4e5f60-7182-4394-a5a6-b7c8d9e0f102"
    type     = float
    target   = "rig_ref.inner"
    property = "FieldOfView"
  }
}

rig "inner" {
  node "lens" "main" {}

  blendable_parameter "FieldOfView" {
    guid     = "4e5f6071-8293-44a5-b6b7-c8d9e0f10213"
    type     = float
    target   = "lens.main"
    property = "FieldOfView"
    default  = 50
  }
}`)
	results := testutil.BuildAll(t, reg, p)

	// The outer rig drives the inner parameter with a user variable, so the
	// interface parameter cannot bind it too.
	assert.Equal(t, []string{"Property already driven"}, testutil.Summaries(results["outer"], buildlog.Error))
	assert.Equal(t, rig.StatusClean, results["inner"].Status)
}

func TestRigRef_ExposesInnerInterface(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "outer" {
  node "rig_ref" "inner" { rig = "inner" }

  blendable_parameter "Zoom" {
    guid     = "5f607182-93a4-45b6-87c8-d9e0f1021324"
    type     = float
    target   = "rig_ref.inner"
    property = "FieldOfView"
  }
}

rig "inner" {
  node "lens" "main" {}

  blendable_parameter "FieldOfView" {
    guid     = "60718293-a4b5-46c7-98d9-e0f102132435"
    type     = float
    target   = "lens.main"
    property = "FieldOfView"
  }
}`)
	results := testutil.BuildAll(t, reg, p)
	require.Equal(t, rig.StatusClean, results["outer"].Status, results["outer"].Log.Messages())

	outer := p.Rig("outer")
	inner := p.Rig("inner")
	zoom := outer.Interface.FindBlendable("Zoom")
	fov := inner.Interface.FindBlendable("FieldOfView")
	assert.True(t, outer.AllocationInfo.Variables.Contains(zoom.PrivateVariableID))
	assert.True(t, outer.AllocationInfo.Variables.Contains(fov.PrivateVariableID))

	infos := reg.Discover(outer.Root)
	require.Len(t, infos, 1)
	assert.Equal(t, "FieldOfView", infos[0].Name)
	assert.True(t, infos[0].Custom)
	assert.Equal(t, zoom.PrivateVariableID, *infos[0].OverrideID)
	assert.Equal(t, vartable.TypeFloat, infos[0].VariableType)
}

func TestRigRef_InnerNotBuilt(t *testing.T) {
	p, reg := testutil.LoadRigs(t, `rig "outer" {
  node "rig_ref" "inner" { rig = "inner" }
}

rig "inner" {
  node "lens" "main" {}
}`)
	res := rigbuild.New(reg).Build(testutil.Context(), p.Rig("outer"))

	assert.Equal(t, []string{"Inner rig not built"}, testutil.Summaries(res, buildlog.Warning))
	assert.Equal(t, rig.StatusCleanWithWarnings, res.Status)
}
