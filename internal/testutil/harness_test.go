package testutil

import (
	"testing"

	"github.com/specialistvlad/camrig/internal/nodes"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dolly struct {
	rig.NodeBase
}

func (*dolly) NodeType() string { return "dolly" }

func (n *dolly) Build(ctx *rig.BuildContext) {
	ctx.AllocateEvaluator(16, 8)
}

var dollyModule = &SimpleModule{
	NodeTypes: []*registry.NodeType{{
		Name: "dolly",
		New:  func() rig.Node { return &dolly{} },
	}},
}

func TestRunRigTest(t *testing.T) {
	res := RunRigTest(t, map[string]string{
		"rigs/track.hcl": `rig "track" {
  root = "array_blend.main"
  node "array_blend" "main" { children = ["dolly.a"] }
  node "dolly" "a" {}
}`,
	}, nodes.Module{}, dollyModule)

	require.NoError(t, res.Err)
	AssertRigStatus(t, res, "track", "clean")
	assert.Contains(t, res.Output, "24 B (align 8)")
}

func TestRunRigTest_StartupPanic(t *testing.T) {
	res := RunRigTest(t, nil, nodes.Module{}, nodes.Module{})

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "application startup panicked")
	assert.Nil(t, res.App)
}

func TestLoadRigs_ExtraModules(t *testing.T) {
	p, reg := LoadRigs(t, `rig "r" {
  node "dolly" "a" {}
}`, dollyModule)

	res := BuildAll(t, reg, p)["r"]
	assert.Equal(t, rig.StatusClean, res.Status)
	assert.Equal(t, rig.EvaluatorAllocationInfo{TotalSize: 16, MaxAlignment: 8}, p.Rig("r").AllocationInfo.Evaluator)
}
