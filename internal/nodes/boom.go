package nodes

import (
	"fmt"
	"unsafe"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
	"golang.org/x/image/math/f64"
)

// SpringDamping configures the lag of a boom arm.
type SpringDamping struct {
	Stiffness float64 `cty:"stiffness"`
	Ratio     float64 `cty:"ratio"`
}

// SpringDampingType is the blendable struct type of SpringDamping. It is
// declared ahead of the boom arm registration so that field discovery picks
// it up.
var SpringDampingType = params.RegisterStructType(datatable.NewStructType("SpringDamping", SpringDamping{Stiffness: 10, Ratio: 1}))

// boomArmState is the per-instance runtime state of a boom arm.
type boomArmState struct {
	Position f64.Vec3
	Velocity f64.Vec3
	Length   float64
	Valid    bool
}

// BoomArm pushes the camera back along a lagging arm.
type BoomArm struct {
	rig.NodeBase
	BoomOffset params.BlendableParameter[f64.Vec3]
	Length     params.BlendableParameter[float64]
	Damping    params.BlendableParameter[SpringDamping]
}

func (*BoomArm) NodeType() string { return "boom_arm" }

func (n *BoomArm) PreBuild(log *buildlog.Log) {
	if n.Length.Value < 0 {
		log.Error(rig.Address(n).String(), rig.RangePtr(n), "Invalid boom length",
			fmt.Sprintf("length must not be negative, got %g", n.Length.Value))
	}
}

func (n *BoomArm) Build(ctx *rig.BuildContext) {
	ctx.AllocateEvaluator(int(unsafe.Sizeof(boomArmState{})), int(unsafe.Alignof(boomArmState{})))
}

var boomArmType = &registry.NodeType{
	Name: "boom_arm",
	New: func() rig.Node {
		return &BoomArm{
			BoomOffset: params.Blendable(f64.Vec3{-300, 0, 0}),
			Length:     params.Blendable(300.0),
			Damping:    params.Blendable(SpringDamping{Stiffness: 10, Ratio: 1}),
		}
	},
	Fields: []params.Field{
		params.BlendableField("BoomOffset", func(n *BoomArm) *params.BlendableParameter[f64.Vec3] { return &n.BoomOffset }),
		params.BlendableField("Length", func(n *BoomArm) *params.BlendableParameter[float64] { return &n.Length }),
		params.BlendableField("Damping", func(n *BoomArm) *params.BlendableParameter[SpringDamping] { return &n.Damping }),
	},
}

// LookAt turns the camera towards a world-space point supplied by gameplay
// code.
type LookAt struct {
	rig.NodeBase
	Enabled     params.BlendableParameter[bool]
	TargetPoint params.VariableReference
}

func (*LookAt) NodeType() string { return "look_at" }

var lookAtType = &registry.NodeType{
	Name: "look_at",
	New: func() rig.Node {
		return &LookAt{Enabled: params.Blendable(true), TargetPoint: params.Reference()}
	},
	Fields: []params.Field{
		params.BlendableField("Enabled", func(n *LookAt) *params.BlendableParameter[bool] { return &n.Enabled }),
		params.ReferenceField("TargetPoint", vartable.TypeVector3d, func(n *LookAt) *params.VariableReference { return &n.TargetPoint }),
	},
}
