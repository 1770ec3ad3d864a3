package nodes

import (
	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
)

// ArrayBlend runs its children in order, each one refining the camera pose
// produced by the previous ones.
type ArrayBlend struct {
	rig.NodeBase
	Nodes  []rig.Node
	Weight params.BlendableParameter[float32]
}

func (*ArrayBlend) NodeType() string { return "array_blend" }

func (n *ArrayBlend) Children() []rig.Node { return n.Nodes }

func (n *ArrayBlend) AddChild(child rig.Node) { n.Nodes = append(n.Nodes, child) }

func (n *ArrayBlend) PreBuild(log *buildlog.Log) {
	if len(n.Nodes) == 0 {
		log.Warning(rig.Address(n).String(), rig.RangePtr(n), "Empty blend", "array blend has no children")
	}
}

func (n *ArrayBlend) Build(ctx *rig.BuildContext) {
	// One blend weight per child.
	ctx.AllocateEvaluator(4*len(n.Nodes), 4)
}

var arrayBlendType = &registry.NodeType{
	Name: "array_blend",
	New: func() rig.Node {
		return &ArrayBlend{Weight: params.Blendable[float32](1)}
	},
	Fields: []params.Field{
		params.BlendableField("Weight", func(n *ArrayBlend) *params.BlendableParameter[float32] { return &n.Weight }),
	},
}
