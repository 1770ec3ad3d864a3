package nodes

import (
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"golang.org/x/image/math/f64"
)

// FramingZone is a screen-space rectangle in normalized coordinates.
type FramingZone struct {
	Left   float64 `cty:"left"`
	Top    float64 `cty:"top"`
	Right  float64 `cty:"right"`
	Bottom float64 `cty:"bottom"`
}

// Framing keeps a target inside a zone of the screen.
type Framing struct {
	rig.NodeBase
	Zone         params.DataParameter
	Mode         params.DataParameter
	ScreenTarget params.BlendableParameter[f64.Vec2]
}

func (*Framing) NodeType() string { return "framing" }

var framingType = &registry.NodeType{
	Name: "framing",
	New: func() rig.Node {
		return &Framing{Zone: params.Data(), Mode: params.Data(), ScreenTarget: params.Blendable(f64.Vec2{0.5, 0.5})}
	},
	Fields: []params.Field{
		params.DataField("Zone", datatable.TypeStruct, datatable.ContainerScalar, FramingZoneType, func(n *Framing) *params.DataParameter { return &n.Zone }),
		params.DataField("Mode", datatable.TypeEnum, datatable.ContainerScalar, FramingMode, func(n *Framing) *params.DataParameter { return &n.Mode }),
		params.BlendableField("ScreenTarget", func(n *Framing) *params.BlendableParameter[f64.Vec2] { return &n.ScreenTarget }),
	},
}
