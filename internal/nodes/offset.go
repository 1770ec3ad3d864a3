package nodes

import (
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
	"golang.org/x/image/math/f64"
)

// Offset moves the camera in its local space.
type Offset struct {
	rig.NodeBase
	TranslationOffset params.BlendableParameter[f64.Vec3]
	RotationOffset    params.BlendableParameter[vartable.Rotator3d]
}

func (*Offset) NodeType() string { return "offset" }

var offsetType = &registry.NodeType{
	Name: "offset",
	New: func() rig.Node {
		return &Offset{
			TranslationOffset: params.Blendable(f64.Vec3{}),
			RotationOffset:    params.Blendable(vartable.Rotator3d{}),
		}
	},
	Fields: []params.Field{
		params.BlendableField("TranslationOffset", func(n *Offset) *params.BlendableParameter[f64.Vec3] { return &n.TranslationOffset }),
		params.BlendableField("RotationOffset", func(n *Offset) *params.BlendableParameter[vartable.Rotator3d] { return &n.RotationOffset }),
	},
}

// Lens sets the projection of the camera.
type Lens struct {
	rig.NodeBase
	FieldOfView   params.BlendableParameter[float32]
	FocusDistance params.BlendableParameter[float64]
	Aperture      params.BlendableParameter[float32]
}

func (*Lens) NodeType() string { return "lens" }

var lensType = &registry.NodeType{
	Name: "lens",
	New: func() rig.Node {
		return &Lens{
			FieldOfView:   params.Blendable[float32](90),
			FocusDistance: params.Blendable(1000.0),
			Aperture:      params.Blendable[float32](2.8),
		}
	},
	Fields: []params.Field{
		params.BlendableField("FieldOfView", func(n *Lens) *params.BlendableParameter[float32] { return &n.FieldOfView }),
		params.BlendableField("FocusDistance", func(n *Lens) *params.BlendableParameter[float64] { return &n.FocusDistance }),
		params.BlendableField("Aperture", func(n *Lens) *params.BlendableParameter[float32] { return &n.Aperture }),
	},
}
