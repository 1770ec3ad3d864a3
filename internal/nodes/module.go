package nodes

import (
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/registry"
)

var (
	// FramingMode selects how a framing node keeps its target on screen.
	FramingMode = datatable.NewEnumType("FramingMode", "Center", "Thirds", "Dead_Zone")
	// ActorClass is the base class of everything a camera can attach to.
	ActorClass = datatable.NewClassType("Actor", nil)
	// PawnClass is the class of player-controlled actors.
	PawnClass = datatable.NewClassType("Pawn", ActorClass)
	// FramingZoneType is the screen-space zone a framing node keeps its
	// target in.
	FramingZoneType = datatable.NewStructType("FramingZone", FramingZone{Left: 0.4, Top: 0.4, Right: 0.6, Bottom: 0.6})
)

// Module registers the built-in node types.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTypeObject(FramingMode)
	r.RegisterTypeObject(ActorClass)
	r.RegisterTypeObject(PawnClass)
	r.RegisterTypeObject(FramingZoneType)
	r.RegisterTypeObject(SpringDampingType)

	r.Register(offsetType)
	r.Register(lensType)
	r.Register(boomArmType)
	r.Register(lookAtType)
	r.Register(attachToTargetType)
	r.Register(targetListType)
	r.Register(arrayBlendType)
	r.Register(framingType)
	r.Register(rigRefType)
}
