package nodes

import (
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// AttachToTarget moves the camera onto an actor, optionally at one of its
// sockets.
type AttachToTarget struct {
	rig.NodeBase
	Target           params.DataParameter
	Socket           params.DataParameter
	AttachmentOffset params.BlendableParameter[vartable.Transform3d]
}

func (*AttachToTarget) NodeType() string { return "attach_to_target" }

// ResolvedTargetID is the identity of the context data entry the node writes
// the actor it attached to each frame.
func (n *AttachToTarget) ResolvedTargetID() identity.ID {
	return identity.FromGUID(n.GUID).Variant("attach_to_target.resolved")
}

func (n *AttachToTarget) Build(ctx *rig.BuildContext) {
	ctx.AddContextData(datatable.EntryDefinition{
		ID:        n.ResolvedTargetID(),
		Type:      datatable.TypeObjectRef,
		AutoReset: true,
		Name:      rig.Address(n).String() + ".Resolved",
	})
}

var attachToTargetType = &registry.NodeType{
	Name: "attach_to_target",
	New: func() rig.Node {
		return &AttachToTarget{
			Target:           params.Data(),
			Socket:           params.Data(),
			AttachmentOffset: params.Blendable(vartable.IdentityTransform),
		}
	},
	Fields: []params.Field{
		params.DataField("Target", datatable.TypeObjectRef, datatable.ContainerScalar, nil, func(n *AttachToTarget) *params.DataParameter { return &n.Target }),
		params.DataField("Socket", datatable.TypeName, datatable.ContainerScalar, nil, func(n *AttachToTarget) *params.DataParameter { return &n.Socket }),
		params.BlendableField("AttachmentOffset", func(n *AttachToTarget) *params.BlendableParameter[vartable.Transform3d] { return &n.AttachmentOffset }),
	},
}

// TargetList chooses among several candidate actors, filtered by class.
type TargetList struct {
	rig.NodeBase
	Targets     params.DataParameter
	TargetClass params.DataParameter
	Selected    params.BlendableParameter[int32]
}

func (*TargetList) NodeType() string { return "target_list" }

var targetListType = &registry.NodeType{
	Name: "target_list",
	New: func() rig.Node {
		return &TargetList{Targets: params.Data(), TargetClass: params.Data(), Selected: params.Blendable[int32](0)}
	},
	Fields: []params.Field{
		params.DataField("Targets", datatable.TypeObjectRef, datatable.ContainerArray, nil, func(n *TargetList) *params.DataParameter { return &n.Targets }),
		params.DataField("TargetClass", datatable.TypeClass, datatable.ContainerScalar, ActorClass, func(n *TargetList) *params.DataParameter { return &n.TargetClass }),
		params.BlendableField("Selected", func(n *TargetList) *params.BlendableParameter[int32] { return &n.Selected }),
	},
}
