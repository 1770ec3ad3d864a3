package nodes

import (
	"fmt"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/zclconf/go-cty/cty"
)

// RigRef evaluates another rig in place. The inner rig's interface
// parameters become parameters of this node, so an outer rig can expose or
// drive them like any other property.
type RigRef struct {
	rig.NodeBase
	Rig *rig.Rig

	ids       map[string]*identity.ID
	defaults  map[string]any
	variables map[string]*vartable.VariableAsset
}

func (*RigRef) NodeType() string { return "rig_ref" }

// SetRig points the node at the rig it evaluates.
func (n *RigRef) SetRig(r *rig.Rig) { n.Rig = r }

func (n *RigRef) slot(name string) *identity.ID {
	if n.ids == nil {
		n.ids = make(map[string]*identity.ID)
	}
	id, ok := n.ids[name]
	if !ok {
		id = new(identity.ID)
		*id = identity.Invalid
		n.ids[name] = id
	}
	return id
}

func (n *RigRef) CustomParameters(out *params.CustomParameters) {
	if n.Rig == nil {
		return
	}
	for _, p := range n.Rig.Interface.Blendables {
		if p == nil || p.Name == "" {
			continue
		}
		def := p.Default
		if v, ok := n.defaults[p.Name]; ok {
			def = v
		}
		out.Add(params.Info{
			Name:         p.Name,
			Flavor:       params.FlavorParameter,
			VariableType: p.Type,
			StructType:   p.StructType,
			Default:      def,
			OverrideID:   n.slot(p.Name),
			Variable:     n.variables[p.Name],
		})
	}
	for _, p := range n.Rig.Interface.Data {
		if p == nil || p.Name == "" {
			continue
		}
		out.Add(params.Info{
			Name:       p.Name,
			Flavor:     params.FlavorData,
			DataType:   p.Type,
			Container:  p.Container,
			TypeObject: p.TypeObject,
			OverrideID: n.slot(p.Name),
		})
	}
}

// SetCustomParameter sets the default of an inner blendable parameter and
// optionally drives it with a variable.
func (n *RigRef) SetCustomParameter(name string, value cty.Value, variable *vartable.VariableAsset) error {
	if n.Rig == nil {
		return fmt.Errorf("rig reference has no rig")
	}
	p := n.Rig.Interface.FindBlendable(name)
	if p == nil {
		return fmt.Errorf("rig %q exposes no blendable parameter named %q", n.Rig.Name, name)
	}
	if !value.IsNull() {
		v, err := vartable.FromCty(p.Type, p.StructType, value)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		if n.defaults == nil {
			n.defaults = make(map[string]any)
		}
		n.defaults[name] = v
	}
	if variable != nil {
		if n.variables == nil {
			n.variables = make(map[string]*vartable.VariableAsset)
		}
		n.variables[name] = variable
		*n.slot(name) = variable.ID()
	}
	return nil
}

func (n *RigRef) PreBuild(log *buildlog.Log) {
	object := rig.Address(n).String()
	switch {
	case n.Rig == nil:
		log.Error(object, rig.RangePtr(n), "Missing rig", "rig reference does not name a rig")
	case n.Rig.BuildStatus == rig.StatusDirty:
		log.Warning(object, rig.RangePtr(n), "Inner rig not built",
			fmt.Sprintf("rig %q has not been built; its allocation info is empty", n.Rig.Name))
	case n.Rig.BuildStatus == rig.StatusError:
		log.Warning(object, rig.RangePtr(n), "Inner rig failed to build",
			fmt.Sprintf("rig %q failed its last build; using its last good allocation info", n.Rig.Name))
	}
}

func (n *RigRef) Build(ctx *rig.BuildContext) {
	if n.Rig == nil {
		return
	}
	if err := ctx.AllocationInfo.Combine(n.Rig.AllocationInfo); err != nil {
		ctx.Log.Error(rig.Address(n).String(), rig.RangePtr(n), "Conflicting inner rig", err.Error())
	}
}

// InitInstance writes the inner rig's interface defaults, with the overrides
// set on this node, into an instance of the outer rig.
func (n *RigRef) InitInstance(inst *rig.Instance) error {
	if n.Rig == nil {
		return nil
	}
	for _, p := range n.Rig.Interface.Blendables {
		if p == nil || !inst.Variables.Contains(p.PrivateVariableID) {
			continue
		}
		def := p.Default
		if v, ok := n.defaults[p.Name]; ok {
			def = v
		}
		if def == nil {
			continue
		}
		if err := inst.Variables.SetValue(p.PrivateVariableID, def); err != nil {
			return fmt.Errorf("parameter %q: %w", p.Name, err)
		}
	}
	for _, p := range n.Rig.Interface.Data {
		if p == nil || p.Default == nil || !inst.ContextData.Contains(p.PrivateDataID) {
			continue
		}
		if err := inst.ContextData.SetValue(p.PrivateDataID, p.Default); err != nil {
			return fmt.Errorf("parameter %q: %w", p.Name, err)
		}
	}
	return nil
}

var rigRefType = &registry.NodeType{
	Name: "rig_ref",
	New:  func() rig.Node { return &RigRef{} },
}
