package rigbuild

import (
	"context"
	"fmt"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/ctxlog"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
)

type bindingKey struct {
	property string
	node     rig.Node
}

// Binder wires interface parameters to the node properties they expose. It
// keeps per-build state and must not be shared between concurrent builds.
type Binder struct {
	Registry *registry.Registry

	// old holds the identities interface bindings wrote during the previous
	// build, keyed by the property they drove.
	old map[bindingKey]identity.ID
	// oldOrder lists the keys of old in gather order.
	oldOrder []bindingKey
	// bound maps each property wired this build to the parameter wiring it.
	bound map[bindingKey]string
}

// Reset clears the per-build state.
func (b *Binder) Reset() {
	b.old = make(map[bindingKey]identity.ID)
	b.oldOrder = b.oldOrder[:0]
	b.bound = make(map[bindingKey]string)
}

// GatherOldDrivenParameters records and clears every driving identity that
// was not chosen by a user. Those can only come from a previous interface
// binding, which this build recomputes from scratch.
func (b *Binder) GatherOldDrivenParameters(nodes []rig.Node) {
	if b.old == nil {
		b.Reset()
	}
	for _, n := range nodes {
		for _, p := range b.Registry.Discover(n) {
			if !p.Driven() || p.Variable != nil {
				continue
			}
			key := bindingKey{property: p.Name, node: n}
			if _, seen := b.old[key]; !seen {
				b.oldOrder = append(b.oldOrder, key)
			}
			b.old[key] = *p.OverrideID
			*p.OverrideID = identity.Invalid
		}
	}
}

// BuildInterfaceParameters discards invalid interface parameters and
// recomputes the private identity of every named one.
func (b *Binder) BuildInterfaceParameters(r *rig.Rig, log *buildlog.Log) {
	blendables := r.Interface.Blendables[:0]
	for _, p := range r.Interface.Blendables {
		if p == nil {
			log.Warning(r.Name, nil, "Invalid interface parameter", "a blendable interface parameter was empty and has been removed")
			continue
		}
		if p.Name != "" {
			if id := p.PrivateID(); id != p.PrivateVariableID {
				p.PrivateVariableID = id
				p.MarkModified()
			}
		}
		blendables = append(blendables, p)
	}
	clear(r.Interface.Blendables[len(blendables):])
	r.Interface.Blendables = blendables

	data := r.Interface.Data[:0]
	for _, p := range r.Interface.Data {
		if p == nil {
			log.Warning(r.Name, nil, "Invalid interface parameter", "a data interface parameter was empty and has been removed")
			continue
		}
		if p.Name != "" {
			if id := p.PrivateID(); id != p.PrivateDataID {
				p.PrivateDataID = id
				p.MarkModified()
			}
		}
		data = append(data, p)
	}
	clear(r.Interface.Data[len(data):])
	r.Interface.Data = data
}

// BuildInterfaceParameterBindings writes the private identity of each
// interface parameter into the driving slot of its target property.
func (b *Binder) BuildInterfaceParameterBindings(ctx context.Context, r *rig.Rig, nodes []rig.Node, log *buildlog.Log) {
	if b.bound == nil {
		b.Reset()
	}
	gathered := make(map[rig.Node]struct{}, len(nodes))
	for _, n := range nodes {
		gathered[n] = struct{}{}
	}

	for _, p := range r.Interface.Blendables {
		if p.Name == "" {
			continue
		}
		info, ok := b.resolve(&p.InterfaceParameterBase, gathered, log)
		if !ok {
			continue
		}
		if !info.Flavor.Blendable() {
			b.mismatch(&p.InterfaceParameterBase, log, p.Type.String(), info)
			continue
		}
		if info.VariableType != p.Type {
			b.mismatch(&p.InterfaceParameterBase, log, p.Type.String(), info)
			continue
		}
		if p.Type == vartable.TypeBlendableStruct && info.StructType != p.StructType {
			log.Error(p.Name, p.RangePtr(), "Incompatible struct type",
				fmt.Sprintf("interface parameter is %s but property %s of %s is %s",
					structName(p.StructType), info.Name, rig.Address(p.Target), structName(info.StructType)))
			continue
		}
		b.bind(&p.InterfaceParameterBase, info, p.PrivateVariableID)
	}

	for _, p := range r.Interface.Data {
		if p.Name == "" {
			continue
		}
		info, ok := b.resolve(&p.InterfaceParameterBase, gathered, log)
		if !ok {
			continue
		}
		if info.Flavor != params.FlavorData || info.DataType != p.Type || info.Container != p.Container || info.TypeObject != p.TypeObject {
			declared := params.Info{Flavor: params.FlavorData, DataType: p.Type, Container: p.Container, TypeObject: p.TypeObject}
			b.mismatch(&p.InterfaceParameterBase, log, declared.TypeName(), info)
			continue
		}
		b.bind(&p.InterfaceParameterBase, info, p.PrivateDataID)
	}

	ctxlog.FromContext(ctx).Debug("Binder: Bound interface parameters.", "rig", r.Name, "bound", len(b.bound))
}

// resolve finds the property an interface parameter targets, reporting every
// reason it cannot be bound.
func (b *Binder) resolve(p *rig.InterfaceParameterBase, gathered map[rig.Node]struct{}, log *buildlog.Log) (params.Info, bool) {
	if p.Target == nil {
		log.Error(p.Name, p.RangePtr(), "Missing target node", "interface parameter has no target node")
		return params.Info{}, false
	}
	if p.TargetPropertyName == "" {
		log.Error(p.Name, p.RangePtr(), "Missing target property",
			fmt.Sprintf("interface parameter targets %s but names no property", rig.Address(p.Target)))
		return params.Info{}, false
	}
	if _, ok := gathered[p.Target]; !ok {
		log.Error(p.Name, p.RangePtr(), "Missing target node",
			fmt.Sprintf("target %s is not part of the built node tree", rig.Address(p.Target)))
		return params.Info{}, false
	}

	info, ok := params.Find(b.Registry.Discover(p.Target), p.TargetPropertyName)
	if !ok {
		log.Error(p.Name, p.RangePtr(), "No such property",
			fmt.Sprintf("%s has no property named %q", rig.Address(p.Target), p.TargetPropertyName))
		return params.Info{}, false
	}
	if info.Variable != nil {
		log.Error(p.Name, p.RangePtr(), "Property already driven",
			fmt.Sprintf("property %s of %s is driven by variable %q and cannot also be exposed",
				info.Name, rig.Address(p.Target), info.Variable.Name))
		return params.Info{}, false
	}
	key := bindingKey{property: info.Name, node: p.Target}
	if other, dup := b.bound[key]; dup || info.Driven() {
		if other == "" {
			other = "another binding"
		}
		log.Error(p.Name, p.RangePtr(), "Duplicate binding",
			fmt.Sprintf("property %s of %s is already bound to %q",
				info.Name, rig.Address(p.Target), other))
		return params.Info{}, false
	}
	return info, true
}

func (b *Binder) mismatch(p *rig.InterfaceParameterBase, log *buildlog.Log, declared string, info params.Info) {
	log.Error(p.Name, p.RangePtr(), "Type mismatch",
		fmt.Sprintf("interface parameter is %s but property %s of %s is %s %s",
			declared, info.Name, rig.Address(p.Target), info.Flavor, info.TypeName()))
}

func (b *Binder) bind(p *rig.InterfaceParameterBase, info params.Info, id identity.ID) {
	key := bindingKey{property: info.Name, node: p.Target}
	*info.OverrideID = id
	b.bound[key] = p.Name

	old, had := b.old[key]
	delete(b.old, key)
	if !had || old != id {
		p.Target.Base().MarkModified()
	}
}

// DiscardUnusedParameters flags every node whose property an interface
// parameter stopped driving, in gather order. Its slot was already cleared
// while gathering.
func (b *Binder) DiscardUnusedParameters(ctx context.Context, log *buildlog.Log) {
	logger := ctxlog.FromContext(ctx)
	for _, key := range b.oldOrder {
		if _, left := b.old[key]; !left {
			continue
		}
		key.node.Base().MarkModified()
		object := rig.Address(key.node).String()
		log.Info(object, rig.RangePtr(key.node), "Binding removed",
			fmt.Sprintf("property %s is no longer driven by an interface parameter", key.property))
		logger.Debug("Binder: Discarded binding.", "node", object, "property", key.property)
	}
	clear(b.old)
	b.oldOrder = b.oldOrder[:0]
}

func structName(st *datatable.StructType) string {
	if st == nil {
		return "<none>"
	}
	return st.TypeName()
}
