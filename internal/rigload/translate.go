package rigload

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/nodeid"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/zclconf/go-cty/cty"
)

// rigNamespace seeds the GUIDs of rigs that do not declare one.
var rigNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("camrig:rig"))

// rigReferrer is implemented by nodes that evaluate another rig.
type rigReferrer interface {
	SetRig(r *rig.Rig)
}

type rigEntry struct {
	block *rigBlock
	rig   *rig.Rig
	nodes map[string]rig.Node
	// refs are the rigs this rig's nodes evaluate.
	refs []*rigEntry
}

type translator struct {
	reg   *registry.Registry
	diags hcl.Diagnostics

	variables []*vartable.VariableAsset
	varByName map[string]*vartable.VariableAsset
	rigs      []*rigEntry
	rigByName map[string]*rigEntry
}

func newTranslator(reg *registry.Registry) *translator {
	return &translator{
		reg:       reg,
		varByName: make(map[string]*vartable.VariableAsset),
		rigByName: make(map[string]*rigEntry),
	}
}

func (t *translator) errorf(subject hcl.Range, summary, format string, args ...any) {
	t.diags = append(t.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  subject.Ptr(),
	})
}

func (t *translator) guid(raw string, subject hcl.Range) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		t.errorf(subject, "Invalid GUID", "%q is not a valid GUID: %v.", raw, err)
		return uuid.Nil, false
	}
	return id, true
}

// value evaluates a literal expression. References and functions are not
// available in rig files.
func (t *translator) value(expr hcl.Expression) (cty.Value, bool) {
	if expr == nil {
		return cty.NilVal, false
	}
	v, diags := expr.Value(nil)
	t.diags = append(t.diags, diags...)
	return v, !diags.HasErrors()
}

func (t *translator) variable(vb *variableBlock) {
	if _, dup := t.varByName[vb.Name]; dup {
		t.errorf(vb.DeclRange, "Duplicate variable", "A variable named %q was already declared.", vb.Name)
		return
	}
	guid, ok := t.guid(vb.GUID, vb.DeclRange)
	if !ok {
		return
	}
	typ, st, diags := variableType(t.reg, vb.Type)
	t.diags = append(t.diags, diags...)
	if diags.HasErrors() {
		return
	}

	v := &vartable.VariableAsset{
		GUID:       guid,
		Name:       vb.Name,
		Type:       typ,
		StructType: st,
		AutoReset:  vb.AutoReset,
		Input:      vb.Input,
	}
	if def, ok := t.value(vb.Default); ok && !def.IsNull() {
		converted, err := vartable.FromCty(typ, st, def)
		if err != nil {
			t.errorf(vb.Default.Range(), "Invalid default value", "Variable %q: %v.", vb.Name, err)
			return
		}
		v.Default = converted
	}
	t.variables = append(t.variables, v)
	t.varByName[v.Name] = v
}

func (t *translator) declareRig(rb *rigBlock) {
	if _, dup := t.rigByName[rb.Name]; dup {
		t.errorf(rb.DeclRange, "Duplicate rig", "A rig named %q was already declared.", rb.Name)
		return
	}
	r := &rig.Rig{Name: rb.Name, Range: rb.DeclRange}
	if rb.GUID != "" {
		r.GUID, _ = t.guid(rb.GUID, rb.DeclRange)
	} else {
		r.GUID = uuid.NewSHA1(rigNamespace, []byte(rb.Name))
	}
	e := &rigEntry{block: rb, rig: r, nodes: make(map[string]rig.Node)}
	t.rigs = append(t.rigs, e)
	t.rigByName[rb.Name] = e
}

// translate fills in every declared rig. Nodes and interfaces come first so
// that node parameters can refer to the interface of a nested rig.
func (t *translator) translate() {
	for _, e := range t.rigs {
		t.nodes(e)
	}
	for _, e := range t.rigs {
		t.links(e)
		t.interfaceParams(e)
	}
	for _, e := range t.rigs {
		t.nodeParams(e)
	}
}

func (t *translator) nodes(e *rigEntry) {
	for _, nb := range e.block.Nodes {
		nt, ok := t.reg.Lookup(nb.Type)
		if !ok {
			t.errorf(nb.DeclRange, "Unknown node type", "No node type named %q is registered. Available types: %s.",
				nb.Type, strings.Join(t.reg.Names(), ", "))
			continue
		}
		addr := nodeid.New(nb.Type, nb.Name)
		if _, err := nodeid.Parse(addr.String()); err != nil {
			t.errorf(nb.DeclRange, "Invalid node name", "%v.", err)
			continue
		}
		if _, dup := e.nodes[addr.String()]; dup {
			t.errorf(nb.DeclRange, "Duplicate node", "Rig %q already has a node %s.", e.rig.Name, addr)
			continue
		}

		n := nt.New()
		base := n.Base()
		base.Name = nb.Name
		base.Range = nb.DeclRange
		if nb.GUID != "" {
			base.GUID, _ = t.guid(nb.GUID, nb.DeclRange)
		} else {
			base.GUID = uuid.NewSHA1(e.rig.GUID, []byte(addr.String()))
		}
		e.nodes[addr.String()] = n
		e.rig.AllNodes = append(e.rig.AllNodes, n)
	}
}

func (t *translator) node(e *rigEntry, raw string, subject hcl.Range) rig.Node {
	addr, err := nodeid.Parse(raw)
	if err != nil {
		t.errorf(subject, "Invalid node address", "%v.", err)
		return nil
	}
	n, ok := e.nodes[addr.String()]
	if !ok {
		t.errorf(subject, "Unknown node", "Rig %q has no node %s.", e.rig.Name, addr)
		return nil
	}
	return n
}

// links resolves the root, child lists and nested rig references of e.
func (t *translator) links(e *rigEntry) {
	rb := e.block
	switch {
	case rb.Root != "":
		e.rig.Root = t.node(e, rb.Root, rb.DeclRange)
	case len(e.rig.AllNodes) == 1:
		e.rig.Root = e.rig.AllNodes[0]
	case len(e.rig.AllNodes) > 1:
		t.errorf(rb.DeclRange, "Missing root", "Rig %q has several nodes and must name its root.", rb.Name)
	}

	for _, nb := range rb.Nodes {
		n, ok := e.nodes[nodeid.New(nb.Type, nb.Name).String()]
		if !ok {
			continue
		}
		if len(nb.Children) > 0 {
			parent, isParent := n.(rig.Parent)
			if !isParent {
				t.errorf(nb.DeclRange, "Unexpected children", "Node type %q does not take children.", nb.Type)
			} else {
				for _, raw := range nb.Children {
					if child := t.node(e, raw, nb.DeclRange); child != nil {
						parent.AddChild(child)
					}
				}
			}
		}

		referrer, isReferrer := n.(rigReferrer)
		switch {
		case nb.Rig != "" && !isReferrer:
			t.errorf(nb.DeclRange, "Unexpected rig", "Node type %q does not evaluate another rig.", nb.Type)
		case nb.Rig != "":
			inner, ok := t.rigByName[nb.Rig]
			if !ok {
				t.errorf(nb.DeclRange, "Unknown rig", "No rig named %q is declared.", nb.Rig)
				continue
			}
			referrer.SetRig(inner.rig)
			e.refs = append(e.refs, inner)
		}
	}
}

func (t *translator) interfaceParams(e *rigEntry) {
	for _, b := range e.block.Blendables {
		base, ok := t.interfaceBase(e, b.Name, b.GUID, b.Target, b.Property, b.DeclRange)
		if !ok {
			continue
		}
		typ, st, diags := variableType(t.reg, b.Type)
		t.diags = append(t.diags, diags...)
		if diags.HasErrors() {
			continue
		}
		p := &rig.BlendableInterfaceParameter{
			InterfaceParameterBase: base,
			Type:                   typ,
			StructType:             st,
			PrivateVariableID:      identity.Invalid,
		}
		if def, ok := t.value(b.Default); ok && !def.IsNull() {
			v, err := vartable.FromCty(typ, st, def)
			if err != nil {
				t.errorf(b.Default.Range(), "Invalid default value", "Interface parameter %q: %v.", b.Name, err)
				continue
			}
			p.Default = v
		}
		e.rig.Interface.Blendables = append(e.rig.Interface.Blendables, p)
	}

	for _, b := range e.block.Data {
		base, ok := t.interfaceBase(e, b.Name, b.GUID, b.Target, b.Property, b.DeclRange)
		if !ok {
			continue
		}
		typ, container, obj, diags := dataType(t.reg, b.Type)
		t.diags = append(t.diags, diags...)
		if diags.HasErrors() {
			continue
		}
		p := &rig.DataInterfaceParameter{
			InterfaceParameterBase: base,
			Type:                   typ,
			Container:              container,
			TypeObject:             obj,
			PrivateDataID:          identity.Invalid,
		}
		if def, ok := t.value(b.Default); ok && !def.IsNull() {
			v, err := dataValue(t.reg, p.DataDefinition(), def)
			if err != nil {
				t.errorf(b.Default.Range(), "Invalid default value", "Interface parameter %q: %v.", b.Name, err)
				continue
			}
			p.Default = v
		}
		e.rig.Interface.Data = append(e.rig.Interface.Data, p)
	}
}

func (t *translator) interfaceBase(e *rigEntry, name, rawGUID, target, property string, subject hcl.Range) (rig.InterfaceParameterBase, bool) {
	guid, ok := t.guid(rawGUID, subject)
	if !ok {
		return rig.InterfaceParameterBase{}, false
	}
	base := rig.InterfaceParameterBase{
		Name:               name,
		GUID:               guid,
		TargetPropertyName: property,
		Range:              subject,
	}
	// An empty target is left for the build to report.
	if target != "" {
		base.Target = t.node(e, target, subject)
		if base.Target == nil {
			return base, false
		}
	}
	return base, true
}

func (t *translator) nodeParams(e *rigEntry) {
	for _, nb := range e.block.Nodes {
		n, ok := e.nodes[nodeid.New(nb.Type, nb.Name).String()]
		if !ok {
			continue
		}
		nt, _ := t.reg.Lookup(nb.Type)
		for _, pb := range nb.Params {
			t.nodeParam(n, nt, pb)
		}
	}
}

func (t *translator) nodeParam(n rig.Node, nt *registry.NodeType, pb *paramBlock) {
	addr := rig.Address(n)
	value, ok := t.value(pb.Value)
	if !ok {
		return
	}

	var variable *vartable.VariableAsset
	if pb.Variable != "" {
		variable, ok = t.varByName[pb.Variable]
		if !ok {
			t.errorf(pb.DeclRange, "Unknown variable", "No variable named %q is declared.", pb.Variable)
			return
		}
	}

	field, ok := nt.Field(pb.Name)
	if !ok {
		setter, isSetter := n.(params.CustomParameterSetter)
		if !isSetter {
			t.errorf(pb.DeclRange, "Unknown property", "%s has no property named %q.", addr, pb.Name)
			return
		}
		if err := setter.SetCustomParameter(pb.Name, value, variable); err != nil {
			t.errorf(pb.DeclRange, "Invalid parameter", "%s: %v.", addr, err)
		}
		return
	}

	slot := field.Access(n)
	if !value.IsNull() {
		if err := slot.SetDefault(value); err != nil {
			t.errorf(pb.Value.Range(), "Invalid parameter value", "%s.%s: %v.", addr, pb.Name, err)
		}
	}
	if variable != nil {
		driver, canDrive := slot.(params.Driver)
		if !canDrive {
			t.errorf(pb.DeclRange, "Property cannot be driven", "%s.%s is a %s and cannot be driven by a variable.", addr, pb.Name, field.Flavor)
			return
		}
		driver.Drive(variable)
	}
}

// ordered returns the rigs so that referenced rigs come first. Reference
// cycles are reported as errors.
func (t *translator) ordered() []*rig.Rig {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*rigEntry]int, len(t.rigs))
	out := make([]*rig.Rig, 0, len(t.rigs))

	var visit func(e *rigEntry)
	visit = func(e *rigEntry) {
		switch state[e] {
		case done:
			return
		case visiting:
			t.errorf(e.block.DeclRange, "Rig reference cycle", "Rig %q refers back to itself through nested rigs.", e.rig.Name)
			return
		}
		state[e] = visiting
		for _, ref := range e.refs {
			visit(ref)
		}
		state[e] = done
		out = append(out, e.rig)
	}
	for _, e := range t.rigs {
		visit(e)
	}
	return out
}
