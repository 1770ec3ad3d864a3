package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/rig"
)

// Module is implemented by bundles of node types.
type Module interface {
	Register(r *Registry)
}

// NodeType is the registration of one node type.
type NodeType struct {
	Name   string
	New    func() rig.Node
	Fields []params.Field
}

// Field returns the registered field with the given name.
func (t *NodeType) Field(name string) (params.Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return params.Field{}, false
}

// Registry holds the node types of one application instance, along with the
// enum, struct and class types their data parameters refer to.
type Registry struct {
	nodeTypes   map[string]*NodeType
	typeObjects map[string]datatable.TypeObject
}

// New creates an empty Registry, then registers modules.
func New(modules ...Module) *Registry {
	r := &Registry{
		nodeTypes:   make(map[string]*NodeType),
		typeObjects: make(map[string]datatable.TypeObject),
	}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register adds a node type. Registering the same name twice or a node type
// with invalid fields is a programming error and panics.
func (r *Registry) Register(t *NodeType) {
	if t.Name == "" || t.New == nil {
		panic(fmt.Sprintf("node type %q must have a name and a constructor", t.Name))
	}
	if _, exists := r.nodeTypes[t.Name]; exists {
		panic(fmt.Sprintf("node type with name '%s' already registered", t.Name))
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if err := f.Validate(); err != nil {
			panic(fmt.Sprintf("node type '%s': %v", t.Name, err))
		}
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("node type '%s': field '%s' registered twice", t.Name, f.Name))
		}
		seen[f.Name] = struct{}{}
	}
	slog.Debug("Registering node type.", "name", t.Name, "fields", len(t.Fields))
	r.nodeTypes[t.Name] = t
}

// Lookup returns the node type registered under name.
func (r *Registry) Lookup(name string) (*NodeType, bool) {
	t, ok := r.nodeTypes[name]
	return t, ok
}

// Fields returns the registered fields of n's type, or nil when the type is
// unknown.
func (r *Registry) Fields(n rig.Node) []params.Field {
	if t, ok := r.nodeTypes[n.NodeType()]; ok {
		return t.Fields
	}
	return nil
}

// Discover lists the parameters of n, registered and custom.
func (r *Registry) Discover(n rig.Node) []params.Info {
	return params.Discover(r.Fields(n), n)
}

// Names returns every registered node type name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.nodeTypes))
	for name := range r.nodeTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTypeObject makes an enum, struct or class type available to rig
// files by name. Registering a different object under a taken name panics.
func (r *Registry) RegisterTypeObject(obj datatable.TypeObject) {
	name := obj.TypeName()
	if existing, exists := r.typeObjects[name]; exists {
		if existing == obj {
			return
		}
		panic(fmt.Sprintf("type object with name '%s' already registered", name))
	}
	slog.Debug("Registering type object.", "name", name)
	r.typeObjects[name] = obj
}

// LookupTypeObject returns the type object registered under name.
func (r *Registry) LookupTypeObject(name string) (datatable.TypeObject, bool) {
	obj, ok := r.typeObjects[name]
	return obj, ok
}
