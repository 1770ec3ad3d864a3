package testutil

import (
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/registry"
)

// SimpleModule is a test helper for registering extra node types and type
// objects alongside the built-in ones.
type SimpleModule struct {
	NodeTypes   []*registry.NodeType
	TypeObjects []datatable.TypeObject
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for _, obj := range m.TypeObjects {
		r.RegisterTypeObject(obj)
	}
	for _, nt := range m.NodeTypes {
		r.Register(nt)
	}
}
