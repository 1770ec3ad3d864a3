package rig

import (
	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// InterfaceParameterBase is the part shared by both interface parameter
// flavors: the exposed name and the node property it is bound to.
type InterfaceParameterBase struct {
	// Name is the name the parameter is exposed under. Parameters with an
	// empty name are ignored by builds.
	Name               string
	GUID               uuid.UUID
	Target             Node
	TargetPropertyName string
	Range              hcl.Range

	modified bool
}

// PrivateID is the identity of the parameter's backing table entry.
func (p *InterfaceParameterBase) PrivateID() identity.ID {
	return identity.FromGUID(p.GUID)
}

func (p *InterfaceParameterBase) MarkModified()  { p.modified = true }
func (p *InterfaceParameterBase) Modified() bool { return p.modified }
func (p *InterfaceParameterBase) ClearModified() { p.modified = false }

// RangePtr returns the parameter's source range, or nil when it has none.
func (p *InterfaceParameterBase) RangePtr() *hcl.Range {
	if p.Range.Filename == "" {
		return nil
	}
	r := p.Range
	return &r
}

// BlendableInterfaceParameter exposes a blendable node property. Its value
// lives in the variable table.
type BlendableInterfaceParameter struct {
	InterfaceParameterBase
	Type       vartable.Type
	StructType *datatable.StructType
	// Default is written to the variable table when the rig is instantiated.
	Default           any
	PrivateVariableID identity.ID
}

// VariableDefinition returns the schema of the parameter's private variable.
func (p *BlendableInterfaceParameter) VariableDefinition() vartable.VariableDefinition {
	return vartable.VariableDefinition{
		ID:         p.PrivateVariableID,
		Type:       p.Type,
		StructType: p.StructType,
		Private:    true,
		Input:      true,
		Name:       p.Name,
	}
}

// DataInterfaceParameter exposes a data node property. Its value lives in the
// context data table.
type DataInterfaceParameter struct {
	InterfaceParameterBase
	Type       datatable.Type
	Container  datatable.ContainerType
	TypeObject datatable.TypeObject
	// Default, when set, is written to the context data table when the rig is
	// instantiated.
	Default       any
	PrivateDataID identity.ID
}

// DataDefinition returns the schema of the parameter's private entry.
func (p *DataInterfaceParameter) DataDefinition() datatable.EntryDefinition {
	return datatable.EntryDefinition{
		ID:         p.PrivateDataID,
		Type:       p.Type,
		Container:  p.Container,
		TypeObject: p.TypeObject,
		Name:       p.Name,
	}
}

// Interface is the set of parameters a rig exposes.
type Interface struct {
	Blendables []*BlendableInterfaceParameter
	Data       []*DataInterfaceParameter
}

// Len returns the number of declared parameters.
func (i *Interface) Len() int {
	return len(i.Blendables) + len(i.Data)
}

// FindBlendable returns the blendable parameter exposed under name.
func (i *Interface) FindBlendable(name string) *BlendableInterfaceParameter {
	for _, p := range i.Blendables {
		if p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

// FindData returns the data parameter exposed under name.
func (i *Interface) FindData(name string) *DataInterfaceParameter {
	for _, p := range i.Data {
		if p != nil && p.Name == name {
			return p
		}
	}
	return nil
}
