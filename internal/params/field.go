package params

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// Flavor is the shape of a parameter.
type Flavor uint8

const (
	// FlavorParameter has a fixed default and a driving variable slot.
	FlavorParameter Flavor = iota
	// FlavorVariableReference has a driving variable slot only.
	FlavorVariableReference
	// FlavorData reads from the context data table.
	FlavorData
)

func (f Flavor) String() string {
	switch f {
	case FlavorParameter:
		return "parameter"
	case FlavorVariableReference:
		return "variable_reference"
	case FlavorData:
		return "data"
	default:
		return fmt.Sprintf("Flavor(%d)", uint8(f))
	}
}

// Blendable reports whether the flavor is driven by the variable table.
func (f Flavor) Blendable() bool {
	return f == FlavorParameter || f == FlavorVariableReference
}

// Field is the static registration of one parameter of a node type.
type Field struct {
	Name         string
	Flavor       Flavor
	VariableType vartable.Type
	StructType   *datatable.StructType
	DataType     datatable.Type
	Container    datatable.ContainerType
	TypeObject   datatable.TypeObject
	// Access returns the node's slot for this parameter. It is called with
	// nodes of the registered type only.
	Access func(node any) Slot
}

// Validate checks that the field is usable.
func (f Field) Validate() error {
	if f.Name == "" {
		return errors.New("field has no name")
	}
	if f.Access == nil {
		return fmt.Errorf("field %q has no accessor", f.Name)
	}
	if f.Flavor.Blendable() && f.VariableType == vartable.TypeBlendableStruct && f.StructType == nil {
		return fmt.Errorf("field %q is a blendable struct without a struct type", f.Name)
	}
	if f.Flavor.Blendable() && f.StructType != nil && !f.StructType.Inline() {
		return fmt.Errorf("field %q: struct %s holds pointers and cannot be blended", f.Name, f.StructType.TypeName())
	}
	return nil
}

// BlendableField registers a BlendableParameter[T] field.
func BlendableField[N any, T any](name string, get func(*N) *BlendableParameter[T]) Field {
	f := Field{
		Name:         name,
		Flavor:       FlavorParameter,
		VariableType: vartable.TypeFor[T](),
		Access:       func(node any) Slot { return get(node.(*N)) },
	}
	if f.VariableType == vartable.TypeBlendableStruct {
		f.StructType = StructTypeFor[T]()
	}
	return f
}

// ReferenceField registers a VariableReference field of the given kind.
func ReferenceField[N any](name string, typ vartable.Type, get func(*N) *VariableReference) Field {
	return Field{
		Name:         name,
		Flavor:       FlavorVariableReference,
		VariableType: typ,
		Access:       func(node any) Slot { return get(node.(*N)) },
	}
}

// DataField registers a DataParameter field.
func DataField[N any](name string, typ datatable.Type, container datatable.ContainerType, obj datatable.TypeObject, get func(*N) *DataParameter) Field {
	return Field{
		Name:       name,
		Flavor:     FlavorData,
		DataType:   typ,
		Container:  container,
		TypeObject: obj,
		Access:     func(node any) Slot { return get(node.(*N)) },
	}
}

// Info is one discovered parameter of a node.
type Info struct {
	Name         string
	Flavor       Flavor
	VariableType vartable.Type
	StructType   *datatable.StructType
	DataType     datatable.Type
	Container    datatable.ContainerType
	TypeObject   datatable.TypeObject
	// Default is the fixed default value, nil for reference and data shapes.
	Default any
	// OverrideID is the node's driving identity slot.
	OverrideID *identity.ID
	// Variable is the user-chosen explicit driver, or nil.
	Variable *vartable.VariableAsset
	// Custom marks parameters synthesized by a CustomProvider.
	Custom bool
}

// Driven reports whether the driving identity slot is populated.
func (i Info) Driven() bool {
	return i.OverrideID != nil && i.OverrideID.IsValid()
}

// TypeName describes the parameter's value kind for messages.
func (i Info) TypeName() string {
	if i.Flavor == FlavorData {
		s := i.DataType.String()
		if i.TypeObject != nil {
			s += "(" + i.TypeObject.TypeName() + ")"
		}
		if i.Container == datatable.ContainerArray {
			s = "array of " + s
		}
		return s
	}
	if i.StructType != nil {
		return i.VariableType.String() + "(" + i.StructType.TypeName() + ")"
	}
	return i.VariableType.String()
}
