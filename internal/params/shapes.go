package params

import (
	"fmt"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/zclconf/go-cty/cty"
)

// Slot is the storage a node keeps for one parameter.
type Slot interface {
	// DrivingID returns the identity slot that, when valid, redirects reads
	// of the parameter to an evaluation table.
	DrivingID() *identity.ID
	// DrivingVariable returns the variable a user explicitly chose to drive
	// the parameter with, or nil.
	DrivingVariable() *vartable.VariableAsset
	// DefaultValue returns the fixed default, or nil when the shape has none.
	DefaultValue() any
	// SetDefault replaces the fixed default from an HCL literal.
	SetDefault(v cty.Value) error
}

// BlendableParameter is a node property with a fixed default that can be
// driven by a variable.
type BlendableParameter[T any] struct {
	Value      T
	Variable   *vartable.VariableAsset
	VariableID identity.ID
}

// Blendable returns an undriven parameter with the given default.
func Blendable[T any](v T) BlendableParameter[T] {
	return BlendableParameter[T]{Value: v, VariableID: identity.Invalid}
}

func (p *BlendableParameter[T]) DrivingID() *identity.ID                  { return &p.VariableID }
func (p *BlendableParameter[T]) DrivingVariable() *vartable.VariableAsset { return p.Variable }
func (p *BlendableParameter[T]) DefaultValue() any                        { return p.Value }

func (p *BlendableParameter[T]) SetDefault(v cty.Value) error {
	typ := vartable.TypeFor[T]()
	var st *datatable.StructType
	if typ == vartable.TypeBlendableStruct {
		st = StructTypeFor[T]()
	}
	out, err := vartable.FromCty(typ, st, v)
	if err != nil {
		return err
	}
	p.Value = out.(T)
	return nil
}

// Drive binds the parameter to a user-chosen variable.
func (p *BlendableParameter[T]) Drive(v *vartable.VariableAsset) {
	p.Variable = v
	p.VariableID = identity.Invalid
	if v != nil {
		p.VariableID = v.ID()
	}
}

// VariableReference is a node property that only reads a variable and has
// no default of its own.
type VariableReference struct {
	Variable   *vartable.VariableAsset
	VariableID identity.ID
}

// Reference returns an unbound variable reference.
func Reference() VariableReference {
	return VariableReference{VariableID: identity.Invalid}
}

func (r *VariableReference) DrivingID() *identity.ID                  { return &r.VariableID }
func (r *VariableReference) DrivingVariable() *vartable.VariableAsset { return r.Variable }
func (r *VariableReference) DefaultValue() any                        { return nil }

func (r *VariableReference) SetDefault(cty.Value) error {
	return fmt.Errorf("variable references have no default value")
}

// Drive binds the reference to a user-chosen variable.
func (r *VariableReference) Drive(v *vartable.VariableAsset) {
	r.Variable = v
	r.VariableID = identity.Invalid
	if v != nil {
		r.VariableID = v.ID()
	}
}

// DataParameter is a node property read from the context data table.
type DataParameter struct {
	DataID identity.ID
}

// Data returns an unbound data parameter.
func Data() DataParameter {
	return DataParameter{DataID: identity.Invalid}
}

func (d *DataParameter) DrivingID() *identity.ID                  { return &d.DataID }
func (d *DataParameter) DrivingVariable() *vartable.VariableAsset { return nil }
func (d *DataParameter) DefaultValue() any                        { return nil }

func (d *DataParameter) SetDefault(cty.Value) error {
	return fmt.Errorf("data parameters have no default value")
}
