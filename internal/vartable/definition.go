package vartable

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/identity"
)

// VariableDefinition is the build-time schema of one variable.
type VariableDefinition struct {
	ID         identity.ID
	Type       Type
	StructType *datatable.StructType
	AutoReset  bool
	// Private variables back interface parameters and are not user-visible.
	Private bool
	// Input variables are expected to be supplied by gameplay code.
	Input bool
	Name  string
}

// Equal reports structural equality.
func (d VariableDefinition) Equal(other VariableDefinition) bool {
	return d == other
}

func (d VariableDefinition) String() string {
	s := fmt.Sprintf("%s %s", d.ID, d.Type)
	if d.StructType != nil {
		s += "(" + d.StructType.TypeName() + ")"
	}
	if d.Name != "" {
		s += " " + d.Name
	}
	return s
}

// AllocationInfo is the ordered, identity-deduplicated list of variables a
// table is laid out from.
type AllocationInfo struct {
	Variables []VariableDefinition
}

// Find returns the definition with the given identity.
func (a *AllocationInfo) Find(id identity.ID) (VariableDefinition, bool) {
	for _, def := range a.Variables {
		if def.ID == id {
			return def, true
		}
	}
	return VariableDefinition{}, false
}

// Contains reports whether a variable with the given identity is present.
func (a *AllocationInfo) Contains(id identity.ID) bool {
	_, ok := a.Find(id)
	return ok
}

// Add appends def. Re-adding an equal definition is a no-op; a different
// definition under the same identity is an error.
func (a *AllocationInfo) Add(def VariableDefinition) error {
	if !def.ID.IsValid() {
		return fmt.Errorf("variable definition %q has an invalid id", def.Name)
	}
	if existing, ok := a.Find(def.ID); ok {
		if !existing.Equal(def) {
			return fmt.Errorf("conflicting variable definitions for id %s: %v vs %v", def.ID, existing, def)
		}
		return nil
	}
	a.Variables = append(a.Variables, def)
	return nil
}

// Combine adds every definition of other, stopping at the first conflict.
func (a *AllocationInfo) Combine(other AllocationInfo) error {
	for _, def := range other.Variables {
		if err := a.Add(def); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether both infos hold equal definitions in the same order.
func (a AllocationInfo) Equal(other AllocationInfo) bool {
	if len(a.Variables) != len(other.Variables) {
		return false
	}
	for i := range a.Variables {
		if a.Variables[i] != other.Variables[i] {
			return false
		}
	}
	return true
}

// VariableAsset is a user-created variable that parameters can be explicitly
// driven by. Its identity derives from its GUID.
type VariableAsset struct {
	GUID       uuid.UUID
	Name       string
	Type       Type
	StructType *datatable.StructType
	AutoReset  bool
	Input      bool
	Default    any
}

// ID returns the variable's table identity.
func (v *VariableAsset) ID() identity.ID {
	return identity.FromGUID(v.GUID)
}

// Definition returns the variable's table schema.
func (v *VariableAsset) Definition() VariableDefinition {
	return VariableDefinition{
		ID:         v.ID(),
		Type:       v.Type,
		StructType: v.StructType,
		AutoReset:  v.AutoReset,
		Input:      v.Input,
		Name:       v.Name,
	}
}
