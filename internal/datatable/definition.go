package datatable

import (
	"fmt"

	"github.com/specialistvlad/camrig/internal/identity"
)

// EntryDefinition is the build-time schema of one table entry.
type EntryDefinition struct {
	ID         identity.ID
	Type       Type
	Container  ContainerType
	TypeObject TypeObject
	AutoReset  bool
	// Name is only used for diagnostics.
	Name string
}

// Equal reports structural equality. Type objects compare by identity.
func (d EntryDefinition) Equal(other EntryDefinition) bool {
	return d.ID == other.ID &&
		d.Type == other.Type &&
		d.Container == other.Container &&
		d.TypeObject == other.TypeObject &&
		d.AutoReset == other.AutoReset &&
		d.Name == other.Name
}

func (d EntryDefinition) String() string {
	s := fmt.Sprintf("%s %s", d.ID, d.Type)
	if d.TypeObject != nil {
		s += "(" + d.TypeObject.TypeName() + ")"
	}
	if d.Container == ContainerArray {
		s += "[]"
	}
	if d.Name != "" {
		s += " " + d.Name
	}
	return s
}

// AllocationInfo is the ordered, identity-deduplicated list of definitions a
// table is laid out from.
type AllocationInfo struct {
	Definitions []EntryDefinition
}

// Find returns the definition with the given identity.
func (a *AllocationInfo) Find(id identity.ID) (EntryDefinition, bool) {
	for _, def := range a.Definitions {
		if def.ID == id {
			return def, true
		}
	}
	return EntryDefinition{}, false
}

// Contains reports whether a definition with the given identity is present.
func (a *AllocationInfo) Contains(id identity.ID) bool {
	_, ok := a.Find(id)
	return ok
}

// Add appends def. Adding a definition whose identity is already present is a
// no-op when both definitions are equal and an error otherwise.
func (a *AllocationInfo) Add(def EntryDefinition) error {
	if !def.ID.IsValid() {
		return fmt.Errorf("context data definition %q has an invalid id", def.Name)
	}
	if existing, ok := a.Find(def.ID); ok {
		if !existing.Equal(def) {
			return fmt.Errorf("conflicting context data definitions for id %s: %v vs %v", def.ID, existing, def)
		}
		return nil
	}
	a.Definitions = append(a.Definitions, def)
	return nil
}

// Combine adds every definition of other, stopping at the first conflict.
func (a *AllocationInfo) Combine(other AllocationInfo) error {
	for _, def := range other.Definitions {
		if err := a.Add(def); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether both infos hold equal definitions in the same order.
func (a AllocationInfo) Equal(other AllocationInfo) bool {
	if len(a.Definitions) != len(other.Definitions) {
		return false
	}
	for i := range a.Definitions {
		if !a.Definitions[i].Equal(other.Definitions[i]) {
			return false
		}
	}
	return true
}
