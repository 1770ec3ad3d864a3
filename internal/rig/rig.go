package rig

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
)

// BuildStatus is the outcome of the last build of a rig.
type BuildStatus uint8

const (
	StatusDirty BuildStatus = iota
	StatusClean
	StatusCleanWithWarnings
	StatusError
)

func (s BuildStatus) String() string {
	switch s {
	case StatusDirty:
		return "dirty"
	case StatusClean:
		return "clean"
	case StatusCleanWithWarnings:
		return "clean_with_warnings"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("BuildStatus(%d)", uint8(s))
	}
}

// Rig is a composite camera object: a root node, every node owned by the
// rig, and the interface it exposes.
type Rig struct {
	Name  string
	GUID  uuid.UUID
	Range hcl.Range

	Root Node
	// AllNodes lists every node the rig owns, including nodes not reachable
	// from Root.
	AllNodes  []Node
	Interface Interface

	// AllocationInfo is the last committed build result.
	AllocationInfo AllocationInfo
	BuildStatus    BuildStatus
}

// Owns reports whether n is listed in AllNodes.
func (r *Rig) Owns(n Node) bool {
	for _, owned := range r.AllNodes {
		if owned == n {
			return true
		}
	}
	return false
}

// FindNode returns the owned node with the given `type.name` address.
func (r *Rig) FindNode(address string) Node {
	for _, n := range r.AllNodes {
		if Address(n).String() == address {
			return n
		}
	}
	return nil
}
