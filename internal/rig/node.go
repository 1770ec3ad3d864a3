package rig

import (
	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/nodeid"
)

// Node is one element of a rig's node tree.
type Node interface {
	Base() *NodeBase
	// NodeType is the registered type name of the node.
	NodeType() string
	Children() []Node
	PreBuild(log *buildlog.Log)
	Build(ctx *BuildContext)
}

// Parent is implemented by nodes that accept children from rig files.
type Parent interface {
	AddChild(child Node)
}

// NodeBase holds the state every node carries. Embedding it provides the
// Base accessor and no-op hooks.
type NodeBase struct {
	Name  string
	GUID  uuid.UUID
	Range hcl.Range

	modified bool
}

func (b *NodeBase) Base() *NodeBase { return b }

func (b *NodeBase) Children() []Node { return nil }

func (b *NodeBase) PreBuild(*buildlog.Log) {}

func (b *NodeBase) Build(*BuildContext) {}

// MarkModified flags the node as structurally changed by a build, so that
// whatever persists it knows to save it again.
func (b *NodeBase) MarkModified() { b.modified = true }

// Modified reports whether the node was flagged since the last ClearModified.
func (b *NodeBase) Modified() bool { return b.modified }

func (b *NodeBase) ClearModified() { b.modified = false }

// Address returns the `type.name` address of n.
func Address(n Node) nodeid.Address {
	return nodeid.New(n.NodeType(), n.Base().Name)
}

// RangePtr returns the node's source range, or nil when it has none.
func RangePtr(n Node) *hcl.Range {
	r := n.Base().Range
	if r.Filename == "" {
		return nil
	}
	return &r
}
