package rig

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// BuildContext is handed to each node's Build hook. It carries the allocation
// info being accumulated for the rig and the log to report problems to.
type BuildContext struct {
	Context        context.Context
	Log            *buildlog.Log
	AllocationInfo *AllocationInfo
	// Node is the node currently being built.
	Node Node
}

func (c *BuildContext) object() string {
	if c.Node == nil {
		return ""
	}
	return Address(c.Node).String()
}

// AllocateEvaluator reserves runtime state for the current node.
func (c *BuildContext) AllocateEvaluator(size, align int) {
	c.AllocationInfo.Evaluator.Add(size, align)
}

// AddVariable registers a variable. A conflicting definition is reported as
// a build error.
func (c *BuildContext) AddVariable(def vartable.VariableDefinition) {
	if err := c.AllocationInfo.Variables.Add(def); err != nil {
		c.Log.Error(c.object(), c.rangePtr(), "Conflicting variable", err.Error())
	}
}

// AddContextData registers a context data entry. A conflicting definition
// is reported as a build error.
func (c *BuildContext) AddContextData(def datatable.EntryDefinition) {
	if err := c.AllocationInfo.ContextData.Add(def); err != nil {
		c.Log.Error(c.object(), c.rangePtr(), "Conflicting context data", err.Error())
	}
}

func (c *BuildContext) rangePtr() *hcl.Range {
	if c.Node == nil {
		return nil
	}
	return RangePtr(c.Node)
}
