package rig

import (
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/layout"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// EvaluatorAllocationInfo is the combined runtime state nodes need.
type EvaluatorAllocationInfo struct {
	TotalSize    int
	MaxAlignment int
}

// Add reserves size bytes at the given alignment after everything reserved so
// far.
func (e *EvaluatorAllocationInfo) Add(size, align int) {
	if align < 1 {
		align = 1
	}
	e.TotalSize = layout.Align(e.TotalSize, align) + size
	e.MaxAlignment = max(e.MaxAlignment, align)
}

// AllocationInfo is everything a build computes for a rig's evaluation.
type AllocationInfo struct {
	Evaluator   EvaluatorAllocationInfo
	Variables   vartable.AllocationInfo
	ContextData datatable.AllocationInfo
}

// Equal reports structural equality.
func (a AllocationInfo) Equal(other AllocationInfo) bool {
	return a.Evaluator == other.Evaluator &&
		a.Variables.Equal(other.Variables) &&
		a.ContextData.Equal(other.ContextData)
}

// Combine merges other into a, as a nested rig does with its inner rig.
func (a *AllocationInfo) Combine(other AllocationInfo) error {
	if other.Evaluator.TotalSize > 0 {
		a.Evaluator.Add(other.Evaluator.TotalSize, other.Evaluator.MaxAlignment)
	}
	if err := a.Variables.Combine(other.Variables); err != nil {
		return err
	}
	return a.ContextData.Combine(other.ContextData)
}
