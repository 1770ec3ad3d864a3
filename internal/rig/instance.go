package rig

import (
	"fmt"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/layout"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// Instance holds the evaluation state of one rig: its two tables and the
// evaluator memory its nodes reserved.
type Instance struct {
	Rig         *Rig
	Variables   *vartable.Table
	ContextData *datatable.Table
	Evaluator   []byte
}

// Instantiate lays out the evaluation state of r from its committed
// allocation info and writes the defaults of the given user variables and of
// every bound interface parameter. Defaults are written without marking the
// current frame.
func Instantiate(r *Rig, variables ...*vartable.VariableAsset) (*Instance, error) {
	if r.BuildStatus == StatusDirty {
		return nil, fmt.Errorf("rig %q has not been built", r.Name)
	}
	info := r.AllocationInfo
	if info.Evaluator.MaxAlignment > layout.BaseAlignment {
		return nil, fmt.Errorf("rig %q: evaluator alignment %d exceeds %d", r.Name, info.Evaluator.MaxAlignment, layout.BaseAlignment)
	}

	inst := &Instance{
		Rig:         r,
		Variables:   vartable.New(info.Variables),
		ContextData: datatable.New(info.ContextData),
		Evaluator:   layout.Alloc(info.Evaluator.TotalSize),
	}

	for _, v := range variables {
		if v == nil || v.Default == nil || !inst.Variables.Contains(v.ID()) {
			continue
		}
		if err := inst.Variables.SetValue(v.ID(), v.Default); err != nil {
			return nil, fmt.Errorf("default of variable %q: %w", v.Name, err)
		}
	}
	for _, p := range r.Interface.Blendables {
		if p == nil || p.Default == nil || !inst.Variables.Contains(p.PrivateVariableID) {
			continue
		}
		if err := inst.Variables.SetValue(p.PrivateVariableID, p.Default); err != nil {
			return nil, fmt.Errorf("default of interface parameter %q: %w", p.Name, err)
		}
	}
	for _, p := range r.Interface.Data {
		if p == nil || p.Default == nil || !inst.ContextData.Contains(p.PrivateDataID) {
			continue
		}
		if err := inst.ContextData.SetValue(p.PrivateDataID, p.Default); err != nil {
			return nil, fmt.Errorf("default of interface parameter %q: %w", p.Name, err)
		}
	}
	for _, n := range r.AllNodes {
		if init, ok := n.(InstanceInitializer); ok {
			if err := init.InitInstance(inst); err != nil {
				return nil, fmt.Errorf("%s: %w", Address(n), err)
			}
		}
	}
	inst.Variables.ClearAllWrittenThisFrameFlags()
	inst.ContextData.ClearAllWrittenThisFrameFlags()
	return inst, nil
}

// InstanceInitializer is implemented by nodes that write initial values of
// their own into a fresh instance, after the rig's defaults.
type InstanceInitializer interface {
	InitInstance(inst *Instance) error
}

// BeginFrame applies per-frame bookkeeping: auto-reset entries decay and the
// written-this-frame flags are cleared.
func (i *Instance) BeginFrame() {
	i.Variables.AutoResetValues()
	i.Variables.ClearAllWrittenThisFrameFlags()
	i.ContextData.AutoResetValues()
	i.ContextData.ClearAllWrittenThisFrameFlags()
}
