package rigbuild

import (
	"context"
	"fmt"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/ctxlog"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
)

// Walker visits the nodes of a rig in a fixed depth-first, child-order
// preserving sequence.
type Walker struct {
	Registry *registry.Registry
}

// Gather flattens the node tree of r. Nodes reachable from the root that r
// does not list are reattached to it with a warning. When includeStray is
// set, owned nodes unreachable from the root are appended after the tree.
func (w *Walker) Gather(ctx context.Context, r *rig.Rig, includeStray bool, log *buildlog.Log) []rig.Node {
	logger := ctxlog.FromContext(ctx)

	owned := make(map[rig.Node]struct{}, len(r.AllNodes))
	for _, n := range r.AllNodes {
		if n != nil {
			owned[n] = struct{}{}
		}
	}

	visited := make(map[rig.Node]struct{}, len(owned))
	var nodes []rig.Node
	var visit func(n rig.Node)
	visit = func(n rig.Node) {
		if n == nil {
			return
		}
		if _, seen := visited[n]; seen {
			return
		}
		visited[n] = struct{}{}
		if _, ok := owned[n]; !ok {
			log.Warning(rig.Address(n).String(), rig.RangePtr(n), "Stray node reattached",
				fmt.Sprintf("node is reachable from the root of rig %q but was not owned by it", r.Name))
			r.AllNodes = append(r.AllNodes, n)
			owned[n] = struct{}{}
		}
		nodes = append(nodes, n)
		for _, child := range n.Children() {
			visit(child)
		}
	}
	visit(r.Root)

	stray := 0
	for _, n := range r.AllNodes {
		if n == nil {
			continue
		}
		if _, seen := visited[n]; seen {
			continue
		}
		stray++
		if includeStray {
			visited[n] = struct{}{}
			nodes = append(nodes, n)
		}
	}
	logger.Debug("Walker: Gathered nodes.", "rig", r.Name, "nodes", len(nodes), "stray", stray, "include_stray", includeStray)
	return nodes
}

// PreBuild lets every node validate itself.
func (w *Walker) PreBuild(nodes []rig.Node, log *buildlog.Log) {
	for _, n := range nodes {
		n.PreBuild(log)
	}
}

// Build computes the allocation info of r from nodes. Parameters a user chose
// to drive with a variable register that variable; then each node's Build hook
// runs; finally the private entries of every named interface parameter are
// folded in.
func (w *Walker) Build(ctx context.Context, r *rig.Rig, nodes []rig.Node, log *buildlog.Log) rig.AllocationInfo {
	logger := ctxlog.FromContext(ctx)

	var info rig.AllocationInfo
	bc := &rig.BuildContext{Context: ctx, Log: log, AllocationInfo: &info}
	for _, n := range nodes {
		bc.Node = n
		w.registerDrivingVariables(bc, n)
		n.Build(bc)
	}
	bc.Node = nil

	for _, p := range r.Interface.Blendables {
		if p != nil && p.Name != "" && p.PrivateVariableID.IsValid() {
			bc.AddVariable(p.VariableDefinition())
		}
	}
	for _, p := range r.Interface.Data {
		if p != nil && p.Name != "" && p.PrivateDataID.IsValid() {
			bc.AddContextData(p.DataDefinition())
		}
	}

	logger.Debug("Walker: Built allocation info.",
		"rig", r.Name,
		"variables", len(info.Variables.Variables),
		"context_data", len(info.ContextData.Definitions),
		"evaluator_bytes", info.Evaluator.TotalSize,
	)
	return info
}

func (w *Walker) registerDrivingVariables(bc *rig.BuildContext, n rig.Node) {
	object := rig.Address(n).String()
	for _, p := range w.Registry.Discover(n) {
		if !p.Driven() || p.Variable == nil {
			continue
		}
		def := p.Variable.Definition()
		if def.Type != p.VariableType || (p.StructType != nil && def.StructType != p.StructType) {
			bc.Log.Error(object, rig.RangePtr(n), "Variable type mismatch",
				fmt.Sprintf("parameter %s is %s but variable %q is %s", p.Name, p.TypeName(), p.Variable.Name, def.Type))
			continue
		}
		if *p.OverrideID != def.ID {
			bc.Log.Warning(object, rig.RangePtr(n), "Stale variable identity",
				fmt.Sprintf("parameter %s pointed at %s instead of variable %q (%s); repaired", p.Name, *p.OverrideID, p.Variable.Name, def.ID))
			*p.OverrideID = def.ID
			n.Base().MarkModified()
		}
		bc.AddVariable(def)
	}
}
