package rigbuild

import (
	"context"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/ctxlog"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
)

// Result is the outcome of one build.
type Result struct {
	Status rig.BuildStatus
	// Changed reports whether a new allocation info was committed.
	Changed bool
	Log     *buildlog.Log
	// Nodes is the gathered node list, in build order.
	Nodes []rig.Node
}

// Builder builds rigs. It is not re-entrant: per-build state lives on the
// Builder and is cleared at the start of every Build.
type Builder struct {
	Registry *registry.Registry
	// IncludeStrayNodes also builds owned nodes unreachable from the root.
	IncludeStrayNodes bool

	walker Walker
	binder Binder
}

// New returns a Builder resolving node fields through reg.
func New(reg *registry.Registry) *Builder {
	return &Builder{Registry: reg}
}

// Build runs a full build of r. The modified flags of the rig's nodes and
// interface parameters are reset first and afterwards report what this build
// changed. A build that logs an error leaves the previously committed
// allocation info in place.
func (b *Builder) Build(ctx context.Context, r *rig.Rig) Result {
	logger := ctxlog.FromContext(ctx).With("rig", r.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Build: Starting rig build.")

	log := buildlog.New(ctx)
	b.walker = Walker{Registry: b.Registry}
	b.binder = Binder{Registry: b.Registry}
	b.binder.Reset()
	clearModified(r)

	nodes := b.walker.Gather(ctx, r, b.IncludeStrayNodes, log)
	b.walker.PreBuild(nodes, log)
	logger.Debug("Build: PreBuild complete.", "nodes", len(nodes))

	b.binder.GatherOldDrivenParameters(nodes)
	b.binder.BuildInterfaceParameters(r, log)
	b.binder.BuildInterfaceParameterBindings(ctx, r, nodes, log)
	b.binder.DiscardUnusedParameters(ctx, log)

	info := b.walker.Build(ctx, r, nodes, log)

	res := Result{Log: log, Nodes: nodes}
	switch {
	case log.HasErrors():
		res.Status = rig.StatusError
		logger.Warn("Build: Rig build failed; keeping last committed allocation info.", "errors", log.Count(buildlog.Error))
	case log.Count(buildlog.Warning) > 0:
		res.Status = rig.StatusCleanWithWarnings
	default:
		res.Status = rig.StatusClean
	}
	r.BuildStatus = res.Status
	if res.Status == rig.StatusError {
		return res
	}

	if !info.Equal(r.AllocationInfo) {
		r.AllocationInfo = info
		res.Changed = true
	}
	logger.Info("Build: Rig build complete.", "status", res.Status, "changed", res.Changed)
	return res
}

func clearModified(r *rig.Rig) {
	for _, n := range r.AllNodes {
		if n != nil {
			n.Base().ClearModified()
		}
	}
	for _, p := range r.Interface.Blendables {
		if p != nil {
			p.ClearModified()
		}
	}
	for _, p := range r.Interface.Data {
		if p != nil {
			p.ClearModified()
		}
	}
}
