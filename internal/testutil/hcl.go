package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/camrig/internal/ctxlog"
	"github.com/specialistvlad/camrig/internal/nodes"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rigbuild"
	"github.com/specialistvlad/camrig/internal/rigload"
	"github.com/stretchr/testify/require"
)

// Context returns a context carrying a logger that discards everything.
func Context() context.Context {
	return ctxlog.Discard(context.Background())
}

// LoadRigs loads a single rig file held in src using the built-in node types
// plus any extra modules. Load errors fail the test.
func LoadRigs(t *testing.T, src string, modules ...registry.Module) (*rigload.Project, *registry.Registry) {
	t.Helper()
	reg := registry.New(append([]registry.Module{nodes.Module{}}, modules...)...)
	p, err := rigload.NewLoader(reg).LoadSource(Context(), "test.hcl", []byte(src))
	require.NoError(t, err)
	return p, reg
}

// BuildAll builds every rig of p in dependency order and returns the results
// keyed by rig name.
func BuildAll(t *testing.T, reg *registry.Registry, p *rigload.Project) map[string]rigbuild.Result {
	t.Helper()
	b := rigbuild.New(reg)
	out := make(map[string]rigbuild.Result, len(p.Rigs))
	for _, r := range p.Rigs {
		out[r.Name] = b.Build(Context(), r)
	}
	return out
}
