package rigload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/camrig/internal/ctxlog"
	"github.com/specialistvlad/camrig/internal/fsutil"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/vartable"
)

// Project is everything loaded from a set of rig files.
type Project struct {
	// Rigs are ordered so that every rig comes after the rigs it references.
	Rigs      []*rig.Rig
	Variables []*vartable.VariableAsset
}

// Rig returns the rig with the given name.
func (p *Project) Rig(name string) *rig.Rig {
	for _, r := range p.Rigs {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Variable returns the variable with the given name.
func (p *Project) Variable(name string) *vartable.VariableAsset {
	for _, v := range p.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Loader reads rig files. Node types and type objects are resolved through
// its registry.
type Loader struct {
	Registry *registry.Registry
	parser   *hclparse.Parser
}

// NewLoader creates a loader resolving node types through reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{Registry: reg, parser: hclparse.NewParser()}
}

// Files returns every file parsed so far, keyed by name, for printing
// diagnostics with source snippets.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load reads every .hcl file under paths. Problems are returned as an error
// wrapping hcl.Diagnostics.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rig loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered rig files.", "files", files)

	var bodies []hcl.Body
	var diags hcl.Diagnostics
	for _, file := range files {
		f, parseDiags := l.parser.ParseHCLFile(file)
		diags = append(diags, parseDiags...)
		if f != nil {
			bodies = append(bodies, f.Body)
		}
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse rig files: %w", diags)
	}
	return l.decode(ctx, bodies)
}

// LoadSource reads a single rig file held in memory.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*Project, error) {
	f, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	return l.decode(ctx, []hcl.Body{f.Body})
}

func (l *Loader) decode(ctx context.Context, bodies []hcl.Body) (*Project, error) {
	logger := ctxlog.FromContext(ctx)

	var diags hcl.Diagnostics
	var roots []*fileRoot
	for _, body := range bodies {
		var root fileRoot
		diags = append(diags, gohcl.DecodeBody(body, nil, &root)...)
		roots = append(roots, &root)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode rig files: %w", diags)
	}

	t := newTranslator(l.Registry)
	for _, root := range roots {
		for _, vb := range root.Variables {
			t.variable(vb)
		}
	}
	for _, root := range roots {
		for _, rb := range root.Rigs {
			t.declareRig(rb)
		}
	}
	t.translate()
	if t.diags.HasErrors() {
		return nil, fmt.Errorf("invalid rig files: %w", t.diags)
	}

	project := &Project{Rigs: t.ordered(), Variables: t.variables}
	if t.diags.HasErrors() {
		return nil, fmt.Errorf("invalid rig files: %w", t.diags)
	}
	for _, d := range t.diags {
		logger.Warn("Rig file warning.", "summary", d.Summary, "detail", d.Detail)
	}
	logger.Debug("Rig loading complete.", "rigs", len(project.Rigs), "variables", len(project.Variables))
	return project, nil
}
