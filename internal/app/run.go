package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/rigbuild"
)

// Run loads the configured rig files, builds every rig and prints a report of
// the results to the app's output.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.", "rig_path", a.config.RigPath)

	project, err := a.loader.Load(ctx, a.config.RigPath)
	if err != nil {
		var diags hcl.Diagnostics
		if errors.As(err, &diags) {
			a.writeDiagnostics(diags)
		}
		return fmt.Errorf("failed to load rigs: %w", err)
	}
	a.logger.Info("Rigs loaded.", "rigs", len(project.Rigs), "variables", len(project.Variables))

	builder := rigbuild.New(a.registry)
	builder.IncludeStrayNodes = a.config.IncludeStrayNodes

	var reports []RigReport
	failed := 0
	for _, r := range project.Rigs {
		res := builder.Build(ctx, r)
		a.writeDiagnostics(res.Log.Diagnostics())

		report := newRigReport(r, res)
		if res.Status == rig.StatusError {
			failed++
		} else if _, err := rig.Instantiate(r, project.Variables...); err != nil {
			a.logger.Error("Rig instantiation failed.", "rig", r.Name, "error", err)
			report.InstanceError = err
			failed++
		}
		reports = append(reports, report)
	}

	if err := writeReport(a.outW, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("App.Run method finished.", "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d rigs failed", failed, len(reports))
	}
	return nil
}

func (a *App) writeDiagnostics(diags hcl.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	w := hcl.NewDiagnosticTextWriter(a.outW, a.loader.Files(), 78, false)
	if err := w.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to write diagnostics.", "error", err)
	}
}
