package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/specialistvlad/camrig/internal/rigbuild"
)

// RigReport summarizes the build of one rig.
type RigReport struct {
	Name          string
	Status        rig.BuildStatus
	Nodes         int
	Variables     int
	ContextData   int
	Evaluator     rig.EvaluatorAllocationInfo
	Warnings      int
	Errors        int
	InstanceError error
}

func newRigReport(r *rig.Rig, res rigbuild.Result) RigReport {
	info := r.AllocationInfo
	return RigReport{
		Name:        r.Name,
		Status:      res.Status,
		Nodes:       len(res.Nodes),
		Variables:   len(info.Variables.Variables),
		ContextData: len(info.ContextData.Definitions),
		Evaluator:   info.Evaluator,
		Warnings:    res.Log.Count(buildlog.Warning),
		Errors:      res.Log.Count(buildlog.Error),
	}
}

func writeReport(w io.Writer, reports []RigReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RIG\tSTATUS\tNODES\tVARIABLES\tCONTEXT DATA\tEVALUATOR\tWARNINGS\tERRORS")
	for _, r := range reports {
		status := r.Status.String()
		if r.InstanceError != nil {
			status = "instance_error"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s (align %d)\t%d\t%d\n",
			r.Name, status, r.Nodes, r.Variables, r.ContextData,
			humanize.IBytes(uint64(r.Evaluator.TotalSize)), r.Evaluator.MaxAlignment,
			r.Warnings, r.Errors)
	}
	return tw.Flush()
}
