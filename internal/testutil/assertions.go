package testutil

import (
	"strings"
	"testing"

	"github.com/specialistvlad/camrig/internal/buildlog"
	"github.com/specialistvlad/camrig/internal/rigbuild"
	"github.com/stretchr/testify/require"
)

// AssertRigStatus checks the report printed by the app for the status of the
// named rig.
func AssertRigStatus(t *testing.T, result *HarnessResult, rigName, status string) {
	t.Helper()

	for _, line := range strings.Split(result.Output, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == rigName {
			require.Equal(t, status, fields[1], "status of rig %q", rigName)
			return
		}
	}
	require.Failf(t, "rig not reported", "no report row for rig %q in output:\n%s", rigName, result.Output)
}

// Summaries returns the summaries of the messages of the given severity.
func Summaries(res rigbuild.Result, sev buildlog.Severity) []string {
	var out []string
	for _, m := range res.Log.Messages() {
		if m.Severity == sev {
			out = append(out, m.Summary)
		}
	}
	return out
}
