package integration_tests

import (
	"testing"

	"github.com/specialistvlad/camrig/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_MultiFileProject(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"variables.hcl": `
variable "Zoom" {
  guid    = "a4b5c6d7-e8f9-4a0b-9c1d-2e3f40516273"
  type    = float
  default = 45
}
`,
		"rigs/inner.hcl": `
rig "scope" {
  node "lens" "main" {
    param "FieldOfView" { variable = "Zoom" }
  }
}
`,
		"rigs/outer.hcl": `
rig "sniper" {
  root = "array_blend.main"

  node "array_blend" "main" {
    children = ["boom_arm.main", "rig_ref.scope"]
  }

  node "boom_arm" "main" {}

  node "rig_ref" "scope" { rig = "scope" }
}
`,
	}

	// --- Act ---
	result := testutil.RunRigTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.NotNil(t, result.App)
	testutil.AssertRigStatus(t, result, "scope", "clean")
	testutil.AssertRigStatus(t, result, "sniper", "clean")
	assert.Contains(t, result.Output, "Rigs loaded.")
}

func TestApp_ReportsBuildErrorsWithSource(t *testing.T) {
	files := map[string]string{
		"main.hcl": `
rig "broken" {
  node "boom_arm" "main" {
    param "Length" { value = -1 }
  }
}
`,
	}

	result := testutil.RunRigTest(t, files)

	require.Error(t, result.Err)
	testutil.AssertRigStatus(t, result, "broken", "error")
	assert.Contains(t, result.Output, "Invalid boom length")
	assert.Contains(t, result.Output, `node "boom_arm" "main"`)
}

func TestApp_WarningsDoNotFail(t *testing.T) {
	files := map[string]string{
		"main.hcl": `
rig "empty" {
  node "array_blend" "main" {}
}
`,
	}

	result := testutil.RunRigTest(t, files)

	require.NoError(t, result.Err)
	testutil.AssertRigStatus(t, result, "empty", "clean_with_warnings")
	assert.Contains(t, result.Output, "Empty blend")
}
