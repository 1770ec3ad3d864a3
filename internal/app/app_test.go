package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{RigPath: "rigs"})
	require.NoError(t, err)
	assert.Equal(t, "rigs", cfg.RigPath)
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{RigPath: "testdata/ok"})
	for _, name := range []string{"array_blend", "boom_arm", "lens", "offset", "rig_ref"} {
		_, ok := a.Registry().Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestRun_Report(t *testing.T) {
	a, out := SetupAppTest(t, &Config{RigPath: "testdata/ok"})

	require.NoError(t, a.Run(context.Background()))

	var row string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "third_person ") {
			row = line
		}
	}
	require.NotEmpty(t, row, out.String())
	fields := strings.Fields(row)
	assert.Equal(t, []string{"third_person", "clean", "4", "2", "0"}, fields[:5])
	assert.Contains(t, row, "(align 8)")
}

func TestRun_BuildErrors(t *testing.T) {
	a, out := SetupAppTest(t, &Config{RigPath: "testdata/broken"})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 rigs failed")
	assert.Contains(t, out.String(), "Duplicate binding")
	assert.Contains(t, out.String(), "broken  ")
}

func TestRun_LoadErrorsShowSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rig.hcl"), []byte(`rig "r" {
  node "dolly" "main" {}
}
`), 0o600))
	a, out := SetupAppTest(t, &Config{RigPath: dir})

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rigs")
	assert.Contains(t, out.String(), "Unknown node type")
	assert.Contains(t, out.String(), `node "dolly" "main"`)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
