package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/camrig/internal/app"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an end-to-end app run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunRigTest writes files into a temporary directory and runs the app over
// it. Keys are paths relative to that directory. With no modules the app uses
// its built-in node types.
func RunRigTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunRigTestWithContext(context.Background(), t, files, modules...)
}

// RunRigTestWithContext is RunRigTest with a caller-provided context.
func RunRigTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := &app.Config{
		RigPath:   dir,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	out := &app.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			panicErr = recover()
		}()
		testApp = app.NewApp(out, cfg, modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)
	if os.Getenv("CAMRIG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
	}
	return &HarnessResult{Output: out.String(), Err: runErr, App: testApp}
}
