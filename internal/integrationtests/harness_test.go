package integration_tests

import (
	"context"
	"os"
	"testing"

	"github.com/vk/viewbind/internal/app"
	"github.com/vk/viewbind/internal/registry"
	"github.com/vk/viewbind/internal/testutil"
)

// HarnessResult holds the outcome of a single binding pass.
type HarnessResult struct {
	Root      string
	LogOutput string
	Result    *app.Result
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a fresh template root, builds an App
// whose configuration is cfg (TemplateRoot is set to the new root unless a
// configuration file is named), and runs one binding pass.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	root := testutil.WriteTree(t, files)
	if cfg.ConfigPath != "" {
		cfg.ConfigPath = testutil.Path(root, cfg.ConfigPath)
	} else {
		cfg.TemplateRoot = root
	}
	cfg.LogLevel = "debug"

	logBuffer := &testutil.SafeBuffer{}
	viewbind, err := app.NewApp(logBuffer, &cfg, modules...)
	if err != nil {
		return &HarnessResult{Root: root, LogOutput: logBuffer.String(), Err: err}
	}

	res, err := viewbind.Bind(context.Background())
	t.Cleanup(func() {
		if os.Getenv("VIEWBIND_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return &HarnessResult{Root: root, LogOutput: logBuffer.String(), Result: res, Err: err, App: viewbind}
}

// view returns the resolved view at rel, failing the test if it is absent.
func (h *HarnessResult) view(t *testing.T, rel string) app.View {
	t.Helper()
	v, ok := h.Result.View(rel)
	if !ok {
		t.Fatalf("view %s was not resolved; views: %+v", rel, h.Result.Views)
	}
	return v
}
