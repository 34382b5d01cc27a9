package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/viewbind/internal/registry"
	"github.com/vk/viewbind/internal/testutil"
)

// SetupAppTest creates a new App with debug logging captured in the
// returned buffer. Set VIEWBIND_TEST_LOGS=true to print the logs after the
// test.
func SetupAppTest(t *testing.T, appConfig *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, appConfig, modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("VIEWBIND_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
