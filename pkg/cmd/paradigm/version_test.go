package paradigm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigmmc/paradigm/pkg/version"
)

func TestVersionCommand(t *testing.T) {
	app := App()

	// Verify version is set correctly
	assert.Equal(t, version.String(), app.Version, "App version should match version package")

	help, err := app.ToMarkdown()
	require.NoError(t, err, "Should be able to generate help text")
	assert.Contains(t, help, "version", "Help should mention version command")

	flags := make(map[string]bool)
	for _, flag := range app.Flags {
		for _, name := range flag.Names() {
			if flags[name] {
				t.Errorf("Flag conflict detected: %s", name)
			}
			flags[name] = true
		}
	}

	assert.True(t, flags["verbosity"], "Verbosity flag should exist")
	assert.True(t, flags["v"], "Verbose -v alias should exist")
	assert.True(t, flags["config"], "Config flag should exist")
	assert.True(t, flags["c"], "Config alias should exist")
	assert.True(t, flags["debug"], "Debug flag should exist")
	assert.True(t, flags["d"], "Debug alias should exist")
}

func TestCustomVersionFlag(t *testing.T) {
	app := App()
	assert.NotEmpty(t, app.Version, "App should have version set")

	help, err := app.ToMarkdown()
	require.NoError(t, err)

	// -V for version, -v for verbosity
	assert.Contains(t, help, "-V", "Help should show -V for version")
	assert.Contains(t, help, "--version", "Help should show --version flag")
	assert.Contains(t, help, "-v", "Help should show -v for verbosity")
}

func TestUserAgentIncludesVersion(t *testing.T) {
	userAgent := version.UserAgent()
	assert.Contains(t, userAgent, "Paradigm/", "User agent should include Paradigm")
	assert.Contains(t, userAgent, version.String(), "User agent should include version string")
}
