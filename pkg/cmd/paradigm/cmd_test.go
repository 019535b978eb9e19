package paradigm

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/paradigmmc/paradigm/pkg/configs"
)

// run runs the app in a temp dir holding the given config file content.
func run(t *testing.T, configContent string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if configContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(configContent), 0644))
	}

	app := App()
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = out
	app.ExitErrHandler = func(*cli.Context, error) {}

	argv := []string{"paradigm", "--config", path}
	if configContent == "" {
		argv = []string{"paradigm"}
		t.Chdir(dir)
	}
	err := app.Run(append(argv, args...))
	return out.String(), err
}

func TestRender_Plain(t *testing.T) {
	out, err := run(t, "", "render", "-o", "plain", "&cHello &lWorld&r!")
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", out)
}

func TestRender_Player(t *testing.T) {
	out, err := run(t, "", "render", "-o", "plain",
		"--player", "Steve", "--health", "9.666", "--prefix", "&c[Admin] ",
		"{player_prefix}{player} {player_health}")
	require.NoError(t, err)
	assert.Equal(t, "[Admin] Steve 9.7\n", out)
}

func TestRender_Fixture(t *testing.T) {
	out, err := run(t, string(configs.DefaultConfigBytes), "render", "-o", "plain",
		"--player", "steve", "{player} {player_group} {player_level}")
	require.NoError(t, err)
	assert.Equal(t, "Steve admin 30\n", out)
}

func TestRender_JSON(t *testing.T) {
	out, err := run(t, "", "render", "-o", "json", "[link=example.com]Click[/link]")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
	assert.Contains(t, out, "http://example.com")
	assert.Contains(t, out, "open_url")
}

func TestRender_Tags(t *testing.T) {
	out, err := run(t, "", "render", "-o", "tags", "&cHi")
	require.NoError(t, err)
	assert.Equal(t, "<color:#FF5555>Hi</color>\n", out)
}

func TestRender_Errors(t *testing.T) {
	_, err := run(t, "", "render")
	assert.Error(t, err)

	_, err = run(t, "", "render", "-o", "nope", "hi")
	assert.Error(t, err)

	_, err = run(t, "", "render", "--strict", "<bodl>hi")
	assert.Error(t, err)
}

func TestRender_MissingExplicitConfig(t *testing.T) {
	app := App()
	app.Writer = new(bytes.Buffer)
	app.ErrWriter = app.Writer
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run([]string{"paradigm", "-c", filepath.Join(t.TempDir(), "missing.yml"), "render", "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is missing")
}

func TestLint(t *testing.T) {
	out, err := run(t, "", "lint", "<bodl>Hi {player_nme}")
	require.Error(t, err)
	assert.Contains(t, out, "did you mean <bold>?")
	assert.Contains(t, out, "did you mean {player_name}?")

	out, err = run(t, "", "lint", "<bold>Hi {player_name}")
	require.NoError(t, err)
	assert.Contains(t, out, "1 template(s) ok")
}

func TestLint_ConfigMessages(t *testing.T) {
	out, err := run(t, string(configs.DefaultConfigBytes), "lint")
	require.NoError(t, err, out)
}

func TestPreview(t *testing.T) {
	out, err := run(t, string(configs.DefaultConfigBytes), "preview", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "== join @ Alex ==")
	assert.Contains(t, out, "== join @ Steve ==")
	assert.Contains(t, out, "[Admin] Steve ✦ joined the game")
	assert.Contains(t, out, "[title] Welcome")
	assert.Less(t, strings.Index(out, "@ Alex"), strings.Index(out, "@ Steve"))
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Equal(t, string(configs.DefaultConfigBytes), out)

	out, err = run(t, "", "config", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to config.yml")
	b, err := os.ReadFile("config.yml")
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultConfigBytes, b)

	_, err = run(t, "", "config", "-t", "unknown")
	assert.Error(t, err)
}
