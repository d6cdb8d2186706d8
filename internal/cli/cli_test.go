package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiAutomation/internal/browser"
	"uiAutomation/internal/browser/browsertest"
	"uiAutomation/internal/cli/commands"
	"uiAutomation/internal/config"
	"uiAutomation/internal/pages/pagestest"
)

const baseURL = "https://parabank.test/parabank/"

func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("BASE_URL", baseURL)
	t.Setenv("WAIT_TIMEOUT", "150ms")
	t.Setenv("POLL_INTERVAL", "5ms")

	out := &bytes.Buffer{}
	app := newApp()
	app.out = out
	app.launch = func(*config.Cfg) ([]browser.Variant, func() error, error) {
		variant := browsertest.NewVariant("firefox")
		variant.Setup = func(p *browsertest.Page) {
			pagestest.NewSite(baseURL).Install(p)
		}
		return []browser.Variant{variant}, func() error { return nil }, nil
	}
	return app, out
}

func execute(app *App, args ...string) error {
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	return root.Execute()
}

func TestStepsCommand(t *testing.T) {
	app, out := testApp(t)

	require.NoError(t, execute(app, "steps"))
	assert.Contains(t, out.String(), "user clicks login button")
}

func TestRunCommand(t *testing.T) {
	app, out := testApp(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.yaml"), []byte(`
feature: Login
scenarios:
  - name: valid login
    tags: [smoke]
    steps:
      - given: user logs in with default credentials
      - then: user should be navigated to dashboard page
  - name: bad password
    tags: [negative]
    steps:
      - given: user is logged in with username and password
        args: [john, wrong]
      - then: user should be navigated to dashboard page
`), 0o644))

	require.NoError(t, execute(app, "run", dir, "--browser", "firefox", "--tags", "smoke"))
	assert.Contains(t, out.String(), "Login / valid login")

	err := execute(app, "run", dir, "-b", "firefox", "-p", "2")
	assert.ErrorIs(t, err, commands.ErrScenariosFailed)
}

func TestHistoryCommand_WithoutDatabase(t *testing.T) {
	app, _ := testApp(t)

	assert.Error(t, execute(app, "history"))
	assert.Error(t, execute(app, "migrate"))
	assert.Error(t, execute(app, "serve"))
}

func TestRootCmd_BadConfig(t *testing.T) {
	app, _ := testApp(t)
	t.Setenv("PARALLEL", "many")

	assert.Error(t, execute(app, "steps"))
}
