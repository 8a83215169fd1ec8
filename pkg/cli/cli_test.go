package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/devicelab-dev/uireport/pkg/config"
	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// workspace creates a project directory with a config file and returns the
// config path.
func workspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("UIREPORT_HOME", filepath.Join(dir, "home"))
	config.ResetHome()
	t.Cleanup(config.ResetHome)
	t.Cleanup(logger.Close)

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("screenshotsDir: shots\nreportsDir: out\n"), 0o644))
	return dir, cfgPath
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"uireport"}, args...))
	return out.String(), err
}

func TestGlobalFlags(t *testing.T) {
	names := make(map[string]bool)
	for _, f := range GlobalFlags {
		for _, name := range f.Names() {
			names[name] = true
		}
	}
	for _, name := range []string{"config", "verbose", "no-ansi"} {
		assert.True(t, names[name], "expected flag %q", name)
	}
}

func TestNewApp_Commands(t *testing.T) {
	app := NewApp()
	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"generate", "cases", "history"}, names)
}

func TestGenerate_WritesReport(t *testing.T) {
	dir, cfgPath := workspace(t)
	run := filepath.Join(dir, "shots", "chrome_20240102_030405")
	require.NoError(t, os.MkdirAll(run, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(run, "登录用例1_打开登录页.png"), []byte("png"), 0o644))

	out, err := runApp(t, "--config", cfgPath, "generate", "--browser", "chrome", "--result", "passed", "--markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "Chrome UI Test Report")

	htmls, _ := filepath.Glob(filepath.Join(dir, "out", "chrome_test_report_*.html"))
	mds, _ := filepath.Glob(filepath.Join(dir, "out", "chrome_test_report_*.md"))
	assert.Len(t, htmls, 1)
	assert.Len(t, mds, 1)

	html, err := os.ReadFile(htmls[0])
	require.NoError(t, err)
	assert.Contains(t, string(html), "登录用例1_打开登录页.png")

	log, err := os.ReadFile(filepath.Join(dir, "out", "uireport.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "[INFO]")

	histOut, err := runApp(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, histOut, "chrome")
	assert.Contains(t, histOut, "passed")
}

func TestGenerate_AllBrowsers(t *testing.T) {
	dir, cfgPath := workspace(t)

	_, err := runApp(t, "--config", cfgPath, "generate", "--no-history")
	require.NoError(t, err)

	for _, browser := range []string{"chrome", "firefox"} {
		files, _ := filepath.Glob(filepath.Join(dir, "out", browser+"_test_report_*.html"))
		assert.Len(t, files, 1, browser)
	}

	histOut, err := runApp(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, histOut, "No reports recorded yet.")
}

func TestGenerate_UnknownBrowser(t *testing.T) {
	_, cfgPath := workspace(t)
	_, err := runApp(t, "--config", cfgPath, "generate", "--browser", "safari")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown browser "safari"`)
}

func TestGenerate_InvalidResult(t *testing.T) {
	_, cfgPath := workspace(t)
	_, err := runApp(t, "--config", cfgPath, "generate", "--result", "maybe")
	assert.Error(t, err)
}

func TestGenerate_ResultAndExecConflict(t *testing.T) {
	_, cfgPath := workspace(t)
	_, err := runApp(t, "--config", cfgPath, "generate", "--result", "passed", "--exec", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestGenerate_ReportsDirNotWritable(t *testing.T) {
	dir, cfgPath := workspace(t)
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := runApp(t, "--config", cfgPath, "generate", "--browser", "chrome", "--reports", filepath.Join(blocker, "reports"), "--no-history")
	require.Error(t, err)
}

func TestGenerate_MissingConfig(t *testing.T) {
	_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunTestCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX true/false")
	}
	c := cli.NewContext(NewApp(), nil, nil)
	c.App.Writer = &bytes.Buffer{}
	c.App.ErrWriter = &bytes.Buffer{}

	tests := []struct {
		command string
		want    core.Outcome
	}{
		{"true", core.OutcomePassed},
		{"false", core.OutcomeFailed},
		{"definitely-not-a-command-xyz", core.OutcomeFailed},
		{"sleep 5", core.OutcomeFailed},
		{`sh -c "exit 0"`, core.OutcomePassed},
		{`sh -c 'test "login and chrome" = "login and chrome"'`, core.OutcomePassed},
		{`sh -c "exit 3"`, core.OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got, err := runTestCommand(context.Background(), tt.command, 2*time.Second, c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOutcome(t *testing.T) {
	got, err := resolveOutcome(context.Background(), "failed", "", time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeFailed, got)

	got, err = resolveOutcome(context.Background(), "", "", time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeUnknown, got)
}

func TestRunTestCommand_Empty(t *testing.T) {
	_, err := runTestCommand(context.Background(), "   ", time.Second, nil)
	assert.Error(t, err)
}

func TestRunTestCommand_UnterminatedQuote(t *testing.T) {
	got, err := runTestCommand(context.Background(), `pytest -k "login`, time.Second, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse --exec command")
	assert.Equal(t, core.OutcomeUnknown, got)
}

func TestCases_List(t *testing.T) {
	_, cfgPath := workspace(t)
	out, err := runApp(t, "--config", cfgPath, "cases", "--check")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "TC001"))
	assert.Contains(t, out, "StaleElementReferenceException")
	assert.Contains(t, lines[8], "catalog OK: 8 cases")
}

func TestCases_CheckDuplicates(t *testing.T) {
	dir, cfgPath := workspace(t)
	catalogYAML := `cases:
  - id: TC001
    name: first
    patterns: [a]
    expectedScreenshots: [a.png]
  - id: TC001
    name: second
    patterns: [b]
    expectedScreenshots: [b.png]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.yaml"), []byte(catalogYAML), 0o644))

	out, err := runApp(t, "--config", cfgPath, "cases", "--catalog", filepath.Join(dir, "dup.yaml"), "--check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TC001")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "first")
}

func TestCases_YAML(t *testing.T) {
	_, cfgPath := workspace(t)
	out, err := runApp(t, "--config", cfgPath, "cases", "--yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cases:"))
	assert.Contains(t, out, "TC008")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("1234567890"))
	assert.Equal(t, "abc", shortID("abc"))
}
