package henvdall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwayapp/henvdall/internal/audit"
	"github.com/railwayapp/henvdall/internal/envsync"
)

// run executes the root command with args and returns its output. Flags
// start from their defaults on every call.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(t, rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), "reset --%s", f.Name)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAuditCommand_IssuesExitNonZero(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	writeFile(t, env, "API_KEY=YOUR_API_KEY_HERE\nPORT=3000\n")

	out, err := run(t, "", "audit", "--env", env, "--no-color")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIssuesFound))
	assert.Contains(t, out, "Audit Mode:")
	assert.Contains(t, out, "Found 1 potential issue(s)")
}

func TestAuditCommand_Clean(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	writeFile(t, env, "PORT=3000\n")

	out, err := run(t, "", "audit", "--env", env, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "No placeholder values detected!")
}

func TestAuditCommand_JSON(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	writeFile(t, env, "EMPTY=\n")

	out, err := run(t, "", "audit", "--env", env, "--output", "json")
	require.ErrorIs(t, err, ErrIssuesFound)

	var report audit.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Issues, 1)
	assert.Equal(t, audit.ReasonEmpty, report.Issues[0].Reason)
}

func TestSyncCommand_Scripted(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	values := filepath.Join(dir, "values.env")
	writeFile(t, filepath.Join(dir, ".env.sample"), "A=\nB=\nPORT=3000 # (int)\n")
	writeFile(t, env, "A=1\n")
	writeFile(t, values, "B=two\nPORT=8080\n")

	out, err := run(t, "", "sync", "--env", env, "--values", values, "--yes", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully added 2 environment variable(s)")

	content, err := os.ReadFile(env)
	require.NoError(t, err)
	assert.Equal(t, "A=1\n\n"+envsync.DefaultMarker+"\nB=two\nPORT=8080\n", string(content))

	backup, err := os.ReadFile(env + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(backup))
}

func TestSyncCommand_Interactive(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	template := filepath.Join(dir, "template.env")
	writeFile(t, template, "NAME=app\n")

	out, err := run(t, "y\nmy-app\n", "sync", "--env", env, "--example", template, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Proceed with sync?")

	content, err := os.ReadFile(env)
	require.NoError(t, err)
	assert.Equal(t, envsync.DefaultMarker+"\nNAME=my-app\n", string(content))
}

func TestSyncCommand_TemplateNotFound(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")

	_, err := run(t, "", "sync", "--env", env, "--yes", "--no-color")
	require.Error(t, err)
	assert.True(t, errors.Is(err, envsync.ErrTemplateNotFound))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "Henvdall version "+Version+"\n", out)
}

func TestCommands_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	writeFile(t, env, "EMPTY=\n")

	_, err := run(t, "", "audit", "--env", env, "--output", "json", "--mask")
	require.ErrorIs(t, err, ErrIssuesFound)

	out, err := run(t, "", "audit", "--env", env, "--no-color")
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out, "Audit Mode:")

	template := filepath.Join(dir, "template.env")
	writeFile(t, template, "NAME=app\n")
	values := filepath.Join(dir, "values.env")
	writeFile(t, values, "NAME=scripted\n")

	_, err = run(t, "", "sync", "--env", filepath.Join(dir, "first.env"), "--example", template, "--values", values, "--yes")
	require.NoError(t, err)

	second := filepath.Join(dir, "second.env")
	out, err = run(t, "n\n", "sync", "--env", second, "--example", template, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Proceed with sync?")
	assert.Contains(t, out, "Sync cancelled.")
	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer
	reportError(&out, errors.New("template file not found"))
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "template file not found")

	out.Reset()
	reportError(&out, fmt.Errorf("audit: %w", ErrIssuesFound))
	assert.Empty(t, out.String())
}
