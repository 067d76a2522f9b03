package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const cyclic = `units:
  - type: UnitOfLength
    fixed:
      - name: Metre
    aliases:
      - name: A
        alias_of: B
      - name: B
        alias_of: A
`

func TestCheckReportsDiagnostics(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "cyclic.yaml", cyclic)

	out, _, err := execute(t, "check", "--color", "off", "--format", "short", "cyclic.yaml")

	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "error REF3004 cyclic.yaml:7:19")
	assert.Contains(t, out, "error REF3004 cyclic.yaml:9:19")
}

func TestCheckWithoutInputs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "check")

	assert.ErrorContains(t, err, "no quantgen.toml found")
}

func TestInitThenPlan(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, _, err := execute(t, "init", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized quantgen project in demo")
	assert.FileExists(t, filepath.Join(dir, "demo", "quantgen.toml"))

	t.Chdir(filepath.Join(dir, "demo"))
	out, _, err = execute(t, "check", "--color", "off")
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 unit types, 1 quantities\n", out)

	out, _, err = execute(t, "plan", "--plan-format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, `project = "demo"`)
	assert.Contains(t, out, `name = "Kilometre"`)

	_, stderr, err := execute(t, "plan", "-o", "gen/plan.json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote json plan to gen/plan.json")
	assert.FileExists(t, filepath.Join(dir, "demo", "gen", "plan.json"))

	_, _, err = execute(t, "init", ".")
	assert.ErrorContains(t, err, "already")
}

func TestPlanRefusesOnErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "cyclic.yaml", cyclic)

	out, stderr, err := execute(t, "plan", "--color", "off", "cyclic.yaml")

	assert.ErrorIs(t, err, errDiagnostics)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "REF3004")
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--hash")

	require.NoError(t, err)
	assert.Contains(t, out, `"tool": "quantgen"`)
	assert.Contains(t, out, `"git_commit": "unknown"`)
}

func TestRootHasCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"check", "plan", "init", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestCheckWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "length.yaml", "units:\n  - type: UnitOfLength\n    fixed:\n      - name: Metre\n")

	out, _, err := execute(t, "check", "--ui", "off", "--mem-profile", "mem.pprof", "length.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1 unit types, 0 quantities")
	assert.FileExists(t, filepath.Join(dir, "mem.pprof"))
}

func TestReadUIMode(t *testing.T) {
	mode, err := readUIMode(" ON ")
	require.NoError(t, err)
	assert.Equal(t, uiModeOn, mode)
	assert.True(t, uiEnabled(mode, true))
	assert.False(t, uiEnabled(uiModeOff, false))

	_, err = readUIMode("sometimes")
	assert.ErrorContains(t, err, "expected auto|on|off")
}

func TestCheckSarif(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "cyclic.yaml", cyclic)

	out, _, err := execute(t, "check", "--format", "sarif", "cyclic.yaml")

	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, `"version": "2.1.0"`)
	assert.Contains(t, out, `"ruleId": "REF3004"`)
	assert.Contains(t, out, `"uri": "cyclic.yaml"`)
}

func TestPlanRefusesWhenLimitDropsErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "units.yaml", `units:
  - type: UnitOfArea
    derivations:
      - expression: "{0} * {1}"
        signature: [UnitOfLength, UnitOfLength]
        permutations: true
    derived:
      - name: SquareMetre
        units: [Metre, Metre]
`+cyclic[len("units:\n"):])

	out, _, err := execute(t, "plan", "--max-diagnostics", "1", "--format", "short", "units.yaml")

	assert.ErrorIs(t, err, errDiagnostics)
	assert.Empty(t, out)

	_, _, err = execute(t, "check", "--max-diagnostics", "1", "--format", "short", "units.yaml")
	assert.ErrorIs(t, err, errDiagnostics)
}
