package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ConfigName), `
[project]
name = "physics"

[input]
files = ["units/*.yaml", "extra/*.yaml"]

[run]
jobs = 4
`)
	write(t, filepath.Join(root, "units", "b.yaml"), "")
	write(t, filepath.Join(root, "units", "a.yaml"), "")
	nested := filepath.Join(root, "units", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, ok, err := Load(nested)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, p.Root)
	assert.Equal(t, "physics", p.Config.Project.Name)
	assert.Equal(t, 4, p.Config.Run.Jobs)
	assert.Equal(t, "json", p.Config.Output.Format)
	assert.Equal(t, "warn", p.Config.Run.LogLevel)
	assert.Equal(t, 100, p.Config.Diagnostics.Max)

	files, err := p.InputFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "units", "a.yaml"),
		filepath.Join(root, "units", "b.yaml"),
	}, files)
	assert.Empty(t, p.OutputPath())
}

func TestLoadWithoutConfig(t *testing.T) {
	p, ok, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "missing name",
			content: "[input]\nfiles = [\"*.yaml\"]\n",
			want:    "invalid configuration",
		},
		{
			name:    "no inputs",
			content: "[project]\nname = \"x\"\n",
			want:    "invalid configuration",
		},
		{
			name:    "bad format",
			content: "[project]\nname = \"x\"\n[input]\nfiles = [\"*.yaml\"]\n[output]\nformat = \"xml\"\n",
			want:    "invalid configuration",
		},
		{
			name:    "unknown key",
			content: "[project]\nname = \"x\"\ncolour = \"red\"\n[input]\nfiles = [\"*.yaml\"]\n",
			want:    "unknown keys: project.colour",
		},
		{
			name:    "syntax",
			content: "[project\n",
			want:    "failed to parse TOML",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			write(t, path, tt.content)

			_, err := LoadConfig(path)

			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefault(dir, "demo")
	require.NoError(t, err)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default("demo"), cfg)

	_, err = WriteDefault(dir, "demo")
	assert.ErrorContains(t, err, "already exists")
}

func TestOutputPathIsRelativeToRoot(t *testing.T) {
	p := &Project{Root: "/work", Config: Config{Output: OutputSection{Path: "gen/plan.json"}}}
	assert.Equal(t, filepath.Join("/work", "gen", "plan.json"), p.OutputPath())
}
