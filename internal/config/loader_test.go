package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-heater/pkg/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoaderDefaults(t *testing.T) {
	cfg, err := NewLoader(nil).WithDirs(t.TempDir(), t.TempDir()).Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderLayers(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "sub", "dir")
	require.NoError(t, os.MkdirAll(work, 0755))

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
engine:
  preset: triangular
log:
  level: debug
`)
	writeFile(t, filepath.Join(project, ProjectConfigFile), `
log:
  level: warn
output:
  plot_dir: plots
`)

	loader := NewLoader(nil).WithDirs(home, work)
	assert.Equal(t, filepath.Join(project, ProjectConfigFile), loader.FindProjectConfig())

	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, rules.PresetTriangular, cfg.Engine.Preset, "user layer")
	assert.Equal(t, "warn", cfg.Log.Level, "project layer wins over user layer")
	assert.Equal(t, "plots", cfg.Output.PlotDir)

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeFile(t, explicit, `
engine:
  preset: gaussian
  epsilon: 0.001
`)
	cfg, err = loader.Load(explicit)
	require.NoError(t, err)
	// gaussian is the default, so it does not override the user layer
	assert.Equal(t, rules.PresetTriangular, cfg.Engine.Preset)
	assert.Equal(t, 0.001, cfg.Engine.Epsilon)
}

func TestLoaderErrors(t *testing.T) {
	loader := NewLoader(nil).WithDirs(t.TempDir(), t.TempDir())

	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit config must exist")

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "engine:\n  preset: sugeno\n")
	_, err = loader.Load(invalid)
	assert.ErrorContains(t, err, "engine.preset")
}
