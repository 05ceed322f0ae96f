package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-heater/pkg/rules"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeFile(t, path, "engine:\n  preset: gaussian\n")

	changes := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config) { changes <- cfg }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("engine:\n  preset: triangular\n"), 0644))

	select {
	case cfg := <-changes:
		assert.Equal(t, rules.PresetTriangular, cfg.Engine.Preset)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReloadsThroughLoader(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
engine:
  preset: triangular
input:
  allow_cooling: true
`)
	path := filepath.Join(t.TempDir(), "heater.yaml")
	writeFile(t, path, "log:\n  level: info\n")

	changes := make(chan *Config, 4)
	loader := NewLoader(nil).WithDirs(home, t.TempDir())
	w, err := Watch(path, func(cfg *Config) { changes <- cfg },
		WithDebounce(20*time.Millisecond),
		WithLoader(loader),
	)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644))

	select {
	case cfg := <-changes:
		assert.Equal(t, "warn", cfg.Log.Level, "watched file")
		assert.Equal(t, rules.PresetTriangular, cfg.Engine.Preset, "user layer kept on reload")
		assert.True(t, cfg.Input.AllowCooling, "user layer kept on reload")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeFile(t, path, "engine:\n  preset: gaussian\n")

	errs := make(chan error, 4)
	changes := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config) { changes <- cfg },
		WithDebounce(20*time.Millisecond),
		WithErrorHandler(func(err error) { errs <- err }),
	)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("engine:\n  preset: sugeno\n"), 0644))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "engine.preset")
	case cfg := <-changes:
		t.Fatalf("invalid config was delivered: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigFile)
	writeFile(t, path, "engine:\n  preset: gaussian\n")

	changes := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config) { changes <- cfg }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.yaml"), "engine:\n  preset: triangular\n")

	select {
	case cfg := <-changes:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeFile(t, path, "log:\n  level: info\n")

	w, err := Watch(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrWatcherClosed)
}
