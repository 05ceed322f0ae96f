package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/fuzzy-heater/internal/config"
	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/rules"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// run executes the root command with an isolated home directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "fuzzyheater version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestEvalTriangular(t *testing.T) {
	out, err := run(t, "", "eval", "--current", "-5", "--desired", "30", "--preset", "triangular", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Heater usage (centroid method): 47.00%")
}

func TestEvalState(t *testing.T) {
	out, err := run(t, "", "eval", "--current=-5", "--desired=30", "-p", "triangular", "--no-color", "--state")
	require.NoError(t, err)
	assert.Contains(t, out, "Antecedents")
	assert.Contains(t, out, "templado & alta -> medio")
	assert.Contains(t, out, "47.00%")
}

func TestEvalJSON(t *testing.T) {
	out, err := run(t, "", "eval", "--current", "10", "--desired", "30", "--json")
	require.NoError(t, err)

	var got jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Error)
	assert.Equal(t, types.StateDone, got.Result.State)
	assert.InDelta(t, 47.982855035206455, got.Result.Output, 1e-6)
	assert.Len(t, got.Result.Activations, 23)
}

func TestEvalNoRuleFired(t *testing.T) {
	out, err := run(t, "", "eval", "--current", "-90", "--desired", "-90", "-p", "triangular", "--no-color")
	require.NoError(t, err, "an uncovered combination is reported, not failed")
	assert.Contains(t, out, "No rule applies")

	out, err = run(t, "", "eval", "--current", "-90", "--desired", "-90", "-p", "triangular", "--json")
	require.NoError(t, err)
	var got jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, types.StateFailed, got.Result.State)
	assert.Contains(t, got.Error, "no applicable rule")
}

func TestEvalRejectsReadings(t *testing.T) {
	_, err := run(t, "", "eval", "--current", "-5")
	assert.ErrorContains(t, err, "both --current and --desired are required")

	out, err := run(t, "", "eval", "--current", "-5", "--desired", "75", "--no-color")
	assert.Error(t, err)
	assert.Contains(t, out, "Error: desired temperature 75.00 must be between -90 and 60")

	_, err = run(t, "", "eval", "--current", "30", "--desired", "10", "--no-color")
	assert.ErrorContains(t, err, "greater than or equal")

	_, err = run(t, "", "eval", "--current", "0", "--desired", "10", "--preset", "sugeno")
	assert.ErrorContains(t, err, "unknown preset")

	out, err = run(t, "", "eval", "--current", "NaN", "--desired", "10", "--no-color")
	assert.ErrorContains(t, err, "current temperature NaN must be between -90 and 60")
	assert.NotContains(t, out, "Evaluation failed")
}

func TestEvalConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heater.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  preset: triangular
input:
  allow_cooling: true
output:
  color: false
`), 0644))

	out, err := run(t, "", "eval", "-c", path, "--current", "-5", "--desired", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "47.00%")

	// cooling is allowed by the file
	_, err = run(t, "", "eval", "-c", path, "--current", "30", "--desired", "10")
	assert.NoError(t, err)
}

func TestEvalPlot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "heater.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  plot_dir: "+dir+"\n"), 0644))

	out, err := run(t, "", "eval", "-c", path, "--current", "-5", "--desired", "30", "--plot", "--no-color")
	require.NoError(t, err)
	for _, name := range []string{"temp_actual.png", "temp_deseada.png", "calentador.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
		assert.Contains(t, out, "wrote "+filepath.Join(dir, name)+"\n")
	}
}

func TestPlotCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	out, err := run(t, "", "plot", "-o", dir, "-p", "triangular")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote plots for preset triangular")
	assert.FileExists(t, filepath.Join(dir, "calentador.png"))
}

func TestPresets(t *testing.T) {
	out, err := run(t, "", "presets", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "* gaussian")
	assert.Contains(t, out, "  triangular")
}

func TestWatchReadsStdin(t *testing.T) {
	stdin := strings.Join([]string{
		"# current desired",
		"-5 30",
		"",
		"bad",
		"x 10",
		"-90 -90",
		"30 10",
		"NaN 10",
	}, "\n")

	out, err := run(t, stdin, "watch", "-p", "triangular", "--no-color")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Heater usage (centroid method): 47.00%", lines[0])
	assert.Contains(t, lines[1], `expected "current desired", got "bad"`)
	assert.Contains(t, lines[2], `not a number in "x 10"`)
	assert.Contains(t, lines[3], "No rule applies")
	assert.Contains(t, lines[4], "greater than or equal")
	assert.Equal(t, "Error: current temperature NaN must be between -90 and 60", lines[5])
}

// steppedReader returns one chunk per Read and calls between before every chunk after the first.
type steppedReader struct {
	chunks  []string
	between func(i int)
	next    int
}

func (r *steppedReader) Read(p []byte) (int, error) {
	if r.next >= len(r.chunks) {
		return 0, io.EOF
	}
	if r.next > 0 && r.between != nil {
		r.between(r.next)
	}
	n := copy(p, r.chunks[r.next])
	r.next++
	return n, nil
}

func TestWatchReloadAppliesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := &globalFlags{noColor: true}
	a, err := setup(g)
	require.NoError(t, err)

	holder := engine.NewHolder(a.cfg.Engine.Preset, a.engine)
	var limits atomic.Pointer[config.Config]
	limits.Store(a.cfg)
	reload := a.reloadHandler(g, holder, &limits)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetIn(&steppedReader{
		chunks: []string{"30 10\n", "30 10\n-5 30\n"},
		between: func(int) {
			cfg := config.DefaultConfig()
			cfg.Engine.Preset = rules.PresetTriangular
			cfg.Input.AllowCooling = true
			reload(cfg)
		},
	})
	require.NoError(t, a.readLoop(cmd, holder, &limits))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "greater than or equal", "cooling rejected before the reload")
	assert.True(t, strings.HasPrefix(lines[1], "Heater usage"), "cooling accepted after the reload: %s", lines[1])
	assert.Equal(t, "Heater usage (centroid method): 47.00%", lines[2], "triangular rule base after the reload")
	assert.Equal(t, rules.PresetTriangular, holder.Load().Name)
	assert.True(t, limits.Load().Input.AllowCooling)
}

func TestWatchReloadKeepsPresetFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := &globalFlags{preset: rules.PresetTriangular}
	a, err := setup(g)
	require.NoError(t, err)

	holder := engine.NewHolder(a.cfg.Engine.Preset, a.engine)
	var limits atomic.Pointer[config.Config]
	limits.Store(a.cfg)

	// a reload to the default preset does not override the flag
	a.reloadHandler(g, holder, &limits)(config.DefaultConfig())
	assert.Equal(t, rules.PresetTriangular, holder.Load().Name)
	assert.Equal(t, rules.PresetTriangular, limits.Load().Engine.Preset)
}

func TestParseNumber(t *testing.T) {
	v, err := parseNumber(" -12.5 ")
	require.NoError(t, err)
	assert.Equal(t, -12.5, v)

	assert.NoError(t, validateNumber("30"))
	assert.Error(t, validateNumber("warm"))
	assert.Error(t, validateNumber("NaN"))
	assert.Error(t, validateNumber("-Inf"))
}
