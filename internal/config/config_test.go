package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/lenseq"
	"honnef.co/go/lenseq/lensmodel"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, -3.0, cfg.GetXMin())
	assert.Equal(t, 3.0, cfg.GetYMax())
	assert.Equal(t, 100, cfg.GetNumPixX())
	assert.Equal(t, lenseq.Pt(0.05, 0.02), cfg.GetBeta())
	assert.Equal(t, lenseq.DefaultSolveOptions(), cfg.SolveOptions())
	assert.Len(t, cfg.GetLens().Components, 2)

	// A zero Config behaves like the defaults.
	var zero Config
	require.NoError(t, zero.Validate())
	assert.Equal(t, cfg.GridBounds(), zero.GridBounds())
	assert.Equal(t, cfg.GetLens(), zero.GetLens())
}

func TestGridCenters(t *testing.T) {
	cfg := DefaultConfig()
	xs, ys := cfg.GridCenters()
	require.Len(t, xs, 100)
	require.Len(t, ys, 100)
	assert.InDelta(t, -2.97, xs[0], 1e-12)
	assert.InDelta(t, 2.97, ys[99], 1e-12)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "problem.json", `{
		"x_min": -1, "x_max": 1, "y_min": -0.5, "y_max": 0.5,
		"num_pix_x": 40, "num_pix_y": 20,
		"beta_x": 0.1,
		"niter": 7,
		"lens": {"components": [
			{"kind": "point_mass", "theta_e": 0.8, "center_x": 0.1},
			{"kind": "convergence", "kappa": 0.1}
		]}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, lenseq.Rect{X0: -1, Y0: -0.5, X1: 1, Y1: 0.5}, cfg.GridBounds())
	assert.Equal(t, lenseq.Pt(0.1, DefaultBetaY), cfg.GetBeta())

	opts := cfg.SolveOptions()
	assert.Equal(t, 7, opts.NIter)
	assert.Equal(t, lenseq.DefaultSolveOptions().NSolutions, opts.NSolutions)

	lens := cfg.GetLens()
	require.Len(t, lens.Components, 2)
	assert.Equal(t, lensmodel.PointMass(0.8, lenseq.Pt(0.1, 0)), lens.Components[0])
	assert.Equal(t, lensmodel.Convergence(0.1), lens.Components[1])
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"extension", "problem.yaml", `{}`, ".json extension"},
		{"syntax", "problem.json", `{"x_min": }`, "parse config JSON"},
		{"bounds", "problem.json", `{"x_min": 1, "x_max": 1}`, "x_min must be less than x_max"},
		{"pixels", "problem.json", `{"num_pix_x": 1}`, "at least 2×1 pixels"},
		{"square", "problem.json", `{"num_pix_x": 100, "num_pix_y": 50}`, "pixels must be square"},
		{"options", "problem.json", `{"nsubdivisions": 0}`, "invalid solve options"},
		{"lens", "problem.json", `{"lens": {"components": [{"kind": "nfw"}]}}`, "unknown lens component kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadConfigSkipsValidation(t *testing.T) {
	path := writeConfig(t, "problem.json", `{"nsubdivisions": 0, "beta_x": 0.2}`)

	_, err := LoadConfig(path)
	require.Error(t, err)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.SolveOptions().NSubdivisions)
	assert.Error(t, cfg.Validate())

	nsub := 2
	cfg.NSubdivisions = &nsub
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 0.2, cfg.GetBeta().X)

	_, err = ReadConfig(filepath.Join(t.TempDir(), "problem.txt"))
	assert.Error(t, err)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigTooLarge(t *testing.T) {
	path := writeConfig(t, "big.json", `{"x_min": -3`+strings.Repeat(" ", 1<<20)+`}`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
