package calculator

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"platesim/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, model.Rows, cfg.Plate.Rows)
	assert.Equal(t, model.Cols, cfg.Plate.Cols)
	assert.Equal(t, referenceBoundary, cfg.Plate.Boundary)
	assert.Equal(t, model.ModeThreshold, cfg.Calculator.Mode)
	assert.Equal(t, model.HeatLevels, cfg.Calculator.HeatLevels)
}

func TestLoadConfig_Ini(t *testing.T) {
	path := writeFile(t, "config.ini", `
[plate]
Rows = 5
Cols = 6
TempTop = 10.5
TempInner = -2

[calculator]
Mode = fixed
Iterations = 12
ReportAt = 3

[server]
Addr = :9100

[log]
Level = debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Plate.Rows)
	assert.Equal(t, 6, cfg.Plate.Cols)
	assert.Equal(t, 10.5, cfg.Plate.Top)
	assert.Equal(t, -2.0, cfg.Plate.Inner)
	assert.Equal(t, model.TempRight, cfg.Plate.Right)
	assert.Equal(t, model.ModeFixed, cfg.Calculator.Mode)
	assert.Equal(t, 12, cfg.Calculator.Iterations)
	assert.Equal(t, 3, cfg.Calculator.ReportAt)
	assert.Equal(t, model.HeatLevels, cfg.Calculator.HeatLevels)
	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Yaml(t *testing.T) {
	path := writeFile(t, "config.yaml", `
plate:
  rows: 4
  cols: 8
  left: 7
calculator:
  threshold: 0.01
  heat_levels: 5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Plate.Rows)
	assert.Equal(t, 8, cfg.Plate.Cols)
	assert.Equal(t, 7.0, cfg.Plate.Left)
	assert.Equal(t, model.TempTop, cfg.Plate.Top)
	assert.Equal(t, 0.01, cfg.Calculator.Threshold)
	assert.Equal(t, 5, cfg.Calculator.HeatLevels)
	assert.Equal(t, model.ModeThreshold, cfg.Calculator.Mode)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "plate: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "small.ini", "[plate]\nRows = 2\n"))
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"cols", func(c *Config) { c.Plate.Cols = 1 }, ErrInvalidDimension},
		{"nan", func(c *Config) { c.Plate.Top = math.NaN() }, ErrInvalidTemperature},
		{"inf", func(c *Config) { c.Plate.Inner = math.Inf(-1) }, ErrInvalidTemperature},
		{"huge", func(c *Config) { c.Plate.Left = 1e308 }, ErrInvalidTemperature},
		{"huge negative", func(c *Config) { c.Plate.Right = -1e308 }, ErrInvalidTemperature},
		{"levels zero", func(c *Config) { c.Calculator.HeatLevels = 0 }, ErrInvalidLevels},
		{"levels too many", func(c *Config) { c.Calculator.HeatLevels = 128 }, ErrInvalidLevels},
		{"threshold", func(c *Config) { c.Calculator.Threshold = 0 }, ErrInvalidThreshold},
		{"threshold nan", func(c *Config) { c.Calculator.Threshold = math.NaN() }, ErrInvalidThreshold},
		{"cap", func(c *Config) { c.Calculator.MaxIterations = 0 }, ErrInvalidIterations},
		{"fixed negative", func(c *Config) {
			c.Calculator.Mode = model.ModeFixed
			c.Calculator.Iterations = -1
		}, ErrInvalidIterations},
		{"report", func(c *Config) { c.Calculator.ReportAt = -3 }, ErrInvalidIterations},
		{"mode", func(c *Config) { c.Calculator.Mode = "adaptive" }, ErrUnknownMode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	k := 0
	top, inner := 100.0, 0.0
	b := model.BoundaryEnv{Top: &top, Inner: &inner}
	cfg := DefaultConfig().ApplyEnv(model.PlateEnv{
		Rows:       4,
		Boundary:   &b,
		Mode:       model.ModeFixed,
		Iterations: &k,
		ReportAt:   2,
	})

	assert.Equal(t, 4, cfg.Plate.Rows)
	assert.Equal(t, model.Cols, cfg.Plate.Cols)
	// 只覆盖传入的边界温度
	assert.Equal(t, model.Boundary{
		Top:    100,
		Bottom: model.TempBottom,
		Left:   model.TempLeft,
		Right:  model.TempRight,
		Inner:  0,
	}, cfg.Plate.Boundary)
	assert.Equal(t, model.ModeFixed, cfg.Calculator.Mode)
	assert.Equal(t, 0, cfg.Calculator.Iterations)
	assert.Equal(t, 2, cfg.Calculator.ReportAt)
	assert.Equal(t, model.Threshold, cfg.Calculator.Threshold)
}

func TestConfig_ApplyEnvPartialBoundary(t *testing.T) {
	var env model.PlateEnv
	require.NoError(t, json.Unmarshal([]byte(`{"boundary":{"top":5}}`), &env))

	cfg := DefaultConfig().ApplyEnv(env)
	want := DefaultConfig().Plate.Boundary
	want.Top = 5
	assert.Equal(t, want, cfg.Plate.Boundary)
	assert.NoError(t, cfg.Validate())
}
