package calculator

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"platesim/model"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// 等级差分编码使用 int8
const maxHeatLevels = 127

// 温度绝对值上限，保证模板求和、max-min 以及所有格点变化量之和都不会溢出
func maxTemperature(rows, cols int) float64 {
	return math.MaxFloat64 / (2*float64(rows)*float64(cols) + 16)
}

type Config struct {
	Plate      PlateConfig      `yaml:"plate"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// 金属板尺寸及边界温度
type PlateConfig struct {
	Rows           int `yaml:"rows"`
	Cols           int `yaml:"cols"`
	model.Boundary `yaml:",inline"`
}

type CalculatorConfig struct {
	Mode          string  `yaml:"mode"`
	Threshold     float64 `yaml:"threshold"`
	Iterations    int     `yaml:"iterations"`     // fixed 模式下的迭代次数
	MaxIterations int     `yaml:"max_iterations"` // threshold 模式下的迭代上限
	HeatLevels    int     `yaml:"heat_levels"`
	ReportAt      int     `yaml:"report_at"` // 0 表示不输出中间结果
	HistorySize   int     `yaml:"history_size"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Plate: PlateConfig{
			Rows: model.Rows,
			Cols: model.Cols,
			Boundary: model.Boundary{
				Top:    model.TempTop,
				Bottom: model.TempBottom,
				Left:   model.TempLeft,
				Right:  model.TempRight,
				Inner:  model.TempInner,
			},
		},
		Calculator: CalculatorConfig{
			Mode:          model.ModeThreshold,
			Threshold:     model.Threshold,
			Iterations:    100,
			MaxIterations: model.MaxIterations,
			HeatLevels:    model.HeatLevels,
			HistorySize:   model.HistorySize,
		},
		Server: ServerConfig{Addr: ":9000"},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadConfig 根据扩展名读取 ini 或 yaml 配置文件，缺省项使用默认值
func LoadConfig(path string) (Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		cfg = DefaultConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		file, err := ini.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		cfg = loadCfg(file)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadCfg(file *ini.File) Config {
	d := DefaultConfig()
	plate := file.Section("plate")
	calc := file.Section("calculator")
	return Config{
		Plate: PlateConfig{
			Rows: plate.Key("Rows").MustInt(d.Plate.Rows),
			Cols: plate.Key("Cols").MustInt(d.Plate.Cols),
			Boundary: model.Boundary{
				Top:    plate.Key("TempTop").MustFloat64(d.Plate.Top),
				Bottom: plate.Key("TempBottom").MustFloat64(d.Plate.Bottom),
				Left:   plate.Key("TempLeft").MustFloat64(d.Plate.Left),
				Right:  plate.Key("TempRight").MustFloat64(d.Plate.Right),
				Inner:  plate.Key("TempInner").MustFloat64(d.Plate.Inner),
			},
		},
		Calculator: CalculatorConfig{
			Mode:          calc.Key("Mode").MustString(d.Calculator.Mode),
			Threshold:     calc.Key("Threshold").MustFloat64(d.Calculator.Threshold),
			Iterations:    calc.Key("Iterations").MustInt(d.Calculator.Iterations),
			MaxIterations: calc.Key("MaxIterations").MustInt(d.Calculator.MaxIterations),
			HeatLevels:    calc.Key("HeatLevels").MustInt(d.Calculator.HeatLevels),
			ReportAt:      calc.Key("ReportAt").MustInt(d.Calculator.ReportAt),
			HistorySize:   calc.Key("HistorySize").MustInt(d.Calculator.HistorySize),
		},
		Server: ServerConfig{
			Addr: file.Section("server").Key("Addr").MustString(d.Server.Addr),
		},
		Log: LogConfig{
			Level: file.Section("log").Key("Level").MustString(d.Log.Level),
		},
	}
}

func (c Config) Validate() error {
	p := c.Plate
	if p.Rows < 3 || p.Cols < 3 {
		return fmt.Errorf("%w: %dx%d, need at least 3x3", ErrInvalidDimension, p.Rows, p.Cols)
	}
	temps := []struct {
		name string
		t    float64
	}{{"top", p.Top}, {"bottom", p.Bottom}, {"left", p.Left}, {"right", p.Right}, {"inner", p.Inner}}
	limit := maxTemperature(p.Rows, p.Cols)
	for _, temp := range temps {
		if math.IsNaN(temp.t) || math.Abs(temp.t) > limit {
			return fmt.Errorf("%w: %s=%v", ErrInvalidTemperature, temp.name, temp.t)
		}
	}

	calc := c.Calculator
	if calc.HeatLevels < 1 || calc.HeatLevels > maxHeatLevels {
		return fmt.Errorf("%w: %d, need 1..%d", ErrInvalidLevels, calc.HeatLevels, maxHeatLevels)
	}
	switch calc.Mode {
	case model.ModeThreshold:
		if !(calc.Threshold > 0) || math.IsInf(calc.Threshold, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidThreshold, calc.Threshold)
		}
		if calc.MaxIterations < 1 {
			return fmt.Errorf("%w: max iterations %d", ErrInvalidIterations, calc.MaxIterations)
		}
	case model.ModeFixed:
		if calc.Iterations < 0 {
			return fmt.Errorf("%w: iterations %d", ErrInvalidIterations, calc.Iterations)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, calc.Mode)
	}
	if calc.ReportAt < 0 {
		return fmt.Errorf("%w: report at %d", ErrInvalidIterations, calc.ReportAt)
	}
	return nil
}

// ApplyEnv 将前端传入的参数合并到配置中
func (c Config) ApplyEnv(env model.PlateEnv) Config {
	if env.Rows > 0 {
		c.Plate.Rows = env.Rows
	}
	if env.Cols > 0 {
		c.Plate.Cols = env.Cols
	}
	if b := env.Boundary; b != nil {
		for _, t := range []struct {
			src *float64
			dst *float64
		}{
			{b.Top, &c.Plate.Top},
			{b.Bottom, &c.Plate.Bottom},
			{b.Left, &c.Plate.Left},
			{b.Right, &c.Plate.Right},
			{b.Inner, &c.Plate.Inner},
		} {
			if t.src != nil {
				*t.dst = *t.src
			}
		}
	}
	if env.Mode != "" {
		c.Calculator.Mode = env.Mode
	}
	if env.Threshold != 0 {
		c.Calculator.Threshold = env.Threshold
	}
	if env.Iterations != nil {
		c.Calculator.Iterations = *env.Iterations
	}
	if env.ReportAt != 0 {
		c.Calculator.ReportAt = env.ReportAt
	}
	if env.HeatLevels != 0 {
		c.Calculator.HeatLevels = env.HeatLevels
	}
	return c
}
