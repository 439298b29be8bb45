// Package config loads gravsim settings from .env files and GRAVSIM_* environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/gravsim/engine"
	"github.com/lixenwraith/gravsim/physics"
)

// EnvPrefix prefixes every recognized environment variable
const EnvPrefix = "GRAVSIM_"

// MaxFPS bounds the display rate; the frame ticker needs a positive period
const MaxFPS = 1000

type Config struct {
	Sim     SimConfig
	Audio   AudioConfig
	Logging LoggingConfig
	Display DisplayConfig
}

type SimConfig struct {
	TickHz           float64
	G                float64
	TrajectorySteps  int
	PredictDt        float64
	MissPolicy       string
	MaxTicksPerFrame int
}

type AudioConfig struct {
	Enabled bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
	Debug      bool
}

type DisplayConfig struct {
	FPS int
}

// Default returns the built in configuration
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			TickHz:           60,
			G:                physics.DefaultG,
			TrajectorySteps:  physics.DefaultPredictSteps,
			PredictDt:        physics.DefaultPredictDt,
			MissPolicy:       "keep",
			MaxTicksPerFrame: 8,
		},
		Audio:   AudioConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info"},
		Display: DisplayConfig{FPS: 30},
	}
}

// Load reads the given .env files (default ".env"; missing files are skipped), then the environment
// Variables already set in the process win over .env entries
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a config from defaults overlaid with lookup results
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	p := envParser{lookup: lookup}

	p.float("TICK_HZ", &cfg.Sim.TickHz)
	p.float("G", &cfg.Sim.G)
	p.int("TRAJECTORY_STEPS", &cfg.Sim.TrajectorySteps)
	p.float("PREDICT_DT", &cfg.Sim.PredictDt)
	p.string("MISS_POLICY", &cfg.Sim.MissPolicy)
	p.int("MAX_TICKS_PER_FRAME", &cfg.Sim.MaxTicksPerFrame)
	p.bool("AUDIO", &cfg.Audio.Enabled)
	p.string("LOG_LEVEL", &cfg.Logging.Level)
	p.bool("LOG_JSON", &cfg.Logging.JSONFormat)
	p.bool("DEBUG", &cfg.Logging.Debug)
	p.int("FPS", &cfg.Display.FPS)

	if len(p.errs) > 0 {
		return nil, fmt.Errorf("invalid environment: %w", errors.Join(p.errs...))
	}
	cfg.Sim.TrajectorySteps = ClampSteps(cfg.Sim.TrajectorySteps)
	return cfg, nil
}

// ClampSteps bounds a prediction step count to the accepted range
func ClampSteps(n int) int {
	return max(physics.MinPredictSteps, min(n, physics.MaxPredictSteps))
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	var errs []error
	if !engine.ValidTickHz(c.Sim.TickHz) {
		errs = append(errs, fmt.Errorf("tick rate must be within [%g, %g], got %g", engine.MinTickHz, engine.MaxTickHz, c.Sim.TickHz))
	}
	if !(c.Sim.G > 0) {
		errs = append(errs, fmt.Errorf("gravitational constant must be positive, got %g", c.Sim.G))
	}
	if !(c.Sim.PredictDt > 0) {
		errs = append(errs, fmt.Errorf("prediction dt must be positive, got %g", c.Sim.PredictDt))
	}
	if c.Sim.MaxTicksPerFrame <= 0 {
		errs = append(errs, fmt.Errorf("max ticks per frame must be positive, got %d", c.Sim.MaxTicksPerFrame))
	}
	if _, err := engine.ParseMissPolicy(c.Sim.MissPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.Display.FPS <= 0 || c.Display.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("fps must be within [1, %d], got %d", MaxFPS, c.Display.FPS))
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// EngineSettings converts the simulation section; call after Validate
func (c *Config) EngineSettings() engine.Settings {
	policy, _ := engine.ParseMissPolicy(c.Sim.MissPolicy)
	s := engine.DefaultSettings()
	s.TickHz = c.Sim.TickHz
	s.G = c.Sim.G
	s.PredictSteps = c.Sim.TrajectorySteps
	s.PredictDt = c.Sim.PredictDt
	s.MaxTicksPerFrame = c.Sim.MaxTicksPerFrame
	s.MissPolicy = policy
	return s
}

// SlogLevel parses Level; debug mode forces debug level
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	if l.Debug {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", l.Level)
	}
	return lvl, nil
}

type envParser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *envParser) get(key string) (string, bool) {
	v, ok := p.lookup(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (p *envParser) string(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *envParser) float(key string, dst *float64) {
	if v, ok := p.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}
		*dst = f
	}
}

func (p *envParser) int(key string, dst *int) {
	if v, ok := p.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}
		*dst = n
	}
}

func (p *envParser) bool(key string, dst *bool) {
	if v, ok := p.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			return
		}
		*dst = b
	}
}
