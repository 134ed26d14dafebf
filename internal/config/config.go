package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `toml:"app" yaml:"app"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Runner    RunnerConfig    `toml:"runner" yaml:"runner"`
	Regen     RegenConfig     `toml:"regen" yaml:"regen"`
	Scripting ScriptingConfig `toml:"scripting" yaml:"scripting"`
	Spawn     SpawnConfig     `toml:"spawn" yaml:"spawn"`
}

type AppConfig struct {
	Name      string `toml:"name" yaml:"name"`
	StartTime int64  `toml:"-" yaml:"-"` // set at boot, not from config
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type RunnerConfig struct {
	TickRate time.Duration `toml:"tick_rate" yaml:"tick_rate"`
	Ticks    int           `toml:"ticks" yaml:"ticks"` // 0 = run until interrupted
}

type RegenConfig struct {
	Amount   int           `toml:"amount" yaml:"amount"`
	Interval time.Duration `toml:"interval" yaml:"interval"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

type SpawnConfig struct {
	File string `toml:"file" yaml:"file"` // empty = start with an empty registry
}

// Load reads a TOML or YAML config, chosen by file extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.App.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := defaults()
	cfg.App.StartTime = time.Now().Unix()
	return cfg
}

func (c *Config) validate() error {
	if c.Runner.TickRate <= 0 {
		return fmt.Errorf("runner.tick_rate must be positive, got %s", c.Runner.TickRate)
	}
	if c.Runner.Ticks < 0 {
		return fmt.Errorf("runner.ticks must not be negative, got %d", c.Runner.Ticks)
	}
	if c.Regen.Interval < 0 {
		return fmt.Errorf("regen.interval must not be negative, got %s", c.Regen.Interval)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name: "ecsdemo",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Runner: RunnerConfig{
			TickRate: 200 * time.Millisecond,
		},
		Regen: RegenConfig{
			Amount:   1,
			Interval: time.Second,
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Spawn: SpawnConfig{
			File: "data/yaml/spawn_list.yaml",
		},
	}
}
