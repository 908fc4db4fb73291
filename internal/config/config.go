package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World   WorldConfig   `toml:"world"`
	Pools   []PoolConfig  `toml:"pools"`
	Data    DataConfig    `toml:"data"`
	Logging LoggingConfig `toml:"logging"`
}

type WorldConfig struct {
	InitialCapacity int           `toml:"initial_capacity"` // entity slots reserved up front
	TickRate        time.Duration `toml:"tick_rate"`
	MaxTicks        uint64        `toml:"max_ticks"` // 0 = run until signalled
}

// PoolConfig declares a GameObject pool filled from a prefab.
type PoolConfig struct {
	Name    string `toml:"name"`
	Prefab  string `toml:"prefab"`
	Prewarm int    `toml:"prewarm"`
}

type DataConfig struct {
	Prefabs string `toml:"prefabs"` // YAML prefab list
	Scripts string `toml:"scripts"` // directory of .lua files
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.World.InitialCapacity < 0 {
		return fmt.Errorf("world.initial_capacity must not be negative")
	}
	if c.World.TickRate <= 0 {
		return fmt.Errorf("world.tick_rate must be positive")
	}
	seen := make(map[string]struct{}, len(c.Pools))
	for i, p := range c.Pools {
		if p.Name == "" || p.Prefab == "" {
			return fmt.Errorf("pools[%d]: name and prefab are required", i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("pools[%d]: duplicate pool %q", i, p.Name)
		}
		if p.Prewarm < 0 {
			return fmt.Errorf("pools[%d]: prewarm must not be negative", i)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			InitialCapacity: 256,
			TickRate:        50 * time.Millisecond,
		},
		Data: DataConfig{
			Prefabs: "data/yaml/prefabs.yaml",
			Scripts: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
