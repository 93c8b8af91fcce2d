package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxPresimSteps = 10
	DefaultSubsteps       = 5
	DefaultTickRate       = 20
	DefaultGravityY       = -9.807
	DefaultCrates         = 12
	DefaultDropHeight     = 14.0
	DefaultGroundWidth    = 24.0
)

type Config struct {
	Gravity        GravityConfig `yaml:"gravity"`
	MaxPresimSteps int           `yaml:"max_presim_steps"`
	Substeps       int           `yaml:"substeps"`
	TickRate       int           `yaml:"tick_rate"`
	Scene          SceneConfig   `yaml:"scene"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SceneConfig struct {
	Crates      int     `yaml:"crates"`
	DropHeight  float64 `yaml:"drop_height"`
	GroundWidth float64 `yaml:"ground_width"`
	Seed        int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:        GravityConfig{Y: DefaultGravityY},
		MaxPresimSteps: DefaultMaxPresimSteps,
		Substeps:       DefaultSubsteps,
		TickRate:       DefaultTickRate,
		Scene: SceneConfig{
			Crates:      DefaultCrates,
			DropHeight:  DefaultDropHeight,
			GroundWidth: DefaultGroundWidth,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
