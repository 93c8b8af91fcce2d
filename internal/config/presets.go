package config

var Presets = map[string]*Config{
	"settle": {
		Gravity:        GravityConfig{Y: DefaultGravityY},
		MaxPresimSteps: 20,
		Substeps:       DefaultSubsteps,
		TickRate:       DefaultTickRate,
		Scene:          SceneConfig{Crates: 24, DropHeight: 8.0, GroundWidth: 30.0},
	},
	"single": {
		Gravity:        GravityConfig{Y: DefaultGravityY},
		MaxPresimSteps: DefaultMaxPresimSteps,
		Substeps:       DefaultSubsteps,
		TickRate:       DefaultTickRate,
		Scene:          SceneConfig{Crates: 1, DropHeight: 20.0, GroundWidth: 12.0},
	},
	"avalanche": {
		Gravity:        GravityConfig{Y: DefaultGravityY},
		MaxPresimSteps: DefaultMaxPresimSteps,
		Substeps:       8,
		TickRate:       40,
		Scene:          SceneConfig{Crates: 64, DropHeight: 25.0, GroundWidth: 40.0},
	},
	"moon": {
		Gravity:        GravityConfig{Y: -1.62},
		MaxPresimSteps: DefaultMaxPresimSteps,
		Substeps:       DefaultSubsteps,
		TickRate:       DefaultTickRate,
		Scene:          SceneConfig{Crates: 12, DropHeight: 14.0, GroundWidth: 24.0},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	out := make([]string, 0, len(Presets))
	for name := range Presets {
		out = append(out, name)
	}
	return out
}
