package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the lane runner configuration.
// Search order: customPath -> ~/.arcade3d/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := load(&cfg, "runner.yaml", customPath, defaultRunnerYAML); err != nil {
		return DefaultRunnerConfig(), err
	}
	return cfg, nil
}

// LoadPlatformer loads the platformer configuration shared by both courses.
// Search order: customPath -> ~/.arcade3d/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := load(&cfg, "platformer.yaml", customPath, defaultPlatformerYAML); err != nil {
		return DefaultPlatformerConfig(), err
	}
	return cfg, nil
}

// load decodes the first config found into cfg, which already holds the
// hardcoded defaults so missing keys keep their default values.
// Only an explicit customPath produces an error.
func load(cfg any, filename, customPath string, embedded []byte) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; on failure cfg keeps the hardcoded values
	_ = yaml.Unmarshal(embedded, cfg)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade3d", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Track.ObstacleChance = 0.2
		cfg.Physics.Acceleration = 0.00005
	case DifficultyHard:
		cfg.Track.ObstacleChance = 0.45
		cfg.Physics.Acceleration = 0.0002
	}
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Chain.MinSize, cfg.Chain.MaxSize = 3, 5
		cfg.Chain.Count = 50
	case DifficultyHard:
		cfg.Chain.MinSize, cfg.Chain.MaxSize = 1.5, 3
		cfg.Chain.Count = 150
	}
}

func applyDifficulty(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
