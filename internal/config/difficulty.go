package config

import "github.com/vovakirdan/arcade3d/internal/core"

// maxObstacleChance keeps some runner segments clear at any difficulty.
const maxObstacleChance = 0.9

// DifficultyManager maps run progress (score or ticks) to a level in
// [0, 1] and scales game parameters by it. The level starts at the
// configured initial level and rises linearly to 1 at max_at.
type DifficultyManager struct {
	scaling  ScalingConfig
	initial  float64
	enabled  bool
	progress func(score, ticks int) float64
}

// NewDifficultyManager creates a manager for cfg. Unknown progression
// types behave like "none".
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	maxAt := float64(max(cfg.Progression.MaxAt, 1))

	d := &DifficultyManager{
		scaling: cfg.Scaling,
		initial: core.ClampF(cfg.InitialLevel, 0, 1),
		enabled: cfg.Enabled,
	}
	switch cfg.Progression.Type {
	case "score":
		d.progress = func(score, _ int) float64 { return float64(score) / maxAt }
	case "time":
		d.progress = func(_, ticks int) float64 { return float64(ticks) / maxAt }
	}
	return d
}

// SetEnabled turns progression on or off. Off holds the initial level.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// IsEnabled reports whether the level moves with progress.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled && d.progress != nil
}

// Level returns the difficulty level for the given progress.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initial
	}
	t := core.ClampF(d.progress(score, ticks), 0, 1)
	return d.initial + t*(1-d.initial)
}

// Speed scales base up to base * (1 + speed_multiplier) at level 1.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.scaling.SpeedMultiplier)
}

// ObstacleChance adds up to obstacle_boost to base, capped at
// maxObstacleChance.
func (d *DifficultyManager) ObstacleChance(base float64, score, ticks int) float64 {
	return core.ClampF(base+d.Level(score, ticks)*d.scaling.ObstacleBoost, 0, maxObstacleChance)
}

// GapFactor is the multiplier for platform gaps: 1 + level * gap_scale.
func (d *DifficultyManager) GapFactor(score, ticks int) float64 {
	return 1 + d.Level(score, ticks)*d.scaling.GapScale
}
