// Package config provides YAML-based game configuration loading and
// difficulty management for the runner and platformer sessions.
package config

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/camera"
	"github.com/vovakirdan/arcade3d/internal/level"
	"github.com/vovakirdan/arcade3d/internal/physics"
)

// RunnerConfig contains all configuration for the lane runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Track      RunnerTrack      `yaml:"track"`
	Camera     ChaseCamera      `yaml:"camera"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines forward motion, lanes and jumping for the runner.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpStrength float64 `yaml:"jump_strength"`
	StartSpeed   float64 `yaml:"start_speed"`  // Units per 60Hz frame
	Acceleration float64 `yaml:"acceleration"` // Speed gained per 60Hz frame
	LaneWidth    float64 `yaml:"lane_width"`
	LaneCount    int     `yaml:"lane_count"`
	LaneLerp     float64 `yaml:"lane_lerp"`
	FloorY       float64 `yaml:"floor_y"`
}

// RunnerTrack defines ground segments and obstacles.
type RunnerTrack struct {
	StartZ          float64 `yaml:"start_z"`
	SegmentLength   float64 `yaml:"segment_length"`
	Margin          float64 `yaml:"margin"` // Extra ground width beyond the lanes
	GroundThickness float64 `yaml:"ground_thickness"`
	MaxActive       int     `yaml:"max_active"`
	ObstacleChance  float64 `yaml:"obstacle_chance"`
	ObstacleSize    float64 `yaml:"obstacle_size"`
	ObstacleSpread  float64 `yaml:"obstacle_spread"`
}

// ChaseCamera defines the runner's follow camera.
type ChaseCamera struct {
	OffsetY   float64 `yaml:"offset_y"`
	OffsetZ   float64 `yaml:"offset_z"`
	XLerp     float64 `yaml:"x_lerp"`
	LookAhead float64 `yaml:"look_ahead"`
}

// PlatformerConfig contains all configuration for both platformers.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Camera     OrbitCamera       `yaml:"camera"`
	Course     CourseConfig      `yaml:"course"`
	Chain      ChainConfig       `yaml:"chain"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines movement, jumping and crouching.
type PlatformerPhysics struct {
	Gravity           float64 `yaml:"gravity"`
	JumpStrength      float64 `yaml:"jump_strength"`
	MoveSpeed         float64 `yaml:"move_speed"`
	CrouchSpeedFactor float64 `yaml:"crouch_speed_factor"`
	Damping           float64 `yaml:"damping"`
	StandingHeight    float64 `yaml:"standing_height"`
	CrouchHeight      float64 `yaml:"crouch_height"`
	Width             float64 `yaml:"width"`
	GroundMargin      float64 `yaml:"ground_margin"`
	StandMargin       float64 `yaml:"stand_margin"`
	FloorY            float64 `yaml:"floor_y"`
}

// OrbitCamera defines the mouse-steered platformer camera.
type OrbitCamera struct {
	Distance     float64 `yaml:"distance"`
	Pitch        float64 `yaml:"pitch"`
	Lerp         float64 `yaml:"lerp"`
	HeightOffset float64 `yaml:"height_offset"`
	CrouchOffset float64 `yaml:"crouch_offset"`
	MinPitch     float64 `yaml:"min_pitch"`
	MaxPitch     float64 `yaml:"max_pitch"`
	Sensitivity  float64 `yaml:"sensitivity"`
}

// CourseConfig sizes the fixed platformer course.
type CourseConfig struct {
	Thickness      float64 `yaml:"thickness"`
	CrouchGapExtra float64 `yaml:"crouch_gap_extra"`
}

// ChainConfig defines the generated platform chain.
type ChainConfig struct {
	Count         int     `yaml:"count"`
	FirstSize     float64 `yaml:"first_size"`
	Thickness     float64 `yaml:"thickness"`
	MinRise       float64 `yaml:"min_rise"`
	MaxRise       float64 `yaml:"max_rise"`
	MinGap        float64 `yaml:"min_gap"`
	MaxGap        float64 `yaml:"max_gap"`
	MinSize       float64 `yaml:"min_size"`
	MaxSize       float64 `yaml:"max_size"`
	MaxTurnDeg    float64 `yaml:"max_turn_deg"`
	LateralJitter float64 `yaml:"lateral_jitter"`
	WinScale      float64 `yaml:"win_scale"`
	ClampToReach  bool    `yaml:"clamp_to_reach"`
	FloorDepth    float64 `yaml:"floor_depth"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the speed factor at max difficulty
	ObstacleBoost   float64 `yaml:"obstacle_boost"`   // Added to obstacle chance at max difficulty
	GapScale        float64 `yaml:"gap_scale"`        // Added to the gap factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// PhysicsParams converts the runner physics into resolver parameters.
func (c RunnerConfig) PhysicsParams() physics.Params {
	p := physics.DefaultParams()
	p.Gravity = c.Physics.Gravity
	p.JumpStrength = c.Physics.JumpStrength
	p.FloorY = c.Physics.FloorY
	return p
}

// RunnerParams returns the lane and speed tuning.
func (c RunnerConfig) RunnerParams() physics.RunnerParams {
	n := max(c.Physics.LaneCount, 1)
	lanes := make([]float64, n)
	for i := range lanes {
		lanes[i] = (float64(i) - float64(n-1)/2) * c.Physics.LaneWidth
	}
	return physics.RunnerParams{
		Lanes:        lanes,
		StartSpeed:   c.Physics.StartSpeed,
		Acceleration: c.Physics.Acceleration,
		LaneLerp:     c.Physics.LaneLerp,
	}
}

// TrackParams returns the segment and obstacle sizing.
func (c RunnerConfig) TrackParams() level.TrackParams {
	rp := c.RunnerParams()
	return level.TrackParams{
		SegmentLength:   c.Track.SegmentLength,
		Width:           c.Physics.LaneWidth*float64(len(rp.Lanes)) + c.Track.Margin,
		GroundThickness: c.Track.GroundThickness,
		MaxActive:       c.Track.MaxActive,
		Lanes:           rp.Lanes,
		ObstacleChance:  c.Track.ObstacleChance,
		ObstacleSize:    c.Track.ObstacleSize,
		ObstacleSpread:  c.Track.ObstacleSpread,
	}
}

// NewCamera builds the chase camera.
func (c RunnerConfig) NewCamera() *camera.Chase {
	cam := camera.NewChase()
	cam.Offset = mgl64.Vec3{0, c.Camera.OffsetY, c.Camera.OffsetZ}
	cam.XLerp = c.Camera.XLerp
	cam.LookAhead = c.Camera.LookAhead
	return cam
}

// PhysicsParams converts the platformer physics into resolver parameters.
func (c PlatformerConfig) PhysicsParams() physics.Params {
	p := physics.DefaultParams()
	p.Gravity = c.Physics.Gravity
	p.JumpStrength = c.Physics.JumpStrength
	p.MoveSpeed = c.Physics.MoveSpeed
	p.CrouchSpeedFactor = c.Physics.CrouchSpeedFactor
	p.Damping = c.Physics.Damping
	p.StandingHeight = c.Physics.StandingHeight
	p.CrouchHeight = c.Physics.CrouchHeight
	p.Width = c.Physics.Width
	p.GroundMargin = c.Physics.GroundMargin
	p.StandMargin = c.Physics.StandMargin
	p.FloorY = c.Physics.FloorY
	return p
}

// FixedParams returns the fixed course sizing.
func (c PlatformerConfig) FixedParams() level.FixedParams {
	return level.FixedParams{
		Thickness:      c.Course.Thickness,
		CrouchHeight:   c.Physics.CrouchHeight,
		CrouchGapExtra: c.Course.CrouchGapExtra,
	}
}

// ChainParams returns the generated chain tuning.
func (c PlatformerConfig) ChainParams() level.ChainParams {
	ch := c.Chain
	return level.ChainParams{
		Count:         ch.Count,
		FirstSize:     ch.FirstSize,
		Thickness:     ch.Thickness,
		MinRise:       ch.MinRise,
		MaxRise:       ch.MaxRise,
		MinGap:        ch.MinGap,
		MaxGap:        ch.MaxGap,
		MinSize:       ch.MinSize,
		MaxSize:       ch.MaxSize,
		MaxTurn:       ch.MaxTurnDeg * math.Pi / 180,
		LateralJitter: ch.LateralJitter,
		WinScale:      ch.WinScale,
		ClampToReach:  ch.ClampToReach,
		FloorDepth:    ch.FloorDepth,
	}
}

// NewCamera builds the orbit camera.
func (c PlatformerConfig) NewCamera() *camera.Orbit {
	cam := camera.NewOrbit()
	cam.Distance = c.Camera.Distance
	cam.Pitch = c.Camera.Pitch
	cam.Lerp = c.Camera.Lerp
	cam.HeightOffset = c.Camera.HeightOffset
	cam.CrouchOffset = c.Camera.CrouchOffset
	cam.MinPitch = c.Camera.MinPitch
	cam.MaxPitch = c.Camera.MaxPitch
	cam.Sensitivity = c.Camera.Sensitivity
	return cam
}
