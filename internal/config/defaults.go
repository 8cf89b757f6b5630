package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultRunnerConfig returns the default lane runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      -19.62,
			JumpStrength: 8,
			StartSpeed:   0.15,
			Acceleration: 0.0001,
			LaneWidth:    3,
			LaneCount:    3,
			LaneLerp:     0.1,
			FloorY:       -20,
		},
		Track: RunnerTrack{
			StartZ:          5,
			SegmentLength:   50,
			Margin:          2,
			GroundThickness: 0.1,
			MaxActive:       5,
			ObstacleChance:  0.3,
			ObstacleSize:    1.5,
			ObstacleSpread:  0.8,
		},
		Camera: ChaseCamera{
			OffsetY:   5,
			OffsetZ:   10,
			XLerp:     0.1,
			LookAhead: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				ObstacleBoost:   0.3,
			},
		},
	}
}

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:           -19.62,
			JumpStrength:      8,
			MoveSpeed:         6,
			CrouchSpeedFactor: 0.5,
			Damping:           0.92,
			StandingHeight:    1,
			CrouchHeight:      0.5,
			Width:             1,
			GroundMargin:      0.1,
			StandMargin:       0.05,
			FloorY:            -20,
		},
		Camera: OrbitCamera{
			Distance:     8,
			Pitch:        0.35,
			Lerp:         0.15,
			HeightOffset: 1,
			CrouchOffset: 0.5,
			MinPitch:     0.05,
			MaxPitch:     1.3,
			Sensitivity:  0.005,
		},
		Course: CourseConfig{
			Thickness:      0.5,
			CrouchGapExtra: 0.2,
		},
		Chain: ChainConfig{
			Count:         100,
			FirstSize:     6,
			Thickness:     0.5,
			MinRise:       -0.5,
			MaxRise:       1.0,
			MinGap:        1,
			MaxGap:        3,
			MinSize:       2,
			MaxSize:       4,
			MaxTurnDeg:    36,
			LateralJitter: 2,
			WinScale:      2,
			ClampToReach:  true,
			FloorDepth:    8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				GapScale: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "runner":
		return defaultRunnerYAML
	case "platformer", "platformer_v2":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
