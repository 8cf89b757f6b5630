package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var runner RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("runner"), &runner); err != nil {
		t.Fatalf("runner yaml: %v", err)
	}
	if want := DefaultRunnerConfig(); !reflect.DeepEqual(runner, want) {
		t.Errorf("runner yaml = %+v\nwant %+v", runner, want)
	}

	var plat PlatformerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("platformer_v2"), &plat); err != nil {
		t.Fatalf("platformer yaml: %v", err)
	}
	if want := DefaultPlatformerConfig(); !reflect.DeepEqual(plat, want) {
		t.Errorf("platformer yaml = %+v\nwant %+v", plat, want)
	}

	if GetDefaultYAML("pinball") != nil {
		t.Error("unknown game has default yaml")
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("physics:\n  start_speed: 0.3\ntrack:\n  max_active: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Physics.StartSpeed != 0.3 || cfg.Track.MaxActive != 7 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Track.SegmentLength != 50 || cfg.Physics.LaneCount != 3 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadPlatformer(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestRunnerParamsLanes(t *testing.T) {
	cfg := DefaultRunnerConfig()
	rp := cfg.RunnerParams()
	want := []float64{-3, 0, 3}
	if !reflect.DeepEqual(rp.Lanes, want) {
		t.Errorf("lanes = %v, want %v", rp.Lanes, want)
	}
	if got := cfg.TrackParams().Width; got != 11 {
		t.Errorf("track width = %v, want 11", got)
	}

	cfg.Physics.LaneCount = 4
	cfg.Physics.LaneWidth = 2
	if got := cfg.RunnerParams().Lanes; !reflect.DeepEqual(got, []float64{-3, -1, 1, 3}) {
		t.Errorf("four lanes = %v", got)
	}
}

func TestChainParamsTurnInRadians(t *testing.T) {
	cp := DefaultPlatformerConfig().ChainParams()
	if math.Abs(cp.MaxTurn-math.Pi/5) > 1e-12 {
		t.Errorf("MaxTurn = %v, want pi/5", cp.MaxTurn)
	}
}

func TestApplyPresets(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		chance  float64
	}{
		{DifficultyEasy, true, 0.0, 0.2},
		{DifficultyNormal, true, 0.3, 0.3},
		{DifficultyHard, true, 0.7, 0.45},
		{DifficultyFixed, false, 0.0, 0.3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyRunnerPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("InitialLevel = %v, want %v", cfg.Difficulty.InitialLevel, tt.level)
			}
			if cfg.Track.ObstacleChance != tt.chance {
				t.Errorf("ObstacleChance = %v, want %v", cfg.Track.ObstacleChance, tt.chance)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"fixed", DifficultyFixed, true},
		{"insane", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePreset(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1, ObstacleBoost: 0.5, GapScale: 0.5},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score, 0); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	if got := d.Speed(0.15, 100, 0); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Speed at max = %v, want 0.3", got)
	}
	if got := d.ObstacleChance(0.6, 100, 0); got != maxObstacleChance {
		t.Errorf("ObstacleChance = %v, want cap %v", got, maxObstacleChance)
	}
	if got := d.GapFactor(0, 0); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("GapFactor = %v, want 1.1", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() || d.Level(100, 0) != 0.2 {
		t.Error("disabled manager should hold the initial level")
	}
}
