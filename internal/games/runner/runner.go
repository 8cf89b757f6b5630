// Package runner implements the endless three-lane runner. The player
// moves down -Z with growing speed over a recycling track of ground
// segments, switching lanes and jumping to dodge box obstacles.
package runner

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/camera"
	"github.com/vovakirdan/arcade3d/internal/config"
	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/level"
	"github.com/vovakirdan/arcade3d/internal/physics"
	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// ID is the registry and score-store identifier.
const ID = "runner"

// Visual characters for the top-down view
const (
	GroundDark  = '░'
	GroundLight = '▒'
	ObstacleCh  = '█'
	PlayerCh    = '@'
	PlayerAirCh = '^'
	LaneMarkCh  = '┊'
)

// Session is one runner game. It owns the player, the collider registry
// and the track; nothing is shared between sessions.
type Session struct {
	cfg     config.RunnerConfig
	loadCfg bool
	runtime core.RuntimeConfig

	world      *world.Registry
	resolver   *physics.Resolver
	track      *level.Track
	cam        *camera.Chase
	lanes      physics.RunnerParams
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	player physics.PlayerState
	phase  core.Phase
	paused bool
	score  int
	ticks  int

	logger *log.Logger
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path used by sessions from New.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by sessions from New.
// Unknown names fall back to the config file's own settings.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// New creates a session that loads its config on Reset.
func New() *Session {
	return &Session{loadCfg: true, logger: log.Default().WithPrefix(ID)}
}

// NewWithConfig creates a session with an explicit config.
func NewWithConfig(cfg config.RunnerConfig) *Session {
	return &Session{cfg: cfg, logger: log.Default().WithPrefix(ID)}
}

// SetLogger replaces the session logger.
func (s *Session) SetLogger(l *log.Logger) {
	s.logger = l
}

// ID returns the unique identifier for this game.
func (s *Session) ID() string {
	return ID
}

// Title returns the display name for this game.
func (s *Session) Title() string {
	return "Lane Runner"
}

// Reset loads config, builds a fresh track and returns to the menu.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime

	if s.loadCfg {
		cfg, err := config.LoadRunner(configPath)
		if err != nil {
			s.logger.Warn("using default config", "err", err)
		}
		if difficultyPreset != "" {
			config.ApplyRunnerPreset(&cfg, difficultyPreset)
		}
		s.cfg = cfg
	}

	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	s.lanes = s.cfg.RunnerParams()
	s.rng = core.NewRand(runtime.Seed)
	s.world = world.NewRegistry()
	s.resolver = physics.NewResolver(s.cfg.PhysicsParams(), s.world)
	s.track = level.NewTrack(s.cfg.TrackParams(), s.world, s.rng)
	s.cam = s.cfg.NewCamera()

	s.build()
	s.phase = core.PhaseMenu
}

// build lays a new track and puts the player on the center lane.
func (s *Session) build() {
	start := s.cfg.Track.StartZ
	s.world.Clear()
	s.track.SetObstacleChance(s.cfg.Track.ObstacleChance)
	s.track.Reset(start)

	params := s.resolver.Params
	s.player = physics.NewPlayer(mgl64.Vec3{0, params.StandingHeight / 2, start}, params.Width, params.StandingHeight)
	s.player.OnGround = true
	s.player.CurrentLane = s.lanes.CenterLane()
	s.player.TargetLane = s.player.CurrentLane
	s.player.Speed = s.difficulty.Speed(s.lanes.StartSpeed, 0, 0)

	s.cam.Snap(s.player.Position)
	s.score = 0
	s.ticks = 0
	s.paused = false
}

// Step advances the session by dt seconds.
func (s *Session) Step(in core.InputSnapshot, dt float64) core.StepResult {
	switch s.phase {
	case core.PhaseMenu:
		if in.WasPressed(core.ActionConfirm) {
			return s.start()
		}
		return s.result()
	case core.PhaseGameOver:
		if in.WasPressed(core.ActionRestart) {
			s.build()
			return s.start()
		}
		return s.result()
	case core.PhaseWin:
		return s.result()
	}

	if in.WasPressed(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return s.result()
	}

	dt = s.runtime.ClampDelta(dt)
	s.ticks++

	s.resolver.AdvanceRunner(&s.player, in, dt, s.lanes)
	s.resolver.Vertical(&s.player, in.WasPressed(core.ActionJump), dt)
	s.cam.Update(s.player.Position)

	s.track.SetObstacleChance(s.difficulty.ObstacleChance(s.cfg.Track.ObstacleChance, s.score, s.ticks))
	s.track.Update(s.player.Position.Z(), s.cam.Position.Z())

	s.score = max(s.score, int(math.Max(0, math.Floor(-s.player.Position.Z()))))

	if c, hit := s.resolver.Overlaps(&s.player, world.TagObstacle); hit {
		s.logger.Debug("obstacle hit", "collider", c.ID, "z", s.player.Position.Z())
		return s.gameOver()
	}
	if s.resolver.FellOut(&s.player) {
		s.logger.Debug("fell out", "y", s.player.Position.Y())
		return s.gameOver()
	}

	return s.result()
}

func (s *Session) start() core.StepResult {
	s.phase = core.PhasePlaying
	s.logger.Info("run started", "seed", s.runtime.Seed)
	return s.result(core.Event{Kind: core.EventStarted})
}

func (s *Session) gameOver() core.StepResult {
	s.phase = core.PhaseGameOver
	s.logger.Info("game over", "score", s.score, "ticks", s.ticks)
	return s.result(core.Event{Kind: core.EventGameOver, Score: s.score})
}

func (s *Session) result(events ...core.Event) core.StepResult {
	return core.StepResult{State: s.State(), Events: events}
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Phase:     s.phase,
		Score:     s.score,
		Paused:    s.paused,
		Grounded:  s.player.OnGround,
		Crouching: s.player.Crouching,
	}
}

// Player returns a copy of the player state.
func (s *Session) Player() physics.PlayerState {
	return s.player
}

// Track returns the live ground track.
func (s *Session) Track() *level.Track {
	return s.track
}

// World returns the collider registry.
func (s *Session) World() *world.Registry {
	return s.world
}

// Ticks returns the number of simulated ticks since the run started.
func (s *Session) Ticks() int {
	return s.ticks
}

// Render draws a top-down view with the player near the bottom edge.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	anchor := max(dst.Height()-4, 0)
	v := core.NewViewport(dst, 0, s.player.Position.Z(), 3, 0.5, anchor)

	for _, seg := range s.track.Segments() {
		fill, color := GroundDark, core.ColorGray
		if seg.Tone == 1 {
			fill, color = GroundLight, core.ColorWhite
		}
		v.FillBox(dst, seg.Ground.Box, fill, color)
	}

	for _, lx := range s.lanes.Lanes[1:] {
		col, _ := v.Project(lx-s.cfg.Physics.LaneWidth/2, 0)
		dst.DrawVLine(col, 1, dst.Height()-1, LaneMarkCh)
	}

	for _, seg := range s.track.Segments() {
		if seg.Obstacle != nil {
			v.FillBox(dst, seg.Obstacle.Box, ObstacleCh, core.ColorYellow)
		}
	}

	col, row := v.Project(s.player.Position.X(), s.player.Position.Z())
	ch := PlayerCh
	if !s.player.OnGround {
		ch = PlayerAirCh
	}
	dst.SetColor(col, row, ch, core.ColorBrightCyan)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.score))
	speed := fmt.Sprintf(" Spd: %.2f  Seg: %d ", s.player.Speed, s.track.Created())
	dst.DrawText(dst.Width()-len(speed)-2, 0, speed)

	switch {
	case s.phase == core.PhaseMenu:
		dst.DrawMessage("LANE RUNNER", "Enter to start  |  A/D lanes  Space jump")
	case s.paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case s.phase == core.PhaseGameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
