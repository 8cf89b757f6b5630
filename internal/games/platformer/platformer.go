// Package platformer implements the two 3D platformer variants: a fixed
// hand-built course with a crouch tunnel, and a generated chain of
// platforms built from a seeded random source.
package platformer

import (
	"fmt"
	"math"

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

// Variant selects which course a session plays.
type Variant int

const (
	Fixed     Variant = iota // Hand-built course
	Generated                // Seeded platform chain
)

// Registry identifiers per variant.
const (
	FixedID     = "platformer"
	GeneratedID = "platformer_v2"
)

// Visual characters for the top-down view
const (
	FloorCh   = '·'
	LowCh     = '░'
	HighCh    = '▓'
	CeilingCh = '▀'
	WinCh     = '▒'
	PlayerCh  = '@'
	CrouchCh  = 'c'
)

// fallMargin is how far below the safety floor the fall-out plane sits.
const fallMargin = 10.0

// Session is one platformer game. It owns the player, the collider
// registry and the camera; nothing is shared between sessions.
type Session struct {
	variant Variant
	cfg     config.PlatformerConfig
	loadCfg bool
	runtime core.RuntimeConfig

	world      *world.Registry
	resolver   *physics.Resolver
	cam        *camera.Orbit
	layout     level.Layout
	difficulty *config.DifficultyManager

	player      physics.PlayerState
	visited     map[world.ColliderID]bool
	unreachable []int
	phase       core.Phase
	paused      bool
	ticks       int
	deaths      int

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
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// New creates a session that loads its config on Reset.
func New(variant Variant) *Session {
	s := NewWithConfig(variant, config.PlatformerConfig{})
	s.loadCfg = true
	return s
}

// NewWithConfig creates a session with an explicit config.
func NewWithConfig(variant Variant, cfg config.PlatformerConfig) *Session {
	id := FixedID
	if variant == Generated {
		id = GeneratedID
	}
	return &Session{variant: variant, cfg: cfg, logger: log.Default().WithPrefix(id)}
}

// SetLogger replaces the session logger.
func (s *Session) SetLogger(l *log.Logger) {
	s.logger = l
}

// ID returns the unique identifier for this game.
func (s *Session) ID() string {
	if s.variant == Generated {
		return GeneratedID
	}
	return FixedID
}

// Title returns the display name for this game.
func (s *Session) Title() string {
	if s.variant == Generated {
		return "Platform Chain"
	}
	return "Platform Course"
}

// Reset loads config, builds the course and returns to the menu.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime

	if s.loadCfg {
		cfg, err := config.LoadPlatformer(configPath)
		if err != nil {
			s.logger.Warn("using default config", "err", err)
		}
		if difficultyPreset != "" {
			config.ApplyPlatformerPreset(&cfg, difficultyPreset)
		}
		s.cfg = cfg
	}

	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	params := s.cfg.PhysicsParams()
	s.layout = s.buildLayout(params, runtime.Seed)

	// Keep the fall-out plane under the safety floor wherever it ended up.
	for _, p := range s.layout.Placements {
		if p.Tag == world.TagFloor {
			params.FloorY = math.Min(params.FloorY, p.Box.Bottom()-fallMargin)
		}
	}

	s.world = world.NewRegistry()
	s.layout.Install(s.world)
	s.resolver = physics.NewResolver(params, s.world)
	s.cam = s.cfg.NewCamera()

	s.unreachable = level.CheckReachability(s.layout, level.JumpEnvelope(params))
	if len(s.unreachable) > 0 {
		s.logger.Warn("unreachable platforms", "count", len(s.unreachable), "first", s.unreachable[0])
	}

	s.visited = make(map[world.ColliderID]bool)
	s.ticks = 0
	s.deaths = 0
	s.paused = false
	s.spawn()
	s.phase = core.PhaseMenu
}

func (s *Session) buildLayout(params physics.Params, seed int64) level.Layout {
	if s.variant == Fixed {
		return level.BuildFixed(s.cfg.FixedParams())
	}

	cp := s.cfg.ChainParams()
	gf := s.difficulty.GapFactor(0, 0)
	cp.MinGap *= gf
	cp.MaxGap *= gf
	return level.GenerateChain(core.NewRand(seed), cp, level.JumpEnvelope(params))
}

// spawn places a standing player at the layout's spawn point.
func (s *Session) spawn() {
	params := s.resolver.Params
	s.player = physics.NewPlayer(s.layout.Spawn, params.Width, params.StandingHeight)
	s.cam.Snap(s.player.Position, false)
}

// Step advances the session by dt seconds.
func (s *Session) Step(in core.InputSnapshot, dt float64) core.StepResult {
	switch s.phase {
	case core.PhaseMenu:
		if in.WasPressed(core.ActionConfirm) {
			s.phase = core.PhasePlaying
			s.logger.Info("run started", "seed", s.runtime.Seed, "colliders", s.world.Len())
			return s.result(core.Event{Kind: core.EventStarted})
		}
		return s.result()
	case core.PhaseGameOver, core.PhaseWin:
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

	s.cam.Look(in.LookDX, in.LookDY)

	r := s.resolver
	r.UpdateCrouch(&s.player, in.IsHeld(core.ActionCrouch))
	right, forward := in.MoveAxes()
	r.MoveHorizontal(&s.player, right, forward, s.cam.Yaw)
	r.IntegrateHorizontal(&s.player, dt)
	landing := r.Vertical(&s.player, in.WasPressed(core.ActionJump), dt)

	var events []core.Event
	switch {
	case landing.Landed && landing.Ground.Tag == world.TagFloor:
		events = append(events, s.respawn("safety floor"))
	case landing.Landed:
		if landing.Ground.Tag != world.TagCeiling {
			s.visited[landing.Ground.ID] = true
		}
		if landing.Ground.Tag == world.TagWin {
			s.phase = core.PhaseWin
			s.logger.Info("win", "score", s.Score(), "ticks", s.ticks, "respawns", s.deaths)
			events = append(events, core.Event{Kind: core.EventWin, Score: s.Score()})
		}
	case r.FellOut(&s.player):
		events = append(events, s.respawn("fell out"))
	}

	s.cam.Update(s.player.Position, s.player.Crouching)
	return s.result(events...)
}

// respawn returns the player to the spawn point with no velocity,
// standing. Platforms already visited stay counted.
func (s *Session) respawn(reason string) core.Event {
	s.deaths++
	s.logger.Debug("respawn", "reason", reason, "at", s.player.Position)
	s.spawn()
	return core.Event{Kind: core.EventRespawn, Score: s.Score()}
}

// Score is the number of distinct platforms landed on.
func (s *Session) Score() int {
	return len(s.visited)
}

func (s *Session) result(events ...core.Event) core.StepResult {
	return core.StepResult{State: s.State(), Events: events}
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Phase:     s.phase,
		Score:     s.Score(),
		Paused:    s.paused,
		Grounded:  s.player.OnGround,
		Crouching: s.player.Crouching,
	}
}

// Player returns a copy of the player state.
func (s *Session) Player() physics.PlayerState {
	return s.player
}

// Layout returns the installed course.
func (s *Session) Layout() level.Layout {
	return s.layout
}

// World returns the collider registry.
func (s *Session) World() *world.Registry {
	return s.world
}

// Camera returns the orbit camera.
func (s *Session) Camera() *camera.Orbit {
	return s.cam
}

// Ticks returns the number of simulated ticks.
func (s *Session) Ticks() int {
	return s.ticks
}

// Unreachable returns the platform indices a standing jump cannot reach
// from the previous platform, as found at Reset.
func (s *Session) Unreachable() []int {
	return s.unreachable
}

// Respawns returns how many times the player was sent back to spawn.
func (s *Session) Respawns() int {
	return s.deaths
}

// Teleport moves the player to pos, airborne with no velocity.
func (s *Session) Teleport(pos mgl64.Vec3) {
	s.player.Position = pos
	s.player.Velocity = mgl64.Vec3{}
	s.player.OnGround = false
}

// Render draws a top-down view centered on the player. Ground is shaded
// by its height relative to the player's feet; visited ground is green.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	v := core.NewViewport(dst, s.player.Position.X(), s.player.Position.Z(), 2, 1, dst.Height()/2)
	feet := s.player.Feet()

	for _, c := range s.world.Colliders() {
		switch c.Tag {
		case world.TagFloor:
			v.FillBox(dst, c.Box, FloorCh, core.ColorGray)
		case world.TagWin:
			v.FillBox(dst, c.Box, WinCh, core.ColorBrightGreen)
		case world.TagGround:
			dy := c.Box.Top() - feet
			fill, color := LowCh, core.HeightColor(dy)
			if color == core.ColorBlue {
				fill = HighCh
			}
			if s.visited[c.ID] {
				color = core.ColorGreen
			}
			v.FillBox(dst, c.Box, fill, color)
		}
	}
	for _, c := range s.world.Colliders() {
		if c.Tag == world.TagCeiling {
			v.FillBox(dst, c.Box, CeilingCh, core.ColorMagenta)
		}
	}

	col, row := v.Project(s.player.Position.X(), s.player.Position.Z())
	ch := PlayerCh
	if s.player.Crouching {
		ch = CrouchCh
	}
	dst.SetColor(col, row, ch, core.ColorBrightCyan)

	dst.DrawText(2, 0, fmt.Sprintf(" Platforms: %d ", s.Score()))
	status := fmt.Sprintf(" y: %.1f  %s ", s.player.Position.Y(), s.stance())
	dst.DrawText(dst.Width()-len(status)-2, 0, status)

	switch {
	case s.phase == core.PhaseMenu:
		dst.DrawMessage(s.Title(), "Enter to start  |  WASD move  Space jump  C crouch")
	case s.paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case s.phase == core.PhaseWin:
		dst.DrawMessage("YOU WIN", fmt.Sprintf("Platforms: %d  |  Press Q to quit", s.Score()))
	}
}

func (s *Session) stance() string {
	switch {
	case s.player.Crouching:
		return "crouch"
	case s.player.OnGround:
		return "ground"
	default:
		return "air"
	}
}

// Register both variants with the registry
func init() {
	registry.Register(FixedID, func() registry.Game {
		return New(Fixed)
	})
	registry.Register(GeneratedID, func() registry.Game {
		return New(Generated)
	})
}
