package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/physics"
	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

var (
	flagSimTicks  int
	flagSimHold   []string
	flagSimJump   int
	flagSimLook   float64
	flagSimSave   bool
	flagSimRender bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless with scripted input",
	Long: `Run a game without a terminal UI at a fixed timestep. The session is
started on the first tick, the --hold actions are held on every tick,
and jump is pressed every --jump-every ticks. The run ends at a game
over, a win, or after --ticks ticks.

Actions: forward, backward, left, right, jump, crouch.

Examples:
  arcade3d sim runner --ticks 1200
  arcade3d sim runner --hold right --jump-every 45
  arcade3d sim platformer_v2 --seed 7 --hold forward --look 2
  arcade3d sim platformer --render`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks to simulate")
	simCmd.Flags().StringSliceVar(&flagSimHold, "hold", nil, "Actions held on every tick")
	simCmd.Flags().IntVar(&flagSimJump, "jump-every", 0, "Press jump every N ticks (0 = never)")
	simCmd.Flags().Float64Var(&flagSimLook, "look", 0, "Horizontal look delta per tick, in pointer pixels")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the result in the scores database")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final frame")
}

// scriptedInput returns the per-tick input for the sim flags.
func scriptedInput(held []core.Action, jumpEvery int, look float64) func(int) core.InputSnapshot {
	return func(tick int) core.InputSnapshot {
		in := core.NewInputSnapshot()
		if tick == 0 {
			in.Press(core.ActionConfirm)
			return in
		}
		for _, a := range held {
			in.Hold(a)
		}
		if jumpEvery > 0 && tick%jumpEvery == 0 {
			in.Press(core.ActionJump)
		}
		in.LookDX = look
		return in
	}
}

func parseHeld(names []string) ([]core.Action, error) {
	held := make([]core.Action, 0, len(names))
	for _, name := range names {
		a, ok := core.ParseAction(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		held = append(held, a)
	}
	return held, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade3d list')", gameID)
	}
	held, err := parseHeld(flagSimHold)
	if err != nil {
		return err
	}

	applyGameOptions(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	game.Reset(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := core.NewFixedLoop(cfg)
	result, err := loop.Run(ctx, game, scriptedInput(held, flagSimJump, flagSimLook), flagSimTicks)
	if err != nil {
		log.Warn("simulation interrupted", "ticks", loop.Ticks())
	}
	state := result.State

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "game:    %s\n", gameID)
	fmt.Fprintf(out, "seed:    %d\n", cfg.Seed)
	fmt.Fprintf(out, "ticks:   %d\n", loop.Ticks())
	fmt.Fprintf(out, "phase:   %s\n", state.Phase)
	fmt.Fprintf(out, "score:   %d\n", state.Score)

	if p, ok := game.(interface{ Player() physics.PlayerState }); ok {
		pos := p.Player().Position
		fmt.Fprintf(out, "player:  (%.2f, %.2f, %.2f) grounded=%v\n", pos.X(), pos.Y(), pos.Z(), state.Grounded)
	}
	if r, ok := game.(interface{ Respawns() int }); ok {
		fmt.Fprintf(out, "respawns: %d\n", r.Respawns())
	}
	if u, ok := game.(interface{ Unreachable() []int }); ok {
		if bad := u.Unreachable(); len(bad) > 0 {
			fmt.Fprintf(out, "unreachable platforms: %v\n", bad)
		} else {
			fmt.Fprintln(out, "all platforms reachable")
		}
	}

	if flagSimRender {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Fprintln(out, screen.String())
	}

	if flagSimSave {
		return saveSim(gameID, state, cfg.Seed, loop.Ticks())
	}
	return nil
}

func saveSim(gameID string, state core.GameState, seed int64, ticks int) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	outcome := storage.OutcomeQuit
	switch {
	case state.Won():
		outcome = storage.OutcomeWin
	case state.GameOver():
		outcome = storage.OutcomeGameOver
	}

	id, err := store.SaveScore(storage.ScoreEntry{
		GameID:  gameID,
		Score:   state.Score,
		Outcome: outcome,
		Seed:    seed,
		Ticks:   ticks,
	})
	if err != nil {
		return err
	}
	log.Info("saved run", "id", id, "outcome", outcome)
	return nil
}
