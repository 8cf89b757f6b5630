package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/games/platformer"
	"github.com/vovakirdan/arcade3d/internal/games/runner"
	"github.com/vovakirdan/arcade3d/internal/platform/tui"
	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  W/S or Up/Down      - Move forward/back
  A/D or Left/Right   - Strafe / change lane
  Space               - Jump
  C                   - Crouch (hold)
  J/L, I/K, drag      - Look around (platformers)
  Enter               - Start
  P                   - Pause
  R                   - Restart (runner, after game over)
  Q/Ctrl+C            - Quit

Terminals send no key release, so a key stays held for a short
moment after its last repeat.

Difficulty options:
  easy   - Wider platforms, fewer obstacles
  normal - Config file settings
  hard   - Narrow platforms, more obstacles

Examples:
  arcade3d play runner
  arcade3d play runner --difficulty hard
  arcade3d play platformer
  arcade3d play platformer_v2 --seed 42
  arcade3d play runner --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd, simCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	}
}

// applyGameOptions passes --config and --difficulty to the package that
// owns gameID. Must run before the game is created.
func applyGameOptions(gameID string) {
	switch gameID {
	case runner.ID:
		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)
	case platformer.FixedID, platformer.GeneratedID:
		platformer.SetConfigPath(flagConfig)
		platformer.SetDifficultyPreset(flagDifficulty)
	}
}

// runtimeConfig builds the runtime config from global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade3d list' to see available games.")
		os.Exit(1)
	}

	applyGameOptions(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
