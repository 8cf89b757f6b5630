// arcade3d plays 3D runner and platformer simulations in the terminal.
//
// Usage:
//
//	arcade3d list              - List available games
//	arcade3d play <game>       - Play a game
//	arcade3d menu              - Start menu to pick games interactively
//	arcade3d sim <game>        - Run a game headless with scripted input
//	arcade3d serve             - Start SSH server for remote play
//	arcade3d scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.arcade3d/scores.db)
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/arcade3d/internal/games/platformer"
	_ "github.com/vovakirdan/arcade3d/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade3d",
	Short: "Arcade 3D - runner and platformer simulations in your terminal",
	Long: `Arcade 3D runs small 3D games on a box-collider physics core and
draws them as a top-down view in the terminal.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  sim      - Run a game headless with scripted input
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade3d list
  arcade3d play runner
  arcade3d play platformer_v2 --seed 42
  arcade3d sim runner --ticks 600 --hold left
  arcade3d serve --ssh :2222
  arcade3d scores runner`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade3d/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// interactive marks commands that own the terminal; their logs must not
// land on the alternate screen.
var interactive = map[string]bool{
	"play": true,
	"menu": true,
}

// setupLogging configures the default charmbracelet logger.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	switch {
	case flagLogFile != "":
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		log.SetOutput(f)
	case interactive[cmd.Name()]:
		log.SetOutput(io.Discard)
	}
	return nil
}
