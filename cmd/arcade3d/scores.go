package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded runs",
	Long: `Without a game, print a summary of every game that has recorded runs.
With a game, print its best runs, how each ended and the seed it was
played on.

Examples:
  arcade3d scores
  arcade3d scores runner
  arcade3d scores platformer_v2 --limit 25
  arcade3d scores runner --all
  arcade3d scores runner --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var (
	flagLimit     int
	flagAllScores bool
	flagClear     bool
)

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(cmd, store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade3d list')", gameID)
	}
	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all runs of %s.\n", gameID)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", gameTitle(gameID))
	if len(scores) == 0 {
		fmt.Fprintf(out, "No runs recorded yet. Play 'arcade3d play %s' to set one.\n", gameID)
		return nil
	}

	const row = "  %-4v  %-6v  %-8v  %-7v  %-20v  %v\n"
	fmt.Fprintf(out, row, "Rank", "Score", "Result", "Ticks", "Seed", "Date")
	fmt.Fprintf(out, row, "----", "-----", "------", "-----", "----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, row, i+1, e.Score, e.Outcome, e.Ticks, e.Seed, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(out, "\nBest: %d  Runs: %d  Cleared: %d  Avg: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

// printSummary prints one line per game with recorded runs.
func printSummary(cmd *cobra.Command, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	const row = "  %-16v  %-6v  %-6v  %-7v  %-8v  %v\n"
	fmt.Fprintf(out, row, "Game", "Runs", "Best", "Cleared", "Avg", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Fprintf(out, row, gameTitle(id), st.GamesCount, st.HighScore, st.Wins,
			fmt.Sprintf("%.1f", st.AvgScore), st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// gameTitle returns the registered title of id, or id itself for games
// that are no longer registered.
func gameTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}
