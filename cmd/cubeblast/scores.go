package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubeblast/internal/games/blast"
	"github.com/vovakirdan/cubeblast/internal/registry"
)

var (
	flagScoresGame  string
	flagScoresLimit int
	flagScoresRuns  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id]",
	Short: "Show high scores and recent runs",
	Long: `Display the top scores of a game, optionally for one level, followed by
the most recent runs.

Examples:
  cubeblast scores
  cubeblast scores 02-boxes
  cubeblast scores --game blast_endless --runs 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresGame, "game", blast.IDCampaign, "Game id: blast or blast_endless")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().IntVar(&flagScoresRuns, "runs", 5, "Number of recent runs to show (0 hides them)")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := flagScoresGame
	game, err := registry.Create(gameID)
	if err != nil {
		fail("unknown game %q: %v", gameID, err)
	}
	level := ""
	if len(args) == 1 {
		level = args[0]
	}

	store := openStore(nil)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, level, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	title := game.Title()
	if level != "" {
		title += " - " + level
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-8s  %-14s  %s\n", "Rank", "Score", "Level", "Date")
		fmt.Printf("  %-4s  %-8s  %-14s  %s\n", "----", "-----", "-----", "----")
		for i, e := range scores {
			fmt.Printf("  %-4d  %-8d  %-14s  %s\n", i+1, e.Score, e.LevelID, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		if best, err := store.HighScore(gameID); err == nil {
			fmt.Printf("\nBest overall: %d\n", best)
		}
	}

	if flagScoresRuns <= 0 {
		return
	}
	runs, err := store.RecentRuns(gameID, flagScoresRuns)
	if err != nil {
		fail("retrieving runs: %v", err)
	}
	fmt.Printf("\nRecent Runs\n\n")
	if len(runs) == 0 {
		fmt.Printf("No runs yet. Play 'cubeblast play' to start one!\n")
		return
	}
	fmt.Printf("  %-16s  %-14s  %-6s  %-5s  %-5s  %-6s  %-8s  %s\n",
		"Date", "Level", "Score", "Won", "Taps", "Blasts", "Time", "Run")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-14s  %-6d  %-5t  %-5d  %-6d  %-8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.LevelID, r.Score, r.Won,
			r.Taps, r.Blasts, r.Duration.Round(time.Second), r.ID)
	}
}
