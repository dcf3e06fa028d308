package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubeblast/internal/games/blast"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the campaign levels: the built-in ones plus any found in
~/.cubeblast/levels and ./levels. A user level replaces a built-in level
with the same id.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("parsing log level: %v", err)
	}
	if err := configureGames(logger, nil); err != nil {
		fail("loading config: %v", err)
	}

	all, err := blast.Levels()
	if err != nil {
		fail("loading levels: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tName\tSize\tMoves\tGoal\tPack\tColors")
	fmt.Fprintln(w, "  --\t----\t----\t-----\t----\t----\t------")
	for _, l := range all {
		moves := "-"
		if l.Moves > 0 {
			moves = fmt.Sprint(l.Moves)
		}
		colors := "all"
		if len(l.Colors) > 0 {
			names := make([]string, len(l.Colors))
			for i, c := range l.Colors {
				names[i] = c.String()
			}
			colors = strings.Join(names, ",")
		}
		fmt.Fprintf(w, "  %s\t%s\t%dx%d\t%s\t%d\t%s\t%s\n",
			l.ID, l.Name, l.Rows, l.Cols, moves, l.TargetScore, l.AssetPack, colors)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Run 'cubeblast play <id>' to play a level.")
}
