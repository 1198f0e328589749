package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chromatic-ant/internal/platform/tui"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
	"github.com/vovakirdan/chromatic-ant/internal/storage"
)

var (
	flagScoresRule  string
	flagScoresLimit int
	flagScoresStats bool
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and run history",
	Long: `Display the high score and the best recorded runs.

Examples:
  ant scores
  ant scores --rule weaver --limit 20
  ant scores --stats
  ant scores --interactive
  ant scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresRule, "rule", "", "Only show runs of this rule")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-rule statistics instead of runs")
	scoresCmd.Flags().BoolVarP(&flagScoresTUI, "interactive", "i", false, "Browse the history in a table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (keeps the high score)")
}

func runScores(cmd *cobra.Command, args []string) {
	loadConfig()

	ruleName := ""
	if flagScoresRule != "" {
		r, err := rules.Resolve(flagScoresRule)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown rule %q\n", flagScoresRule)
			fmt.Fprintln(os.Stderr, "Run 'ant rules' to see available rules.")
			os.Exit(1)
		}
		ruleName = r.Name
	}

	// Open storage
	store, err := storage.Open(flagDBPath)
	exitOnError("opening database", err)
	defer store.Close()

	switch {
	case flagScoresClear:
		exitOnError("clearing runs", store.ClearRuns())
		fmt.Println("Run history cleared.")

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		exitOnError("running history", tui.RunScoreboard(store, width, height))

	case flagScoresStats:
		printRuleStats(store)

	default:
		printRuns(store, ruleName)
	}
}

func printRuns(store *storage.Store, ruleName string) {
	high, err := store.HighScore(storage.HighScoreKey)
	exitOnError("retrieving high score", err)

	runs, err := store.TopRuns(ruleName, flagScoresLimit)
	exitOnError("retrieving runs", err)

	fmt.Printf("High score: %d\n", high)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'ant play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %-8s  %-7s  %-4s  %s\n", "Rank", "Rule", "Score", "Steps", "Cover", "Done", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-8s  %-7s  %-4s  %s\n", "----", "----", "-----", "-----", "-----", "----", "----")

	// Print runs
	for i, r := range runs {
		done := ""
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-4d  %-16s  %-8d  %-8d  %-7s  %-4s  %s\n",
			i+1, r.Rule, r.Score, r.Steps, fmt.Sprintf("%.1f%%", r.Coverage), done,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printRuleStats(store *storage.Store) {
	stats, err := store.AllRuleStats()
	exitOnError("retrieving stats", err)

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-5s  %-5s  %-8s  %-8s  %s\n", "Rule", "Runs", "Done", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %-5s  %-5s  %-8s  %-8s  %s\n", "----", "----", "----", "----", "-------", "-----------")
	for _, st := range stats {
		fmt.Printf("  %-16s  %-5d  %-5d  %-8d  %-8.1f  %s\n",
			st.Rule, st.Runs, st.Completions, st.BestScore, st.AvgScore,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
