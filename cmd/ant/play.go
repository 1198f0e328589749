package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/core"
	"github.com/vovakirdan/chromatic-ant/internal/platform/tui"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
	"github.com/vovakirdan/chromatic-ant/internal/storage"
)

var (
	flagRule  string
	flagSpeed float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive session",
	Long: `Start the ant. Without --rule a menu lets you pick one.

Controls:
  Space        - Play/pause
  N            - Single step (paused)
  R            - Reset the run
  +/-          - Faster/slower
  Tab/S-Tab    - Next/previous rule (resets)
  C            - Random palette
  A            - Art mode
  S, Ctrl+S    - Save image
  Arrows/HJKL  - Move cursor (paused)
  Enter, click - Paint a pheromone (paused; right click paints the lower half)
  Esc/B        - Back to menu
  Q/Ctrl+C     - Quit

Examples:
  ant play
  ant play --rule classic
  ant play --rule "Boxer (LRRL)" --speed 97
  ant play --config ./my-ant.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRule, "rule", "", "Rule to start with (skips the menu)")
	playCmd.Flags().Float64Var(&flagSpeed, "speed", -1, "Initial speed 0-100 (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()

	if flagSpeed >= 0 {
		cfg.Playback.Speed = core.ClampF(flagSpeed, ant.MinSpeed, ant.MaxSpeed)
	}

	var start *rules.Rule
	if flagRule != "" {
		r, err := rules.Resolve(flagRule)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown rule %q\n", flagRule)
			fmt.Fprintln(os.Stderr, "Run 'ant rules' to see available rules.")
			os.Exit(1)
		}
		start = &r
	}

	// Get terminal size early for the first layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	needW, needH := cfg.Grid.Width, tui.TerminalRows(cfg.Grid.Height)+4
	if width < needW || height < needH {
		logger.Warn("terminal smaller than the grid", "have", fmt.Sprintf("%dx%d", width, height), "need", fmt.Sprintf("%dx%d", needW, needH))
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	}

	// Open storage
	store, err := storage.Open(flagDBPath)
	var writer *storage.HighScoreWriter
	if err != nil {
		logger.Warn("could not open database, high score kept in memory", "error", err)
		// Continue without storage - the session still works
		opts.Scores = ant.NewMemoryScores(0)
	} else {
		writer = storage.NewHighScoreWriter(store, storage.HighScoreKey)
		opts.Store = store
		opts.Scores = writer
	}

	// Run the session
	runErr := tui.Run(start, opts)

	// Flush and close storage before potential exit
	if writer != nil {
		writer.Close()
	}
	if store != nil {
		store.Close()
	}

	exitOnError("running session", runErr)
}
