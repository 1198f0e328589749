package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/render"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

// maxHeadlessSteps caps --until-complete for rules that never reach the target.
const maxHeadlessSteps = 5_000_000

var (
	flagRenderRule     string
	flagRenderSteps    int
	flagRenderUntil    bool
	flagRenderArt      bool
	flagRenderRandom   bool
	flagRenderOut      string
	flagRenderCellSize int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run the ant without a UI and save a PNG",
	Long: `Step the ant a fixed number of times, or until the coverage target
is reached, then write the board as a PNG.

The file defaults to chromatic-ant-<steps>.png in the current directory.

Examples:
  ant render --steps 20000
  ant render --rule spinner --until-complete
  ant render --art --random-palette --seed 7 --out art.png`,
	Args: cobra.NoArgs,
	Run:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagRenderRule, "rule", "", "Rule to run (default from config)")
	renderCmd.Flags().IntVar(&flagRenderSteps, "steps", 10000, "Number of steps to run")
	renderCmd.Flags().BoolVar(&flagRenderUntil, "until-complete", false, "Run until the coverage target is reached")
	renderCmd.Flags().BoolVar(&flagRenderArt, "art", false, "Art mode: hide the ant, no cell gaps")
	renderCmd.Flags().BoolVar(&flagRenderRandom, "random-palette", false, "Use a random palette (see --seed)")
	renderCmd.Flags().StringVar(&flagRenderOut, "out", "", "Output file")
	renderCmd.Flags().IntVar(&flagRenderCellSize, "cell-size", 0, "Pixels per cell (default from config)")
}

func runRender(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()

	rule, err := cfg.DefaultRule()
	if flagRenderRule != "" {
		rule, err = rules.Resolve(flagRenderRule)
	}
	exitOnError("selecting rule", err)

	pal := cfg.Palette()
	if flagRenderRandom {
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		pal = palette.Random(rand.New(rand.NewSource(seed)))
	}

	cellSize := cfg.Display.CellSize
	if flagRenderCellSize > 0 {
		cellSize = flagRenderCellSize
	}
	renderer := render.NewImageRenderer(pal, cellSize)
	renderer.AntColor = cfg.AntColor()
	renderer.ArtMode = flagRenderArt

	e := ant.New(cfg.EngineConfig(), rule, nil)
	e.SetRenderer(renderer)

	completedAt := simulate(e, flagRenderSteps, flagRenderUntil)
	if flagRenderUntil && completedAt == 0 {
		logger.Warn("coverage target not reached", "steps", e.Steps(), "coverage", e.Coverage())
	}

	out := flagRenderOut
	if out == "" {
		out = render.ExportName(e.Steps())
	}
	if dir := filepath.Dir(out); dir != "." {
		exitOnError("creating directory", os.MkdirAll(dir, 0o755))
	}

	f, err := os.Create(out)
	exitOnError("creating image", err)
	if err := render.WritePNG(f, e.SnapshotImage()); err != nil {
		f.Close()
		exitOnError("writing image", err)
	}
	exitOnError("writing image", f.Close())

	fmt.Printf("%s  steps %d  score %d  coverage %.1f%%\n", rule.Name, e.Steps(), e.Score(), e.Coverage())
	fmt.Printf("Saved %s\n", out)
}

// simulate steps e either a fixed number of times or, with untilComplete,
// until completion fires. Returns the step at which completion fired, 0 if
// it did not.
func simulate(e *ant.Engine, steps int, untilComplete bool) int {
	if untilComplete {
		steps = maxHeadlessSteps
	}
	completedAt := 0
	for range steps {
		if e.Step().Completed && completedAt == 0 {
			completedAt = e.Steps()
			if untilComplete {
				break
			}
		}
	}
	return completedAt
}
