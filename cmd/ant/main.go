// ant is a generalized Langton's ant on a four-state torus, played in the terminal.
//
// Usage:
//
//	ant play                 - Pick a rule and watch the ant paint
//	ant play --rule weaver   - Start a rule directly
//	ant rules                - List available rules
//	ant scores               - Show the high score and run history
//	ant render               - Run headless and save a PNG
//	ant serve                - Start SSH server for remote sessions
//
// Global flags:
//
//	--fps <rate>     - Set frame rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible palettes
//	--db <path>      - Set database path (default: ~/.chromatic-ant/ant.db)
//	--config <path>  - Use a specific ant.yaml
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromatic-ant/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ant",
	Short: "Chromatic Ant - a four-color Langton's ant in your terminal",
	Long: `Chromatic Ant runs a generalized Langton's ant on a wrapping grid.
Every cell cycles through four states; the rule decides whether the ant
turns left or right on each. Score points for every cell the ant touches
and finish a run when a quarter of the board is colored.

Available commands:
  play     - Interactive session with rule picker
  rules    - Show all available rules
  scores   - View the high score and run history
  render   - Run without a terminal UI and save an image
  serve    - Start SSH server for remote sessions

Examples:
  ant play
  ant play --rule weaver --speed 96
  ant rules
  ant render --until-complete --out board.png
  ant serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath(), "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom ant.yaml")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the stderr logger used by commands.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "ant",
	})
}

// loadConfig loads ant.yaml and registers its custom rules.
// Any failure is fatal.
func loadConfig() config.AntConfig {
	cfg, err := config.LoadAnt(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.RegisterRules(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// exitOnError prints err and exits when it is not nil.
func exitOnError(context string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}
