package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var flagSpeed string

var playCmd = &cobra.Command{
	Use:   "play <layout|file.yaml>",
	Short: "Open a layout in the editor",
	Long: `Open a layout in the interactive editor.

Controls:
  Arrows/hjkl  - Move cursor
  Space        - Toggle wall (or place spawn/target while placing)
  X            - Erase wall
  1 / 2        - Place spawn / target at cursor
  Enter        - Next phase; runs the search once ready
  R            - Run search
  C / Shift+C  - Clear search / clear grid
  O            - Toggle h-cost overlay
  + / -        - Faster / slower animation
  Ctrl+S       - Save layout
  Mouse        - Left click/drag paints walls, right click erases
  Q/Ctrl+C     - Quit

Speed presets:
  slow     - 1 expansion per tick
  normal   - 4 expansions per tick
  fast     - 16 expansions per tick
  instant  - Solve in a single tick

Examples:
  gridpath play maze
  gridpath play empty --speed slow
  gridpath play ./my-layout.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Animation speed: slow, normal, fast, instant (overrides config)")
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// searchSpeed returns the --speed flag or the configured preset.
func searchSpeed() (config.SpeedPreset, error) {
	if flagSpeed == "" {
		return appConfig.Search.Speed, nil
	}
	return config.ParseSpeedPreset(flagSpeed)
}

// editorOptions builds editor options from the configuration.
func editorOptions(layoutID string, store *storage.Store, speed config.SpeedPreset) tui.EditorOptions {
	return tui.EditorOptions{
		LayoutID:     layoutID,
		Speed:        speed,
		StepsPerTick: appConfig.Search.StepsPerTick,
		Store:        store,
		LayoutsDir:   appConfig.Layouts.Dir,
		Logger:       logger,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	speed, err := searchSpeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	cat := newCatalog(store)
	cfg := runtimeConfig()

	g, layoutID, err := cat.Resolve(args[0], cfg, tui.FitSize(cfg, configuredSize()))
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gridpath list' to see available layouts.")
		os.Exit(1)
	}

	_, runErr := tui.Run(g, cfg, editorOptions(layoutID, store, speed))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running editor: %v\n", runErr)
		os.Exit(1)
	}
}

// configuredSize returns the configured grid size; zero fields fit the
// terminal.
func configuredSize() core.Size {
	return core.Size{W: appConfig.Grid.Width, H: appConfig.Grid.Height}
}
