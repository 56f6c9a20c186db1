package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick layouts from an interactive menu",
	Long: `Start gridpath in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a layout.
Leaving the editor with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open layout
  H            - Run history
  Q            - Quit

Examples:
  gridpath menu
  gridpath menu --fps 60
  gridpath menu --db ./gridpath.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagSpeed, "speed", "", "Animation speed: slow, normal, fast, instant (overrides config)")
}

func runMenu(_ *cobra.Command, _ []string) {
	speed, err := searchSpeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	cat := newCatalog(store)
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cat, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Pick up any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, "", cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			break
		}

		// Fresh seed for each generated layout
		cfg.Seed = time.Now().UnixNano()

		g, err := tui.BuildGrid(cat, menuResult.LayoutID, cfg, configuredSize())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening layout: %v\n", err)
			continue
		}

		goBack, err := tui.Run(g, cfg, editorOptions(menuResult.LayoutID, store, speed))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running editor: %v\n", err)
		}
		if !goBack {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
