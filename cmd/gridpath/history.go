package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [layout]",
	Short: "Show recorded runs",
	Long: `Display recorded search runs, newest first.

Without a layout, runs of every layout are shown.

Examples:
  gridpath history
  gridpath history maze --limit 5
  gridpath history maze --clear
  gridpath history --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs instead of showing them")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs in the interactive viewer")
}

func runHistory(_ *cobra.Command, args []string) {
	layoutID := ""
	if len(args) == 1 {
		layoutID = args[0]
	}

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.ClearRuns(layoutID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		if layoutID == "" {
			fmt.Println("Cleared all recorded runs.")
		} else {
			fmt.Printf("Cleared recorded runs for %s.\n", layoutID)
		}
		return

	case flagHistoryTUI:
		cfg := runtimeConfig()
		if _, err := tui.RunHistory(store, layoutID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagHistoryLimit < 1 {
		fmt.Fprintf(os.Stderr, "Error: --limit must be positive, got %d\n", flagHistoryLimit)
		os.Exit(1)
	}

	runs, err := store.RecentRuns(layoutID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if layoutID == "" {
		fmt.Println("Recent runs - all layouts")
	} else {
		fmt.Printf("Recent runs - %s\n", layoutID)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gridpath solve <layout>' or press R in the editor to record one.")
		return
	}

	fmt.Printf("  %-20s  %-9s  %-5s  %-8s  %-8s  %s\n", "Layout", "Outcome", "Steps", "Cost", "Expanded", "Date")
	fmt.Printf("  %-20s  %-9s  %-5s  %-8s  %-8s  %s\n", "------", "-------", "-----", "----", "--------", "----")
	for _, r := range runs {
		cost := "-"
		if r.Found() {
			cost = fmt.Sprintf("%.2f", r.Cost)
		}
		fmt.Printf("  %-20s  %-9s  %-5d  %-8s  %-8d  %s\n",
			r.LayoutID, r.Outcome, r.Steps, cost, r.Expanded, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if layoutID == "" {
		return
	}
	fmt.Println()
	best, err := store.BestRun(layoutID)
	switch {
	case err == nil:
		fmt.Printf("Best: %.2f in %d steps\n", best.Cost, best.Steps)
	case errors.Is(err, storage.ErrNotFound):
		fmt.Println("Best: no path found yet")
	default:
		logger.Warn("could not get best run", "layout", layoutID, "error", err)
	}
}
