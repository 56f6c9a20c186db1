package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/api/solve"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagSolveJSON     bool
	flagSolveWidth    int
	flagSolveHeight   int
	flagSolveNoRecord bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <layout|file.yaml>",
	Short: "Solve a layout without the editor",
	Long: `Run A* on a layout and print the result.

The path is drawn with '*' between S and T. Generated layouts use
--width and --height (default 32x16).

Examples:
  gridpath solve detour
  gridpath solve maze --width 60 --height 20 --seed 7
  gridpath solve ./my-layout.yaml --json`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagSolveJSON, "json", false, "Print the result as JSON")
	solveCmd.Flags().IntVar(&flagSolveWidth, "width", solve.DefaultWidth, "Width of generated layouts")
	solveCmd.Flags().IntVar(&flagSolveHeight, "height", solve.DefaultHeight, "Height of generated layouts")
	solveCmd.Flags().BoolVar(&flagSolveNoRecord, "no-record", false, "Do not record the run in the database")
}

func runSolve(_ *cobra.Command, args []string) {
	var store *storage.Store
	if !flagSolveNoRecord {
		store = openStore()
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	size := core.Size{W: flagSolveWidth, H: flagSolveHeight}
	g, layoutID, err := newCatalog(store).Resolve(args[0], cfg, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gridpath list' to see available layouts.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := solveGrid(ctx, g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	response := solve.NewResponse(res)
	response.LayoutID = layoutID
	response.Rows = layout.EncodePath(g, res.Path)

	if store != nil {
		spawn, _ := g.Spawn()
		target, _ := g.Target()
		id, err := store.SaveRun(storage.NewRun(layoutID, g.Width(), g.Height(), spawn, target, res))
		if err != nil {
			logger.Warn("could not record run", "error", err)
		} else {
			response.RunID = id
		}
	}

	if flagSolveJSON {
		err = writeJSON(os.Stdout, response)
	} else {
		err = writeSolution(os.Stdout, response)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// solveGrid runs a search between the grid's endpoints.
func solveGrid(ctx context.Context, g *pathfind.Grid) (pathfind.Result, error) {
	spawn, hasSpawn := g.Spawn()
	target, hasTarget := g.Target()
	if !hasSpawn || !hasTarget {
		return pathfind.Result{}, fmt.Errorf("%w: layout needs both S and T", pathfind.ErrInvalidEndpoints)
	}

	search, err := pathfind.NewSearch(g, spawn, target)
	if err != nil {
		return pathfind.Result{}, err
	}
	return search.Run(ctx)
}

func writeJSON(w io.Writer, response solve.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}

// writeSolution prints the solved grid followed by the search stats.
func writeSolution(w io.Writer, response solve.Response) error {
	var b strings.Builder
	for _, row := range response.Rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if response.LayoutID != "" {
		fmt.Fprintf(&b, "Layout:   %s\n", response.LayoutID)
	}
	fmt.Fprintf(&b, "Outcome:  %s\n", response.Outcome)
	if response.Outcome == pathfind.Found.String() {
		fmt.Fprintf(&b, "Steps:    %d\n", response.Steps)
		fmt.Fprintf(&b, "Cost:     %.3f\n", response.Cost)
	}
	fmt.Fprintf(&b, "Expanded: %d\n", response.Expanded)
	if response.RunID != "" {
		fmt.Fprintf(&b, "Run:      %s\n", response.RunID)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
