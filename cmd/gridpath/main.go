// gridpath is an interactive A* path-finding workbench for the terminal.
//
// Usage:
//
//	gridpath list                  - List available layouts
//	gridpath play <layout>         - Open a layout in the editor
//	gridpath menu                  - Pick layouts interactively
//	gridpath solve <layout|file>   - Solve a layout headlessly
//	gridpath history [layout]      - Show recorded runs
//	gridpath serve                 - Start SSH server for remote sessions
//	gridpath api                   - Start the HTTP solve API
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.gridpath, ./configs)
//	--db <path>          - Database path (default: ~/.gridpath/gridpath.db)
//	--fps <rate>         - Editor tick rate (default: 30)
//	--seed <value>       - RNG seed for generated layouts
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/catalog"
	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string

	// Set by the root command before any subcommand runs
	appConfig config.AppConfig
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridpath",
	Short: "gridpath - Watch A* find its way across a grid",
	Long: `gridpath is a terminal workbench for A* path-finding on a grid.
Draw walls, place a spawn and a target, and watch the search expand.

Available commands:
  list     - Show all available layouts
  play     - Open a layout in the editor
  menu     - Interactive layout picker
  solve    - Solve a layout without the editor
  history  - View recorded runs
  serve    - Start SSH server for remote sessions
  api      - Start the HTTP solve API

Examples:
  gridpath list
  gridpath play maze
  gridpath solve corridor --json
  gridpath serve
  gridpath history maze`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Editor tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for generated layouts (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	appConfig = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridpath",
		Level:           level,
	})
	logger.Debug("configuration loaded", "command", cmd.Name(), "db", cfg.Storage.DBPath)
	return nil
}

// openStore opens the run history database. Failure is logged and the
// caller continues without history.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", appConfig.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// newCatalog resolves layouts across built-ins, the store and the layout
// directory.
func newCatalog(store *storage.Store) *catalog.Catalog {
	return catalog.New(store, config.ExpandHome(appConfig.Layouts.Dir))
}
