package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gridpath SSH server",
	Long: `Start an SSH server that gives every connection its own workbench.

Each SSH connection gets a session with the layout menu, the editor and
the run history. Runs and saved layouts go to the server's database, so
all users share one history.

Host key handling:
  - Uses --host-key or ssh.host_key from the config
  - Generates the key on first start if the file does not exist

Examples:
  gridpath serve                           # Listen on the configured address
  gridpath serve --ssh :2222               # Listen on port 2222
  gridpath serve --host-key ./my_host_key  # Use specific host key
  gridpath serve --db ./gridpath.db        # Use specific database

Users can connect with:
  ssh localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (overrides config)")
	serveCmd.Flags().StringVar(&flagSpeed, "speed", "", "Animation speed: slow, normal, fast, instant (overrides config)")
}

// sshServerConfig merges the configuration file with the serve flags.
func sshServerConfig() (tui.SSHServerConfig, error) {
	speed, err := searchSpeed()
	if err != nil {
		return tui.SSHServerConfig{}, err
	}

	cfg := tui.DefaultSSHServerConfig()
	if appConfig.SSH.Address != "" {
		cfg.Address = appConfig.SSH.Address
	}
	cfg.HostKeyPath = appConfig.SSH.HostKey
	if appConfig.SSH.IdleTimeoutMinutes > 0 {
		cfg.IdleTimeout = time.Duration(appConfig.SSH.IdleTimeoutMinutes) * time.Minute
	}

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	cfg.GridSize = configuredSize()
	cfg.Speed = speed
	cfg.StepsPerTick = appConfig.Search.StepsPerTick
	cfg.LayoutsDir = appConfig.Layouts.Dir
	cfg.TickRate = flagFPS
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := sshServerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, newCatalog(store), logger.WithPrefix("gridpath-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting gridpath SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
