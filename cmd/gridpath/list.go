package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available layouts",
	Long: `Shows built-in layouts, layouts saved from the editor, and layout
files found in the configured layout directory.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	entries := newCatalog(store).List()
	if len(entries) == 0 {
		fmt.Println("No layouts available.")
		return
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, e := range entries {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Source", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "------", "-----")
	for _, e := range entries {
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, e.ID, e.Source, e.Title)
	}

	fmt.Println()
	fmt.Println("Run 'gridpath play <id>' to open a layout.")
}
