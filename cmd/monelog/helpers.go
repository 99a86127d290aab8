package main

import (
	"strconv"

	"github.com/example/monelog/internal/config"
	"github.com/spf13/cobra"
)

// sanitizePort returns a sensible default when empty.
func sanitizePort(p string) string {
	if p == "" {
		return "8080"
	}
	return p
}

// formatFloat prints the shortest representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// loadConfig merges the command's flags (local and inherited) over env and file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.LoadWithFlags(cmd.Flags(), file)
}
