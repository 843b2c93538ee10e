package main

import (
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Preview the actions run would take, without touching the filesystem",
	Long: `scan is equivalent to "run --dry-run": it updates the in-memory
index and reports what would happen, but never moves, deletes, or retimes
anything. The updated index is still saved to the cache file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(true)
	},
}
