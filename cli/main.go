package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the entry point; every subcommand below is attached to it in
// init(). Persistent flags here are visible to every subcommand.
var rootCmd = &cobra.Command{
	Use:   "filesweep",
	Short: "Reconciles duplicate files across a set of watched directories",
	Long: `filesweep scans a set of configured directories, fingerprints their
files, and resolves duplicates according to a per-directory keep/trash/delete
policy. It remembers what it has already seen in a cache file so repeated
runs only fingerprint what changed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&argJSONOutput, "json", false, "emit machine-readable JSON instead of plain text")
	rootCmd.PersistentFlags().StringVarP(&argConfigFile, "config", "c", "", "path to the configuration file (default: discovered from standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&argVerbose, "verbose", "v", false, "enable debug-level logging to stderr in addition to the configured log file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(hashAlgosCmd)
	rootCmd.AddCommand(versionCmd)
}

// newOutput picks a plain or color-tinted writer for stdout, matching
// jsonOutput's early-arg check since --json must never carry ANSI escapes.
func newOutput() Output {
	if envJSON, err := envToBool("FILESWEEP_JSON"); err == nil {
		argJSONOutput = envJSON
	}
	if os.Getenv("NO_COLOR") != "" || argJSONOutput || jsonOutput() {
		return &PlainOutput{Device: os.Stdout}
	}
	return &ColorOutput{Plain: PlainOutput{Device: os.Stdout}}
}

func main() {
	w = newOutput()
	log = &PlainOutput{Device: os.Stderr}

	if err := rootCmd.Execute(); err != nil {
		exitCode = handleError(err.Error(), 1, argJSONOutput)
	}

	if cmdError != nil && exitCode == 0 {
		exitCode = handleError(cmdError.Error(), 1, argJSONOutput)
	}

	os.Exit(exitCode)
}
