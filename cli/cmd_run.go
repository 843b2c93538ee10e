package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ramsteak/FileSweep/internals"
	"github.com/spf13/cobra"
)

var argDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Update the file index, resolve duplicates, and apply the result",
	Long: `run scans every configured directory, fingerprints new or changed
files, decides a keep/retime/trash/delete action for every duplicate group,
and applies those actions. Interrupting a run (Ctrl-C) saves the index
before exiting so no fingerprinting work is lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(argDryRun)
	},
}

func init() {
	runCmd.Flags().BoolVar(&argDryRun, "dry-run", false, "compute and print actions without touching the filesystem")
}

func runReconcile(forceDryRun bool) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if forceDryRun {
		cfg.General.DryRun = true
	}

	logger := buildLogger(cfg)
	logger.Infof("starting run (dry-run=%v)", cfg.General.DryRun)

	index := internals.NewStatIndex(cfg.General.CacheFile)
	if err := index.Load(); err != nil && err != internals.ErrAlreadyLoaded {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			logger.Warnf("interrupted, saving index before exit")
			if err := index.Save(); err != nil {
				logger.Errorf("saving index on interrupt: %v", err)
			}
			os.Exit(130)
		case <-done:
		}
	}()
	defer close(done)

	internals.UpdateIndex(cfg, index, logger)

	decisions := internals.CheckIndex(index, cfg.Directories, logger.StdLogger())

	trasher := internals.NewDirectoryTrasher(directoryRoots(cfg))
	freed := internals.ExecuteDecisions(decisions, index, trasher, cfg.General.DryRun, logger)

	if err := index.Save(); err != nil {
		logger.Errorf("saving index: %v", err)
	}

	if cfg.General.DryRun {
		w.Printfln("dry run: would free %s across %d decisions", internals.HumanSize(freed), len(decisions))
	} else {
		w.Printfln("freed %s across %d decisions", internals.HumanSize(freed), len(decisions))
	}
	return nil
}
