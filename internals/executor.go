package internals

import (
	"os"
	"time"
)

// ExecuteDecisions drains decisions serially, applying the filesystem side
// effect for each action. In dry-run mode no filesystem call is made; the
// would-be freed bytes are still tallied so a preview run reports the same
// total a real run would. Returns the cumulative freed byte count.
func ExecuteDecisions(decisions []Decision, index *StatIndex, trasher Trasher, dryRun bool, logger *Logger) int64 {
	var saved int64

	for _, decision := range decisions {
		switch decision.Action {
		case ActionUndefined:
			logger.Errorf("undefined action for file %s, skipping", decision.FileInfo.Path)

		case ActionNoAction:
			logger.Debugf("keeping file %s (no action)", decision.FileInfo.Path)

		case ActionKeep:
			logger.Infof("keeping file %s", decision.FileInfo.Path)

		case ActionRetime:
			if !decision.HasTime {
				logger.Errorf("retime action for file %s has no time set, skipping", decision.FileInfo.Path)
				continue
			}
			if dryRun {
				logger.Infof("dry run: would update modified time of %s to %d", decision.FileInfo.Path, decision.Time)
				continue
			}
			atime := time.Unix(0, decision.FileInfo.Accessed)
			mtime := time.Unix(0, decision.Time)
			if err := os.Chtimes(decision.FileInfo.Path, atime, mtime); err != nil {
				logger.Errorf("updating modified time of %s: %v", decision.FileInfo.Path, err)
				continue
			}
			logger.Infof("updated modified time of %s to %d", decision.FileInfo.Path, decision.Time)

		case ActionLink:
			logger.Warnf("hardlinking not yet implemented, keeping file %s", decision.FileInfo.Path)

		case ActionTrash:
			if dryRun {
				logger.Infof("dry run: would trash %s%s", decision.FileInfo.Path, targetSuffix(decision))
				saved += decision.FileInfo.Size
				continue
			}
			if err := trasher.Trash(decision.FileInfo.Path); err != nil {
				logger.Errorf("trashing %s: %v", decision.FileInfo.Path, err)
				continue
			}
			if _, err := index.PopItemByIndex(decision.FileIndex); err != nil {
				logger.Errorf("removing index entry for %s: %v", decision.FileInfo.Path, err)
			}
			saved += decision.FileInfo.Size
			logger.Infof("trashed %s%s, freed %s", decision.FileInfo.Path, targetSuffix(decision), HumanSize(decision.FileInfo.Size))

		case ActionDelete:
			if dryRun {
				logger.Infof("dry run: would delete %s", decision.FileInfo.Path)
				saved += decision.FileInfo.Size
				continue
			}
			if err := os.Remove(decision.FileInfo.Path); err != nil {
				logger.Errorf("deleting %s: %v", decision.FileInfo.Path, err)
				continue
			}
			if _, err := index.PopItemByIndex(decision.FileIndex); err != nil {
				logger.Errorf("removing index entry for %s: %v", decision.FileInfo.Path, err)
			}
			saved += decision.FileInfo.Size
			logger.Infof("deleted %s, freed %s", decision.FileInfo.Path, HumanSize(decision.FileInfo.Size))
		}
	}

	return saved
}

func targetSuffix(d Decision) string {
	if d.HasTarget && d.Target != "" {
		return ", duplicate of " + d.Target
	}
	return ""
}
