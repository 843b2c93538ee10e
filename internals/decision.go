package internals

import (
	"log"
	"path/filepath"
	"strings"
)

// directoryConfigForPath mirrors the original selection rule: among the
// directory configs whose path is an ancestor of file's path (and whose
// pattern, if any, matches), pick the deepest ancestor; if more than one
// directory ties on depth, prefer configs carrying a pattern over configs
// without one; among the survivors, prefer the highest Priority; any
// remaining tie is broken by the highest policy priority, then by
// declaration order in dirs.
func directoryConfigForPath(info StatRecord, path string, dirs []DirectoryConfig) *DirectoryConfig {
	type candidate struct {
		cfg   *DirectoryConfig
		depth int
		order int
	}

	var candidates []candidate
	for i := range dirs {
		d := &dirs[i]
		depth, ok := ancestorDepth(d.Path, path)
		if !ok {
			continue
		}
		if d.Pattern != nil && !d.Pattern.Match(info) {
			continue
		}
		candidates = append(candidates, candidate{cfg: d, depth: depth, order: i})
	}
	if len(candidates) == 0 {
		return nil
	}

	deepest := candidates[0].depth
	for _, c := range candidates[1:] {
		if c.depth > deepest {
			deepest = c.depth
		}
	}
	var tied []candidate
	for _, c := range candidates {
		if c.depth == deepest {
			tied = append(tied, c)
		}
	}
	candidates = tied

	hasPattern := false
	for _, c := range candidates {
		if c.cfg.Pattern != nil {
			hasPattern = true
			break
		}
	}
	if hasPattern {
		var filtered []candidate
		for _, c := range candidates {
			if c.cfg.Pattern != nil {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	highestPriority := candidates[0].cfg.Priority
	for _, c := range candidates[1:] {
		if c.cfg.Priority > highestPriority {
			highestPriority = c.cfg.Priority
		}
	}
	var filtered []candidate
	for _, c := range candidates {
		if c.cfg.Priority == highestPriority {
			filtered = append(filtered, c)
		}
	}
	candidates = filtered

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.cfg.Policy.Priority() > best.cfg.Policy.Priority() {
			best = c
		} else if c.cfg.Policy.Priority() == best.cfg.Policy.Priority() && c.order < best.order {
			best = c
		}
	}
	return best.cfg
}

// ancestorDepth reports the depth of dir (the number of path separators in
// its cleaned form) and whether path actually lies under dir. A deeper
// (more specific) ancestor yields a larger depth.
func ancestorDepth(dir, path string) (int, bool) {
	dirClean := filepath.Clean(dir)
	pathClean := filepath.Clean(path)
	rel, err := filepath.Rel(dirClean, pathClean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0, false
	}
	depth := strings.Count(dirClean, string(filepath.Separator))
	return depth, true
}

// decideGroup resolves one hash-group of duplicate files into a Decision
// per file, following the winner-then-dispatch algorithm: the winner is
// the file whose directory policy has the highest priority weight, ties
// broken by higher DirectoryConfig.Priority then by older modified time.
func decideGroup(infos []FileInfo, indices []int, dirs []DirectoryConfig, log_ *log.Logger) []Decision {
	ordered := make([]*Decision, len(infos))
	byIndex := make(map[int]*Decision, len(infos))

	for n, idx := range indices {
		info := infos[n]
		dcfg := directoryConfigForPath(info, info.Path, dirs)
		var d *Decision
		if dcfg == nil {
			log_.Printf("warning: file %s has no matching directory configuration, keeping by default", info.Path)
			d = &Decision{FileIndex: idx, FileInfo: info, Action: ActionNoAction}
		} else {
			d = &Decision{DirConfig: dcfg, FileIndex: idx, FileInfo: info, Action: ActionUndefined}
		}
		ordered[n] = d
		byIndex[idx] = d
	}

	// Among files with a matching config, find the winner. Iterating in
	// the stable group order (rather than map order) keeps ties that
	// remain after every criterion resolved to the same file run.
	winnerIdx := -1
	for _, d := range ordered {
		if d.DirConfig == nil {
			continue
		}
		if winnerIdx == -1 {
			winnerIdx = d.FileIndex
			continue
		}
		w := byIndex[winnerIdx]
		switch {
		case d.DirConfig.Policy.Priority() > w.DirConfig.Policy.Priority():
			winnerIdx = d.FileIndex
		case d.DirConfig.Policy.Priority() == w.DirConfig.Policy.Priority():
			if d.DirConfig.Priority > w.DirConfig.Priority {
				winnerIdx = d.FileIndex
			} else if d.DirConfig.Priority == w.DirConfig.Priority && d.FileInfo.Modified < w.FileInfo.Modified {
				winnerIdx = d.FileIndex
			}
		}
	}
	if winnerIdx == -1 {
		// Every file lacked a matching config; nothing to reconcile.
		out := make([]Decision, 0, len(ordered))
		for _, d := range ordered {
			out = append(out, *d)
		}
		return out
	}
	winner := byIndex[winnerIdx]

	for _, d := range ordered {
		idx := d.FileIndex
		if d.DirConfig == nil {
			continue // already NOACTION
		}
		switch {
		case idx == winnerIdx && d.DirConfig.Policy == PolicyDiscard:
			d.Action = ActionTrash

		case idx == winnerIdx && d.DirConfig.Policy == PolicyErase:
			d.Action = ActionDelete

		case idx == winnerIdx && d.DirConfig.Rename && (d.DirConfig.Policy == PolicyTrash || d.DirConfig.Policy == PolicyDelete):
			d.Action = ActionRetime
			if !d.HasTime {
				d.Time = d.FileInfo.Modified
				d.HasTime = true
			} else if d.FileInfo.Modified > d.Time {
				d.Time = d.FileInfo.Modified
			}

		case idx != winnerIdx && d.DirConfig.Path == winner.DirConfig.Path && d.DirConfig.Rename &&
			(d.DirConfig.Policy == PolicyTrash || d.DirConfig.Policy == PolicyDelete):
			if winner.Action == ActionUndefined || winner.Action == ActionRetime {
				winner.Action = ActionRetime
				if !winner.HasTime {
					winner.Time = d.FileInfo.Modified
					winner.HasTime = true
				} else if d.FileInfo.Modified > winner.Time {
					winner.Time = d.FileInfo.Modified
				}
			}
			if d.DirConfig.Policy == PolicyTrash {
				d.Action = ActionTrash
			} else {
				d.Action = ActionDelete
			}
			d.Target = winner.FileInfo.Path
			d.HasTarget = true

		case d.DirConfig.Policy == PolicyKeep:
			d.Action = ActionKeep

		case idx == winnerIdx:
			d.Action = ActionNoAction

		case d.DirConfig.Policy == PolicyPrompt:
			log_.Printf("warning: policy prompt not yet implemented, treating as keep for file %s", d.FileInfo.Path)
			d.Action = ActionKeep

		case d.DirConfig.Policy == PolicyHardlink:
			log_.Printf("warning: policy hardlink not yet implemented, treating as keep for file %s", d.FileInfo.Path)
			d.Action = ActionKeep

		case d.DirConfig.Policy == PolicyTrash && winner.DirConfig.Policy.Priority() >= PolicyTrash.Priority():
			d.Action = ActionTrash
			d.Target = winner.FileInfo.Path
			d.HasTarget = true

		case d.DirConfig.Policy == PolicyDelete && winner.DirConfig.Policy.Priority() >= PolicyDelete.Priority():
			d.Action = ActionDelete
			d.Target = winner.FileInfo.Path
			d.HasTarget = true

		default:
			d.Action = ActionNoAction
		}
	}

	out := make([]Decision, 0, len(ordered))
	for _, d := range ordered {
		if d.Action == ActionRetime && d.HasTime && d.Time == d.FileInfo.Modified {
			d.Action = ActionNoAction
			d.HasTime = false
			d.Time = 0
		}
		out = append(out, *d)
	}
	return out
}

// CheckIndex walks every hash-group in the index and resolves it into a
// flat queue of decisions, skipping groups that reduce to a single
// previously accepted duplicate pair.
func CheckIndex(index *StatIndex, dirs []DirectoryConfig, log_ *log.Logger) []Decision {
	var all []Decision
	for _, group := range index.GroupsByHash() {
		infos := make([]FileInfo, 0, len(group.Indices))
		for _, idx := range group.Indices {
			info, ok := index.FindByIndex(idx)
			if !ok {
				log_.Printf("error: could not find file info for index %d, skipping", idx)
				continue
			}
			infos = append(infos, info)
		}
		if len(infos) == 2 && index.IsAccepted(infos[0].Path, infos[1].Path) {
			continue
		}
		all = append(all, decideGroup(infos, group.Indices, dirs, log_)...)
	}
	return all
}
