package internals

import (
	"log"
	"io"
	"testing"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func dc(path string, priority int, policy Policy, rename bool) DirectoryConfig {
	return DirectoryConfig{Path: path, Priority: priority, Policy: policy, Rename: rename, IncludeSubdirs: unboundedDepth}
}

func actionOf(t *testing.T, decisions []Decision, path string) Action {
	t.Helper()
	for _, d := range decisions {
		if d.FileInfo.Path == path {
			return d.Action
		}
	}
	t.Fatalf("no decision found for %s", path)
	return ActionUndefined
}

func TestDecideGroupKeepBeatsTrash(t *testing.T) {
	dirs := []DirectoryConfig{
		dc("/keep", 0, PolicyKeep, false),
		dc("/scratch", 0, PolicyTrash, false),
	}
	infos := []FileInfo{
		{Path: "/keep/a.txt", FileHash: "h", Modified: 100},
		{Path: "/scratch/a.txt", FileHash: "h", Modified: 200},
	}
	decisions := decideGroup(infos, []int{1, 2}, dirs, silentLogger())

	if actionOf(t, decisions, "/keep/a.txt") != ActionKeep {
		t.Errorf("expected the KEEP-policy file to win")
	}
	if got := actionOf(t, decisions, "/scratch/a.txt"); got != ActionTrash {
		t.Errorf("expected the losing TRASH-policy file to be trashed, got %s", got)
	}
}

func TestDecideGroupHigherPolicyPriorityWins(t *testing.T) {
	// PolicyTrash (priority 40) outranks PolicyDelete (priority 30), so the
	// trash-policy file wins and the delete-policy file is removed against it.
	dirs := []DirectoryConfig{
		dc("/a", 0, PolicyDelete, false),
		dc("/b", 0, PolicyTrash, false),
	}
	infos := []FileInfo{
		{Path: "/a/x.txt", FileHash: "h", Modified: 100},
		{Path: "/b/x.txt", FileHash: "h", Modified: 100},
	}
	decisions := decideGroup(infos, []int{1, 2}, dirs, silentLogger())

	if got := actionOf(t, decisions, "/b/x.txt"); got != ActionNoAction {
		t.Errorf("expected the higher-policy-priority TRASH directory's file to win with NOACTION, got %s", got)
	}
	if got := actionOf(t, decisions, "/a/x.txt"); got != ActionDelete {
		t.Errorf("expected the DELETE-policy file to be deleted against a TRASH winner, got %s", got)
	}
}

func TestDecideGroupDiscardTrashesTheWinnerItself(t *testing.T) {
	dirs := []DirectoryConfig{
		dc("/only", 0, PolicyDiscard, false),
	}
	infos := []FileInfo{
		{Path: "/only/a.txt", FileHash: "h", Modified: 100},
		{Path: "/only/b.txt", FileHash: "h", Modified: 200},
	}
	decisions := decideGroup(infos, []int{1, 2}, dirs, silentLogger())

	// Both files share the same directory config; the winner (older mtime)
	// is governed by discard! and is trashed unconditionally.
	if got := actionOf(t, decisions, "/only/a.txt"); got != ActionTrash {
		t.Errorf("expected the discard! winner to be trashed, got %s", got)
	}
}

func TestDecideGroupEraseDeletesTheWinnerItself(t *testing.T) {
	dirs := []DirectoryConfig{
		dc("/only", 0, PolicyErase, false),
	}
	infos := []FileInfo{
		{Path: "/only/a.txt", FileHash: "h", Modified: 100},
		{Path: "/only/b.txt", FileHash: "h", Modified: 200},
	}
	decisions := decideGroup(infos, []int{1, 2}, dirs, silentLogger())

	if got := actionOf(t, decisions, "/only/a.txt"); got != ActionDelete {
		t.Errorf("expected the erase! winner to be deleted, got %s", got)
	}
}

func TestDecideGroupRenameUpgradesWinnerToRetime(t *testing.T) {
	// Two duplicates sharing one rename-enabled trash directory: the older
	// file wins, but since its own policy is trash/rename, it gets RETIME'd
	// to the newest mtime in the group instead of being left untouched, and
	// the younger duplicate is trashed against it.
	dirs := []DirectoryConfig{
		dc("/scratch", 0, PolicyTrash, true),
	}
	infos := []FileInfo{
		{Path: "/scratch/a.txt", FileHash: "h", Modified: 100},
		{Path: "/scratch/b.txt", FileHash: "h", Modified: 500},
	}
	decisions := decideGroup(infos, []int{1, 2}, dirs, silentLogger())

	winner := actionOf(t, decisions, "/scratch/a.txt")
	if winner != ActionRetime {
		t.Errorf("expected the winner to be RETIME'd to the newest mtime in the group, got %s", winner)
	}
	if got := actionOf(t, decisions, "/scratch/b.txt"); got != ActionTrash {
		t.Errorf("expected the younger duplicate to be trashed against the retimed winner, got %s", got)
	}
}

func TestDecideGroupRenameRetimeSkippedWhenTimeUnchanged(t *testing.T) {
	dirs := []DirectoryConfig{
		dc("/scratch", 0, PolicyTrash, true),
	}
	infos := []FileInfo{
		{Path: "/scratch/a.txt", FileHash: "h", Modified: 100},
		{Path: "/scratch/b.txt", FileHash: "h", Modified: 100},
	}
	decisions := decideGroup(infos, []int{1, 2}, dirs, silentLogger())

	if got := actionOf(t, decisions, "/scratch/a.txt"); got != ActionNoAction {
		t.Errorf("expected a retime to the file's own current mtime to collapse to NOACTION, got %s", got)
	}
}

func TestDecideGroupMissingDirectoryConfigDefaultsToKeep(t *testing.T) {
	dirs := []DirectoryConfig{
		dc("/configured", 0, PolicyTrash, false),
	}
	infos := []FileInfo{
		{Path: "/unconfigured/a.txt", FileHash: "h", Modified: 100},
	}
	decisions := decideGroup(infos, []int{1}, dirs, silentLogger())

	if got := actionOf(t, decisions, "/unconfigured/a.txt"); got != ActionNoAction {
		t.Errorf("expected a file with no matching directory config to default to NOACTION (kept by default), got %s", got)
	}
}

func TestCheckIndexSkipsAcceptedPair(t *testing.T) {
	idx := NewStatIndex("")
	idx.Load()
	idx.AddItem(sampleFileInfo("/a/one.txt", "dup", "f16", 10, 1, 1))
	idx.AddItem(sampleFileInfo("/a/two.txt", "dup", "f16", 10, 1, 2))
	idx.AcceptCollision("/a/one.txt", "/a/two.txt")

	dirs := []DirectoryConfig{dc("/a", 0, PolicyTrash, false)}
	decisions := CheckIndex(idx, dirs, silentLogger())

	if len(decisions) != 0 {
		t.Errorf("expected an accepted duplicate pair to produce no decisions, got %d", len(decisions))
	}
}

func TestCheckIndexAppliesDiscardToSingletonGroup(t *testing.T) {
	idx := NewStatIndex("")
	idx.Load()
	idx.AddItem(sampleFileInfo("/only/a.txt", "unique", "f16", 10, 1, 1))

	dirs := []DirectoryConfig{dc("/only", 0, PolicyDiscard, false)}
	decisions := CheckIndex(idx, dirs, silentLogger())

	if got := actionOf(t, decisions, "/only/a.txt"); got != ActionTrash {
		t.Errorf("expected discard! to trash a singleton file with no duplicate, got %s", got)
	}
}

func TestCheckIndexProducesDecisionsForUnacceptedGroup(t *testing.T) {
	idx := NewStatIndex("")
	idx.Load()
	idx.AddItem(sampleFileInfo("/keep/one.txt", "dup", "f16", 10, 1, 1))
	idx.AddItem(sampleFileInfo("/scratch/two.txt", "dup", "f16", 10, 1, 2))

	dirs := []DirectoryConfig{
		dc("/keep", 0, PolicyKeep, false),
		dc("/scratch", 0, PolicyTrash, false),
	}
	decisions := CheckIndex(idx, dirs, silentLogger())

	if len(decisions) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(decisions))
	}
}
