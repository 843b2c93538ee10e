package internals

import (
	"path/filepath"
	"testing"
)

func sampleFileInfo(path, hash, f16b string, size int64, dev, ino uint64) FileInfo {
	return FileInfo{
		Path: path, Size: size, Modified: 1, Accessed: 1, Created: 1,
		Device: dev, Inode: ino, FileHash: hash, First16B: f16b,
	}
}

func TestStatIndexAddFindPop(t *testing.T) {
	idx := NewStatIndex("")
	if err := idx.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := idx.Load(); err != ErrAlreadyLoaded {
		t.Errorf("expected a second Load to return ErrAlreadyLoaded, got %v", err)
	}

	a := sampleFileInfo("/a/one.txt", "hash1", "f16-1", 10, 1, 100)
	n, err := idx.AddItem(a)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := idx.AddItem(a); err == nil {
		t.Errorf("expected adding a duplicate path to fail")
	}

	got, ok := idx.FindByPath("/a/one.txt")
	if !ok || got.FileHash != "hash1" {
		t.Errorf("FindByPath did not return the added item")
	}

	gotDvin, ok := idx.FindByDeviceInode(DeviceInode{1, 100})
	if !ok || gotDvin.Path != "/a/one.txt" {
		t.Errorf("FindByDeviceInode did not return the added item")
	}

	popped, err := idx.PopItemByIndex(n)
	if err != nil {
		t.Fatalf("PopItemByIndex: %v", err)
	}
	if popped.Path != "/a/one.txt" {
		t.Errorf("popped wrong item: %+v", popped)
	}
	if _, ok := idx.FindByPath("/a/one.txt"); ok {
		t.Errorf("expected the popped path to be gone from the path index")
	}
	if _, ok := idx.FindByDeviceInode(DeviceInode{1, 100}); ok {
		t.Errorf("expected the popped item to be gone from the device/inode index")
	}
}

func TestStatIndexHashGrouping(t *testing.T) {
	idx := NewStatIndex("")
	idx.Load()

	idx.AddItem(sampleFileInfo("/a/one.txt", "dup", "f16", 10, 1, 1))
	idx.AddItem(sampleFileInfo("/a/two.txt", "dup", "f16", 10, 1, 2))
	idx.AddItem(sampleFileInfo("/a/three.txt", "unique", "f16b", 20, 1, 3))

	groups := idx.GroupsByHash()
	var dupGroup *HashGroup
	for i := range groups {
		if groups[i].Hash == "dup" {
			dupGroup = &groups[i]
		}
	}
	if dupGroup == nil {
		t.Fatalf("expected a group for hash %q", "dup")
	}
	if len(dupGroup.Indices) != 2 {
		t.Errorf("expected 2 indices in the dup group, got %d", len(dupGroup.Indices))
	}
}

func TestStatIndexUpdateItemRepairsSecondaryIndexes(t *testing.T) {
	idx := NewStatIndex("")
	idx.Load()

	n, _ := idx.AddItem(sampleFileInfo("/a/one.txt", "old-hash", "old-f16", 10, 1, 1))

	updated := sampleFileInfo("/a/one.txt", "new-hash", "new-f16", 10, 1, 1)
	if err := idx.UpdateItem(n, updated); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if got := idx.FindByHash("old-hash"); len(got) != 0 {
		t.Errorf("expected the old hash bucket to be empty after update, got %v", got)
	}
	if got := idx.FindByHash("new-hash"); len(got) != 1 {
		t.Errorf("expected the new hash bucket to contain one item, got %d", len(got))
	}

	renamed := sampleFileInfo("/a/renamed.txt", "new-hash", "new-f16", 10, 1, 1)
	if err := idx.UpdateItem(n, renamed); err == nil {
		t.Errorf("expected UpdateItem to reject changing the path")
	}
}

func TestStatIndexAcceptedCollisions(t *testing.T) {
	idx := NewStatIndex("")
	idx.Load()

	idx.AcceptCollision("/a/one.txt", "/a/two.txt")

	if !idx.IsAccepted("/a/one.txt", "/a/two.txt") {
		t.Errorf("expected the accepted pair to report accepted in its given order")
	}
	if !idx.IsAccepted("/a/two.txt", "/a/one.txt") {
		t.Errorf("expected the accepted pair to report accepted in its reverse order too")
	}
	if idx.IsAccepted("/a/one.txt", "/a/three.txt") {
		t.Errorf("expected an unrelated pair to report not accepted")
	}
}

func TestStatIndexSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "index.cache")

	idx := NewStatIndex(cachePath)
	if err := idx.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	idx.AddItem(sampleFileInfo("/a/one.txt", "hash1", "f16-1", 10, 1, 1))
	idx.AddItem(sampleFileInfo("/a/two.txt", "hash2", "f16-2", 20, 1, 2))
	idx.AcceptCollision("/a/one.txt", "/a/two.txt")

	if err := idx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewStatIndex(cachePath)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload Load: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Errorf("expected 2 reloaded records, got %d", reloaded.Len())
	}
	got, ok := reloaded.FindByPath("/a/one.txt")
	if !ok || got.FileHash != "hash1" {
		t.Errorf("reloaded record for /a/one.txt is wrong: %+v, ok=%v", got, ok)
	}
	if !reloaded.IsAccepted("/a/one.txt", "/a/two.txt") {
		t.Errorf("expected the accepted collision pair to survive the round trip")
	}
	if !reloaded.IsAccepted("/a/two.txt", "/a/one.txt") {
		t.Errorf("expected the reloaded symmetric view to hold both directions")
	}
}

func TestStatIndexSaveNoOpWhenNotDirty(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "index.cache")

	idx := NewStatIndex(cachePath)
	idx.Load()
	if err := idx.Save(); err != nil {
		t.Fatalf("expected Save on a clean, empty index to be a no-op, got %v", err)
	}
}

func TestStatIndexSaveBeforeLoadFails(t *testing.T) {
	idx := NewStatIndex("")
	if err := idx.Save(); err != ErrNotLoaded {
		t.Errorf("expected Save before Load to return ErrNotLoaded, got %v", err)
	}
}
