package internals

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func discardLogger() *Logger {
	return NewLogger("test", LevelError+1, io.Discard)
}

func collectWalk(root string, dcfg *DirectoryConfig, followSymlinks bool) []string {
	out := make(chan string, 64)
	go func() {
		defer close(out)
		walkDirectory(root, 0, dcfg.IncludeSubdirs, dcfg, followSymlinks, out, discardLogger())
	}()
	var got []string
	for p := range out {
		got = append(got, p)
	}
	sort.Strings(got)
	return got
}

func TestWalkDirectorySkipsHiddenByDefault(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("x"), 0o644)

	dcfg := &DirectoryConfig{Path: dir, IncludeSubdirs: unboundedDepth}
	got := collectWalk(dir, dcfg, false)

	want := []string{filepath.Join(dir, "visible.txt")}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("walkDirectory() = %v, want %v", got, want)
	}
}

func TestWalkDirectoryIncludesHiddenWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("x"), 0o644)

	dcfg := &DirectoryConfig{Path: dir, IncludeSubdirs: unboundedDepth, Hidden: true}
	got := collectWalk(dir, dcfg, false)

	if len(got) != 1 {
		t.Fatalf("expected 1 file with Hidden=true, got %v", got)
	}
}

func TestWalkDirectoryRespectsSkipSubdirs(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "cache"), 0o755)
	os.Mkdir(filepath.Join(dir, "src"), 0o755)
	os.WriteFile(filepath.Join(dir, "cache", "a.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "src", "b.txt"), []byte("x"), 0o644)

	dcfg := &DirectoryConfig{Path: dir, IncludeSubdirs: unboundedDepth, SkipSubdirs: []string{"cache"}}
	got := collectWalk(dir, dcfg, false)

	want := []string{filepath.Join(dir, "src", "b.txt")}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("walkDirectory() = %v, want %v", got, want)
	}
}

func TestWalkDirectoryRespectsDepthLimit(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	os.MkdirAll(nested, 0o755)
	os.WriteFile(filepath.Join(dir, "a", "shallow.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(nested, "deep.txt"), []byte("x"), 0o644)

	dcfg := &DirectoryConfig{Path: dir, IncludeSubdirs: 1}
	got := collectWalk(dir, dcfg, false)

	want := []string{filepath.Join(dir, "a", "shallow.txt")}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("walkDirectory() with depth 1 = %v, want %v", got, want)
	}
}

func testConfig(dir string) Config {
	return Config{
		Directories: []DirectoryConfig{
			{Path: dir, IncludeSubdirs: unboundedDepth},
		},
		Pattern: &CompositePattern{MergeMode: MergeAll},
		Performance: PerformanceConfig{
			Algorithm:  "sha-256",
			MaxThreads: 2,
			ChunkSize:  8192,
		},
	}
}

func TestUpdateIndexAddsNewFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("world"), 0o644)

	idx := NewStatIndex("")
	idx.Load()
	UpdateIndex(testConfig(dir), idx, discardLogger())

	if idx.Len() != 2 {
		t.Fatalf("expected 2 indexed files, got %d", idx.Len())
	}
	info, ok := idx.FindByPath(filepath.Join(dir, "a.txt"))
	if !ok || info.FileHash == "" {
		t.Errorf("expected a.txt to be indexed with a non-empty hash, got %+v, ok=%v", info, ok)
	}
}

func TestUpdateIndexRemovesStaleEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	os.WriteFile(path, []byte("hello"), 0o644)

	idx := NewStatIndex("")
	idx.Load()
	UpdateIndex(testConfig(dir), idx, discardLogger())
	if idx.Len() != 1 {
		t.Fatalf("expected 1 indexed file before deletion, got %d", idx.Len())
	}

	os.Remove(path)
	UpdateIndex(testConfig(dir), idx, discardLogger())
	if idx.Len() != 0 {
		t.Errorf("expected the stale entry to be removed after the file was deleted, got %d entries", idx.Len())
	}
}

func TestUpdateIndexFollowsRenameWithoutRehashing(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "a.txt")
	newPath := filepath.Join(dir, "renamed.txt")
	os.WriteFile(oldPath, []byte("hello"), 0o644)

	idx := NewStatIndex("")
	idx.Load()
	UpdateIndex(testConfig(dir), idx, discardLogger())
	before, ok := idx.FindByPath(oldPath)
	if !ok {
		t.Fatalf("expected a.txt to be indexed")
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatalf("rename: %v", err)
	}
	UpdateIndex(testConfig(dir), idx, discardLogger())

	if _, ok := idx.FindByPath(oldPath); ok {
		t.Errorf("expected the old path to no longer be indexed after rename")
	}
	after, ok := idx.FindByPath(newPath)
	if !ok {
		t.Fatalf("expected the renamed path to be indexed")
	}
	if after.FileHash != before.FileHash {
		t.Errorf("expected the rename to carry over the existing hash instead of rehashing: before=%s after=%s", before.FileHash, after.FileHash)
	}
}
