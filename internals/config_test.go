package internals

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "filesweep.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
directories:
  - path: /data/incoming
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Directories) != 1 {
		t.Fatalf("expected 1 directory, got %d", len(cfg.Directories))
	}
	d := cfg.Directories[0]
	if d.Policy != PolicyPrompt {
		t.Errorf("expected the default policy to be %q, got %q", PolicyPrompt, d.Policy)
	}
	if d.IncludeSubdirs != unboundedDepth {
		t.Errorf("expected subdirs to default to unbounded, got %d", d.IncludeSubdirs)
	}
	if d.Hidden {
		t.Errorf("expected hidden to default to false")
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected logging.level to default to INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Performance.Algorithm != "sha-256" {
		t.Errorf("expected performance.algorithm to default to %q, got %q", "sha-256", cfg.Performance.Algorithm)
	}
	if cfg.Performance.MaxThreads != 1 {
		t.Errorf("expected performance.max_threads to default to 1, got %d", cfg.Performance.MaxThreads)
	}
	if cfg.General.FollowSymlinks {
		t.Errorf("expected general.follow_symlinks to default to false")
	}
	if !cfg.General.ConfirmDeletion {
		t.Errorf("expected general.confirm_deletion to default to true")
	}
	if cfg.Pattern == nil {
		t.Fatalf("expected a non-nil default global pattern")
	}
	if !cfg.Pattern.Match(IncompleteFileInfo{Path: "/anything"}) {
		t.Errorf("expected the default empty match pattern to admit every file")
	}
}

func TestLoadConfigSubdirsVariants(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
directories:
  - path: /a
    subdirs: false
  - path: /b
    subdirs: true
  - path: /c
    subdirs: 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := []int{0, unboundedDepth, 3}
	for i, w := range want {
		if cfg.Directories[i].IncludeSubdirs != w {
			t.Errorf("directory %d: IncludeSubdirs = %d, want %d", i, cfg.Directories[i].IncludeSubdirs, w)
		}
	}
}

func TestLoadConfigPerformanceSizeFields(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
directories:
  - path: /a
performance:
  chunk_size: 64K
  max_read: 1M
  small_file_size: 4096
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Performance.ChunkSize != 64*1024 {
		t.Errorf("chunk_size = %d, want %d", cfg.Performance.ChunkSize, 64*1024)
	}
	if cfg.Performance.MaxRead != 1024*1024 {
		t.Errorf("max_read = %d, want %d", cfg.Performance.MaxRead, 1024*1024)
	}
	if !cfg.Performance.HasSmallFileSize || cfg.Performance.SmallFileSize != 4096 {
		t.Errorf("small_file_size = %d (has=%v), want 4096 (has=true)", cfg.Performance.SmallFileSize, cfg.Performance.HasSmallFileSize)
	}
}

func TestLoadConfigRejectsMissingPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
directories:
  - policy: keep
`)
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected a directory entry without a path to fail")
	}
}

func TestLoadConfigRejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
directories:
  - path: /a
    policy: obliterate
`)
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected an unknown policy name to fail")
	}
}

func TestLoadConfigTildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory available to test tilde expansion")
	}
	dir := t.TempDir()
	path := writeConfig(t, dir, `
directories:
  - path: /a
general:
  cache_file: ~/filesweep.cache
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := filepath.Join(home, "filesweep.cache")
	if cfg.General.CacheFile != want {
		t.Errorf("cache_file = %q, want %q", cfg.General.CacheFile, want)
	}
}

func TestFindConfigFilePrefersEnvOverride(t *testing.T) {
	dir := t.TempDir()
	envPath := writeConfig(t, dir, "directories: []\n")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	cwdCandidate := filepath.Join(cwd, "filesweep.yaml")
	if cwdCandidate == envPath {
		t.Fatal("test setup error: env and cwd candidates must differ")
	}

	t.Setenv("FILESWEEP_CONFIG", envPath)

	got, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile: %v", err)
	}
	if got != envPath {
		t.Errorf("FindConfigFile() = %q, want the FILESWEEP_CONFIG override %q", got, envPath)
	}
}

func TestFindConfigFileReturnsErrorWhenNothingFound(t *testing.T) {
	t.Setenv("FILESWEEP_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := FindConfigFile(); err != ErrNoConfigFile {
		t.Errorf("expected ErrNoConfigFile when no candidate exists, got %v", err)
	}
}
