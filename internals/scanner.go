package internals

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// isHidden reports whether a basename marks a dotfile/dot-directory. The
// original tool also checks a Windows hidden-file attribute; this build
// only has a portable os.FileInfo to work from, so only the dot-prefix
// convention is checked.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// walkDirectory recursively yields every file path under root that the
// given DirectoryConfig allows: depth-limited by IncludeSubdirs, filtered
// by skip_subdirs and dotfile hiding, with symlinks only followed when
// followSymlinks is set.
func walkDirectory(root string, currentDepth, maxDepth int, dcfg *DirectoryConfig, followSymlinks bool, out chan<- string, logger *Logger) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if !isPermissionError(err) {
			logger.Warnf("reading directory %s: %v", root, err)
		}
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		fullPath := filepath.Join(root, name)

		mode := entry.Type()
		isDir := mode.IsDir()
		isSymlink := mode&os.ModeSymlink != 0

		if isSymlink {
			if !followSymlinks {
				continue
			}
			target, err := os.Stat(fullPath)
			if err != nil {
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if currentDepth >= maxDepth {
				continue
			}
			if contains(dcfg.SkipSubdirs, name) {
				continue
			}
			if !dcfg.Hidden && isHidden(name) {
				continue
			}
			walkDirectory(fullPath, currentDepth+1, maxDepth, dcfg, followSymlinks, out, logger)
			continue
		}

		if !dcfg.Hidden && isHidden(name) {
			continue
		}
		out <- fullPath
	}
}

// iterateConfiguredFiles walks every configured directory and sends every
// candidate file path on the returned channel, closing it once every
// directory has been fully walked.
func iterateConfiguredFiles(cfg Config, logger *Logger) <-chan string {
	out := make(chan string, 64)
	go func() {
		defer close(out)
		var wg sync.WaitGroup
		for i := range cfg.Directories {
			d := &cfg.Directories[i]
			wg.Add(1)
			go func(d *DirectoryConfig) {
				defer wg.Done()
				walkDirectory(d.Path, 0, d.IncludeSubdirs, d, cfg.General.FollowSymlinks, out, logger)
			}(d)
		}
		wg.Wait()
	}()
	return out
}

// threadSafeStringSet is a mutex-guarded set used to deduplicate files seen
// through overlapping configured directories.
type threadSafeStringSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newThreadSafeStringSet() *threadSafeStringSet {
	return &threadSafeStringSet{seen: make(map[string]struct{})}
}

// addIfAbsent reports whether path was newly added (false means it was
// already present).
func (s *threadSafeStringSet) addIfAbsent(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	return true
}

func (s *threadSafeStringSet) snapshot() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.seen))
	for k := range s.seen {
		out[k] = struct{}{}
	}
	return out
}

// fingerprintWorker drains paths from the shared walk channel, resolves
// each one against the index (new file / renamed file / already tracked /
// conflicting entries), and applies the resulting add/update to index.
// Grounded on _add_new_files_th's four database-lookup scenarios.
func fingerprintWorker(paths <-chan string, cfg Config, index *StatIndex, checked *threadSafeStringSet, logger *Logger) {
	algo, err := HashAlgos{}.FromString(cfg.Performance.Algorithm)
	if err != nil {
		algo = HashAlgos{}.Default()
	}

	for path := range paths {
		incomplete, err := ReadFileInfo(path)
		if err != nil {
			logger.Errorf("accessing file %s: %v", path, err)
			continue
		}

		if !cfg.Pattern.Match(incomplete) {
			continue
		}
		dcfg := directoryConfigForPath(incomplete, incomplete.Path, cfg.Directories)
		if dcfg == nil {
			continue
		}
		if !checked.addIfAbsent(path) {
			continue
		}

		byPath, hasByPath := index.FindByPath(path)
		byDvin, hasByDvin := index.FindByDeviceInode(DeviceInode{incomplete.Device, incomplete.Inode})

		switch {
		case !hasByDvin:
			// New file (whether or not a stale path entry also exists;
			// a stale path entry means the path was replaced by another
			// file, which is likewise a new file as far as dvin goes).
			f16b, err := First16B(path)
			if err != nil {
				logger.Errorf("reading fingerprint of %s: %v", path, err)
				continue
			}
			hash, err := HashFile(algo, path, cfg.Performance.ChunkSize, cfg.Performance.MaxRead)
			if err != nil {
				logger.Errorf("hashing %s: %v", path, err)
				continue
			}
			item := incomplete.Complete(hash, f16b)
			if hasByPath {
				if _, err := index.PopItemByPath(path); err != nil {
					logger.Errorf("replacing stale entry for %s: %v", path, err)
				}
			}
			if _, err := index.AddItem(item); err != nil {
				logger.Errorf("adding file %s: %v", path, err)
				continue
			}
			logger.Infof("added file: %s (size: %d, hash: %s)", item.Path, item.Size, item.FileHash)

		case !hasByPath:
			// Known by device/inode only: probably moved or renamed.
			if incomplete.Size != byDvin.Size || incomplete.Modified != byDvin.Modified {
				f16b, err := First16B(path)
				if err != nil {
					logger.Errorf("reading fingerprint of %s: %v", path, err)
					continue
				}
				hash, err := HashFile(algo, path, cfg.Performance.ChunkSize, cfg.Performance.MaxRead)
				if err != nil {
					logger.Errorf("hashing %s: %v", path, err)
					continue
				}
				item := incomplete.Complete(hash, f16b)
				if _, err := index.PopItemByDeviceInode(DeviceInode{incomplete.Device, incomplete.Inode}); err != nil {
					logger.Errorf("replacing moved entry for %s: %v", path, err)
				}
				if _, err := index.AddItem(item); err != nil {
					logger.Errorf("adding file %s: %v", path, err)
					continue
				}
				logger.Infof("added file: %s (size: %d, hash: %s)", item.Path, item.Size, item.FileHash)
				continue
			}

			sameContent := false
			var newHash string
			if !cfg.Performance.HasSmallFileSize || incomplete.Size <= cfg.Performance.SmallFileSize {
				h, err := HashFile(algo, path, cfg.Performance.ChunkSize, cfg.Performance.MaxRead)
				if err != nil {
					logger.Errorf("hashing %s: %v", path, err)
					continue
				}
				newHash = h
				sameContent = h == byDvin.FileHash
			} else {
				f16b, err := First16B(path)
				if err != nil {
					logger.Errorf("reading fingerprint of %s: %v", path, err)
					continue
				}
				sameContent = f16b == byDvin.First16B
				if !sameContent {
					h, err := HashFile(algo, path, cfg.Performance.ChunkSize, cfg.Performance.MaxRead)
					if err != nil {
						logger.Errorf("hashing %s: %v", path, err)
						continue
					}
					newHash = h
				}
			}

			if sameContent {
				idx, ok := index.FindIndexByDeviceInode(DeviceInode{incomplete.Device, incomplete.Inode})
				if !ok {
					logger.Errorf("internal: lost index for renamed file %s", path)
					continue
				}
				updated := byDvin
				updated.Path = path
				old, err := index.PopItemByIndex(idx)
				if err != nil {
					logger.Errorf("renaming %s: %v", path, err)
					continue
				}
				updated.FileHash = old.FileHash
				updated.First16B = old.First16B
				if _, err := index.AddItem(updated); err != nil {
					logger.Errorf("re-adding renamed file %s: %v", path, err)
					continue
				}
				logger.Infof("updated file: %s (renamed, hash: %s)", updated.Path, updated.FileHash)
			} else {
				f16b, err := First16B(path)
				if err != nil {
					logger.Errorf("reading fingerprint of %s: %v", path, err)
					continue
				}
				item := incomplete.Complete(newHash, f16b)
				if _, err := index.AddItem(item); err != nil {
					logger.Errorf("adding file %s: %v", path, err)
					continue
				}
				logger.Infof("added file: %s (size: %d, hash: %s)", item.Path, item.Size, item.FileHash)
			}

		default:
			// Known by both path and device/inode.
			if byPath.Path != byDvin.Path {
				logger.Warnf("file %s has conflicting database entries, consider deleting the cache; skipping", path)
			}
			logger.Debugf("processed file: %s (mtime: %d, size: %d, hash: %s)", byPath.Path, byPath.Modified, byPath.Size, byPath.FileHash)
		}
	}
}

// UpdateIndex walks every configured directory, reconciling the index with
// the files currently on disk (adding new files, following renames,
// leaving unchanged files alone), then removes any indexed path that was
// not encountered during the walk.
func UpdateIndex(cfg Config, index *StatIndex, logger *Logger) {
	logger.Infof("updating index...")

	paths := iterateConfiguredFiles(cfg, logger)
	checked := newThreadSafeStringSet()

	threads := cfg.Performance.MaxThreads
	if threads <= 0 {
		threads = 1
	}

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			fingerprintWorker(paths, cfg, index, checked, logger)
		}()
	}
	wg.Wait()

	checkedSet := checked.snapshot()
	for _, p := range index.AllPaths() {
		if _, ok := checkedSet[p]; !ok {
			if _, err := index.PopItemByPath(p); err == nil {
				logger.Infof("removed stale file from index: %s", p)
			}
		}
	}

	logger.Infof("index update complete, %d entries", index.Len())
}
