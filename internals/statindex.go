package internals

import (
	"sync"

	"github.com/pkg/errors"
)

// Sentinel errors for the stat index, returned (never panicked) so callers
// can recover per-file rather than crash the whole run.
var (
	ErrItemExists        = errors.New("item already exists")
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidItem       = errors.New("invalid item")
	ErrAlreadyLoaded     = errors.New("stat index is already loaded")
	ErrNotLoaded         = errors.New("stat index is not loaded")
	ErrNoCachePath       = errors.New("no cache path configured, cannot save")
	ErrNoLookupCriterion = errors.New("one lookup criterion must be provided")
)

// StatIndex is the in-memory multi-index store of FileInfo records: a
// primary table keyed by an opaque index, a unique path index, a unique
// (device, inode) index, and two non-unique bags keyed by file hash and
// short fingerprint. One exclusive lock guards every table; nested locking
// is never used — every public method takes the lock for its full
// duration and releases it before returning.
type StatIndex struct {
	cachePath string

	mu      sync.Mutex
	loaded  bool
	dirty   bool
	nextIdx int

	fileInfo  map[int]FileInfo
	pathIndex map[string]int
	dvinIndex map[DeviceInode]int
	hashIndex bag
	f16bIndex bag

	// acceptedCollisions is held symmetric in memory: both (a,b) and
	// (b,a) are present once a pair is accepted. Only the a<b direction
	// is persisted (see Save).
	acceptedCollisions map[[2]string]struct{}
}

// NewStatIndex constructs a StatIndex that will load from and save to
// cachePath. An empty cachePath means the index is never persisted.
func NewStatIndex(cachePath string) *StatIndex {
	return &StatIndex{cachePath: cachePath}
}

func (s *StatIndex) nextIndex() int {
	s.nextIdx++
	return s.nextIdx
}

// Load populates the index from the configured snapshot, or starts empty
// if no snapshot exists yet. Calling Load twice returns ErrAlreadyLoaded.
func (s *StatIndex) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return ErrAlreadyLoaded
	}
	s.loaded = true
	s.dirty = false
	s.fileInfo = make(map[int]FileInfo)
	s.pathIndex = make(map[string]int)
	s.dvinIndex = make(map[DeviceInode]int)
	s.hashIndex = make(bag)
	s.f16bIndex = make(bag)
	s.acceptedCollisions = make(map[[2]string]struct{})

	if s.cachePath == "" {
		return nil
	}

	snap, err := loadSnapshot(s.cachePath)
	if err != nil {
		if errors.Is(err, errSnapshotNotFound) {
			return nil
		}
		return errors.Wrapf(err, "loading snapshot %s", s.cachePath)
	}

	for _, f := range snap.Files {
		s.addItemLocked(f)
	}
	for _, pair := range snap.Collisions {
		s.acceptedCollisions[[2]string{pair[0], pair[1]}] = struct{}{}
		s.acceptedCollisions[[2]string{pair[1], pair[0]}] = struct{}{}
	}
	return nil
}

// Save writes an updated snapshot if the index is dirty. Fails with
// ErrNotLoaded if Load was never called; is a no-op if nothing changed
// since the last save.
func (s *StatIndex) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}
	if !s.dirty {
		return nil
	}
	if s.cachePath == "" {
		return ErrNoCachePath
	}

	files := make([]FileInfo, 0, len(s.fileInfo))
	for _, f := range s.fileInfo {
		files = append(files, f)
	}

	// Desymmetrize: only the lexicographically smaller-first pair.
	seen := make(map[[2]string]struct{})
	pairs := make([][2]string, 0, len(s.acceptedCollisions)/2)
	for pair := range s.acceptedCollisions {
		if pair[0] < pair[1] {
			if _, ok := seen[pair]; !ok {
				seen[pair] = struct{}{}
				pairs = append(pairs, pair)
			}
		}
	}

	if err := saveSnapshot(s.cachePath, files, pairs); err != nil {
		return errors.Wrapf(err, "saving snapshot %s", s.cachePath)
	}
	s.dirty = false
	return nil
}

func (s *StatIndex) addItemLocked(info FileInfo) int {
	idx := s.nextIndex()
	s.fileInfo[idx] = info
	s.pathIndex[info.Path] = idx
	s.dvinIndex[DeviceInode{info.Device, info.Inode}] = idx
	s.hashIndex.add(info.FileHash, idx)
	s.f16bIndex.add(info.First16B, idx)
	return idx
}

// AddItem inserts a new record, failing with ErrItemExists if the path is
// already present.
func (s *StatIndex) AddItem(info FileInfo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pathIndex[info.Path]; ok {
		return 0, errors.Wrapf(ErrItemExists, "path %s", info.Path)
	}
	s.dirty = true
	return s.addItemLocked(info), nil
}

func (s *StatIndex) popItemLocked(idx int) FileInfo {
	info := s.fileInfo[idx]
	delete(s.fileInfo, idx)
	delete(s.pathIndex, info.Path)
	delete(s.dvinIndex, DeviceInode{info.Device, info.Inode})
	s.hashIndex.remove(info.FileHash, idx)
	s.f16bIndex.remove(info.First16B, idx)
	return info
}

// PopItemByIndex removes and returns the record at idx.
func (s *StatIndex) PopItemByIndex(idx int) (FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fileInfo[idx]; !ok {
		return FileInfo{}, errors.Wrapf(ErrItemNotFound, "index %d", idx)
	}
	s.dirty = true
	return s.popItemLocked(idx), nil
}

// PopItemByPath removes and returns the record at path.
func (s *StatIndex) PopItemByPath(path string) (FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.pathIndex[path]
	if !ok {
		return FileInfo{}, errors.Wrapf(ErrItemNotFound, "path %s", path)
	}
	s.dirty = true
	return s.popItemLocked(idx), nil
}

// PopItemByDeviceInode removes and returns the record identified by
// (device, inode).
func (s *StatIndex) PopItemByDeviceInode(di DeviceInode) (FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.dvinIndex[di]
	if !ok {
		return FileInfo{}, errors.Wrapf(ErrItemNotFound, "device/inode %v", di)
	}
	s.dirty = true
	return s.popItemLocked(idx), nil
}

// FindByIndex returns the record at idx and whether it was found.
func (s *StatIndex) FindByIndex(idx int) (FileInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fileInfo[idx]
	return f, ok
}

// FindByPath returns the record at path and whether it was found.
func (s *StatIndex) FindByPath(path string) (FileInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.pathIndex[path]
	if !ok {
		return FileInfo{}, false
	}
	return s.fileInfo[idx], true
}

// FindIndexByPath returns the index of the record at path and whether it
// was found, for callers that need the index (e.g. update/pop by index).
func (s *StatIndex) FindIndexByPath(path string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.pathIndex[path]
	return idx, ok
}

// FindIndexByDeviceInode returns the opaque index of the record identified
// by (device, inode) and whether it was found, for callers that need the
// index (e.g. pop-then-readd when a rename is detected).
func (s *StatIndex) FindIndexByDeviceInode(di DeviceInode) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.dvinIndex[di]
	return idx, ok
}

// FindByDeviceInode returns the record identified by (device, inode) and
// whether it was found.
func (s *StatIndex) FindByDeviceInode(di DeviceInode) (FileInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.dvinIndex[di]
	if !ok {
		return FileInfo{}, false
	}
	return s.fileInfo[idx], true
}

// FindByHash returns every record sharing the given full content hash.
func (s *StatIndex) FindByHash(hash string) []FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	idxs := s.hashIndex[hash]
	out := make([]FileInfo, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, s.fileInfo[idx])
	}
	return out
}

// FindByFirst16B returns every record sharing the given short fingerprint.
func (s *StatIndex) FindByFirst16B(f16b string) []FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	idxs := s.f16bIndex[f16b]
	out := make([]FileInfo, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, s.fileInfo[idx])
	}
	return out
}

// UpdateItem replaces the record at idx (the path must be unchanged) and
// repairs the hash/first16b secondary indexes.
func (s *StatIndex) UpdateItem(idx int, info FileInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.fileInfo[idx]
	if !ok {
		return errors.Wrapf(ErrItemNotFound, "index %d", idx)
	}
	if old.Path != info.Path {
		return errors.Wrapf(ErrInvalidItem, "cannot change path of existing item %s", old.Path)
	}

	s.dirty = true
	s.hashIndex.remove(old.FileHash, idx)
	s.f16bIndex.remove(old.First16B, idx)
	s.fileInfo[idx] = info
	s.hashIndex.add(info.FileHash, idx)
	s.f16bIndex.add(info.First16B, idx)
	return nil
}

// HashGroup is one (hash, indices) pair yielded by GroupsByHash.
type HashGroup struct {
	Hash    string
	Indices []int
}

// GroupsByHash returns every (hash, indices) pair in the hash secondary
// index — the entry point the decision engine iterates over.
func (s *StatIndex) GroupsByHash() []HashGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make([]HashGroup, 0, len(s.hashIndex))
	for hash, idxs := range s.hashIndex {
		cp := make([]int, len(idxs))
		copy(cp, idxs)
		groups = append(groups, HashGroup{Hash: hash, Indices: cp})
	}
	return groups
}

// Len returns the number of records currently tracked.
func (s *StatIndex) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fileInfo)
}

// AllPaths returns the path of every currently tracked record, used by the
// scanner's stale sweep to determine which records to drop.
func (s *StatIndex) AllPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.pathIndex))
	for p := range s.pathIndex {
		paths = append(paths, p)
	}
	return paths
}

// IsAccepted reports whether (a, b) was previously accepted as a genuine
// duplicate pair that should not be reported again.
func (s *StatIndex) IsAccepted(a, b string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.acceptedCollisions[[2]string{a, b}]
	return ok
}

// AcceptCollision records (a, b) as an accepted duplicate pair, held
// symmetrically in memory.
func (s *StatIndex) AcceptCollision(a, b string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	s.acceptedCollisions[[2]string{a, b}] = struct{}{}
	s.acceptedCollisions[[2]string{b, a}] = struct{}{}
}
