package internals

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DirectoryConfig is one entry of the `directories` configuration list: a
// root path plus the policy that governs duplicates found under it.
type DirectoryConfig struct {
	Path  string
	Priority int
	// IncludeSubdirs: unboundedDepth (4096) means "unbounded" (true in the
	// document), 0 means "this directory only" (false in the document), any
	// other value is an explicit depth cap.
	IncludeSubdirs int
	Policy         Policy
	Rename         bool
	Pattern        Pattern // nil means "no restriction beyond the global pattern"
	SkipSubdirs    []string
	Hidden         bool
}

// unboundedDepth is the sentinel used for "recurse without a depth limit",
// per the scanner design's suggestion of a large sentinel in place of true
// unbounded recursion.
const unboundedDepth = 4096

// LoggingConfig configures where and how verbosely the run logs.
type LoggingConfig struct {
	Level string
	File  string
}

// PerformanceConfig configures the fingerprinting pipeline's throughput
// and hashing behavior.
type PerformanceConfig struct {
	Algorithm     string
	MaxThreads    int
	ChunkSize     int64
	MaxRead       int64
	SmallFileSize int64
	HasSmallFileSize bool
}

// GeneralConfig configures run-wide behavior not specific to any one
// directory.
type GeneralConfig struct {
	FollowSymlinks  bool
	DryRun          bool
	ConfirmDeletion bool
	CacheFile       string
}

// Config is the fully resolved, defaulted configuration document.
type Config struct {
	Directories []DirectoryConfig
	Pattern     Pattern
	Logging     LoggingConfig
	Performance PerformanceConfig
	General     GeneralConfig
}

// rawConfig mirrors the YAML document shape before pattern strings are
// parsed and defaults are applied.
type rawConfig struct {
	Directories []rawDirectory `yaml:"directories"`
	Match       yaml.MapSlice  `yaml:"match"`
	Logging     rawLogging     `yaml:"logging"`
	Performance rawPerformance `yaml:"performance"`
	General     rawGeneral     `yaml:"general"`
}

type rawDirectory struct {
	Path        string   `yaml:"path"`
	Priority    int      `yaml:"priority"`
	Subdirs     interface{} `yaml:"subdirs"`
	Policy      string   `yaml:"policy"`
	Rename      bool     `yaml:"rename"`
	Pattern     string   `yaml:"pattern"`
	SkipSubdirs []string `yaml:"skip_subdirs"`
	Hidden      bool     `yaml:"hidden"`
}

type rawLogging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type rawPerformance struct {
	Algorithm     string      `yaml:"algorithm"`
	MaxThreads    int         `yaml:"max_threads"`
	ChunkSize     interface{} `yaml:"chunk_size"`
	MaxRead       interface{} `yaml:"max_read"`
	SmallFileSize interface{} `yaml:"small_file_size"`
}

type rawGeneral struct {
	FollowSymlinks  bool   `yaml:"follow_symlinks"`
	DryRun          bool   `yaml:"dry_run"`
	ConfirmDeletion *bool  `yaml:"confirm_deletion"`
	CacheFile       string `yaml:"cache_file"`
}

func readPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// parseSizeField accepts either a YAML integer (raw bytes) or a string in
// the `<number>[unit]` size grammar, matching load.py's dual handling of
// `chunk_size`/`max_read`/`small_file_size`.
func parseSizeField(v interface{}) (int64, bool, error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case int:
		return int64(t), true, nil
	case int64:
		return t, true, nil
	case string:
		if t == "" {
			return 0, false, nil
		}
		n, err := ParseSize(t)
		return n, true, err
	default:
		return 0, false, errors.Errorf("unsupported size value: %v", v)
	}
}

func parseSubdirsField(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return unboundedDepth
	case bool:
		if t {
			return unboundedDepth
		}
		return 0
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
		if t == "true" {
			return unboundedDepth
		}
		return 0
	default:
		return unboundedDepth
	}
}

// LoadConfig reads and decodes the YAML document at path into a fully
// defaulted Config.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}

	var doc rawConfig
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}

	cfg := Config{}

	for _, d := range doc.Directories {
		if d.Path == "" {
			return Config{}, errors.New("directories[].path is required")
		}
		policyStr := d.Policy
		if policyStr == "" {
			policyStr = string(PolicyPrompt)
		}
		policy, err := ParsePolicy(policyStr)
		if err != nil {
			return Config{}, errors.Wrapf(err, "directory %s", d.Path)
		}

		var pattern Pattern
		if d.Pattern != "" {
			pattern, err = ParsePattern(d.Pattern)
			if err != nil {
				return Config{}, errors.Wrapf(err, "directory %s pattern", d.Path)
			}
		}

		subdirs := d.Subdirs
		if subdirs == nil {
			subdirs = true
		}

		cfg.Directories = append(cfg.Directories, DirectoryConfig{
			Path:           readPath(d.Path),
			Priority:       d.Priority,
			IncludeSubdirs: parseSubdirsField(subdirs),
			Policy:         policy,
			Rename:         d.Rename,
			Pattern:        pattern,
			SkipSubdirs:    d.SkipSubdirs,
			Hidden:         d.Hidden,
		})
	}

	if doc.Match == nil {
		cfg.Pattern = &CompositePattern{MergeMode: MergeAll}
	} else {
		cfg.Pattern, err = loadMatchPattern(doc.Match)
		if err != nil {
			return Config{}, errors.Wrap(err, "parsing match pattern")
		}
	}

	level := doc.Logging.Level
	if level == "" {
		level = "INFO"
	}
	cfg.Logging = LoggingConfig{Level: level, File: readPath(doc.Logging.File)}

	algo := doc.Performance.Algorithm
	if algo == "" {
		algo = HashAlgos{}.Default().Algorithm().Name()
	}
	maxThreads := doc.Performance.MaxThreads
	if maxThreads == 0 {
		maxThreads = 1
	}
	chunkSize, _, err := parseSizeField(doc.Performance.ChunkSize)
	if err != nil {
		return Config{}, errors.Wrap(err, "performance.chunk_size")
	}
	maxRead, hasMaxRead, err := parseSizeField(doc.Performance.MaxRead)
	if err != nil {
		return Config{}, errors.Wrap(err, "performance.max_read")
	}
	_ = hasMaxRead
	smallFileSize, hasSmallFileSize, err := parseSizeField(doc.Performance.SmallFileSize)
	if err != nil {
		return Config{}, errors.Wrap(err, "performance.small_file_size")
	}
	cfg.Performance = PerformanceConfig{
		Algorithm:        algo,
		MaxThreads:       maxThreads,
		ChunkSize:        chunkSize,
		MaxRead:          maxRead,
		SmallFileSize:    smallFileSize,
		HasSmallFileSize: hasSmallFileSize,
	}

	confirmDeletion := true
	if doc.General.ConfirmDeletion != nil {
		confirmDeletion = *doc.General.ConfirmDeletion
	}
	cfg.General = GeneralConfig{
		FollowSymlinks:  doc.General.FollowSymlinks,
		DryRun:          doc.General.DryRun,
		ConfirmDeletion: confirmDeletion,
		CacheFile:       readPath(doc.General.CacheFile),
	}

	return cfg, nil
}
