package internals

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNoConfigFile is returned by FindConfigFile when no candidate location
// holds a readable config file.
var ErrNoConfigFile = errors.New("no configuration file found")

// FindConfigFile searches the standard locations for a FileSweep config
// document, in order: the FILESWEEP_CONFIG environment variable, the
// user's config directories, the user's home directory, the current
// directory, and (on systems with /etc) the system config locations.
// Returns ErrNoConfigFile if nothing is found.
func FindConfigFile() (string, error) {
	var candidates []string

	if env := os.Getenv("FILESWEEP_CONFIG"); env != "" {
		candidates = append(candidates, env)
	}

	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()

	if home != "" {
		candidates = append(candidates,
			filepath.Join(home, ".filesweep", "config.yaml"),
			filepath.Join(home, ".filesweep", "config.yml"),
			filepath.Join(home, ".config", "filesweep", "config.yaml"),
			filepath.Join(home, ".config", "filesweep", "config.yml"),
			filepath.Join(home, ".config", "config.yaml"),
			filepath.Join(home, ".config", "config.yml"),
			filepath.Join(home, ".filesweep.yaml"),
			filepath.Join(home, ".filesweep.yml"),
		)
	}

	if cwd != "" {
		candidates = append(candidates,
			filepath.Join(cwd, "filesweep.yaml"),
			filepath.Join(cwd, "filesweep.yml"),
			filepath.Join(cwd, "config.yaml"),
			filepath.Join(cwd, "config.yml"),
		)
	}

	if info, err := os.Stat("/etc"); err == nil && info.IsDir() {
		candidates = append(candidates,
			"/etc/filesweep/filesweep.yaml",
			"/etc/filesweep/filesweep.yml",
			"/etc/filesweep/config.yaml",
			"/etc/filesweep/config.yml",
			"/etc/filesweep.yaml",
			"/etc/filesweep.yml",
		)
	}

	for _, loc := range candidates {
		if info, err := os.Stat(loc); err == nil && !info.IsDir() {
			return loc, nil
		}
	}
	return "", ErrNoConfigFile
}
