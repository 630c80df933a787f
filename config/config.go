// Package config loads tool options from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultName is the configuration file name searched for by Find.
const DefaultName = ".noqacheck.toml"

// Config holds the file-configurable options. CLI flags take precedence
// over values loaded from a file.
type Config struct {
	RequireCodes bool `toml:"require-codes"`
	IncludeName  bool `toml:"include-name"`
}

// Error wraps a configuration problem with the file it came from.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads and decodes a configuration file. A missing file is an error:
// Load is for explicitly named paths, use Find for discovery.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &Error{Path: path, Err: fmt.Errorf("unknown option %q", undecoded[0].String())}
	}
	return &cfg, nil
}

// Find walks from startDir upward looking for DefaultName. It returns the
// path of the first hit; finding nothing is not an error.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, DefaultName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
