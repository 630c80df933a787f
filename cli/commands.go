package cli

import (
	"github.com/noqacheck/noqacheck/checker"
	"github.com/noqacheck/noqacheck/config"
)

// Globals defines global flags available to all commands. RequireCodes and
// IncludeName are pointers so an explicit flag can be told apart from an
// absent one when merging with the configuration file.
type Globals struct {
	Config       string `help:"Configuration file path (default: the nearest .noqacheck.toml)." placeholder:"PATH"`
	RequireCodes *bool  `help:"Blanket directives that suppress violations must name their codes."`
	IncludeName  *bool  `help:"Label every message with the tool name."`
	Telemetry    bool   `help:"Show timing telemetry for operations."`
}

// Options resolves the configuration file and merges flag overrides into
// checker options. Flags win over file values; the file is optional unless
// --config names one explicitly.
func (g *Globals) Options() ([]checker.Option, error) {
	var cfg config.Config

	path := g.Config
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	requireCodes := cfg.RequireCodes
	if g.RequireCodes != nil {
		requireCodes = *g.RequireCodes
	}
	includeName := cfg.IncludeName
	if g.IncludeName != nil {
		includeName = *g.IncludeName
	}

	return []checker.Option{
		checker.WithRequireCodes(requireCodes),
		checker.WithIncludeName(includeName),
	}, nil
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Check suppression comments against reported violations."`
	Fix    FixCmd    `cmd:"" help:"Rewrite malformed suppression comments to canonical form."`
	Watch  WatchCmd  `cmd:"" help:"Re-run the check whenever watched files change."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging suppression comments."`
}
