// Package loader reads the inputs of a check run: Python source files and
// the optional linter reports stream they are validated against.
//
// Source paths are read from disk, with "-" standing for stdin. The
// reports stream likewise comes from a file or from stdin, but sources and
// reports cannot both be read from stdin in one run. Paths naming the same
// file twice are loaded once.
//
// Example usage:
//
//	l := loader.New(loader.WithReports("lint.txt"))
//	bundle, err := l.Load(ctx, "app.py", "pkg/util.py")
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/noqacheck/noqacheck/reports"
	"github.com/noqacheck/noqacheck/telemetry"
)

// StdinName is the file name given to source read from stdin. Reports that
// should route to it must use the same name.
const StdinName = "stdin"

// Source is one loaded source file.
type Source struct {
	Name string
	Data []byte
}

// Bundle is everything a check run consumes.
type Bundle struct {
	Sources []Source
	Reports []reports.Report
}

// Loader reads sources and reports. Configure it with functional options
// passed to New:
//
//	l := New(WithReports("-"))
type Loader struct {
	reports string
	stdin   io.Reader
}

// Option configures how inputs are loaded.
type Option func(*Loader)

// WithReports names the linter reports stream to load alongside the
// sources. "-" reads the stream from stdin.
func WithReports(path string) Option {
	return func(l *Loader) {
		l.reports = path
	}
}

// WithStdin substitutes the reader used for "-" inputs. The default is
// os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		stdin: os.Stdin,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads every source path and, when configured, the reports stream.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Bundle, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.load (%d files)", len(paths)))
	defer timer.End()

	bundle := &Bundle{}
	visited := make(map[string]bool)
	stdinUsed := false

	for _, path := range paths {
		// Check for cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if path == "-" {
			if stdinUsed {
				continue
			}
			stdinUsed = true

			data, err := io.ReadAll(l.stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			bundle.Sources = append(bundle.Sources, Source{Name: StdinName, Data: data})
			continue
		}

		// Deduplicate paths naming the same file
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", path, err)
		}
		if visited[abs] {
			continue
		}
		visited[abs] = true

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		bundle.Sources = append(bundle.Sources, Source{Name: path, Data: data})
	}

	if l.reports == "" {
		return bundle, nil
	}

	rtimer := timer.Child(fmt.Sprintf("reports (%s)", l.reports))
	defer rtimer.End()

	if l.reports == "-" {
		if stdinUsed {
			return nil, errors.New("sources and reports cannot both come from stdin")
		}
		rs, err := reports.Parse(l.stdin)
		if err != nil {
			var perr *reports.ParseError
			if errors.As(err, &perr) {
				perr.Source = StdinName
			}
			return nil, err
		}
		bundle.Reports = rs
		return bundle, nil
	}

	rs, err := reports.Load(l.reports)
	if err != nil {
		return nil, err
	}
	bundle.Reports = rs
	return bundle, nil
}
