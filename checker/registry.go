package checker

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/noqacheck/noqacheck/directive"
)

// Registry holds the per-run state the two passes communicate through:
// recorded diagnostic codes keyed by file and line, and the line directives
// awaiting cross-referencing keyed by file. A single Registry may be shared
// by concurrent analyses of distinct files.
type Registry struct {
	mu          sync.RWMutex
	diagnostics map[string]map[int][]string
	directives  map[string][]*directive.Inline
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		diagnostics: make(map[string]map[int][]string),
		directives:  make(map[string][]*directive.Inline),
	}
}

// AddDirective registers a line directive for later cross-referencing.
func (r *Registry) AddDirective(file string, d *directive.Inline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directives[file] = append(r.directives[file], d)
}

// Record stores one reported diagnostic code against a file and line.
// Codes in the reserved namespace are dropped so the tool's own output can
// never suppress or satisfy a directive.
func (r *Registry) Record(file, code string, line int) {
	if OwnCode(code) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	lines, ok := r.diagnostics[file]
	if !ok {
		lines = make(map[int][]string)
		r.diagnostics[file] = lines
	}
	lines[line] = append(lines[line], code)
}

// Diagnostics returns the codes recorded for file on lines start through
// end inclusive, concatenated in line order. Repeats are preserved. The
// result is empty for unknown files and empty ranges.
func (r *Registry) Diagnostics(file string, start, end int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines, ok := r.diagnostics[file]
	if !ok {
		return nil
	}
	var codes []string
	for line := start; line <= end; line++ {
		codes = append(codes, lines[line]...)
	}
	return codes
}

// Directives returns the directives registered for file, sorted by the
// first covered line. The sort is stable: directives sharing a line keep
// registration order. The returned slice is a copy.
func (r *Registry) Directives(file string) []*directive.Inline {
	r.mu.RLock()
	dirs := slices.Clone(r.directives[file])
	r.mu.RUnlock()

	slices.SortStableFunc(dirs, func(a, b *directive.Inline) int {
		if a.StartLine != b.StartLine {
			if a.StartLine < b.StartLine {
				return -1
			}
			return 1
		}
		return 0
	})
	return dirs
}

// Reset removes all state held for file.
func (r *Registry) Reset(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.diagnostics, file)
	delete(r.directives, file)
}
