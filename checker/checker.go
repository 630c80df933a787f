// Package checker validates noqa-style suppression comments in two passes:
// a formatting pass over each source file's comments, and a cross-reference
// pass matching every line directive against the diagnostics recorded for
// the lines it covers.
//
// The passes communicate through a Registry so completeness comes before
// judgment: Analyze registers directives and returns formatting
// diagnostics, Record stores externally reported diagnostics, and Finish
// renders the cross-reference verdicts and clears the file's state. One
// shared Registry supports concurrent analyses of distinct files.
package checker

import (
	"context"
	"fmt"

	"github.com/noqacheck/noqacheck/directive"
	"github.com/noqacheck/noqacheck/scanner"
	"github.com/noqacheck/noqacheck/telemetry"
)

// nameLabel is inserted before the message text when the include-name
// option is on.
const nameLabel = "(noqacheck)"

// Checker runs the validation passes against a registry.
type Checker struct {
	registry     *Registry
	requireCodes bool
	includeName  bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithRequireCodes makes blanket directives that suppress real diagnostics
// report NQA104 instead of passing silently.
func WithRequireCodes(require bool) Option {
	return func(c *Checker) { c.requireCodes = require }
}

// WithIncludeName labels every message with the tool name.
func WithIncludeName(include bool) Option {
	return func(c *Checker) { c.includeName = include }
}

// WithRegistry substitutes a caller-owned registry, usually one shared by
// several files checked concurrently.
func WithRegistry(r *Registry) Option {
	return func(c *Checker) { c.registry = r }
}

// New returns a Checker with its own empty registry unless WithRegistry
// overrides it.
func New(opts ...Option) *Checker {
	c := &Checker{registry: NewRegistry()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze scans src for comments and runs the formatting pass. Detected
// line directives are registered for later cross-referencing, canonical or
// not. The returned diagnostics cover formatting only; they are never
// recorded into the registry.
func (c *Checker) Analyze(ctx context.Context, filename string, src []byte) ([]Diagnostic, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("checker.analyze (%s)", filename))
	defer timer.End()

	var diags []Diagnostic
	for _, com := range scanner.New(filename, src).Scan() {
		select {
		case <-ctx.Done():
			return diags, ctx.Err()
		default:
		}

		diags = append(diags, c.checkFile(com)...)
		diags = append(diags, c.checkInline(filename, com)...)
	}
	return diags, nil
}

// Record stores one externally reported diagnostic against filename and
// line. Codes in the reserved namespace are dropped.
func (c *Checker) Record(filename, code string, line int) {
	c.registry.Record(filename, code, line)
}

// checkFile validates the spelling of a file directive. File directives
// suppress entire files, so they are never cross-referenced; a canonical
// one produces nothing at all.
func (c *Checker) checkFile(com scanner.Comment) []Diagnostic {
	fd := directive.MatchFile(com)
	if fd == nil {
		return nil
	}

	var diags []Diagnostic
	for _, f := range FileFindings(fd) {
		diags = append(diags, c.diagnostic(fd.Pos, f))
	}
	return diags
}

// checkInline validates the spelling of a line directive and registers it.
// Registration happens before any judgment so a malformed directive still
// takes part in the cross-reference pass.
func (c *Checker) checkInline(filename string, com scanner.Comment) []Diagnostic {
	id := directive.MatchInline(com)
	if id == nil {
		return nil
	}
	c.registry.AddDirective(filename, id)

	var diags []Diagnostic
	for _, f := range InlineFindings(id) {
		diags = append(diags, c.diagnostic(id.Pos, f))
	}
	return diags
}

// diagnostic binds a finding to a position. All Diagnostic construction
// funnels through here so the include-name label is applied uniformly.
func (c *Checker) diagnostic(pos scanner.Position, f Finding) Diagnostic {
	message := f.Message()
	if c.includeName {
		message = nameLabel + " " + message
	}
	return Diagnostic{Pos: pos, Code: f.Code(), Message: message}
}
