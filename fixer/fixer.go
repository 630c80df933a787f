// Package fixer rewrites malformed suppression directives into their
// canonical spelling.
//
// A directive is rewritten exactly when the formatting pass would flag it,
// so fixing and checking always agree: spelling that yields no diagnostics
// is left alone even when it is not byte-for-byte canonical ("# noqa:E225"
// stays as written). Cross-reference findings are never fixed because the
// intent behind a stale suppression is unknowable.
package fixer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/noqacheck/noqacheck/checker"
	"github.com/noqacheck/noqacheck/directive"
	"github.com/noqacheck/noqacheck/scanner"
	"github.com/noqacheck/noqacheck/telemetry"
)

// Edit is one planned rewrite of a malformed directive.
type Edit struct {
	Pos    scanner.Position // where the directive starts
	Before string           // spelling as written
	After  string           // replacement text

	// absolute byte range replaced in the source
	start int
	end   int
}

// Fixer plans and applies canonical rewrites of suppression directives.
type Fixer struct {
	normalizeCase bool
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithNormalizeCase lowercases the suppress keyword when rewriting.
// Declared codes keep their case either way.
func WithNormalizeCase(normalize bool) Option {
	return func(f *Fixer) { f.normalizeCase = normalize }
}

// New returns a Fixer.
func New(opts ...Option) *Fixer {
	f := &Fixer{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Edits scans src and returns the planned rewrites in source order.
// Rewrites drop duplicate codes and normalize spacing around the hash,
// the separator, and the code list; trailing comment text survives.
func (f *Fixer) Edits(ctx context.Context, filename string, src []byte) ([]Edit, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("fixer.plan (%s)", filename))
	defer timer.End()

	var edits []Edit
	for _, com := range scanner.New(filename, src).Scan() {
		select {
		case <-ctx.Done():
			return edits, ctx.Err()
		default:
		}

		if fd := directive.MatchFile(com); fd != nil && len(checker.FileFindings(fd)) > 0 {
			after := fd.CanonicalText()
			if f.normalizeCase {
				after = strings.ToLower(after)
			}
			edits = append(edits, newEdit(src, com, fd.Match, fd.Text(), after))
		}
		if id := directive.MatchInline(com); id != nil && len(checker.InlineFindings(id)) > 0 {
			after := id.CanonicalText()
			if f.normalizeCase {
				after = lowerKeyword(after)
			}
			edits = append(edits, newEdit(src, com, id.Match, id.Text(), after))
		}
	}
	return edits, nil
}

// Fix rewrites every flagged directive in src and returns the new source
// and the rewrite count. The returned slice is src itself when nothing
// needed rewriting.
func (f *Fixer) Fix(ctx context.Context, filename string, src []byte) ([]byte, int, error) {
	edits, err := f.Edits(ctx, filename, src)
	if err != nil {
		return nil, 0, err
	}
	if len(edits) == 0 {
		return src, 0, nil
	}
	return Apply(src, edits), len(edits), nil
}

// Apply splices the edits into src. Edits must come from Edits, which
// returns them in ascending, non-overlapping source order.
func Apply(src []byte, edits []Edit) []byte {
	var out bytes.Buffer
	out.Grow(len(src))

	last := 0
	for _, e := range edits {
		out.Write(src[last:e.start])
		out.WriteString(e.After)
		last = e.end
	}
	out.Write(src[last:])
	return out.Bytes()
}

// newEdit plans one splice. When the directive's greedy code list match
// swallowed the space before trailing prose, a glue space keeps the prose
// separated in the rewritten comment.
func newEdit(src []byte, com scanner.Comment, span scanner.Span, before, after string) Edit {
	start := com.Span.Start + span.Start
	end := com.Span.Start + span.End
	if end < len(src) && needsGlue(src[end]) {
		after += " "
	}
	return Edit{
		Pos: scanner.Position{
			Filename: com.Pos.Filename,
			Offset:   start,
			Line:     com.Pos.Line,
			Column:   com.Pos.Column + span.Start,
		},
		Before: before,
		After:  after,
		start:  start,
		end:    end,
	}
}

func needsGlue(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return false
	}
	return true
}

// lowerKeyword lowercases a line directive's keyword without touching the
// code list after the colon.
func lowerKeyword(text string) string {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return strings.ToLower(text[:i]) + text[i:]
	}
	return strings.ToLower(text)
}
