// Package format renders diagnostics for terminal or machine consumption.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/noqacheck/noqacheck/checker"
)

// Formatter renders a diagnostic list to a writer.
type Formatter interface {
	Format(w io.Writer, diags []checker.Diagnostic) error
}

// ByName returns the formatter a --format flag value names.
func ByName(name string) (Formatter, error) {
	switch name {
	case "text":
		return Text{}, nil
	case "json":
		return JSON{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

// Text renders one "path:line:column: CODE message" line per diagnostic,
// the layout flake8 itself uses.
type Text struct{}

// Format writes the diagnostics to w.
func (Text) Format(w io.Writer, diags []checker.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// JSON renders the diagnostics as an indented JSON array, one object per
// diagnostic. No diagnostics renders as an empty array, not null.
type JSON struct{}

// Format writes the diagnostics to w.
func (JSON) Format(w io.Writer, diags []checker.Diagnostic) error {
	type object struct {
		Path    string `json:"path"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	objects := make([]object, 0, len(diags))
	for _, d := range diags {
		objects = append(objects, object{
			Path:    d.Pos.Filename,
			Line:    d.Pos.Line,
			Column:  d.Pos.Column,
			Code:    d.Code,
			Message: d.Message,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}
