package checker

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/noqacheck/noqacheck/scanner"
)

// Diagnostic is one finding bound to a source position. Code comparison
// anywhere in the system is exact and case-sensitive.
type Diagnostic struct {
	Pos     scanner.Position
	Code    string
	Message string
}

// String renders the diagnostic in the conventional line format.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", d.Pos.Filename, d.Pos.Line, d.Pos.Column, d.Code, d.Message)
}

// Sort orders diagnostics by line, then column. The sort is stable, so
// diagnostics emitted at the same position keep their emission order.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if a.Pos.Line != b.Pos.Line {
			if a.Pos.Line < b.Pos.Line {
				return -1
			}
			return 1
		}
		if a.Pos.Column != b.Pos.Column {
			if a.Pos.Column < b.Pos.Column {
				return -1
			}
			return 1
		}
		return 0
	})
}
