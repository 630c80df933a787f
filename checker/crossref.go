package checker

import (
	"golang.org/x/exp/slices"

	"github.com/noqacheck/noqacheck/directive"
)

// Finish runs the cross-reference pass for filename and clears the file's
// registry state. Call it once per file, after every diagnostic for the
// file has been recorded; directives are judged in ascending order of their
// first covered line.
func (c *Checker) Finish(filename string) []Diagnostic {
	var diags []Diagnostic
	for _, d := range c.registry.Directives(filename) {
		observed := c.registry.Diagnostics(filename, d.StartLine, d.EndLine)
		if f := c.classify(d, observed); f != nil {
			diags = append(diags, c.diagnostic(d.Pos, f))
		}
	}
	c.registry.Reset(filename)
	return diags
}

// classify applies the cross-reference rules to one directive. It returns
// nil when the directive is in legitimate use.
func (c *Checker) classify(d *directive.Inline, observed []string) Finding {
	declared := d.Declared()
	if len(declared) > 0 {
		matched := make(map[string]bool)
		for _, code := range observed {
			if slices.Contains(declared, code) {
				matched[code] = true
			}
		}
		if len(matched) == 0 {
			return &NoMatchingCodes{Text: d.Text()}
		}
		if len(matched) < len(declared) {
			unmatched := make([]string, 0, len(declared)-len(matched))
			for _, code := range declared {
				if !matched[code] {
					unmatched = append(unmatched, code)
				}
			}
			return &UnmatchedCodes{Text: d.Text(), Unmatched: unmatched}
		}
		return nil
	}

	// Blanket directive.
	if len(observed) == 0 {
		return &NoViolations{Text: d.Text()}
	}
	if c.requireCodes {
		return &MissingCodes{
			Text:     d.Text(),
			Suppress: d.Suppress,
			Observed: distinctSorted(observed),
		}
	}
	return nil
}

// distinctSorted returns the unique codes in lexical order.
func distinctSorted(codes []string) []string {
	out := slices.Clone(codes)
	slices.Sort(out)
	return slices.Compact(out)
}
