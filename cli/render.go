package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/noqacheck/noqacheck/checker"
)

var (
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// DiagnosticRenderer renders diagnostics with the offending source line and
// a caret under the reported column.
type DiagnosticRenderer struct {
	lines []string
}

// NewDiagnosticRenderer creates a renderer over the file's source content.
func NewDiagnosticRenderer(source []byte) *DiagnosticRenderer {
	return &DiagnosticRenderer{lines: strings.Split(string(source), "\n")}
}

// Render formats one diagnostic. The caret offset is measured in display
// width so wide runes in the source line do not skew it.
func (r *DiagnosticRenderer) Render(d checker.Diagnostic) string {
	var buf strings.Builder
	buf.WriteString(d.String())

	if d.Pos.Line < 1 || d.Pos.Line > len(r.lines) {
		return buf.String()
	}
	line := strings.TrimRight(r.lines[d.Pos.Line-1], "\r")

	buf.WriteByte('\n')
	buf.WriteString("   ")
	buf.WriteString(contextStyle.Render(line))
	buf.WriteByte('\n')

	col := d.Pos.Column
	if col > len(line)+1 {
		col = len(line) + 1
	}
	buf.WriteString("   ")
	buf.WriteString(strings.Repeat(" ", runewidth.StringWidth(line[:col-1])))
	buf.WriteString(caretStyle.Render("^"))

	return buf.String()
}
