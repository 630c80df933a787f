package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/noqacheck/noqacheck/output"
)

// formatTimingTree outputs the timing tree in a hierarchical format.
// Example output:
//
//	noqacheck.check: 125ms
//	├─ load sources: 85ms
//	│  ├─ checker.analyze (app.py): 45ms
//	│  └─ parse reports: 5ms
//	└─ cross-reference: 40ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	duration := root.end.Sub(root.start)

	if styles != nil {
		name := styles.Keyword(root.name)
		_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(duration))
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, formatDuration(duration))
	}

	for i, child := range root.children {
		isLast := i == len(root.children)-1
		formatNode(w, child, "", isLast, styles)
	}
}

// formatNode recursively formats a node and its children.
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	duration := node.end.Sub(node.start)

	// Operations at or above 100ms get highlighted
	isSlowOperation := duration >= 100*time.Millisecond

	var branch, extension string
	if isLast {
		branch = "└─ "
		extension = "   "
	} else {
		branch = "├─ "
		extension = "│  "
	}

	if styles != nil {
		treeChars := styles.Dim(prefix + branch)
		timing := styles.Timing(formatDuration(duration), isSlowOperation)
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", treeChars, node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(duration))
	}

	childPrefix := prefix + extension
	for i, child := range node.children {
		childIsLast := i == len(node.children)-1
		formatNode(w, child, childPrefix, childIsLast, styles)
	}
}

// formatDuration formats a duration for display.
// Shows milliseconds for < 1s, seconds for >= 1s.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
