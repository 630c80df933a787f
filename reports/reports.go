// Package reports ingests linter diagnostic streams in the conventional
// "path:line:col: CODE message" line format. The stream must come from a
// run with suppression disabled, otherwise the diagnostics this tool
// cross-references against have already been dropped.
package reports

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Report is one diagnostic a linter reported for a source location.
type Report struct {
	Path   string
	Line   int
	Column int // 0 when the stream omits columns
	Code   string
	Text   string
}

// ParseError reports a malformed line in a reports stream.
type ParseError struct {
	Source string // stream name, empty when read from a bare reader
	Line   int    // 1-indexed line number within the stream
	Text   string // the offending line
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Source, e.Line)
	if e.Source == "" {
		location = fmt.Sprintf("line %d", e.Line)
	}

	return fmt.Sprintf("%s: malformed report line %q", location, e.Text)
}

// reportLine matches "path:line:col: CODE message" with an optional column
// and an optional message.
var reportLine = regexp.MustCompile(`^(.+?):([0-9]+):(?:([0-9]+):)?\s*([A-Za-z]+[0-9]+)(?:\s+(.*))?$`)

// Parse reads a reports stream. Blank lines are skipped. Parsing stops at
// the first malformed line with a *ParseError; diagnostics parsed before
// it are discarded.
func Parse(r io.Reader) ([]Report, error) {
	var parsed []Report
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		m := reportLine.FindStringSubmatch(text)
		if m == nil {
			return nil, &ParseError{Line: line, Text: text}
		}

		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, &ParseError{Line: line, Text: text}
		}
		column := 0
		if m[3] != "" {
			if column, err = strconv.Atoi(m[3]); err != nil {
				return nil, &ParseError{Line: line, Text: text}
			}
		}

		parsed = append(parsed, Report{
			Path:   m[1],
			Line:   lineNum,
			Column: column,
			Code:   m[4],
			Text:   m[5],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading reports: %w", err)
	}
	return parsed, nil
}

// Load reads and parses a reports file.
func Load(path string) ([]Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reports file: %w", err)
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Source = path
		}
		return nil, err
	}
	return parsed, nil
}

// ByPath groups reports by their cleaned file path so they can be routed
// to the files being checked.
func ByPath(rs []Report) map[string][]Report {
	grouped := make(map[string][]Report)
	for _, r := range rs {
		key := filepath.Clean(r.Path)
		grouped[key] = append(grouped[key], r)
	}
	return grouped
}
