package directive

// Suppression comments are matched against two grammars each: a loose
// detection grammar that recognizes an attempted directive and captures its
// parts even when malformed, and a strict canonical grammar that accepts the
// single correct spelling. A comment that only the detection grammar accepts
// still produces a structured directive, so formatting checks can say what
// the author meant.

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/noqacheck/noqacheck/scanner"
)

var (
	// File-scope detection, anchored at the start of the comment text.
	fileDetect = regexp.MustCompile(`(?i)^\s*#(?P<keyword>\s*flake8)(?P<sep>\s*[:=])?(?P<suppress>(?:\b|\s*)noqa)`)

	// File-scope canonical: exactly one space after the hash, separator
	// abutting the keyword. Prefix match; trailing text is allowed.
	fileCanon = regexp.MustCompile(`(?i)^\s*# flake8[:=]\s*noqa`)

	// Line-scope detection, searched anywhere in the comment text.
	inlineDetect = regexp.MustCompile(`(?i)#(?P<suppress>\s*noqa)\b(?P<sep>\s*:)?(?P<codes>\s*(?:[a-z]+[0-9]+(?:[,\s]+)?)+)?`)

	// Line-scope canonical: exactly one space after the hash; codes, when
	// present, separated by a colon and at most one space.
	inlineCanon = regexp.MustCompile(`(?i)# noqa(?::\s?(?:[a-z]+[0-9]+(?:[,\s]+)?)+)?`)
)

// File is a file-scope suppression directive ("# flake8: noqa").
// File directives are not code-specific and never take part in
// cross-referencing; a malformed one only yields formatting diagnostics.
type File struct {
	Keyword   string // lead-in capture, including any leading whitespace
	Separator string // ":" or "=" capture, including any leading whitespace; may be empty
	Suppress  string // suppress keyword capture, including any leading whitespace
	Canonical bool
	Pos       scanner.Position
	Match     scanner.Span // matched byte range within the comment text
}

// MatchFile matches a comment against the file-scope grammar.
// Returns nil when the comment is not an attempted file-scope directive.
func MatchFile(c scanner.Comment) *File {
	m := fileDetect.FindStringSubmatchIndex(c.Text)
	if m == nil {
		return nil
	}
	// The detection grammar tolerates whitespace before the hash; the match
	// span starts at the hash itself so it frames exactly what Text returns.
	start := m[0] + strings.IndexByte(c.Text[m[0]:m[1]], '#')
	return &File{
		Keyword:   group(c.Text, m, fileDetect.SubexpIndex("keyword")),
		Separator: group(c.Text, m, fileDetect.SubexpIndex("sep")),
		Suppress:  group(c.Text, m, fileDetect.SubexpIndex("suppress")),
		Canonical: fileCanon.MatchString(c.Text),
		Pos:       c.Pos,
		Match:     scanner.Span{Start: start, End: m[1]},
	}
}

// Text reconstructs the directive as written.
func (f *File) Text() string {
	return "#" + f.Keyword + f.Separator + f.Suppress
}

// CanonicalText returns the canonical spelling of the directive, keeping
// the author's case.
func (f *File) CanonicalText() string {
	sep := strings.TrimSpace(f.Separator)
	if sep == "" {
		sep = ":"
	}
	return "# " + strings.TrimSpace(f.Keyword) + sep + f.Suppress
}

// Inline is a line-scope suppression directive ("# noqa" or
// "# noqa: E225, E261"), covering the inclusive line span
// [StartLine, EndLine].
type Inline struct {
	Suppress   string   // suppress keyword capture, including any leading whitespace
	Separator  string   // colon capture, including any leading whitespace; may be empty
	CodesText  string   // raw codes capture; empty for a blanket directive
	Codes      []string // parsed codes in order of appearance, repeats included
	Duplicates []string // one entry per repeated occurrence, in source order
	StartLine  int
	EndLine    int
	Canonical  bool
	Pos        scanner.Position
	Match      scanner.Span // matched byte range within the comment text
}

// MatchInline matches a comment against the line-scope grammar.
// Returns nil when the comment is not an attempted line-scope directive.
func MatchInline(c scanner.Comment) *Inline {
	m := inlineDetect.FindStringSubmatchIndex(c.Text)
	if m == nil {
		return nil
	}

	codesText := group(c.Text, m, inlineDetect.SubexpIndex("codes"))
	codes, duplicates := ParseCodes(codesText)

	return &Inline{
		Suppress:   group(c.Text, m, inlineDetect.SubexpIndex("suppress")),
		Separator:  group(c.Text, m, inlineDetect.SubexpIndex("sep")),
		CodesText:  codesText,
		Codes:      codes,
		Duplicates: duplicates,
		StartLine:  c.StmtLine,
		EndLine:    c.Pos.Line,
		Canonical:  inlineCanon.MatchString(c.Text),
		Pos:        c.Pos,
		Match:      scanner.Span{Start: m[0], End: m[1]},
	}
}

// Text reconstructs the directive as written.
func (d *Inline) Text() string {
	return "#" + d.Suppress + d.Separator + d.CodesText
}

// Blanket returns true when the directive declares no codes and so
// suppresses everything on its covered lines.
func (d *Inline) Blanket() bool {
	return len(d.Codes) == 0
}

// Declared returns the unique declared codes in first-occurrence order.
func (d *Inline) Declared() []string {
	if len(d.Codes) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(d.Codes))
	declared := make([]string, 0, len(d.Codes))
	for _, code := range d.Codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		declared = append(declared, code)
	}
	return declared
}

// CanonicalText returns the canonical spelling of the directive, keeping
// the author's case for the keyword and codes and dropping duplicates.
func (d *Inline) CanonicalText() string {
	text := "# " + strings.TrimSpace(d.Suppress)
	if declared := d.Declared(); len(declared) > 0 {
		text += ": " + strings.Join(declared, ", ")
	}
	return text
}

// ParseCodes splits a raw code-list capture on commas and whitespace.
// Blank entries are dropped. duplicates gets one entry for every repeated
// occurrence of a code already seen, in source order.
func ParseCodes(codesText string) (codes, duplicates []string) {
	if codesText == "" {
		return nil, nil
	}

	fields := strings.FieldsFunc(codesText, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	seen := make(map[string]bool, len(fields))
	for _, code := range fields {
		codes = append(codes, code)
		if seen[code] {
			duplicates = append(duplicates, code)
		} else {
			seen[code] = true
		}
	}
	return codes, duplicates
}

// group extracts a submatch by index from FindStringSubmatchIndex output.
func group(text string, m []int, idx int) string {
	if idx < 0 || m[2*idx] < 0 {
		return ""
	}
	return text[m[2*idx]:m[2*idx+1]]
}
