package checker

import (
	"fmt"
	"strings"
)

// A Finding is one kind of diagnostic with the captures that produced it.
// Message is a pure function of the fields: quoted fragments reproduce the
// author's raw spelling, the "e.g." fragment suggests the canonical one.
type Finding interface {
	Code() string
	Message() string
}

// InlineBadSpace reports a line directive whose leading "# noqa" deviates
// from a hash, one space, and the keyword.
type InlineBadSpace struct {
	Suppress  string // raw keyword capture, leading whitespace included
	Separator string
	Codes     string // raw code list capture, may be empty
}

func (f *InlineBadSpace) Code() string { return CodeInlineBadSpace }

func (f *InlineBadSpace) Message() string {
	sepCodes := ""
	if f.Codes != "" {
		sepCodes = ": " + strings.TrimSpace(f.Codes)
	}
	return fmt.Sprintf(`"#%s%s%s" must have a single space after the hash, e.g. "# %s%s"`,
		f.Suppress, f.Separator, f.Codes, strings.TrimSpace(f.Suppress), sepCodes)
}

// InlineMissingColon reports codes that follow the keyword with no colon
// between them.
type InlineMissingColon struct {
	Suppress string
	Codes    string
}

func (f *InlineMissingColon) Code() string { return CodeInlineMissingColon }

func (f *InlineMissingColon) Message() string {
	return fmt.Sprintf(`"#%s%s" must have a colon, e.g. "# %s: %s"`,
		f.Suppress, f.Codes, strings.TrimSpace(f.Suppress), strings.TrimSpace(f.Codes))
}

// InlineColonSpace reports whitespace between the keyword and the colon.
type InlineColonSpace struct {
	Suppress  string
	Separator string
	Codes     string
}

func (f *InlineColonSpace) Code() string { return CodeInlineColonSpace }

func (f *InlineColonSpace) Message() string {
	return fmt.Sprintf(`"#%s%s%s" must not have a space before the colon, e.g. "# %s: %s"`,
		f.Suppress, f.Separator, f.Codes, strings.TrimSpace(f.Suppress), strings.TrimSpace(f.Codes))
}

// InlineCodeSpace reports a code list set off from the colon by anything
// other than a single space.
type InlineCodeSpace struct {
	Suppress  string
	Separator string
	Codes     string
}

func (f *InlineCodeSpace) Code() string { return CodeInlineCodeSpace }

func (f *InlineCodeSpace) Message() string {
	return fmt.Sprintf(`"#%s%s%s" must have at most one space before the codes, e.g. "# %s: %s"`,
		f.Suppress, f.Separator, f.Codes, strings.TrimSpace(f.Suppress), strings.TrimSpace(f.Codes))
}

// InlineDuplicateCodes reports codes that appear more than once in one
// directive, once per repeated occurrence.
type InlineDuplicateCodes struct {
	Suppress   string
	Separator  string
	Codes      string
	Duplicates []string
}

func (f *InlineDuplicateCodes) Code() string { return CodeInlineDuplicateCodes }

func (f *InlineDuplicateCodes) Message() string {
	return fmt.Sprintf(`"#%s%s%s" has duplicate codes, remove %s`,
		f.Suppress, f.Separator, f.Codes, strings.Join(f.Duplicates, ", "))
}

// FileBadSpace reports a file directive whose lead-in deviates from a hash,
// one space, and the keyword.
type FileBadSpace struct {
	Keyword   string // raw lead-in capture, leading whitespace included
	Separator string // raw separator capture, may be empty
	Suppress  string // raw suppress-keyword capture, leading whitespace included
}

func (f *FileBadSpace) Code() string { return CodeFileBadSpace }

func (f *FileBadSpace) Message() string {
	// The suggestion fixes the hash spacing only; the separator is kept
	// as written so the other checks stay independently actionable.
	sep := f.Separator
	if sep == "" {
		sep = ":"
	}
	return fmt.Sprintf(`"#%s%s%s" must have a single space after the hash, e.g. "# %s%s%s"`,
		f.Keyword, f.Separator, f.Suppress, strings.TrimSpace(f.Keyword), sep, f.Suppress)
}

// FileMissingSeparator reports a file directive with no colon or equals
// between the keywords.
type FileMissingSeparator struct {
	Keyword  string
	Suppress string
}

func (f *FileMissingSeparator) Code() string { return CodeFileMissingSeparator }

func (f *FileMissingSeparator) Message() string {
	return fmt.Sprintf(`"#%s%s" must have a colon or equals, e.g. "# %s:%s"`,
		f.Keyword, f.Suppress, strings.TrimSpace(f.Keyword), f.Suppress)
}

// FileSeparatorSpace reports whitespace between the keyword and the
// separator.
type FileSeparatorSpace struct {
	Keyword   string
	Separator string
	Suppress  string
}

func (f *FileSeparatorSpace) Code() string { return CodeFileSeparatorSpace }

func (f *FileSeparatorSpace) Message() string {
	name := "equals"
	if strings.Contains(f.Separator, ":") {
		name = "colon"
	}
	return fmt.Sprintf(`"#%s%s%s" must not have a space before the %s, e.g. "# %s%s%s"`,
		f.Keyword, f.Separator, f.Suppress, name,
		strings.TrimSpace(f.Keyword), strings.TrimSpace(f.Separator), f.Suppress)
}

// NoViolations reports a blanket directive whose covered lines produced no
// diagnostics at all.
type NoViolations struct {
	Text string
}

func (f *NoViolations) Code() string { return CodeNoViolations }

func (f *NoViolations) Message() string {
	return fmt.Sprintf(`"%s" has no violations`, f.Text)
}

// NoMatchingCodes reports a directive none of whose declared codes were
// observed on its covered lines.
type NoMatchingCodes struct {
	Text string
}

func (f *NoMatchingCodes) Code() string { return CodeNoMatchingCodes }

func (f *NoMatchingCodes) Message() string {
	return fmt.Sprintf(`"%s" has no matching violations`, f.Text)
}

// UnmatchedCodes reports declared codes that were not observed, while at
// least one other declared code was.
type UnmatchedCodes struct {
	Text      string
	Unmatched []string // declaration order
}

func (f *UnmatchedCodes) Code() string { return CodeUnmatchedCodes }

func (f *UnmatchedCodes) Message() string {
	plural := "code"
	if len(f.Unmatched) > 1 {
		plural = "codes"
	}
	return fmt.Sprintf(`"%s" has unmatched %s, remove %s`,
		f.Text, plural, strings.Join(f.Unmatched, ", "))
}

// MissingCodes reports a blanket directive that suppressed real diagnostics
// while the require-codes policy is in force.
type MissingCodes struct {
	Text     string
	Suppress string
	Observed []string // distinct, sorted
}

func (f *MissingCodes) Code() string { return CodeMissingCodes }

func (f *MissingCodes) Message() string {
	return fmt.Sprintf(`"%s" must have codes, e.g. "# %s: %s"`,
		f.Text, strings.TrimSpace(f.Suppress), strings.Join(f.Observed, ", "))
}
