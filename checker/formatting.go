package checker

import (
	"regexp"
	"strings"

	"github.com/noqacheck/noqacheck/directive"
)

// singleSpace matches captures that start with exactly one space followed
// by a non-whitespace byte.
var singleSpace = regexp.MustCompile(`^ [^\s]`)

// FileFindings returns the formatting findings for a file directive, in
// emission order. A canonical directive yields none; otherwise the hash
// spacing and separator checks run independently, so one directive can
// yield two findings.
func FileFindings(d *directive.File) []Finding {
	if d.Canonical {
		return nil
	}

	var findings []Finding
	if !singleSpace.MatchString(d.Keyword) {
		findings = append(findings, &FileBadSpace{
			Keyword:   d.Keyword,
			Separator: d.Separator,
			Suppress:  d.Suppress,
		})
	}
	if d.Separator == "" {
		findings = append(findings, &FileMissingSeparator{
			Keyword:  d.Keyword,
			Suppress: d.Suppress,
		})
	} else if !strings.HasPrefix(d.Separator, ":") && !strings.HasPrefix(d.Separator, "=") {
		findings = append(findings, &FileSeparatorSpace{
			Keyword:   d.Keyword,
			Separator: d.Separator,
			Suppress:  d.Suppress,
		})
	}
	return findings
}

// InlineFindings returns the formatting findings for a line directive, in
// emission order. The code list checks run whenever codes were captured,
// even against an otherwise canonical directive.
func InlineFindings(d *directive.Inline) []Finding {
	var findings []Finding
	if !d.Canonical {
		findings = append(findings, &InlineBadSpace{
			Suppress:  d.Suppress,
			Separator: d.Separator,
			Codes:     d.CodesText,
		})
	}

	if d.CodesText == "" {
		return findings
	}
	if d.Separator == "" {
		findings = append(findings, &InlineMissingColon{
			Suppress: d.Suppress,
			Codes:    d.CodesText,
		})
	} else if !strings.HasPrefix(d.Separator, ":") {
		findings = append(findings, &InlineColonSpace{
			Suppress:  d.Suppress,
			Separator: d.Separator,
			Codes:     d.CodesText,
		})
	}
	if d.CodesText != strings.TrimSpace(d.CodesText) && !singleSpace.MatchString(d.CodesText) {
		findings = append(findings, &InlineCodeSpace{
			Suppress:  d.Suppress,
			Separator: d.Separator,
			Codes:     d.CodesText,
		})
	}
	if len(d.Duplicates) > 0 {
		findings = append(findings, &InlineDuplicateCodes{
			Suppress:   d.Suppress,
			Separator:  d.Separator,
			Codes:      d.CodesText,
			Duplicates: d.Duplicates,
		})
	}
	return findings
}
