package checker

import "strings"

// Namespace is the code prefix reserved for diagnostics produced by this
// tool. Codes in the namespace are never recorded into a Registry and are
// never suppressible by the directives being validated.
const Namespace = "NQA"

// Formatting codes (emitted by Analyze).
const (
	CodeInlineBadSpace       = "NQA001"
	CodeInlineMissingColon   = "NQA002"
	CodeInlineColonSpace     = "NQA003"
	CodeInlineCodeSpace      = "NQA004"
	CodeInlineDuplicateCodes = "NQA005"

	CodeFileBadSpace         = "NQA011"
	CodeFileMissingSeparator = "NQA012"
	CodeFileSeparatorSpace   = "NQA013"
)

// Cross-reference codes (emitted by Finish).
const (
	CodeNoViolations    = "NQA101"
	CodeNoMatchingCodes = "NQA102"
	CodeUnmatchedCodes  = "NQA103"
	CodeMissingCodes    = "NQA104"
)

// OwnCode reports whether code belongs to the reserved namespace.
func OwnCode(code string) bool {
	return strings.HasPrefix(code, Namespace)
}
