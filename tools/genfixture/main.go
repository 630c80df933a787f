// Large Python Fixture Generator
//
// This tool generates a large Python source file for performance testing and
// profiling. It mixes plain statements, ordinary comments, strings that look
// like directives, and noqa directives in every spelling the checker
// recognizes, and can emit a matching flake8-style reports stream for the
// cross-reference pass.
//
// Usage:
//
//	go run main.go > large.py
//	go run main.go 5000000 > large.py                # Specify target size in bytes
//	go run main.go 5000000 large.reports > large.py  # Also write a reports stream
//
// The reports stream refers to the source as "large.py", so save the
// generated file under that name when cross-referencing:
//
//	noqacheck check large.py --reports large.reports
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 5 * 1024 * 1024 // 5MB
	sourceName        = "large.py"
)

var (
	names = []string{
		"result", "total", "count", "index", "payload",
		"buffer", "cursor", "window", "offset", "cache",
		"handle", "record", "batch", "queue", "token",
	}

	values = []string{
		"0", "1", "42", "[]", "{}", "None", "True",
		`"ready"`, "load()", "next(it)", "compute(a, b)",
	}

	calls = []string{
		"process", "validate", "transform", "flush",
		"resolve", "dispatch", "collect", "merge",
	}

	commentTexts = []string{
		"refresh the cache first", "guard against empty input",
		"see issue 482", "slow path", "keep ordering stable",
		"legacy format", "retry once",
	}

	reasons = []string{
		"long url", "generated code", "vendored", "matches upstream",
	}

	codes = []string{
		"E101", "E225", "E302", "E501", "E741",
		"W291", "W605", "F401", "F811", "F841", "C901",
	}
)

// report is one reports-stream line pending emission, positioned relative
// to the first line of the chunk it belongs to.
type report struct {
	lineOffset int
	column     int
	code       string
	text       string
}

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}
	reportsPath := ""
	if len(os.Args) > 2 {
		reportsPath = os.Args[2]
	}

	var reportsOut strings.Builder

	bytesWritten, lineNo := writeHeader()
	lineNo++ // next line to be written
	directiveCount := 0
	reportCount := 0

	for bytesWritten < targetSize {
		var chunk string
		var reps []report

		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - plain statement
			chunk = generateStatement()

		case 3: // 10% - reported violation left unsuppressed
			chunk, reps = generateViolation()

		case 4: // 10% - statement with an ordinary comment
			chunk = generateCommented()

		case 5, 6: // 20% - canonical directive suppressing a reported violation
			chunk, reps = generateSuppressed()
			directiveCount++

		case 7: // 10% - canonical directive with nothing to suppress
			chunk = generateStale()
			directiveCount++

		case 8: // 10% - malformed directive spelling
			chunk = generateMalformed()
			directiveCount++

		case 9: // 10% - strings and blocks that must not scan as directives
			chunk = generateDecoy()
		}

		fmt.Print(chunk)
		for _, r := range reps {
			fmt.Fprintf(&reportsOut, "%s:%d:%d: %s %s\n", sourceName, lineNo+r.lineOffset, r.column, r.code, r.text)
			reportCount++
		}
		bytesWritten += len(chunk)
		lineNo += strings.Count(chunk, "\n")
	}

	if reportsPath != "" {
		if err := os.WriteFile(reportsPath, []byte(reportsOut.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write reports: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes over %d lines with %d directives and %d reports\n",
		bytesWritten, lineNo-1, directiveCount, reportCount)
}

func writeHeader() (int, int) {
	var buf strings.Builder
	fmt.Fprintln(&buf, "# Large Python file for performance testing.")
	fmt.Fprintln(&buf, "# Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "import json")
	fmt.Fprintln(&buf, "import os")
	fmt.Fprintln(&buf, "import sys")
	fmt.Fprintln(&buf)

	out := buf.String()
	fmt.Print(out)
	return len(out), strings.Count(out, "\n")
}

func generateStatement() string {
	name := names[rand.Intn(len(names))]
	value := values[rand.Intn(len(values))]

	if rand.Intn(4) == 0 {
		call := calls[rand.Intn(len(calls))]
		return fmt.Sprintf("if %s:\n    %s = %s(%s)\n", name, name, call, value)
	}
	return fmt.Sprintf("%s = %s\n", name, value)
}

func generateViolation() (string, []report) {
	name := names[rand.Intn(len(names))]
	value := values[rand.Intn(len(values))]

	switch rand.Intn(4) {
	case 0:
		stmt := fmt.Sprintf("%s=%s", name, value)
		return stmt + "\n", []report{{0, len(name) + 1, "E225", "missing whitespace around operator"}}

	case 1:
		stmt := fmt.Sprintf("%s = %q", name, strings.Repeat("x", 90))
		return stmt + "\n", []report{{0, 80, "E501", fmt.Sprintf("line too long (%d > 79 characters)", len(stmt))}}

	case 2:
		stmt := fmt.Sprintf("l = %s", value)
		return stmt + "\n", []report{{0, 1, "E741", "ambiguous variable name 'l'"}}

	default:
		stmt := fmt.Sprintf("%s = %s ", name, value)
		return stmt + "\n", []report{{0, len(stmt), "W291", "trailing whitespace"}}
	}
}

func generateCommented() string {
	name := names[rand.Intn(len(names))]
	value := values[rand.Intn(len(values))]
	text := commentTexts[rand.Intn(len(commentTexts))]

	return fmt.Sprintf("%s = %s  # %s\n", name, value, text)
}

func generateSuppressed() (string, []report) {
	name := names[rand.Intn(len(names))]
	value := values[rand.Intn(len(values))]

	switch rand.Intn(4) {
	case 0:
		line := fmt.Sprintf("%s=%s  # noqa: E225", name, value)
		if rand.Intn(4) == 0 {
			line += " " + reasons[rand.Intn(len(reasons))]
		}
		return line + "\n", []report{{0, len(name) + 1, "E225", "missing whitespace around operator"}}

	case 1:
		line := fmt.Sprintf("%s = %q  # noqa: E501", name, strings.Repeat("x", 90))
		return line + "\n", []report{{0, 80, "E501", fmt.Sprintf("line too long (%d > 79 characters)", len(line))}}

	case 2: // two violations suppressed by one directive
		line := fmt.Sprintf("l=%q  # noqa: E225, E501", strings.Repeat("x", 90))
		return line + "\n", []report{
			{0, 2, "E225", "missing whitespace around operator"},
			{0, 80, "E501", fmt.Sprintf("line too long (%d > 79 characters)", len(line))},
		}

	default: // directive on the closing line of a continuation
		call := calls[rand.Intn(len(calls))]
		chunk := fmt.Sprintf("%s = %s(\n        %s,\n    %s,\n)  # noqa: E128\n", name, call, value, value)
		return chunk, []report{{1, 9, "E128", "continuation line under-indented for visual indent"}}
	}
}

func generateStale() string {
	name := names[rand.Intn(len(names))]
	value := values[rand.Intn(len(values))]
	stmt := fmt.Sprintf("%s = %s", name, value)

	if rand.Intn(2) == 0 {
		return fmt.Sprintf("%s  # noqa\n", stmt)
	}
	code := codes[rand.Intn(len(codes))]
	return fmt.Sprintf("%s  # noqa: %s\n", stmt, code)
}

func generateMalformed() string {
	name := names[rand.Intn(len(names))]
	value := values[rand.Intn(len(values))]
	stmt := fmt.Sprintf("%s = %s", name, value)
	code := codes[rand.Intn(len(codes))]

	if rand.Intn(8) == 0 {
		fileVariants := []string{
			"#flake8: noqa",
			"# flake8 noqa",
			"#  flake8:noqa",
			"# FLAKE8 NOQA",
		}
		return fileVariants[rand.Intn(len(fileVariants))] + "\n" + stmt + "\n"
	}

	variants := []string{
		"#noqa",
		"#  noqa",
		"#noqa: " + code,
		"# noqa : " + code,
		"# noqa " + code,
		"# noqa:  " + code,
		"# noqa: " + code + ", " + code,
		"# noqa:" + code + "," + code,
	}
	return fmt.Sprintf("%s  %s\n", stmt, variants[rand.Intn(len(variants))])
}

func generateDecoy() string {
	name := names[rand.Intn(len(names))]

	switch rand.Intn(4) {
	case 0:
		return fmt.Sprintf("%s = \"disable with # noqa when needed\"\n", name)

	case 1:
		return fmt.Sprintf("%s = '''\nembedded # noqa: E501 text\n'''\n", name)

	case 2:
		return "pattern = r'# noqa\\d+'\n"

	default:
		call := calls[rand.Intn(len(calls))]
		return fmt.Sprintf("def %s_%d(value):\n    return value * %d\n\n", call, rand.Intn(1000), rand.Intn(9)+1)
	}
}
