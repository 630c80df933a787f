package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/noqacheck/noqacheck/checker"
	"github.com/noqacheck/noqacheck/directive"
	"github.com/noqacheck/noqacheck/output"
	"github.com/noqacheck/noqacheck/scanner"
)

// DoctorCmd provides doctor utilities for debugging suppression comments.
type DoctorCmd struct {
	Tokens     TokensCmd     `cmd:"" help:"Show scanned comment tokens from a Python file."`
	Directives DirectivesCmd `cmd:"" help:"Show matched suppression directives from a Python file."`
}

// TokensCmd shows the comments the scanner finds, with their positions and
// the first line of the enclosing statement.
type TokensCmd struct {
	File FileOrStdin `help:"Python source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Format: line:col stmt:N "text"
	for _, com := range scanner.New(cmd.File.Filename, content).Scan() {
		_, _ = fmt.Fprintf(ctx.Stdout, "%-10s %-10s %q\n",
			fmt.Sprintf("%d:%d", com.Pos.Line, com.Pos.Column),
			fmt.Sprintf("stmt:%d", com.StmtLine),
			com.Text)
	}

	return nil
}

// DirectivesCmd dumps every matched directive with a spelling verdict.
type DirectivesCmd struct {
	File FileOrStdin `help:"Python source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the directives command.
func (cmd *DirectivesCmd) Run(ctx *kong.Context) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	styles := output.NewStyles(ctx.Stdout)
	printer := repr.New(ctx.Stdout, repr.Indent("  "))

	for _, com := range scanner.New(cmd.File.Filename, content).Scan() {
		if fd := directive.MatchFile(com); fd != nil {
			printVerdict(ctx.Stdout, styles, "file", com.Pos, len(checker.FileFindings(fd)))
			printer.Println(fd)
		}
		if id := directive.MatchInline(com); id != nil {
			printVerdict(ctx.Stdout, styles, "inline", com.Pos, len(checker.InlineFindings(id)))
			printer.Println(id)
		}
	}

	return nil
}

func printVerdict(w io.Writer, styles *output.Styles, kind string, pos scanner.Position, findings int) {
	verdict := styles.Success("canonical")
	if findings > 0 {
		verdict = styles.Warning(fmt.Sprintf("malformed (%d finding(s))", findings))
	}
	_, _ = fmt.Fprintf(w, "%s %s %s\n", styles.Keyword(kind), styles.FilePath(pos.String()), verdict)
}
