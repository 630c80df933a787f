package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/noqacheck/noqacheck/fixer"
	"github.com/noqacheck/noqacheck/loader"
	"github.com/noqacheck/noqacheck/output"
	"github.com/noqacheck/noqacheck/telemetry"
)

type FixCmd struct {
	Files         []string `help:"Python source files (use '-' for stdin, or omit for stdin)." arg:"" optional:"" name:"file"`
	Write         bool     `help:"Apply rewrites without prompting." short:"w"`
	Diff          bool     `help:"Print before/after lines instead of applying."`
	NormalizeCase bool     `help:"Lowercase the suppress keyword when rewriting."`
}

func (cmd *FixCmd) Run(ctx *kong.Context, globals *Globals) error {
	files := cmd.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	bundle, err := loader.New().Load(runCtx, files...)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	var fixerOpts []fixer.Option
	if cmd.NormalizeCase {
		fixerOpts = append(fixerOpts, fixer.WithNormalizeCase(true))
	}
	fx := fixer.New(fixerOpts...)

	proposed, rewrites, changed := 0, 0, 0
	for _, src := range bundle.Sources {
		edits, err := fx.Edits(runCtx, src.Name, src.Data)
		if err != nil {
			return err
		}
		if len(edits) == 0 {
			continue
		}
		proposed += len(edits)

		fixed := fixer.Apply(src.Data, edits)

		if cmd.Diff {
			printDiff(ctx.Stdout, src.Name, src.Data, fixed)
			rewrites += len(edits)
			changed++
			continue
		}

		// Stdin works as a filter: the fixed source goes to stdout.
		if src.Name == loader.StdinName {
			if _, err := ctx.Stdout.Write(fixed); err != nil {
				return err
			}
			rewrites += len(edits)
			changed++
			continue
		}

		for _, e := range edits {
			printInfof(ctx.Stdout, "%s:%d:%d: %q -> %q", src.Name, e.Pos.Line, e.Pos.Column, e.Before, e.After)
		}

		if !cmd.Write {
			confirmed, err := promptYesNo(ctx, fmt.Sprintf("Apply %d rewrite(s) to %s?", len(edits), src.Name))
			if err != nil {
				return err
			}
			if !confirmed {
				printInfof(ctx.Stdout, "Skipped %s", pathStyle.Render(src.Name))
				continue
			}
		}

		mode := os.FileMode(0644)
		if info, err := os.Stat(src.Name); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(src.Name, fixed, mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", src.Name, err)
		}

		printSuccess(ctx.Stdout, fmt.Sprintf("Fixed %d directive(s) in %s", len(edits), pathStyle.Render(src.Name)))
		rewrites += len(edits)
		changed++
	}

	if proposed == 0 {
		printSuccess(ctx.Stdout, "Nothing to fix")
		return nil
	}
	if cmd.Diff {
		printInfof(ctx.Stdout, "%d rewrite(s) in %d file(s) would be applied", rewrites, changed)
	}

	return nil
}

// printDiff prints the lines a rewrite would change, original first.
// Rewrites never add or remove lines, so the two sides pair up by index.
func printDiff(w io.Writer, name string, before, after []byte) {
	printInfof(w, "%s", pathStyle.Render(name))

	oldLines := strings.Split(string(before), "\n")
	newLines := strings.Split(string(after), "\n")
	for i := range oldLines {
		if i >= len(newLines) || oldLines[i] == newLines[i] {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s\n", errorStyle.Render(fmt.Sprintf("%d - %s", i+1, oldLines[i])))
		_, _ = fmt.Fprintf(w, "  %s\n", successStyle.Render(fmt.Sprintf("%d + %s", i+1, newLines[i])))
	}
}
