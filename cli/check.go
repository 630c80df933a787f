package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/noqacheck/noqacheck/checker"
	"github.com/noqacheck/noqacheck/format"
	"github.com/noqacheck/noqacheck/loader"
	"github.com/noqacheck/noqacheck/output"
	"github.com/noqacheck/noqacheck/reports"
	"github.com/noqacheck/noqacheck/telemetry"
)

type CheckCmd struct {
	Files      []string `help:"Python source files (use '-' for stdin, or omit for stdin)." arg:"" optional:"" name:"file"`
	Reports    string   `help:"Violations stream to cross-reference ('-' reads stdin)." placeholder:"PATH"`
	Format     string   `help:"Output format." enum:"text,json" default:"text"`
	FormatOnly bool     `help:"Skip cross-referencing; only validate directive spelling."`
	ShowSource bool     `help:"Show the offending source line under each diagnostic."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	files := cmd.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var checkTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				checkTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkTimer = collector.Start(fmt.Sprintf("check (%d files)", len(files)))
		runCtx = telemetry.WithRootTimer(runCtx, checkTimer)

		defer reportTelemetry()
	}

	options, err := globals.Options()
	if err != nil {
		return err
	}
	formatter, err := format.ByName(cmd.Format)
	if err != nil {
		return err
	}

	run := &checkRun{
		files:      files,
		reports:    cmd.Reports,
		formatter:  formatter,
		formatOnly: cmd.FormatOnly,
		showSource: cmd.ShowSource && cmd.Format == "text",
		options:    options,
	}

	total, err := run.run(runCtx, ctx.Stdout)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		reportTelemetry()
		return NewCommandError(1)
	}

	if total > 0 {
		reportTelemetry()
		return NewCommandError(1)
	}

	if cmd.Format == "text" {
		printSuccess(ctx.Stdout, fmt.Sprintf("check passed (%d file(s))", len(files)))
	}

	return nil
}

// checkRun is one pass of the check pipeline, shared by check and watch.
type checkRun struct {
	files      []string
	reports    string
	formatter  format.Formatter
	formatOnly bool
	showSource bool
	options    []checker.Option
}

// run loads sources and reports, analyzes the files concurrently against
// one shared registry, and prints the diagnostics per file in argument
// order. It returns the number of diagnostics printed.
func (r *checkRun) run(ctx context.Context, stdout io.Writer) (int, error) {
	var loaderOpts []loader.Option
	if r.reports != "" {
		loaderOpts = append(loaderOpts, loader.WithReports(r.reports))
	}
	bundle, err := loader.New(loaderOpts...).Load(ctx, r.files...)
	if err != nil {
		return 0, err
	}

	byPath := reports.ByPath(bundle.Reports)
	c := checker.New(append(r.options, checker.WithRegistry(checker.NewRegistry()))...)

	results := make([][]checker.Diagnostic, len(bundle.Sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, src := range bundle.Sources {
		g.Go(func() error {
			diags, err := c.Analyze(gctx, src.Name, src.Data)
			if err != nil {
				return err
			}
			if !r.formatOnly {
				for _, rep := range byPath[filepath.Clean(src.Name)] {
					c.Record(src.Name, rep.Code, rep.Line)
				}
				diags = append(diags, c.Finish(src.Name)...)
			}
			checker.Sort(diags)
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if r.showSource {
		total := 0
		for i, src := range bundle.Sources {
			total += len(results[i])
			renderer := NewDiagnosticRenderer(src.Data)
			for _, d := range results[i] {
				_, _ = fmt.Fprintln(stdout, renderer.Render(d))
			}
		}
		return total, nil
	}

	var all []checker.Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	if err := r.formatter.Format(stdout, all); err != nil {
		return 0, err
	}
	return len(all), nil
}
