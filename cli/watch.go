package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/noqacheck/noqacheck/format"
)

// watchDebounce coalesces the event bursts editors produce on save.
const watchDebounce = 100 * time.Millisecond

type WatchCmd struct {
	Files   []string `help:"Python source files to watch." arg:"" name:"file"`
	Reports string   `help:"Violations stream to cross-reference; watched too when set." placeholder:"PATH"`
	Format  string   `help:"Output format." enum:"text,json" default:"text"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	for _, path := range cmd.Files {
		if path == "-" {
			return fmt.Errorf("watch requires file paths, not stdin")
		}
	}
	if cmd.Reports == "-" {
		return fmt.Errorf("watch requires a reports file, not stdin")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	options, err := globals.Options()
	if err != nil {
		return err
	}
	formatter, err := format.ByName(cmd.Format)
	if err != nil {
		return err
	}

	run := &checkRun{
		files:     cmd.Files,
		reports:   cmd.Reports,
		formatter: formatter,
		options:   options,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range cmd.Files {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}
	if cmd.Reports != "" {
		if err := watcher.Add(cmd.Reports); err != nil {
			return fmt.Errorf("failed to watch %s: %w", cmd.Reports, err)
		}
	}

	printInfof(ctx.Stdout, "Watching %d file(s), press Ctrl+C to stop", len(cmd.Files))
	cmd.runPass(runCtx, ctx, run)

	var pending <-chan time.Time
	for {
		select {
		case <-runCtx.Done():
			_, _ = fmt.Fprintln(ctx.Stdout)
			printInfof(ctx.Stdout, "Stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			// Editors often replace the file on save; re-add the path so
			// the watch survives the swap.
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				_ = watcher.Add(event.Name)
			}
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, err.Error())

		case <-pending:
			pending = nil
			cmd.runPass(runCtx, ctx, run)
		}
	}
}

func (cmd *WatchCmd) runPass(runCtx context.Context, ctx *kong.Context, run *checkRun) {
	start := time.Now()
	total, err := run.run(runCtx, ctx.Stdout)
	stamp := time.Now().Format("15:04:05")
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case err != nil:
		printError(ctx.Stderr, fmt.Sprintf("[%s] %v", stamp, err))
	case total > 0:
		printError(ctx.Stdout, fmt.Sprintf("[%s] %d diagnostic(s) in %s", stamp, total, elapsed))
	default:
		printSuccess(ctx.Stdout, fmt.Sprintf("[%s] check passed in %s", stamp, elapsed))
	}
}
