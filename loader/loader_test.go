package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/noqacheck/noqacheck/reports"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSources(t *testing.T) {
	tmpDir := t.TempDir()
	app := writeFile(t, tmpDir, "app.py", "x=1 # noqa\n")
	util := writeFile(t, tmpDir, "util.py", "y=2\n")

	ldr := New()
	bundle, err := ldr.Load(context.Background(), app, util)
	assert.NoError(t, err)

	assert.Equal(t, 2, len(bundle.Sources))
	assert.Equal(t, app, bundle.Sources[0].Name)
	assert.Equal(t, "x=1 # noqa\n", string(bundle.Sources[0].Data))
	assert.Equal(t, util, bundle.Sources[1].Name)
	assert.Equal(t, 0, len(bundle.Reports))
}

func TestLoadDeduplicatesPaths(t *testing.T) {
	tmpDir := t.TempDir()
	app := writeFile(t, tmpDir, "app.py", "x=1\n")

	// The same file via two spellings loads once. Join would clean the
	// dot segment away, so build the alternate spelling by hand.
	other := tmpDir + string(filepath.Separator) + "." + string(filepath.Separator) + "app.py"

	ldr := New()
	bundle, err := ldr.Load(context.Background(), app, other, app)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(bundle.Sources))
}

func TestLoadMissingFile(t *testing.T) {
	ldr := New()
	_, err := ldr.Load(context.Background(), filepath.Join(t.TempDir(), "absent.py"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "absent.py")
}

func TestLoadStdinSource(t *testing.T) {
	ldr := New(WithStdin(strings.NewReader("x=1 # noqa\n")))
	bundle, err := ldr.Load(context.Background(), "-")
	assert.NoError(t, err)

	assert.Equal(t, 1, len(bundle.Sources))
	assert.Equal(t, StdinName, bundle.Sources[0].Name)
	assert.Equal(t, "x=1 # noqa\n", string(bundle.Sources[0].Data))
}

func TestLoadReportsFile(t *testing.T) {
	tmpDir := t.TempDir()
	app := writeFile(t, tmpDir, "app.py", "x=1 # noqa: E225\n")
	lint := writeFile(t, tmpDir, "lint.txt", "app.py:1:2: E225 missing whitespace around operator\n")

	ldr := New(WithReports(lint))
	bundle, err := ldr.Load(context.Background(), app)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(bundle.Reports))
	assert.Equal(t, "E225", bundle.Reports[0].Code)
}

func TestLoadReportsFromStdin(t *testing.T) {
	tmpDir := t.TempDir()
	app := writeFile(t, tmpDir, "app.py", "x=1 # noqa: E225\n")

	ldr := New(
		WithReports("-"),
		WithStdin(strings.NewReader("app.py:1:2: E225 missing whitespace around operator\n")),
	)
	bundle, err := ldr.Load(context.Background(), app)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(bundle.Reports))
}

func TestLoadMalformedReportsFromStdin(t *testing.T) {
	ldr := New(
		WithReports("-"),
		WithStdin(strings.NewReader("garbage\n")),
	)
	_, err := ldr.Load(context.Background())
	assert.Error(t, err)

	// The stream name identifies stdin in the error.
	var perr *reports.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, StdinName, perr.Source)
}

func TestLoadStdinConflict(t *testing.T) {
	ldr := New(
		WithReports("-"),
		WithStdin(strings.NewReader("x=1\n")),
	)
	_, err := ldr.Load(context.Background(), "-")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}

func TestLoadMissingReportsFile(t *testing.T) {
	ldr := New(WithReports(filepath.Join(t.TempDir(), "absent.txt")))
	_, err := ldr.Load(context.Background())
	assert.Error(t, err)
}

func TestLoadCancelledContext(t *testing.T) {
	tmpDir := t.TempDir()
	app := writeFile(t, tmpDir, "app.py", "x=1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ldr := New()
	_, err := ldr.Load(ctx, app)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
