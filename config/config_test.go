package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultName)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "require-codes = true\ninclude-name = true\n")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.True(t, cfg.RequireCodes)
	assert.True(t, cfg.IncludeName)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.False(t, cfg.RequireCodes)
	assert.False(t, cfg.IncludeName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultName))
	assert.Error(t, err)

	var cerr *Error
	assert.True(t, errors.As(err, &cerr))
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "require-codes = \n")

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadUnknownOption(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "require_codes = true\n")

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option")
	assert.Contains(t, err.Error(), "require_codes")
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	assert.NoError(t, os.MkdirAll(nested, 0o755))
	path := writeConfig(t, root, "include-name = true\n")

	t.Run("from nested directory", func(t *testing.T) {
		found, ok, err := Find(nested)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, path, found)
	})

	t.Run("nearest file wins", func(t *testing.T) {
		inner := writeConfig(t, filepath.Join(root, "a"), "require-codes = true\n")
		found, ok, err := Find(nested)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, inner, found)
	})
}

func TestFindNothing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	assert.NoError(t, err)
	assert.False(t, ok)
}
