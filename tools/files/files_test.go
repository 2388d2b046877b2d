package files_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/tools/files"
)

func TestListFiles(t *testing.T) {
	ctx := internal.TestContext()

	t.Run("names with directories marked", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
		gt.NoError(t, os.Mkdir(filepath.Join(dir, "projects"), 0700))

		got, err := files.NewListFiles().Run(ctx, map[string]any{"path": dir})
		gt.NoError(t, err)
		gt.Equal[any](t, got, []string{"notes.txt", "projects/"})
	})

	t.Run("capped", func(t *testing.T) {
		dir := t.TempDir()
		for i := range 60 {
			gt.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%02d", i)), nil, 0600))
		}

		got, err := files.NewListFiles().Run(ctx, map[string]any{"path": dir})
		gt.NoError(t, err)
		names := got.([]string)
		gt.A(t, names).Length(files.MaxEntries)
		gt.Equal(t, names[0], "f00")
	})

	t.Run("home expansion", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		gt.NoError(t, os.WriteFile(filepath.Join(home, "todo.md"), nil, 0600))

		got, err := files.NewListFiles().Run(ctx, map[string]any{"path": "~"})
		gt.NoError(t, err)
		gt.Equal[any](t, got, []string{"todo.md"})
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := files.NewListFiles().Run(ctx, map[string]any{"path": filepath.Join(t.TempDir(), "nope")})
		gt.True(t, errors.Is(err, files.ErrNotFound))
	})

	t.Run("spec", func(t *testing.T) {
		spec := files.NewListFiles().Spec()
		gt.NoError(t, spec.Validate())
	})
}

func TestReadFile(t *testing.T) {
	ctx := internal.TestContext()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("short file", func(t *testing.T) {
		got, err := files.NewReadFile().Run(ctx, map[string]any{"path": write("short.txt", "buy milk")})
		gt.NoError(t, err)
		gt.Equal[any](t, got, "buy milk")
	})

	t.Run("long file is truncated", func(t *testing.T) {
		got, err := files.NewReadFile().Run(ctx, map[string]any{"path": write("long.txt", strings.Repeat("é", 2500))})
		gt.NoError(t, err)
		gt.Equal[any](t, got, strings.Repeat("é", 2000)+"\n... (truncated)")
	})

	t.Run("exactly at the cap", func(t *testing.T) {
		got, err := files.NewReadFile().Run(ctx, map[string]any{"path": write("exact.txt", strings.Repeat("a", 2000))})
		gt.NoError(t, err)
		gt.S(t, got.(string)).Contains("... (truncated)")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := files.NewReadFile().Run(ctx, map[string]any{"path": filepath.Join(dir, "missing.txt")})
		gt.True(t, errors.Is(err, files.ErrNotFound))
	})

	t.Run("blank path", func(t *testing.T) {
		_, err := files.NewReadFile().Run(ctx, map[string]any{"path": " "})
		gt.Error(t, err)
	})
}
