package apps_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/mock"
	"github.com/m-mizutani/hark/tools/apps"
)

func writeEntry(t *testing.T, dir, file, content string) {
	t.Helper()
	gt.NoError(t, os.MkdirAll(dir, 0700))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0600))
}

func fixtureDirs(t *testing.T) []string {
	root := t.TempDir()
	system := filepath.Join(root, "system")
	local := filepath.Join(root, "local")

	writeEntry(t, system, "code.desktop", `[Desktop Entry]
Name=Visual Studio Code
Exec=/usr/share/code/code --unity-launch %F
Icon=vscode
Type=Application

[Desktop Action new-empty-window]
Name=New Empty Window
Exec=/usr/share/code/code --new-window %F
`)
	writeEntry(t, system, "firefox.desktop", `[Desktop Entry]
Name=Firefox Web Browser
Exec="firefox" %u
Type=Application
`)
	writeEntry(t, system, "calc.desktop", `[Desktop Entry]
Name=Calculator
Exec=gnome-calculator
Type=Application
`)
	writeEntry(t, system, "hidden.desktop", `[Desktop Entry]
Name=Debug Shell
Exec=debug-shell
NoDisplay=true
`)
	writeEntry(t, system, "link.desktop", `[Desktop Entry]
Name=Docs
Type=Link
URL=https://example.com
`)
	writeEntry(t, local, "firefox.desktop", `[Desktop Entry]
Name=Firefox Web Browser
Exec=/home/me/firefox-nightly
`)

	return []string{system, local, filepath.Join(root, "missing")}
}

func TestScan(t *testing.T) {
	found := apps.Scan(internal.TestContext(), fixtureDirs(t))
	gt.A(t, found).Length(3)

	byName := map[string]apps.App{}
	for _, app := range found {
		byName[app.Name] = app
	}
	gt.Equal(t, byName["Visual Studio Code"].Exec, "/usr/share/code/code --unity-launch")
	gt.Equal(t, byName["Visual Studio Code"].Icon, "vscode")
	gt.Equal(t, byName["Firefox Web Browser"].Exec, "firefox")
	gt.Equal(t, byName["Calculator"].Exec, "gnome-calculator")
}

func TestLoad(t *testing.T) {
	ctx := internal.TestContext()
	dirs := fixtureDirs(t)
	cache := filepath.Join(t.TempDir(), "cache", "apps.json")

	registry, err := apps.Load(ctx, cache, dirs)
	gt.NoError(t, err)
	gt.A(t, registry.Apps()).Length(3)

	_, err = os.Stat(cache)
	gt.NoError(t, err)

	// the cache is used as is on the next load
	cached, err := apps.Load(ctx, cache, nil)
	gt.NoError(t, err)
	gt.Equal(t, cached.Apps(), registry.Apps())

	gt.NoError(t, os.WriteFile(cache, []byte("{broken"), 0600))
	_, err = apps.Load(ctx, cache, dirs)
	gt.Error(t, err)
}

func TestFind(t *testing.T) {
	registry := apps.NewRegistry(apps.Scan(internal.TestContext(), fixtureDirs(t)))

	testCases := map[string]struct {
		query string
		want  string
		miss  bool
	}{
		"exact name":   {query: "calculator", want: "Calculator"},
		"program name": {query: "code", want: "Visual Studio Code"},
		"name prefix":  {query: "Calc", want: "Calculator"},
		"fuzzy":        {query: "vs code", want: "Visual Studio Code"},
		"no match":     {query: "zzz", miss: true},
		"blank":        {query: " ", miss: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			app, ok := registry.Find(tc.query)
			if tc.miss {
				gt.False(t, ok)
				return
			}
			gt.True(t, ok)
			gt.Equal(t, app.Name, tc.want)
		})
	}
}

func TestOpenApp(t *testing.T) {
	ctx := internal.TestContext()
	registry := apps.NewRegistry(apps.Scan(ctx, fixtureDirs(t)))

	newRunner := func() *mock.RunnerMock {
		return &mock.RunnerMock{
			StartFunc: func(ctx context.Context, name string, args ...string) error { return nil },
		}
	}
	notInPath := apps.WithLookPath(func(string) (string, error) { return "", errors.New("not found") })
	inPath := apps.WithLookPath(func(name string) (string, error) { return "/usr/bin/" + name, nil })

	t.Run("registry match", func(t *testing.T) {
		runner := newRunner()
		got, err := apps.NewOpenApp(registry, runner, notInPath).Run(ctx, map[string]any{"app_name": "code"})
		gt.NoError(t, err)
		gt.Equal[any](t, got, true)

		calls := runner.StartCalls()
		gt.A(t, calls).Length(1)
		gt.Equal(t, calls[0].Name, "/usr/share/code/code")
		gt.Equal(t, calls[0].Args, []string{"--unity-launch"})
	})

	t.Run("path fallback", func(t *testing.T) {
		runner := newRunner()
		_, err := apps.NewOpenApp(registry, runner, inPath).Run(ctx, map[string]any{"app_name": "htop"})
		gt.NoError(t, err)
		gt.Equal(t, runner.StartCalls()[0].Name, "htop")
	})

	t.Run("unknown application", func(t *testing.T) {
		runner := newRunner()
		_, err := apps.NewOpenApp(registry, runner, notInPath).Run(ctx, map[string]any{"app_name": "qqq"})
		gt.Error(t, err)
		gt.A(t, runner.StartCalls()).Length(0)
	})

	t.Run("launch failure", func(t *testing.T) {
		runner := &mock.RunnerMock{
			StartFunc: func(ctx context.Context, name string, args ...string) error {
				return errors.New("exec format error")
			},
		}
		_, err := apps.NewOpenApp(registry, runner).Run(ctx, map[string]any{"app_name": "calculator"})
		gt.Error(t, err)
	})

	t.Run("spec", func(t *testing.T) {
		spec := apps.NewOpenApp(nil, nil).Spec()
		gt.NoError(t, spec.Validate())
	})
}
