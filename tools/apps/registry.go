// Package apps resolves spoken application names to installed desktop applications and
// launches them.
package apps

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sahilm/fuzzy"
)

// App is a launchable application found in a .desktop entry.
type App struct {
	Name string `json:"name"`
	Exec string `json:"exec"`
	Icon string `json:"icon,omitempty"`
	Path string `json:"path"`
}

// DefaultDirs returns the directories where desktop entries are installed.
func DefaultDirs() []string {
	dirs := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
		"/var/lib/flatpak/exports/share/applications",
		"/var/lib/snapd/desktop/applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "applications"),
			filepath.Join(home, ".local", "share", "flatpak", "exports", "share", "applications"),
		)
	}
	return dirs
}

// DefaultCachePath is where the scanned registry is kept between runs.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hark", "apps.json")
}

// Scan reads every *.desktop file in dirs. Hidden entries are skipped and the first entry of a
// name wins. Missing directories are ignored.
func Scan(ctx context.Context, dirs []string) []App {
	logger := ctxlog.From(ctx)
	seen := map[string]bool{}
	var apps []App

	for _, dir := range dirs {
		paths, err := filepath.Glob(filepath.Join(dir, "*.desktop"))
		if err != nil {
			continue
		}
		sort.Strings(paths)

		for _, path := range paths {
			app, ok, err := parseDesktopEntry(path)
			if err != nil {
				logger.Debug("skip unreadable desktop entry", "path", path, "error", err)
				continue
			}
			key := strings.ToLower(app.Name)
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			apps = append(apps, app)
		}
	}

	logger.Info("scanned applications", "count", len(apps))
	return apps
}

// parseDesktopEntry reads the [Desktop Entry] group. It reports false for entries that are not
// shown in menus or cannot be launched.
func parseDesktopEntry(path string) (App, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return App{}, false, goerr.Wrap(err, "failed to open desktop entry", goerr.V("path", path))
	}
	defer f.Close()

	app := App{Path: path}
	inEntry := false
	hidden := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			if app.Name == "" {
				app.Name = strings.TrimSpace(value)
			}
		case "Exec":
			if app.Exec == "" {
				app.Exec = cleanExec(value)
			}
		case "Icon":
			app.Icon = strings.TrimSpace(value)
		case "NoDisplay", "Hidden":
			if strings.TrimSpace(value) == "true" {
				hidden = true
			}
		case "Type":
			if strings.TrimSpace(value) != "Application" {
				hidden = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return App{}, false, goerr.Wrap(err, "failed to read desktop entry", goerr.V("path", path))
	}

	return app, app.Name != "" && app.Exec != "" && !hidden, nil
}

// cleanExec drops field codes such as %u and %F and surrounding quotes.
func cleanExec(exec string) string {
	var args []string
	for _, arg := range strings.Fields(exec) {
		if strings.HasPrefix(arg, "%") {
			continue
		}
		args = append(args, strings.Trim(arg, `"`))
	}
	return strings.Join(args, " ")
}

// Registry is the set of known applications, persisted as JSON.
type Registry struct {
	apps []App
}

// NewRegistry wraps a scanned application list.
func NewRegistry(apps []App) *Registry {
	return &Registry{apps: apps}
}

// Apps returns the applications.
func (x *Registry) Apps() []App {
	return x.apps
}

// Save writes the registry to path.
func (x *Registry) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create cache directory", goerr.V("path", path))
	}
	data, err := json.MarshalIndent(x.apps, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode application registry")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write application registry", goerr.V("path", path))
	}
	return nil
}

// Load reads the registry from path. When the cache does not exist yet, dirs are scanned and
// the result is saved.
func Load(ctx context.Context, path string, dirs []string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		registry := NewRegistry(Scan(ctx, dirs))
		if err := registry.Save(path); err != nil {
			return nil, err
		}
		return registry, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read application registry", goerr.V("path", path))
	}

	var apps []App
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, goerr.Wrap(err, "failed to decode application registry", goerr.V("path", path))
	}
	return NewRegistry(apps), nil
}

type appNames []App

func (x appNames) String(i int) string { return strings.ToLower(x[i].Name) }
func (x appNames) Len() int            { return len(x) }

// Find resolves a spoken name. An exact name wins, then the program name of the command, then
// a name starting with the query, then the best fuzzy match.
func (x *Registry) Find(query string) (App, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return App{}, false
	}

	for _, app := range x.apps {
		if strings.ToLower(app.Name) == q {
			return app, true
		}
	}
	for _, app := range x.apps {
		if fields := strings.Fields(app.Exec); len(fields) > 0 && strings.ToLower(filepath.Base(fields[0])) == q {
			return app, true
		}
	}
	for _, app := range x.apps {
		if strings.HasPrefix(strings.ToLower(app.Name), q) {
			return app, true
		}
	}

	matches := fuzzy.FindFrom(q, appNames(x.apps))
	if len(matches) == 0 {
		return App{}, false
	}
	return x.apps[matches[0].Index], true
}
