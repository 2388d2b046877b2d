package apps

import (
	"context"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/tools/proc"
)

// OpenApp launches an application by name. Names are resolved against the registry first;
// otherwise the name is run as a program found in PATH.
type OpenApp struct {
	registry *Registry
	runner   proc.Runner
	lookPath func(string) (string, error)
}

// Option configures OpenApp.
type Option func(*OpenApp)

// WithLookPath replaces exec.LookPath for the PATH fallback.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(x *OpenApp) {
		x.lookPath = fn
	}
}

func NewOpenApp(registry *Registry, runner proc.Runner, options ...Option) *OpenApp {
	x := &OpenApp{
		registry: registry,
		runner:   runner,
		lookPath: exec.LookPath,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *OpenApp) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolOpenApp,
		Description: "Opens an application by name, e.g. 'firefox', 'calculator', 'code'.",
		Parameters: map[string]*hark.Parameter{
			"app_name": {
				Type:        hark.TypeString,
				Description: "The name of the application",
			},
		},
		Required: []string{"app_name"},
	}
}

func (x *OpenApp) Run(ctx context.Context, args map[string]any) (any, error) {
	logger := ctxlog.From(ctx)
	name, _ := args["app_name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.New("app_name is required")
	}

	var argv []string
	if x.registry != nil {
		if app, ok := x.registry.Find(name); ok {
			logger.Info("resolved application", "query", name, "app", app.Name, "exec", app.Exec)
			argv = strings.Fields(app.Exec)
		}
	}

	if len(argv) == 0 {
		fields := strings.Fields(name)
		if _, err := x.lookPath(fields[0]); err != nil {
			return nil, goerr.New("application not found", goerr.V("app_name", name))
		}
		logger.Info("no registry match, running from PATH", "query", name)
		argv = fields
	}

	if err := x.runner.Start(ctx, argv[0], argv[1:]...); err != nil {
		return nil, goerr.Wrap(err, "failed to launch application", goerr.V("app_name", name))
	}
	return true, nil
}
