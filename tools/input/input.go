// Package input simulates the keyboard with xdotool. It needs an X11 session or XWayland.
package input

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/tools/proc"
)

const xdotool = "xdotool"

// keysyms maps the key names a planner tends to produce to X keysym names.
var keysyms = map[string]string{
	"enter":      "Return",
	"return":     "Return",
	"esc":        "Escape",
	"escape":     "Escape",
	"space":      "space",
	"tab":        "Tab",
	"backspace":  "BackSpace",
	"delete":     "Delete",
	"del":        "Delete",
	"insert":     "Insert",
	"up":         "Up",
	"down":       "Down",
	"left":       "Left",
	"right":      "Right",
	"home":       "Home",
	"end":        "End",
	"pageup":     "Prior",
	"pagedown":   "Next",
	"ctrl":       "ctrl",
	"control":    "ctrl",
	"alt":        "alt",
	"shift":      "shift",
	"win":        "super",
	"super":      "super",
	"cmd":        "super",
	"capslock":   "Caps_Lock",
	"volumeup":   "XF86AudioRaiseVolume",
	"volumedown": "XF86AudioLowerVolume",
	"playpause":  "XF86AudioPlay",
}

// keysym converts a key name. Function keys and single characters pass through.
func keysym(key string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return "", goerr.New("key is empty")
	}
	if sym, ok := keysyms[k]; ok {
		return sym, nil
	}
	if len(k) >= 2 && len(k) <= 3 && k[0] == 'f' && strings.Trim(k[1:], "0123456789") == "" {
		return strings.ToUpper(k), nil
	}
	if len([]rune(k)) == 1 {
		return k, nil
	}
	return "", goerr.New("unknown key", goerr.V("key", key))
}

// TypeText types text into the focused window.
type TypeText struct {
	runner proc.Runner
}

func NewTypeText(runner proc.Runner) *TypeText {
	return &TypeText{runner: runner}
}

func (x *TypeText) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolTypeText,
		Description: "Types text using the keyboard.",
		Parameters: map[string]*hark.Parameter{
			"text": {
				Type:        hark.TypeString,
				Description: "The text to type",
			},
		},
		Required: []string{"text"},
	}
}

func (x *TypeText) Run(ctx context.Context, args map[string]any) (any, error) {
	text, _ := args["text"].(string)
	if text == "" {
		return nil, goerr.New("text is required")
	}
	if err := x.runner.Run(ctx, xdotool, "type", "--delay", "10", "--", text); err != nil {
		return nil, goerr.Wrap(err, "failed to type text")
	}
	return true, nil
}

// PressKey presses a single key.
type PressKey struct {
	runner proc.Runner
}

func NewPressKey(runner proc.Runner) *PressKey {
	return &PressKey{runner: runner}
}

func (x *PressKey) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolPressKey,
		Description: "Presses a single key, e.g. 'enter', 'esc', 'space'.",
		Parameters: map[string]*hark.Parameter{
			"key": {
				Type:        hark.TypeString,
				Description: "The key to press",
			},
		},
		Required: []string{"key"},
	}
}

func (x *PressKey) Run(ctx context.Context, args map[string]any) (any, error) {
	key, _ := args["key"].(string)
	sym, err := keysym(key)
	if err != nil {
		return nil, err
	}
	if err := x.runner.Run(ctx, xdotool, "key", "--", sym); err != nil {
		return nil, goerr.Wrap(err, "failed to press key", goerr.V("key", sym))
	}
	return true, nil
}

// Hotkey presses a key combination.
type Hotkey struct {
	runner proc.Runner
}

func NewHotkey(runner proc.Runner) *Hotkey {
	return &Hotkey{runner: runner}
}

func (x *Hotkey) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolHotkey,
		Description: "Presses a combination of keys together, e.g. ['ctrl', 'c'].",
		Parameters: map[string]*hark.Parameter{
			"keys": {
				Type:        hark.TypeArray,
				Description: "Keys to press together",
				Items:       &hark.Parameter{Type: hark.TypeString},
			},
		},
		Required: []string{"keys"},
	}
}

func (x *Hotkey) Run(ctx context.Context, args map[string]any) (any, error) {
	var keys []string
	switch v := args["keys"].(type) {
	case []string:
		keys = v
	case []any:
		for _, k := range v {
			s, ok := k.(string)
			if !ok {
				return nil, goerr.New("keys must be strings", goerr.V("keys", v))
			}
			keys = append(keys, s)
		}
	}
	if len(keys) == 0 {
		return nil, goerr.New("keys are required")
	}

	syms := make([]string, 0, len(keys))
	for _, k := range keys {
		sym, err := keysym(k)
		if err != nil {
			return nil, err
		}
		syms = append(syms, sym)
	}

	combo := strings.Join(syms, "+")
	if err := x.runner.Run(ctx, xdotool, "key", "--", combo); err != nil {
		return nil, goerr.Wrap(err, "failed to press hotkey", goerr.V("keys", combo))
	}
	return true, nil
}
