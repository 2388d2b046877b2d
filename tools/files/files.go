// Package files gives the assistant read-only access to the local file system. Outputs are
// capped so a directory listing or a document does not flood the synthesis prompt.
package files

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

const (
	MaxEntries   = 50
	MaxReadChars = 2000

	truncatedMarker = "\n... (truncated)"
)

// ErrNotFound is returned for a path that does not exist.
var ErrNotFound = errors.New("path not found")

// expand resolves a leading "~" to the home directory.
func expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", goerr.Wrap(err, "failed to resolve home directory")
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

func pathArg(args map[string]any, fallback string) string {
	if p, ok := args["path"].(string); ok && strings.TrimSpace(p) != "" {
		return strings.TrimSpace(p)
	}
	return fallback
}

// ListFiles returns up to MaxEntries names in a directory.
type ListFiles struct{}

func NewListFiles() *ListFiles {
	return &ListFiles{}
}

func (x *ListFiles) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolListFiles,
		Description: "Lists files in a directory. Returns at most 50 names.",
		Parameters: map[string]*hark.Parameter{
			"path": {
				Type:        hark.TypeString,
				Description: "Directory path, '~' is the home directory. Defaults to the current directory.",
			},
		},
	}
}

func (x *ListFiles) Run(ctx context.Context, args map[string]any) (any, error) {
	raw := pathArg(args, ".")
	path, err := expand(raw)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "directory does not exist", goerr.V("path", raw))
		}
		return nil, goerr.Wrap(err, "failed to list directory", goerr.V("path", raw))
	}

	names := make([]string, 0, min(len(entries), MaxEntries))
	for _, entry := range entries {
		if len(names) == MaxEntries {
			break
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}

// ReadFile returns the first MaxReadChars characters of a text file.
type ReadFile struct{}

func NewReadFile() *ReadFile {
	return &ReadFile{}
}

func (x *ReadFile) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolReadFile,
		Description: "Reads the content of a text file. Long files are truncated to 2000 characters.",
		Parameters: map[string]*hark.Parameter{
			"path": {
				Type:        hark.TypeString,
				Description: "File path, '~' is the home directory.",
			},
		},
		Required: []string{"path"},
	}
}

func (x *ReadFile) Run(ctx context.Context, args map[string]any) (any, error) {
	raw := pathArg(args, "")
	if raw == "" {
		return nil, goerr.New("path is required")
	}
	path, err := expand(raw)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "file does not exist", goerr.V("path", raw))
		}
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("path", raw))
	}
	defer f.Close()

	// 4 bytes is the longest UTF-8 encoding of a character
	data, err := io.ReadAll(io.LimitReader(f, MaxReadChars*4+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("path", raw))
	}

	return truncate(strings.ToValidUTF8(string(data), "")), nil
}

func truncate(content string) string {
	if utf8.RuneCountInString(content) < MaxReadChars {
		return content
	}
	runes := []rune(content)
	if len(runes) > MaxReadChars {
		runes = runes[:MaxReadChars]
	}
	return string(runes) + truncatedMarker
}
