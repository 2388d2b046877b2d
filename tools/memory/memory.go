package memory

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

const (
	MaxRecalled = 3

	// NoMemories is the output of a recall that matched nothing.
	NoMemories = "No relevant memories found."
)

// StoreMemory saves a fact or preference.
type StoreMemory struct {
	store *Store
}

func NewStoreMemory(store *Store) *StoreMemory {
	return &StoreMemory{store: store}
}

func (x *StoreMemory) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolStoreMemory,
		Description: "Saves a fact or preference to long-term memory. Use for names, preferences and instructions to remember.",
		Parameters: map[string]*hark.Parameter{
			"text": {
				Type:        hark.TypeString,
				Description: "The information to remember, e.g. 'The user lives in London'",
			},
		},
		Required: []string{"text"},
	}
}

func (x *StoreMemory) Run(ctx context.Context, args map[string]any) (any, error) {
	text, _ := args["text"].(string)
	added, err := x.store.Add(ctx, text)
	if err != nil {
		return nil, err
	}
	ctxlog.From(ctx).Debug("memory stored", "text", text, "new", added)
	return true, nil
}

// RetrieveMemory recalls up to MaxRecalled memories related to a query.
type RetrieveMemory struct {
	store *Store
}

func NewRetrieveMemory(store *Store) *RetrieveMemory {
	return &RetrieveMemory{store: store}
}

func (x *RetrieveMemory) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolRetrieveMemory,
		Description: "Searches long-term memory. Use to recall information about the user.",
		Parameters: map[string]*hark.Parameter{
			"query": {
				Type:        hark.TypeString,
				Description: "What to look for, e.g. 'Where does the user live?'",
			},
		},
		Required: []string{"query"},
	}
}

func (x *RetrieveMemory) Run(ctx context.Context, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return nil, goerr.New("query is required")
	}

	memories, err := x.store.Search(ctx, query, MaxRecalled)
	if err != nil {
		return nil, err
	}
	if len(memories) == 0 {
		return NoMemories, nil
	}

	lines := make([]string, len(memories))
	for i, m := range memories {
		lines[i] = "- " + m.Text
	}
	return strings.Join(lines, "\n"), nil
}
