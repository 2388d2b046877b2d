package hark_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/mock"
)

func newTool(name hark.ToolName, run func(ctx context.Context, args map[string]any) (any, error)) *mock.ToolMock {
	return newToolWithParams(name, nil, nil, run)
}

func newToolWithParams(name hark.ToolName, params map[string]*hark.Parameter, required []string, run func(ctx context.Context, args map[string]any) (any, error)) *mock.ToolMock {
	return &mock.ToolMock{
		SpecFunc: func() hark.ToolSpec {
			return hark.ToolSpec{
				Name:        name,
				Description: "test tool " + string(name),
				Parameters:  params,
				Required:    required,
			}
		},
		RunFunc: run,
	}
}

// appNameParams is the parameter set of open_app used across tests.
var appNameParams = map[string]*hark.Parameter{
	"app_name": {Type: hark.TypeString, Description: "Application name"},
}

// speechLog is a Speaker recording everything said.
type speechLog struct {
	mu    sync.Mutex
	lines []string
}

func (x *speechLog) Speak(_ context.Context, text string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lines = append(x.lines, text)
	return nil
}

func (x *speechLog) Lines() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]string(nil), x.lines...)
}

// scriptedLLM answers requests in order and records them. Requests beyond the script fail.
func scriptedLLM(responses ...string) *mock.LLMClientMock {
	var mu sync.Mutex
	idx := 0
	return &mock.LLMClientMock{
		GenerateFunc: func(ctx context.Context, req *hark.LLMRequest) (*hark.LLMResponse, error) {
			mu.Lock()
			defer mu.Unlock()
			if idx >= len(responses) {
				return nil, hark.ErrLLMTransport
			}
			resp := responses[idx]
			idx++
			return &hark.LLMResponse{Text: resp, Model: "test-model"}, nil
		},
	}
}
