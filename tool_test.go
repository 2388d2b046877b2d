package hark

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestParameterValidation(t *testing.T) {
	t.Run("number constraints", func(t *testing.T) {
		t.Run("valid minimum and maximum", func(t *testing.T) {
			p := &Parameter{
				Type:    TypeNumber,
				Minimum: ptr(1.0),
				Maximum: ptr(10.0),
			}
			gt.NoError(t, p.Validate())
		})

		t.Run("invalid minimum and maximum", func(t *testing.T) {
			p := &Parameter{
				Type:    TypeInteger,
				Minimum: ptr(10.0),
				Maximum: ptr(1.0),
			}
			gt.Error(t, p.Validate())
		})
	})

	t.Run("string constraints", func(t *testing.T) {
		t.Run("valid pattern", func(t *testing.T) {
			p := &Parameter{
				Type:    TypeString,
				Pattern: "^[a-z]+$",
			}
			gt.NoError(t, p.Validate())
		})

		t.Run("invalid pattern", func(t *testing.T) {
			p := &Parameter{
				Type:    TypeString,
				Pattern: "[invalid",
			}
			gt.Error(t, p.Validate())
		})
	})

	t.Run("array requires items", func(t *testing.T) {
		gt.Error(t, (&Parameter{Type: TypeArray}).Validate())
		gt.NoError(t, (&Parameter{Type: TypeArray, Items: &Parameter{Type: TypeString}}).Validate())
	})

	t.Run("type is required", func(t *testing.T) {
		gt.Error(t, (&Parameter{}).Validate())
	})
}

func TestToolSpecValidate(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		spec := ToolSpec{
			Name: ToolSetVolume,
			Parameters: map[string]*Parameter{
				"level": {Type: TypeInteger},
			},
			Required: []string{"level"},
		}
		gt.NoError(t, spec.Validate())
	})

	t.Run("unknown name", func(t *testing.T) {
		spec := ToolSpec{Name: "launch_rocket"}
		err := spec.Validate()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, ErrInvalidTool))
	})

	t.Run("required parameter not defined", func(t *testing.T) {
		spec := ToolSpec{Name: ToolOpenApp, Required: []string{"app_name"}}
		gt.True(t, errors.Is(spec.Validate(), ErrInvalidTool))
	})
}

func TestToolSpecValidateArgs(t *testing.T) {
	spec := ToolSpec{
		Name: ToolSetVolume,
		Parameters: map[string]*Parameter{
			"level": {Type: TypeInteger, Minimum: ptr(0.0), Maximum: ptr(100.0)},
		},
		Required: []string{"level"},
	}

	testCases := map[string]struct {
		args    map[string]any
		wantErr bool
	}{
		"int":            {args: map[string]any{"level": 30}},
		"int64":          {args: map[string]any{"level": int64(30)}},
		"integral float": {args: map[string]any{"level": 30.0}},
		"fractional":     {args: map[string]any{"level": 30.5}, wantErr: true},
		"string":         {args: map[string]any{"level": "30"}, wantErr: true},
		"missing":        {args: map[string]any{}, wantErr: true},
		"unknown":        {args: map[string]any{"level": 1, "channel": "left"}, wantErr: true},
		"above maximum":  {args: map[string]any{"level": 150}, wantErr: true},
		"below minimum":  {args: map[string]any{"level": -1}, wantErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := spec.ValidateArgs(tc.args)
			if tc.wantErr {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, ErrInvalidParameter))
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestToolNameDataProducing(t *testing.T) {
	data := []ToolName{ToolSearchWeb, ToolReadFile, ToolRetrieveMemory, ToolListFiles, ToolSystemStatus, ToolGetTime}
	for _, name := range data {
		gt.True(t, name.IsDataProducing())
	}

	count := 0
	for _, name := range AllToolNames() {
		gt.True(t, name.IsKnown())
		if name.IsDataProducing() {
			count++
		}
	}
	gt.Equal(t, count, len(data))
	gt.A(t, AllToolNames()).Length(15)

	gt.False(t, ToolOpenApp.IsDataProducing())
	gt.False(t, ToolName("open_editor").IsKnown())
}

func ptr[T any](v T) *T {
	return &v
}
