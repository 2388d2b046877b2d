package trace_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark/trace"
)

func TestMultiHandlerFanOut(t *testing.T) {
	rec1 := trace.New()
	rec2 := trace.New()
	multi := trace.Multi(rec1, rec2)

	ctx := context.Background()
	uttCtx := multi.StartUtterance(ctx, "utt-1")

	llmCtx := multi.StartLLMCall(uttCtx, "plan")
	multi.EndLLMCall(llmCtx, &trace.LLMCallData{Purpose: "plan", InputTokens: 10}, nil)

	multi.AddEvent(uttCtx, trace.EventKindSpeak, "Done.")

	multi.EndUtterance(uttCtx, &trace.UtteranceData{Transcript: "hi"}, nil)

	for _, rec := range []*trace.Recorder{rec1, rec2} {
		tr := rec.Trace()
		gt.Value(t, tr).NotNil()
		gt.Equal(t, tr.TraceID, "utt-1")
		gt.Equal(t, len(tr.RootSpan.Children), 2)
		gt.Equal(t, tr.RootSpan.Utterance.Transcript, "hi")
	}
}

func TestMultiHandlerToolExec(t *testing.T) {
	rec1 := trace.New()
	rec2 := trace.New()
	multi := trace.Multi(rec1, rec2)

	ctx := context.Background()
	uttCtx := multi.StartUtterance(ctx, "")
	toolCtx := multi.StartToolExec(uttCtx, "get_time", map[string]any{})
	multi.EndToolExec(toolCtx, "Monday", nil)
	multi.EndUtterance(uttCtx, nil, nil)

	for _, rec := range []*trace.Recorder{rec1, rec2} {
		tr := rec.Trace()
		gt.Value(t, tr).NotNil()
		gt.Equal(t, len(tr.RootSpan.Children), 1)
		gt.Equal(t, tr.RootSpan.Children[0].Kind, trace.SpanKindToolExec)
		gt.Equal[any](t, tr.RootSpan.Children[0].ToolExec.Result, "Monday")
	}
}

type failingFinishHandler struct {
	trace.Recorder
}

func (f *failingFinishHandler) Finish(_ context.Context) error {
	return errors.New("finish failed")
}

func TestMultiHandlerFinishCollectsErrors(t *testing.T) {
	rec := trace.New()
	failing := &failingFinishHandler{}
	multi := trace.Multi(rec, failing)

	err := multi.Finish(context.Background())
	gt.Value(t, err).NotNil()
	gt.S(t, err.Error()).Contains("finish failed")
}

func TestMultiHandlerFinishNoErrors(t *testing.T) {
	multi := trace.Multi(trace.New(), trace.New())
	gt.NoError(t, multi.Finish(context.Background()))
}
