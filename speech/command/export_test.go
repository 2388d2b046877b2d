package command

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/hark"
)

func (x *Recorder) Capture(ctx context.Context, r io.Reader, timeout time.Duration) (*hark.Audio, error) {
	return x.capture(ctx, r, timeout)
}
