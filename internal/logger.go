package internal

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
)

var testLogger *slog.Logger

func init() {
	testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	if os.Getenv("HARK_TEST_LOG") == "1" {
		testLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
}

// TestLogger returns a logger that discards output unless HARK_TEST_LOG=1.
func TestLogger() *slog.Logger {
	return testLogger
}

// TestContext returns a background context carrying TestLogger.
func TestContext() context.Context {
	return ctxlog.With(context.Background(), testLogger)
}
