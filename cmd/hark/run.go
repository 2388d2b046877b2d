package main

import (
	"context"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/metrics"
	"github.com/m-mizutani/hark/speech/command"
	"github.com/m-mizutani/hark/speech/whisper"
	"github.com/urfave/cli/v3"
)

func speechFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "wake-cmd",
			Sources:  cli.EnvVars("HARK_WAKE_CMD"),
			Usage:    "Wake word detector printing one line per detection",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "record-cmd",
			Value:   "arecord -q -f S16_LE -r 16000 -c 1 -t raw",
			Sources: cli.EnvVars("HARK_RECORD_CMD"),
			Usage:   "Capture command writing raw PCM16 mono to stdout",
		},
		&cli.IntFlag{
			Name:    "sample-rate",
			Value:   command.DefaultSampleRate,
			Sources: cli.EnvVars("HARK_SAMPLE_RATE"),
			Usage:   "Sample rate of the capture command",
		},
		&cli.FloatFlag{
			Name:    "silence-threshold",
			Value:   command.DefaultSilenceThreshold,
			Sources: cli.EnvVars("HARK_SILENCE_THRESHOLD"),
			Usage:   "RMS energy below which captured audio is silence",
		},
		&cli.StringFlag{
			Name:    "synth-cmd",
			Value:   "piper --model en_US-lessac-medium.onnx --output_raw",
			Sources: cli.EnvVars("HARK_SYNTH_CMD"),
			Usage:   "Speech synthesizer reading text from stdin",
		},
		&cli.StringFlag{
			Name:    "player-cmd",
			Value:   "aplay -q -r 22050 -f S16_LE -t raw -",
			Sources: cli.EnvVars("HARK_PLAYER_CMD"),
			Usage:   "Player reading synthesized audio from stdin, empty if the synthesizer plays itself",
		},
		&cli.StringFlag{
			Name:    "whisper-url",
			Sources: cli.EnvVars("HARK_WHISPER_URL"),
			Usage:   "OpenAI compatible transcription endpoint, e.g. http://localhost:8000/v1",
		},
		&cli.StringFlag{
			Name:    "whisper-api-key",
			Sources: cli.EnvVars("HARK_WHISPER_API_KEY", "OPENAI_API_KEY"),
			Usage:   "API key of the transcription endpoint",
		},
		&cli.StringFlag{
			Name:    "whisper-model",
			Value:   whisper.DefaultModel,
			Sources: cli.EnvVars("HARK_WHISPER_MODEL"),
			Usage:   "Transcription model",
		},
		&cli.StringFlag{
			Name:    "wake-response",
			Value:   "Yes boss",
			Sources: cli.EnvVars("HARK_WAKE_RESPONSE"),
			Usage:   "Phrase spoken when the wake word is detected, empty for none",
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Sources: cli.EnvVars("HARK_METRICS_ADDR"),
			Usage:   "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9090",
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Start the voice loop",
		Flags:  append(assistantFlags(), speechFlags()...),
		Action: runVoiceLoop,
	}
}

func runVoiceLoop(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.From(ctx)

	speaker, err := command.NewSpeaker(command.Split(cmd.String("synth-cmd")), command.Split(cmd.String("player-cmd")))
	if err != nil {
		return err
	}
	recorder, err := command.NewRecorder(command.Split(cmd.String("record-cmd")),
		command.WithSampleRate(int(cmd.Int("sample-rate"))),
		command.WithSilenceThreshold(cmd.Float("silence-threshold")),
	)
	if err != nil {
		return err
	}

	asst, err := newAssistant(ctx, cmd, speaker)
	if err != nil {
		return err
	}
	defer func() {
		if err := asst.Close(); err != nil {
			logger.Warn("failed to close assistant", "error", err)
		}
	}()

	var whisperOpts []whisper.Option
	whisperOpts = append(whisperOpts, whisper.WithModel(cmd.String("whisper-model")))
	if url := cmd.String("whisper-url"); url != "" {
		whisperOpts = append(whisperOpts, whisper.WithBaseURL(url))
	}
	transcriber, err := whisper.New(cmd.String("whisper-api-key"), whisperOpts...)
	if err != nil {
		return err
	}

	wake, err := command.OpenWakeDetector(ctx, command.Split(cmd.String("wake-cmd")))
	if err != nil {
		_ = transcriber.Close()
		return err
	}

	runtime, err := hark.NewRuntime(wake, transcriber)
	if err != nil {
		_ = wake.Close()
		_ = transcriber.Close()
		return err
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			logger.Warn("failed to release runtime", "error", err)
		}
	}()

	if addr := cmd.String("metrics-addr"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", metrics.Handler())
		go func() {
			if err := serve(ctx, addr, mux, "metrics"); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	orch := asst.orchestrator(runtime, recorder, speaker, hark.WithWakeResponse(cmd.String("wake-response")))
	if err := orch.Run(ctx); err != nil {
		return goerr.Wrap(err, "voice loop failed")
	}
	logger.Info("voice loop stopped")
	return nil
}
