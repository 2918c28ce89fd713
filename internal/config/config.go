// Package config holds the command-line settings of the pong binary.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is everything the command line controls.
type Config struct {
	Scale         float64
	TPS           int
	AssetsDir     string
	LogFile       string
	LogLevel      string
	Debug         bool
	Mute          bool
	Seed          uint64 // 0 picks a random seed
	TelemetryAddr string
	Fullscreen    bool
}

func Default() Config {
	return Config{
		Scale:    1,
		TPS:      60,
		LogLevel: "info",
	}
}

// Parse reads flags from args on top of Default and validates
// the result.
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("pong", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "Window size relative to the 1280x720 court.")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "Game updates per second.")
	fs.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "Directory with PressStart.ttf, click_high.wav, click_low.wav, score.wav and icon.png. Missing files use built-ins.")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Also write logs to this file, rotated at 10MB.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Show the ImGui debug overlay.")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable sound.")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for serve directions; 0 is random.")
	fs.StringVar(&cfg.TelemetryAddr, "telemetry-addr", cfg.TelemetryAddr, "Serve /events, /metrics and /healthz on this address, e.g. :8080.")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "Start in fullscreen.")

	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %q", ErrInvalidConfig, fs.Args())
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Scale <= 0 || c.Scale > 4 {
		return fmt.Errorf("%w: scale %v must be in (0, 4]", ErrInvalidConfig, c.Scale)
	}
	if c.TPS < 30 || c.TPS > 1000 {
		return fmt.Errorf("%w: tps %d must be between 30 and 1000", ErrInvalidConfig, c.TPS)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
