package config

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{
		"-scale", "0.5",
		"-tps", "120",
		"-assets", "/tmp/pong",
		"-log-level", "debug",
		"-log-file", "pong.log",
		"-debug",
		"-mute",
		"-seed", "42",
		"-telemetry-addr", ":9000",
		"-fullscreen",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Scale:         0.5,
		TPS:           120,
		AssetsDir:     "/tmp/pong",
		LogFile:       "pong.log",
		LogLevel:      "debug",
		Debug:         true,
		Mute:          true,
		Seed:          42,
		TelemetryAddr: ":9000",
		Fullscreen:    true,
	}, cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero scale", []string{"-scale", "0"}},
		{"huge scale", []string{"-scale", "9"}},
		{"low tps", []string{"-tps", "10"}},
		{"bad level", []string{"-log-level", "chatty"}},
		{"unknown flag", []string{"-paddles", "3"}},
		{"positional", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, io.Discard)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseHelp(t *testing.T) {
	_, err := Parse([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}
