package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/pong/assets"
	"github.com/plus3/pong/game"
	"github.com/plus3/pong/internal/config"
	"github.com/plus3/pong/platform"
	"github.com/plus3/pong/pong"
	"github.com/plus3/pong/telemetry"
)

const title = "PONG"

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, closeLog, err := telemetry.NewLogger(telemetry.LogConfig{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, log); err != nil {
		log.Errorw("pong failed", "error", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	bundle, err := assets.Load(cfg.AssetsDir)
	if err != nil {
		return err
	}
	for _, name := range bundle.Missing {
		log.Infow("asset not found, using built-in", "dir", cfg.AssetsDir, "file", name)
	}

	font, err := platform.LoadFont(bundle.Font)
	if err != nil {
		return err
	}

	var audio game.Audio = game.Silent{}
	if !cfg.Mute {
		speaker, err := platform.NewSpeaker(bundle)
		if err != nil {
			return err
		}
		audio = speaker
	}

	var sink game.EventSink
	if cfg.TelemetryAddr != "" {
		srv, err := telemetry.Listen(cfg.TelemetryAddr, log.Named("telemetry"))
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warnw("telemetry shutdown", "error", err)
			}
		}()
		sink = srv.Hub
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	g := game.New(game.Deps{
		Clock:    game.NewFrameClock(time.Second / time.Duration(cfg.TPS)),
		Audio:    audio,
		Sink:     sink,
		Logger:   log.Named("game"),
		Rand:     rng,
		Bindings: platform.DefaultBindings(),
	})

	var overlay *platform.Overlay
	if cfg.Debug {
		overlay = platform.NewOverlay(g, title)
	}

	icon := bundle.Icon
	if icon == nil {
		icon = assets.GenerateIcon(64)
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowIcon(assets.Icons(icon))
	ebiten.SetWindowSize(int(pong.ScreenWidth*cfg.Scale), int(pong.ScreenHeight*cfg.Scale))
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetTPS(cfg.TPS)

	log.Infow("starting", "tps", cfg.TPS, "scale", cfg.Scale, "debug", cfg.Debug, "mute", cfg.Mute)
	if err := ebiten.RunGame(platform.NewRunner(g, platform.NewScreen(font), overlay)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	st := g.Stats()
	snap := g.Snapshot()
	log.Infow("match over",
		"left", snap.Left.Score,
		"right", snap.Right.Score,
		"points", st.Points,
		"longest_rally", st.LongestRally)
	return nil
}
