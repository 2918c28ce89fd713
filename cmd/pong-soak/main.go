// Command pong-soak plays a long headless match with random key presses on a
// fixed step clock and prints a timing and memory report.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/pong/game"
	"github.com/plus3/pong/telemetry"
)

// Synthetic key codes; the soak has no keyboard.
const (
	keyW game.Key = iota + 1
	keyS
	keyUp
	keyDown
)

var keys = [...]game.Key{keyW, keyS, keyUp, keyDown}

// outcomeCounter is the soak's event sink.
type outcomeCounter struct {
	counts map[string]int
}

func (c *outcomeCounter) Publish(ev game.Event) {
	c.counts[ev.Outcome.String()]++
}

func main() {
	duration := flag.Duration("duration", 10*time.Minute, "Simulated match time to play.")
	tps := flag.Int("tps", 60, "Simulated ticks per second.")
	seed := flag.Uint64("seed", 1, "Seed for serves and key presses.")
	pressRate := flag.Float64("press-rate", 0.05, "Chance per key per frame of toggling it.")
	logLevel := flag.String("log-level", "warn", "Log level.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, closeLog, err := telemetry.NewLogger(telemetry.LogConfig{Level: *logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()

	if *tps <= 0 {
		log.Errorw("tps must be positive", "tps", *tps)
		return
	}

	step := time.Second / time.Duration(*tps)
	rng := rand.New(rand.NewPCG(*seed, *seed))
	counter := &outcomeCounter{counts: make(map[string]int)}

	g := game.New(game.Deps{
		Clock:  game.NewStepClock(step),
		Sink:   counter,
		Logger: log.Named("game"),
		Rand:   rand.New(rand.NewPCG(*seed, ^*seed)),
		Bindings: game.NewBindings().
			Bind(keyW, game.LeftUp).
			Bind(keyS, game.LeftDown).
			Bind(keyUp, game.RightUp).
			Bind(keyDown, game.RightDown),
	})

	frames := int64(*duration / step)
	report := &Report{
		Simulated:      *duration,
		TPS:            *tps,
		Seed:           *seed,
		PressRate:      *pressRate,
		GCPauseMetrics: *gcPauseMetrics,
		Outcomes:       counter.counts,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, frames),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Infow("soak started", "duration", *duration, "tps", *tps, "frames", frames, "seed", *seed)
	startTime := time.Now()

	var held [len(keys)]bool
	for range frames {
		for i, key := range keys {
			if rng.Float64() >= *pressRate {
				continue
			}
			held[i] = !held[i]
			if held[i] {
				g.KeyDown(key, false)
			} else {
				g.KeyUp(key)
			}
		}

		updateStart := time.Now()
		g.Update()
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.Frames++
	}

	report.WallTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	snap := g.Snapshot()
	report.LeftScore = snap.Left.Score
	report.RightScore = snap.Right.Score
	report.Match = snap.Stats
	report.Systems = g.UpdateStats().Systems

	log.Infow("soak finished", "wall", report.WallTime, "points", report.Match.Points)

	if err := report.Generate(os.Stdout); err != nil {
		log.Errorw("failed to generate report", "error", err)
	}
}
