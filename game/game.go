// Package game runs a match of pong on the ecs runtime. Rendering, audio,
// input and time come in through small interfaces so the whole game can run
// without a window.
package game

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/pong"
)

// Deps are the collaborators a Game is built from. Nil fields get quiet
// defaults: a wall clock, no sound, no event sink, no logging, the global
// random source and no key bindings.
type Deps struct {
	Clock    Clock
	Audio    Audio
	Sink     EventSink
	Logger   *zap.SugaredLogger
	Rand     *rand.Rand
	Bindings *Bindings
}

// Game owns the world and the update and draw schedules.
type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler

	clock    Clock
	bindings *Bindings
	log      *zap.SugaredLogger

	controls *ecs.Singleton[Controls]
	frame    *ecs.Singleton[Frame]
	canvas   *ecs.Singleton[Canvas]
	stats    *ecs.Singleton[MatchStats]

	paddles     *ecs.Query[paddleRow]
	balls       *ecs.Query[struct{ *pong.Ball }]
	scoreboards *ecs.Query[struct{ *Scoreboard }]
}

// New spawns both paddles, the ball, the divider and the scoreboard. The
// ball is served ServeDelay after the clock's current time.
func New(deps Deps) *Game {
	if deps.Clock == nil {
		deps.Clock = NewFrameClock(DefaultFramePeriod)
	}
	if deps.Audio == nil {
		deps.Audio = Silent{}
	}
	if deps.Sink == nil {
		deps.Sink = discard{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop().Sugar()
	}
	if deps.Bindings == nil {
		deps.Bindings = NewBindings()
	}

	storage := ecs.NewStorage(newRegistry())

	g := &Game{
		storage:  storage,
		update:   ecs.NewScheduler(storage),
		draw:     ecs.NewScheduler(storage),
		clock:    deps.Clock,
		bindings: deps.Bindings,
		log:      deps.Logger,

		controls: ecs.NewSingleton[Controls](storage),
		frame:    ecs.NewSingleton[Frame](storage),
		canvas:   ecs.NewSingleton[Canvas](storage),
		stats:    ecs.NewSingleton[MatchStats](storage),

		paddles:     ecs.NewQuery[paddleRow](storage),
		balls:       ecs.NewQuery[struct{ *pong.Ball }](storage),
		scoreboards: ecs.NewQuery[struct{ *Scoreboard }](storage),
	}

	now := deps.Clock.Elapsed()
	g.frame.Get().Now = now

	storage.Spawn(pong.NewPaddle(pong.Left))
	storage.Spawn(pong.NewPaddle(pong.Right))
	storage.Spawn(pong.NewBall(deps.Rand, now))
	storage.Spawn(pong.NewDivider())
	storage.Spawn(Scoreboard{Layout: pong.LayoutScores(0, 0)})

	g.update.Register(&PaddleSystem{})
	g.update.Register(&BallSystem{})
	g.update.Register(&ScoreboardSystem{})
	g.update.Register(&SoundSystem{audio: deps.Audio, log: deps.Logger})
	g.update.Register(&EventSystem{sink: deps.Sink, log: deps.Logger})
	g.draw.Register(&RenderSystem{})

	g.log.Infow("match started", "serve_at", now+pong.ServeDelay)
	return g
}

// RegisterUpdate appends a system to the update schedule after the game's
// own systems.
func (g *Game) RegisterUpdate(system ecs.System) {
	g.update.Register(system)
}

// KeyDown sets the control bound to key. Repeats and unbound keys are
// ignored.
func (g *Game) KeyDown(key Key, repeat bool) {
	if repeat {
		return
	}
	if control, ok := g.bindings.Lookup(key); ok {
		g.controls.Get().Set(control, true)
	}
}

// KeyUp clears the control bound to key.
func (g *Game) KeyUp(key Key) {
	if control, ok := g.bindings.Lookup(key); ok {
		g.controls.Get().Set(control, false)
	}
}

// Update advances the clock and runs one frame of the update schedule. It
// returns the frame's outcome.
func (g *Game) Update() pong.Outcome {
	g.clock.Tick()

	f := g.frame.Get()
	f.Now = g.clock.Elapsed()
	f.Delta = g.clock.AverageDelta().Seconds()
	f.Outcome = pong.Outcome{Kind: pong.NoEvent}

	g.update.Once(f.Delta)
	return f.Outcome
}

// Draw renders the current state. It does not change the world.
func (g *Game) Draw(r Renderer) {
	g.canvas.Get().Renderer = r
	g.draw.Once(0)
	g.canvas.Get().Renderer = nil
}

// Paddle returns the live paddle for side.
func (g *Game) Paddle(side pong.Side) *pong.Paddle {
	g.paddles.Execute()
	left, right := sides(g.paddles)
	if side == pong.Left {
		return left
	}
	return right
}

// Ball returns the live ball.
func (g *Game) Ball() *pong.Ball {
	g.balls.Execute()
	row, ok := g.balls.First()
	if !ok {
		return nil
	}
	return row.Ball
}

// Snapshot is a copy of the visible game state.
type Snapshot struct {
	Now     time.Duration
	Left    pong.Paddle
	Right   pong.Paddle
	Ball    pong.Ball
	Scores  pong.ScoreLayout
	Stats   MatchStats
	Outcome pong.Outcome
}

func (g *Game) Snapshot() Snapshot {
	f := g.frame.Get()
	snap := Snapshot{
		Now:     f.Now,
		Stats:   *g.stats.Get(),
		Outcome: f.Outcome,
	}
	if p := g.Paddle(pong.Left); p != nil {
		snap.Left = *p
	}
	if p := g.Paddle(pong.Right); p != nil {
		snap.Right = *p
	}
	if b := g.Ball(); b != nil {
		snap.Ball = *b
	}
	g.scoreboards.Execute()
	if row, ok := g.scoreboards.First(); ok {
		snap.Scores = row.Layout
	}
	return snap
}

// Stats returns the match statistics.
func (g *Game) Stats() MatchStats {
	return *g.stats.Get()
}

// Controls reports which controls are held.
func (g *Game) Controls() Controls {
	return *g.controls.Get()
}

func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// UpdateStats returns timing statistics for the update schedule.
func (g *Game) UpdateStats() *ecs.SchedulerStats {
	return g.update.GetStats()
}

// DrawStats returns timing statistics for the draw schedule.
func (g *Game) DrawStats() *ecs.SchedulerStats {
	return g.draw.GetStats()
}
