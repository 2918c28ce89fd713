package game_test

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/game"
	"github.com/plus3/pong/pong"
)

const (
	keyW game.Key = iota + 1
	keyS
	keyUp
	keyDown
	keyOther
)

const step = 10 * time.Millisecond

type fakeAudio struct {
	cues []game.Cue
	err  error
}

func (a *fakeAudio) Play(cue game.Cue) error {
	a.cues = append(a.cues, cue)
	return a.err
}

type recordingSink struct {
	events []game.Event
}

func (s *recordingSink) Publish(ev game.Event) {
	s.events = append(s.events, ev)
}

type recordingRenderer struct {
	ops []string
}

func (r *recordingRenderer) Clear(color.Color) {
	r.ops = append(r.ops, "clear")
}

func (r *recordingRenderer) FillRect(rect pong.Rect, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("rect %v,%v %vx%v", rect.X, rect.Y, rect.W, rect.H))
}

func (r *recordingRenderer) DrawText(s string, at pong.Vec2, size float64, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %q at %v,%v size %v", s, at.X, at.Y, size))
}

type harness struct {
	*game.Game
	audio *fakeAudio
	sink  *recordingSink
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{audio: &fakeAudio{}, sink: &recordingSink{}}
	h.Game = game.New(game.Deps{
		Clock:  game.NewStepClock(step),
		Audio:  h.audio,
		Sink:   h.sink,
		Logger: zaptest.NewLogger(t).Sugar(),
		Rand:   rand.New(rand.NewPCG(1, 1)),
		Bindings: game.NewBindings().
			Bind(keyW, game.LeftUp).
			Bind(keyS, game.LeftDown).
			Bind(keyUp, game.RightUp).
			Bind(keyDown, game.RightDown),
	})
	return h
}

// place puts the ball somewhere and lets it move immediately.
func (h *harness) place(pos, vel pong.Vec2) {
	ball := h.Ball()
	ball.Pos, ball.Vel, ball.ResumeAt = pos, vel, 0
}

func TestNewGame(t *testing.T) {
	h := newHarness(t)
	snap := h.Snapshot()

	assert.Equal(t, pong.Vec2{X: 20, Y: 285}, snap.Left.Pos)
	assert.Equal(t, pong.Vec2{X: 1240, Y: 285}, snap.Right.Pos)
	assert.Equal(t, pong.CenterPos, snap.Ball.Pos)
	assert.Equal(t, pong.ServeDelay, snap.Ball.ResumeAt)
	assert.Equal(t, "0", snap.Scores.Left.Text)
	assert.Equal(t, "0", snap.Scores.Right.Text)
	assert.Equal(t, game.MatchStats{}, snap.Stats)

	stats := h.Storage().CollectStats()
	assert.Equal(t, 5, stats.TotalEntityCount)
	assert.Equal(t, 4, stats.SingletonCount)
}

func TestPaddleControls(t *testing.T) {
	h := newHarness(t)
	const stepPx = pong.PaddleSpeed * 0.01

	h.KeyDown(keyW, false)
	h.Update()
	assert.InDelta(t, 285-stepPx, h.Paddle(pong.Left).Pos.Y, 1e-9)
	assert.Equal(t, 285.0, h.Paddle(pong.Right).Pos.Y)

	h.KeyUp(keyW)
	h.Update()
	assert.InDelta(t, 285-stepPx, h.Paddle(pong.Left).Pos.Y, 1e-9)

	h.KeyDown(keyDown, false)
	h.Update()
	h.Update()
	assert.InDelta(t, 285+2*stepPx, h.Paddle(pong.Right).Pos.Y, 1e-9)

	t.Run("up wins over down", func(t *testing.T) {
		h.KeyDown(keyUp, false)
		before := h.Paddle(pong.Right).Pos.Y
		h.Update()
		assert.InDelta(t, before-stepPx, h.Paddle(pong.Right).Pos.Y, 1e-9)
	})

	t.Run("paddle stays on screen", func(t *testing.T) {
		for range 100 {
			h.Update()
		}
		assert.Equal(t, 0.0, h.Paddle(pong.Right).Pos.Y)
	})
}

func TestKeyRepeatAndUnknownKeysAreIgnored(t *testing.T) {
	h := newHarness(t)

	h.KeyDown(keyS, true)
	assert.False(t, h.Controls().Held(game.LeftDown))

	h.KeyDown(keyOther, false)
	h.KeyUp(keyOther)
	assert.Equal(t, game.Controls{}, h.Controls())

	h.KeyDown(keyS, false)
	h.KeyDown(keyS, true)
	assert.True(t, h.Controls().Held(game.LeftDown))

	h.KeyUp(keyS)
	assert.False(t, h.Controls().Held(game.LeftDown))
}

func TestServeDelay(t *testing.T) {
	h := newHarness(t)
	steps := int(pong.ServeDelay / step)

	for range steps - 1 {
		require.Equal(t, pong.Outcome{Kind: pong.NoEvent}, h.Update())
	}
	assert.Equal(t, pong.CenterPos, h.Ball().Pos)

	h.Update()
	assert.NotEqual(t, pong.CenterPos, h.Ball().Pos)
}

func TestScoringUpdatesBoardSoundAndEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audio, sink := &fakeAudio{}, &recordingSink{}
	g := game.New(game.Deps{
		Clock:  game.NewStepClock(step),
		Audio:  audio,
		Sink:   sink,
		Logger: zap.New(core).Sugar(),
	})

	ball := g.Ball()
	ball.Pos, ball.Vel, ball.ResumeAt = pong.Vec2{X: 5, Y: 100}, pong.Vec2{X: -pong.BallSpeed}, 0

	out := g.Update()

	assert.Equal(t, pong.Outcome{Kind: pong.Scored, Side: pong.Right}, out)
	assert.Equal(t, []game.Cue{game.CueScore}, audio.cues)
	assert.Equal(t, []game.Event{{Outcome: out, Left: 0, Right: 1, At: step}}, sink.events)

	snap := g.Snapshot()
	assert.Equal(t, "1", snap.Scores.Right.Text)
	assert.Equal(t, "0", snap.Scores.Left.Text)
	assert.Equal(t, pong.CenterPos, snap.Ball.Pos)
	assert.Equal(t, step+pong.ScorePause, snap.Ball.ResumeAt)
	assert.Equal(t, 1, snap.Stats.Points)

	points := logs.FilterMessage("point")
	require.Equal(t, 1, points.Len())
	assert.Equal(t, "right", points.All()[0].ContextMap()["scorer"])
}

func TestPaddleHitsAndWallsProduceCues(t *testing.T) {
	h := newHarness(t)

	h.place(pong.Vec2{X: 35, Y: 360}, pong.Vec2{X: -pong.BallSpeed})
	assert.Equal(t, pong.Outcome{Kind: pong.HitPaddle, Side: pong.Left}, h.Update())

	h.place(pong.Vec2{X: 1235, Y: 360}, pong.Vec2{X: pong.BallSpeed})
	assert.Equal(t, pong.Outcome{Kind: pong.HitPaddle, Side: pong.Right}, h.Update())

	h.place(pong.Vec2{X: 600, Y: 2}, pong.Vec2{Y: -600})
	assert.Equal(t, pong.Outcome{Kind: pong.HitWall}, h.Update())

	assert.Equal(t, []game.Cue{game.CueLeftHit, game.CueRightHit}, h.audio.cues)
	assert.Len(t, h.sink.events, 3)
	assert.Equal(t, game.MatchStats{
		LeftHits:     1,
		RightHits:    1,
		Walls:        1,
		Rally:        2,
		LongestRally: 2,
	}, h.Stats())
}

func TestAudioFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	audio := &fakeAudio{err: errors.New("device busy")}
	g := game.New(game.Deps{
		Clock:  game.NewStepClock(step),
		Audio:  audio,
		Logger: zap.New(core).Sugar(),
	})

	ball := g.Ball()
	ball.Pos, ball.Vel, ball.ResumeAt = pong.Vec2{X: 5, Y: 100}, pong.Vec2{X: -pong.BallSpeed}, 0

	assert.Equal(t, pong.Scored, g.Update().Kind)
	assert.Equal(t, 1, logs.FilterMessage("sound playback failed").Len())

	g.Update()
	assert.Equal(t, 1, g.Paddle(pong.Right).Score)
}

func TestDrawOrder(t *testing.T) {
	h := newHarness(t)
	r := &recordingRenderer{}

	before := h.Snapshot()
	h.Draw(r)

	assert.Equal(t, []string{
		"clear",
		"rect 20,285 20x150",
		"rect 1240,285 20x150",
		"rect 630,350 20x20",
		"rect 637.5,0 5x720",
		`text "0" at 560,10 size 60`,
		`text "0" at 660,10 size 60`,
	}, r.ops)
	assert.Equal(t, before, h.Snapshot())
}

type frameCounter struct {
	Frame ecs.Singleton[game.Frame]
	seen  []time.Duration
}

func (c *frameCounter) Execute(*ecs.UpdateFrame) {
	c.seen = append(c.seen, c.Frame.Get().Now)
}

func TestRegisterUpdate(t *testing.T) {
	h := newHarness(t)
	counter := &frameCounter{}
	h.RegisterUpdate(counter)

	h.Update()
	h.Update()

	assert.Equal(t, []time.Duration{step, 2 * step}, counter.seen)

	stats := h.UpdateStats()
	assert.Equal(t, 6, stats.SystemCount)
	assert.Equal(t, "PaddleSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(2), stats.Systems[5].ExecutionCount)
}

func TestMatchStatsRecord(t *testing.T) {
	var m game.MatchStats
	for _, out := range []pong.Outcome{
		{Kind: pong.HitPaddle, Side: pong.Left},
		{Kind: pong.HitWall},
		{Kind: pong.HitPaddle, Side: pong.Right},
		{Kind: pong.HitPaddle, Side: pong.Left},
		{Kind: pong.Scored, Side: pong.Left},
		{Kind: pong.HitPaddle, Side: pong.Right},
		{Kind: pong.NoEvent},
	} {
		m.Record(out)
	}

	assert.Equal(t, game.MatchStats{
		LeftHits:     2,
		RightHits:    2,
		Walls:        1,
		Points:       1,
		Rally:        1,
		LongestRally: 3,
	}, m)
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		out  pong.Outcome
		cue  game.Cue
		play bool
	}{
		{pong.Outcome{Kind: pong.NoEvent}, 0, false},
		{pong.Outcome{Kind: pong.HitWall}, 0, false},
		{pong.Outcome{Kind: pong.HitPaddle, Side: pong.Left}, game.CueLeftHit, true},
		{pong.Outcome{Kind: pong.HitPaddle, Side: pong.Right}, game.CueRightHit, true},
		{pong.Outcome{Kind: pong.Scored, Side: pong.Left}, game.CueScore, true},
	}
	for _, tt := range tests {
		t.Run(tt.out.String(), func(t *testing.T) {
			cue, ok := game.CueFor(tt.out)
			assert.Equal(t, tt.play, ok)
			assert.Equal(t, tt.cue, cue)
		})
	}
}

func TestBindings(t *testing.T) {
	b := game.NewBindings().Bind(keyW, game.LeftUp).Bind(keyW, game.RightDown)

	control, ok := b.Lookup(keyW)
	assert.True(t, ok)
	assert.Equal(t, game.RightDown, control)
	assert.Equal(t, 1, b.Len())

	_, ok = b.Lookup(keyS)
	assert.False(t, ok)
}
