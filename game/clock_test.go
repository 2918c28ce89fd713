package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/pong/pong"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestFrameClock(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1700000000, 0)}
	c := newFrameClockAt(ft.now, 10*time.Millisecond)

	assert.Equal(t, time.Duration(0), c.Elapsed())
	assert.Equal(t, 10*time.Millisecond, c.AverageDelta(), "window starts full of the nominal period")

	ft.advance(10 * time.Millisecond)
	c.Tick()
	assert.Equal(t, time.Duration(0), c.Elapsed(), "the first tick anchors the clock")

	ft.advance(10 * time.Millisecond)
	c.Tick()
	ft.advance(30 * time.Millisecond)
	c.Tick()

	assert.Equal(t, 40*time.Millisecond, c.Elapsed())
	assert.Equal(t, 10100*time.Microsecond, c.AverageDelta())

	// time between ticks is not visible until the next tick
	ft.advance(time.Second)
	assert.Equal(t, 40*time.Millisecond, c.Elapsed())
}

func TestFrameClockWindow(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newFrameClockAt(ft.now, 10*time.Millisecond)

	c.Tick()
	for range deltaWindow {
		ft.advance(16 * time.Millisecond)
		c.Tick()
	}

	assert.Equal(t, 16*time.Millisecond, c.AverageDelta(), "old samples fall out of the window")
}

func TestFrameClockIgnoresStartupGap(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newFrameClockAt(ft.now, DefaultFramePeriod)

	ft.advance(500 * time.Millisecond)
	c.Tick()
	assert.Equal(t, DefaultFramePeriod, c.AverageDelta())

	for i := range 5 {
		ft.advance(DefaultFramePeriod)
		c.Tick()
		assert.Equal(t, DefaultFramePeriod, c.AverageDelta(), "frame %d", i+1)
	}
	assert.Equal(t, 5*DefaultFramePeriod, c.Elapsed())
}

func TestStartupGapDoesNotMovePaddlesOrShortenServe(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	g := New(Deps{
		Clock:    newFrameClockAt(ft.now, DefaultFramePeriod),
		Bindings: NewBindings().Bind(Key(1), LeftDown),
	})
	startY := g.Paddle(pong.Left).Pos.Y

	ft.advance(500 * time.Millisecond)
	g.KeyDown(Key(1), false)
	g.Update()

	step := pong.PaddleSpeed * DefaultFramePeriod.Seconds()
	assert.InDelta(t, startY+step, g.Paddle(pong.Left).Pos.Y, 1e-6)

	snap := g.Snapshot()
	assert.Equal(t, time.Duration(0), snap.Now)
	assert.True(t, snap.Ball.Paused(snap.Now))
	assert.Equal(t, pong.ServeDelay, snap.Ball.ResumeAt-snap.Now, "serve delay counts from the first frame")
}

func TestStepClock(t *testing.T) {
	c := NewStepClock(5 * time.Millisecond)
	assert.Equal(t, time.Duration(0), c.Elapsed())

	c.Tick()
	c.Tick()
	c.Tick()

	assert.Equal(t, 15*time.Millisecond, c.Elapsed())
	assert.Equal(t, 5*time.Millisecond, c.AverageDelta())
}

func TestControlsDirection(t *testing.T) {
	var c Controls
	assert.Equal(t, 0.0, c.Direction(LeftUp, LeftDown))

	c.Set(LeftDown, true)
	assert.Equal(t, 1.0, c.Direction(LeftUp, LeftDown))

	c.Set(LeftUp, true)
	assert.Equal(t, -1.0, c.Direction(LeftUp, LeftDown))
	assert.Equal(t, 0.0, c.Direction(RightUp, RightDown))

	c.Set(Control(9), true)
	assert.False(t, c.Held(Control(9)))
}
