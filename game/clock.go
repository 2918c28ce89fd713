package game

import "time"

// deltaWindow is how many recent frames AverageDelta smooths over.
const deltaWindow = 200

// DefaultFramePeriod is the expected tick period at ebiten's default 60 TPS.
const DefaultFramePeriod = time.Second / 60

// FrameClock measures wall-clock time between ticks. Time starts at the
// first tick; the gap between construction and the first frame is not part
// of Elapsed or of any frame delta.
type FrameClock struct {
	now     func() time.Time
	started bool
	start   time.Time
	last    time.Time

	samples [deltaWindow]time.Duration
	next    int
}

// NewFrameClock returns a clock whose delta window is filled with period,
// the expected time between ticks.
func NewFrameClock(period time.Duration) *FrameClock {
	return newFrameClockAt(time.Now, period)
}

func newFrameClockAt(now func() time.Time, period time.Duration) *FrameClock {
	c := &FrameClock{now: now}
	for i := range c.samples {
		c.samples[i] = period
	}
	return c
}

// Tick records the time since the previous tick. The first tick only
// anchors the clock.
func (c *FrameClock) Tick() {
	t := c.now()
	if !c.started {
		c.started = true
		c.start, c.last = t, t
		return
	}
	c.samples[c.next] = t.Sub(c.last)
	c.next = (c.next + 1) % deltaWindow
	c.last = t
}

// Elapsed returns the time of the last tick relative to the first one.
func (c *FrameClock) Elapsed() time.Duration {
	return c.last.Sub(c.start)
}

// AverageDelta is the mean of the last deltaWindow frame deltas, counting
// the initial period for frames not yet seen.
func (c *FrameClock) AverageDelta() time.Duration {
	var sum time.Duration
	for _, d := range c.samples {
		sum += d
	}
	return sum / deltaWindow
}

// StepClock advances by a fixed step on every tick. Headless runs and tests
// use it for reproducible frames.
type StepClock struct {
	Step    time.Duration
	elapsed time.Duration
}

func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{Step: step}
}

func (c *StepClock) Tick()                       { c.elapsed += c.Step }
func (c *StepClock) Elapsed() time.Duration      { return c.elapsed }
func (c *StepClock) AverageDelta() time.Duration { return c.Step }
