package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/plus3/pong/pong"
)

// Renderer is the only drawing surface the game needs.
type Renderer interface {
	Clear(c color.Color)
	FillRect(r pong.Rect, c color.Color)
	DrawText(s string, at pong.Vec2, size float64, c color.Color)
}

// Cue names one of the sound clips.
type Cue int

const (
	CueLeftHit Cue = iota
	CueRightHit
	CueScore
)

func (c Cue) String() string {
	switch c {
	case CueLeftHit:
		return "left-hit"
	case CueRightHit:
		return "right-hit"
	case CueScore:
		return "score"
	default:
		return fmt.Sprintf("Cue(%d)", int(c))
	}
}

// CueFor picks the clip for an outcome. Wall bounces and quiet frames have
// none.
func CueFor(out pong.Outcome) (Cue, bool) {
	switch out.Kind {
	case pong.HitPaddle:
		if out.Side == pong.Left {
			return CueLeftHit, true
		}
		return CueRightHit, true
	case pong.Scored:
		return CueScore, true
	default:
		return 0, false
	}
}

// Audio plays sound cues.
type Audio interface {
	Play(cue Cue) error
}

// Silent is an Audio that plays nothing.
type Silent struct{}

func (Silent) Play(Cue) error { return nil }

// Clock reports game time. Tick is called once at the start of every update.
type Clock interface {
	Tick()
	Elapsed() time.Duration
	AverageDelta() time.Duration
}

// Event is published for every update that produced an outcome.
type Event struct {
	Outcome pong.Outcome
	Left    int
	Right   int
	At      time.Duration
}

// EventSink receives game events. Publish is called on the game goroutine
// and must not block.
type EventSink interface {
	Publish(ev Event)
}

type discard struct{}

func (discard) Publish(Event) {}
