package pong

import "fmt"

// OutcomeKind tags what happened during one ball update.
type OutcomeKind int

const (
	NoEvent OutcomeKind = iota
	HitWall
	HitPaddle
	Scored
)

func (k OutcomeKind) String() string {
	switch k {
	case NoEvent:
		return "none"
	case HitWall:
		return "wall"
	case HitPaddle:
		return "paddle"
	case Scored:
		return "score"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of Ball.Update. Side is the paddle that was hit for
// HitPaddle and the paddle that won the point for Scored; it is meaningless
// for the other kinds.
type Outcome struct {
	Kind OutcomeKind
	Side Side
}

func (o Outcome) String() string {
	switch o.Kind {
	case HitPaddle, Scored:
		return o.Kind.String() + ":" + o.Side.String()
	default:
		return o.Kind.String()
	}
}
