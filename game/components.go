package game

import (
	"time"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/pong"
)

// Scoreboard is the component carrying the current score labels.
type Scoreboard struct {
	Layout pong.ScoreLayout
}

// Frame is per-update state shared by the systems.
type Frame struct {
	Now     time.Duration
	Delta   float64 // seconds
	Outcome pong.Outcome
}

// Canvas is the renderer for the current draw pass.
type Canvas struct {
	Renderer Renderer
}

// MatchStats counts what has happened since the game started. A rally is
// the number of paddle hits since the last point.
type MatchStats struct {
	LeftHits     int
	RightHits    int
	Walls        int
	Points       int
	Rally        int
	LongestRally int
}

// Record folds one outcome into the stats.
func (m *MatchStats) Record(out pong.Outcome) {
	switch out.Kind {
	case pong.HitWall:
		m.Walls++
	case pong.HitPaddle:
		if out.Side == pong.Left {
			m.LeftHits++
		} else {
			m.RightHits++
		}
		m.Rally++
		m.LongestRally = max(m.LongestRally, m.Rally)
	case pong.Scored:
		m.Points++
		m.Rally = 0
	}
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[pong.Paddle](registry)
	ecs.RegisterComponent[pong.Ball](registry)
	ecs.RegisterComponent[pong.Divider](registry)
	ecs.RegisterComponent[Scoreboard](registry)
	return registry
}
