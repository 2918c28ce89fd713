package telemetry

import (
	"sync/atomic"

	"github.com/plus3/pong/pong"
)

// Metrics counts game events and feed activity. Safe for concurrent use.
type Metrics struct {
	Events      int64
	Walls       int64
	LeftHits    int64
	RightHits   int64
	LeftPoints  int64
	RightPoints int64
	Clients     int64 // connected feed clients
	Dropped     int64 // messages dropped for slow clients
}

// Record counts one outcome.
func (m *Metrics) Record(out pong.Outcome) {
	if out.Kind == pong.NoEvent {
		return
	}
	atomic.AddInt64(&m.Events, 1)

	switch out.Kind {
	case pong.HitWall:
		atomic.AddInt64(&m.Walls, 1)
	case pong.HitPaddle:
		if out.Side == pong.Left {
			atomic.AddInt64(&m.LeftHits, 1)
		} else {
			atomic.AddInt64(&m.RightHits, 1)
		}
	case pong.Scored:
		if out.Side == pong.Left {
			atomic.AddInt64(&m.LeftPoints, 1)
		} else {
			atomic.AddInt64(&m.RightPoints, 1)
		}
	}
}

func (m *Metrics) addClient(delta int64) { atomic.AddInt64(&m.Clients, delta) }
func (m *Metrics) incDropped()           { atomic.AddInt64(&m.Dropped, 1) }

// Snapshot returns a read-only copy for the /metrics endpoint.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"events":       atomic.LoadInt64(&m.Events),
		"walls":        atomic.LoadInt64(&m.Walls),
		"left_hits":    atomic.LoadInt64(&m.LeftHits),
		"right_hits":   atomic.LoadInt64(&m.RightHits),
		"left_points":  atomic.LoadInt64(&m.LeftPoints),
		"right_points": atomic.LoadInt64(&m.RightPoints),
		"clients":      atomic.LoadInt64(&m.Clients),
		"dropped":      atomic.LoadInt64(&m.Dropped),
	}
}
