package game

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/pong"
)

type paddleRow = struct{ *pong.Paddle }

// PaddleSystem moves each paddle according to its held keys.
type PaddleSystem struct {
	Controls ecs.Singleton[Controls]
	Paddles  ecs.Query[paddleRow]
}

func (s *PaddleSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	for row := range s.Paddles.Values() {
		up, down := LeftUp, LeftDown
		if row.Side == pong.Right {
			up, down = RightUp, RightDown
		}
		if dir := controls.Direction(up, down); dir != 0 {
			row.MoveY(dir * pong.PaddleSpeed * frame.DeltaTime)
		}
	}
}

// sides picks the left and right paddle out of a paddle query.
func sides(q *ecs.Query[paddleRow]) (left, right *pong.Paddle) {
	for row := range q.Values() {
		switch row.Side {
		case pong.Left:
			left = row.Paddle
		case pong.Right:
			right = row.Paddle
		}
	}
	return left, right
}

// BallSystem advances the ball and stores the outcome on the frame.
type BallSystem struct {
	Frame   ecs.Singleton[Frame]
	Balls   ecs.Query[struct{ *pong.Ball }]
	Paddles ecs.Query[paddleRow]
}

func (s *BallSystem) Execute(frame *ecs.UpdateFrame) {
	left, right := sides(&s.Paddles)
	if left == nil || right == nil {
		return
	}

	f := s.Frame.Get()
	for row := range s.Balls.Values() {
		if out := row.Update(f.Now, frame.DeltaTime, left, right); out.Kind != pong.NoEvent {
			f.Outcome = out
		}
	}
}

// ScoreboardSystem refreshes the score labels after a point.
type ScoreboardSystem struct {
	Frame       ecs.Singleton[Frame]
	Scoreboards ecs.Query[struct{ *Scoreboard }]
	Paddles     ecs.Query[paddleRow]
}

func (s *ScoreboardSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Frame.Get().Outcome.Kind != pong.Scored {
		return
	}
	left, right := sides(&s.Paddles)
	if left == nil || right == nil {
		return
	}
	for row := range s.Scoreboards.Values() {
		row.Layout = pong.LayoutScores(left.Score, right.Score)
	}
}

// SoundSystem plays the cue for the frame's outcome once the frame settles.
type SoundSystem struct {
	Frame ecs.Singleton[Frame]

	audio Audio
	log   *zap.SugaredLogger
}

func (s *SoundSystem) Execute(frame *ecs.UpdateFrame) {
	cue, ok := CueFor(s.Frame.Get().Outcome)
	if !ok {
		return
	}
	frame.Commands.Defer(func() {
		if err := s.audio.Play(cue); err != nil {
			s.log.Warnw("sound playback failed", "cue", cue, "error", err)
		}
	})
}

// EventSystem logs outcomes, keeps the match stats and forwards events to the
// sink.
type EventSystem struct {
	Frame   ecs.Singleton[Frame]
	Stats   ecs.Singleton[MatchStats]
	Paddles ecs.Query[paddleRow]

	sink EventSink
	log  *zap.SugaredLogger
}

func (s *EventSystem) Execute(frame *ecs.UpdateFrame) {
	f := s.Frame.Get()
	out := f.Outcome
	if out.Kind == pong.NoEvent {
		return
	}

	stats := s.Stats.Get()
	stats.Record(out)

	ev := Event{Outcome: out, At: f.Now}
	if left, right := sides(&s.Paddles); left != nil && right != nil {
		ev.Left, ev.Right = left.Score, right.Score
	}

	switch out.Kind {
	case pong.Scored:
		s.log.Infow("point",
			"scorer", out.Side,
			"left", ev.Left,
			"right", ev.Right,
			"longest_rally", stats.LongestRally,
			"at", f.Now)
	default:
		s.log.Debugw("bounce", "outcome", out, "rally", stats.Rally, "at", f.Now)
	}

	s.sink.Publish(ev)
}

var (
	background = color.Black
	foreground = color.White
)

// RenderSystem draws paddles, ball, divider and score text, in that order.
type RenderSystem struct {
	Canvas      ecs.Singleton[Canvas]
	Paddles     ecs.Query[paddleRow]
	Balls       ecs.Query[struct{ *pong.Ball }]
	Dividers    ecs.Query[struct{ *pong.Divider }]
	Scoreboards ecs.Query[struct{ *Scoreboard }]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	r := s.Canvas.Get().Renderer
	if r == nil {
		return
	}

	r.Clear(background)
	left, right := sides(&s.Paddles)
	for _, p := range []*pong.Paddle{left, right} {
		if p != nil {
			r.FillRect(p.Bounds(), foreground)
		}
	}
	for row := range s.Balls.Values() {
		r.FillRect(row.Bounds(), foreground)
	}
	for row := range s.Dividers.Values() {
		r.FillRect(row.Rect, foreground)
	}
	for row := range s.Scoreboards.Values() {
		r.DrawText(row.Layout.Left.Text, row.Layout.Left.Pos, pong.FontSize, foreground)
		r.DrawText(row.Layout.Right.Text, row.Layout.Right.Pos, pong.FontSize, foreground)
	}
}
