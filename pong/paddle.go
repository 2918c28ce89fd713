package pong

// Side identifies a player's half of the court.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Paddle is one player's bat plus that player's score.
type Paddle struct {
	Side  Side
	Pos   Vec2 // top-left corner
	Score int
}

// NewPaddle places a paddle against its side of the court, vertically
// centered.
func NewPaddle(side Side) Paddle {
	x := XMargin
	if side == Right {
		x = ScreenWidth - XMargin - PaddleWidth
	}
	return Paddle{
		Side: side,
		Pos:  Vec2{X: x, Y: (ScreenHeight - PaddleHeight) / 2},
	}
}

// Bounds returns the paddle's hit box.
func (p *Paddle) Bounds() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: PaddleWidth, H: PaddleHeight}
}

// MoveY shifts the paddle vertically, keeping it fully on screen.
func (p *Paddle) MoveY(delta float64) {
	p.Pos.Y = clamp(p.Pos.Y+delta, 0, ScreenHeight-PaddleHeight)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
