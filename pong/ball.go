package pong

import (
	"math"
	"math/rand/v2"
	"time"
)

// Ball is the square puck. Its bounds are always derived from Pos.
type Ball struct {
	Pos      Vec2
	Vel      Vec2          // px/s, magnitude BallSpeed
	ResumeAt time.Duration // the ball is frozen while now < ResumeAt

	rng *rand.Rand
}

// CenterPos is where the ball is served from.
var CenterPos = Vec2{X: (ScreenWidth - BallSize) / 2, Y: (ScreenHeight - BallSize) / 2}

// NewBall puts a ball at the center with a random serve that starts moving
// ServeDelay after now. A nil rng uses the global source.
func NewBall(rng *rand.Rand, now time.Duration) Ball {
	return Ball{
		Pos:      CenterPos,
		Vel:      RandomVelocity(rng),
		ResumeAt: now + ServeDelay,
		rng:      rng,
	}
}

// Bounds returns the ball's hit box.
func (b *Ball) Bounds() Rect {
	return Rect{X: b.Pos.X, Y: b.Pos.Y, W: BallSize, H: BallSize}
}

// Paused reports whether the ball is frozen at now.
func (b *Ball) Paused(now time.Duration) bool {
	return now < b.ResumeAt
}

// Update advances the ball by dt seconds and resolves at most one collision.
//
// Checks run in a fixed order: top/bottom wall, left paddle, right paddle,
// then the goal lines. A wall bounce ends the step, and when both paddles
// overlap the ball the left one wins. Scoring increments the scorer and
// re-serves from the center after ScorePause.
func (b *Ball) Update(now time.Duration, dt float64, left, right *Paddle) Outcome {
	if b.Paused(now) {
		return Outcome{Kind: NoEvent}
	}

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if b.Pos.Y < 0 || b.Pos.Y > ScreenHeight-BallSize {
		b.Vel.Y = -b.Vel.Y
		return Outcome{Kind: HitWall}
	}

	bounds := b.Bounds()
	if left.Bounds().Overlaps(bounds) {
		b.Pos.X = XMargin + PaddleWidth
		b.Vel = b.returnVelocity(left)
		return Outcome{Kind: HitPaddle, Side: Left}
	}
	if right.Bounds().Overlaps(bounds) {
		b.Pos.X = ScreenWidth - XMargin - PaddleWidth - BallSize
		b.Vel = b.returnVelocity(right)
		return Outcome{Kind: HitPaddle, Side: Right}
	}

	switch {
	case b.Pos.X > ScreenWidth-PaddleWidth:
		left.Score++
		b.Serve(now + ScorePause)
		return Outcome{Kind: Scored, Side: Left}
	case b.Pos.X < 0:
		right.Score++
		b.Serve(now + ScorePause)
		return Outcome{Kind: Scored, Side: Right}
	}

	return Outcome{Kind: NoEvent}
}

// Serve re-centers the ball with a fresh random direction, frozen until
// resumeAt.
func (b *Ball) Serve(resumeAt time.Duration) {
	b.Pos = CenterPos
	b.Vel = RandomVelocity(b.rng)
	b.ResumeAt = resumeAt
}

func (b *Ball) returnVelocity(p *Paddle) Vec2 {
	return ReturnVelocity(p.Side, b.Pos.Y-p.Bounds().Top())
}

// ReturnAngle maps where the ball struck a paddle (diff: ball top minus
// paddle top) to a departure angle in radians. Across the paddle's height the
// left paddle sweeps -45°..45° and the right one 225°..135°. Hits beyond the
// paddle ends extrapolate.
func ReturnAngle(side Side, diff float64) float64 {
	from, to := -45.0, 45.0
	if side == Right {
		from, to = 225.0, 135.0
	}
	deg := mapRange(diff, 0, PaddleHeight, from, to)
	return deg * math.Pi / 180
}

// ReturnVelocity is ReturnAngle as a velocity of magnitude BallSpeed.
func ReturnVelocity(side Side, diff float64) Vec2 {
	angle := ReturnAngle(side, diff)
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(BallSpeed)
}

func mapRange(v, fromLo, fromHi, toLo, toHi float64) float64 {
	return toLo + (v-fromLo)*(toHi-toLo)/(fromHi-fromLo)
}

// RandomVelocity draws a serve direction: two uniform samples with the
// vertical one shrunk by 128 so serves travel almost horizontally, a coin
// flip for which player receives, scaled to BallSpeed.
func RandomVelocity(rng *rand.Rand) Vec2 {
	float, coin := rand.Float64, rand.IntN
	if rng != nil {
		float, coin = rng.Float64, rng.IntN
	}

	dir := Vec2{X: float(), Y: float() / 128}.Normalize()
	if dir == (Vec2{}) {
		dir = Vec2{X: 1}
	}
	if coin(2) == 0 {
		dir = dir.Scale(-1)
	}
	return dir.Scale(BallSpeed)
}
