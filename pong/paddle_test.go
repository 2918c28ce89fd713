package pong_test

import (
	"testing"

	"github.com/plus3/pong/pong"
	"github.com/stretchr/testify/assert"
)

func TestNewPaddlePlacement(t *testing.T) {
	left := pong.NewPaddle(pong.Left)
	right := pong.NewPaddle(pong.Right)

	assert.Equal(t, pong.Vec2{X: 20, Y: 285}, left.Pos)
	assert.Equal(t, pong.Vec2{X: 1240, Y: 285}, right.Pos)
	assert.Equal(t, 0, left.Score)
	assert.Equal(t, pong.Rect{X: 1240, Y: 285, W: 20, H: 150}, right.Bounds())
}

func TestPaddleMoveClampsToScreen(t *testing.T) {
	p := pong.NewPaddle(pong.Left)

	p.MoveY(-100)
	assert.Equal(t, 185.0, p.Pos.Y)

	p.MoveY(-1000)
	assert.Equal(t, 0.0, p.Pos.Y)

	p.MoveY(1e6)
	assert.Equal(t, pong.ScreenHeight-pong.PaddleHeight, p.Pos.Y)

	for _, d := range []float64{-3, 47, -900, 12.5, 800, -0.1} {
		p.MoveY(d)
		assert.GreaterOrEqual(t, p.Pos.Y, 0.0)
		assert.LessOrEqual(t, p.Bounds().Bottom(), pong.ScreenHeight)
	}
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "left", pong.Left.String())
	assert.Equal(t, "right", pong.Right.String())
	assert.Equal(t, "unknown", pong.Side(7).String())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "none", pong.Outcome{}.String())
	assert.Equal(t, "wall", pong.Outcome{Kind: pong.HitWall, Side: pong.Right}.String())
	assert.Equal(t, "paddle:right", pong.Outcome{Kind: pong.HitPaddle, Side: pong.Right}.String())
	assert.Equal(t, "score:left", pong.Outcome{Kind: pong.Scored, Side: pong.Left}.String())
}

func TestRectOverlapsIsInclusive(t *testing.T) {
	r := pong.Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, r.Overlaps(pong.Rect{X: 10, Y: 10, W: 5, H: 5}), "corners touching")
	assert.True(t, r.Overlaps(pong.Rect{X: 2, Y: 2, W: 1, H: 1}), "contained")
	assert.False(t, r.Overlaps(pong.Rect{X: 10.5, Y: 0, W: 5, H: 5}))
	assert.False(t, r.Overlaps(pong.Rect{X: 0, Y: -6, W: 5, H: 5}))
}

func TestVecNormalize(t *testing.T) {
	assert.Equal(t, pong.Vec2{}, pong.Vec2{}.Normalize())
	assert.InDelta(t, 1, pong.Vec2{X: 3, Y: -4}.Normalize().Len(), eps)
	assert.Equal(t, pong.Vec2{X: 0.6, Y: -0.8}, pong.Vec2{X: 3, Y: -4}.Normalize())
}
