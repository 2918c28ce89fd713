// Package pong holds the rules of the game: paddles, the ball and how it
// bounces, scoring and where the score labels go. It has no rendering, audio
// or input dependencies; those are wired in by package game.
package pong

import "time"

// Court
const (
	ScreenWidth  = 1280.0
	ScreenHeight = 720.0
	XMargin      = 20.0
)

// Paddles
const (
	PaddleWidth  = 20.0
	PaddleHeight = 150.0
	PaddleSpeed  = 1200.0 // px/s
)

// Ball
const (
	BallSize  = 20.0
	BallSpeed = 1200.0 // px/s
)

// Timing
const (
	ServeDelay = 5 * time.Second
	ScorePause = 2 * time.Second
)

// Score labels and divider
const (
	FontSize     = 60.0
	ScoreTop     = 10.0
	ScoreGap     = 20.0
	DividerWidth = 5.0
)
