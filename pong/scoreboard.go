package pong

import "strconv"

// Label is a piece of text anchored at its top-left corner.
type Label struct {
	Text string
	Pos  Vec2
}

// ScoreLayout is where both scores are drawn.
type ScoreLayout struct {
	Left, Right Label
}

// LayoutScores positions the two score labels either side of the divider.
// The left label grows leftward by one glyph per extra digit so it never
// crosses the center line; the right label has a fixed anchor.
func LayoutScores(left, right int) ScoreLayout {
	return ScoreLayout{
		Left: Label{
			Text: strconv.Itoa(left),
			Pos: Vec2{
				X: ScreenWidth/2 - ScoreGap - FontSize - float64(extraDigits(left))*FontSize,
				Y: ScoreTop,
			},
		},
		Right: Label{
			Text: strconv.Itoa(right),
			Pos:  Vec2{X: ScreenWidth/2 + ScoreGap, Y: ScoreTop},
		},
	}
}

// extraDigits is floor(log10(score)+1)-1 for positive scores and 0 otherwise,
// computed on the decimal string so powers of ten are exact.
func extraDigits(score int) int {
	if score <= 0 {
		return 0
	}
	return len(strconv.Itoa(score)) - 1
}

// Divider is the solid line down the middle of the court.
type Divider struct {
	Rect Rect
}

// NewDivider centers a full-height line on the court.
func NewDivider() Divider {
	return Divider{Rect: Rect{
		X: (ScreenWidth - DividerWidth) / 2,
		W: DividerWidth,
		H: ScreenHeight,
	}}
}
