// Package platform binds the game to ebiten: the window loop, keyboard,
// drawing, sound and the debug overlay.
package platform

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/pong/pong"
)

// LoadFont parses a TrueType font. Nil data selects the bundled Press Start
// 2P face.
func LoadFont(data []byte) (*text.GoTextFaceSource, error) {
	if data == nil {
		data = fonts.PressStart2P_ttf
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return src, nil
}

// Screen implements game.Renderer on an ebiten image.
type Screen struct {
	dst   *ebiten.Image
	font  *text.GoTextFaceSource
	faces map[float64]*text.GoTextFace
}

func NewScreen(font *text.GoTextFaceSource) *Screen {
	return &Screen{font: font, faces: make(map[float64]*text.GoTextFace)}
}

// Target sets the image the next draw calls go to.
func (s *Screen) Target(dst *ebiten.Image) *Screen {
	s.dst = dst
	return s
}

func (s *Screen) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *Screen) FillRect(r pong.Rect, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *Screen) DrawText(str string, at pong.Vec2, size float64, c color.Color) {
	face, ok := s.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: s.font, Size: size}
		s.faces[size] = face
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, face, op)
}
