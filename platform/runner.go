package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/pong/game"
	"github.com/plus3/pong/pong"
)

// Runner implements ebiten.Game around a game.Game.
type Runner struct {
	game     *game.Game
	screen   *Screen
	keyboard Keyboard
	overlay  *Overlay // nil unless debugging
}

func NewRunner(g *game.Game, screen *Screen, overlay *Overlay) *Runner {
	return &Runner{game: g, screen: screen, overlay: overlay}
}

func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	captured := false
	if r.overlay != nil {
		r.overlay.Update(1 / float64(ebiten.TPS()))
		captured = r.overlay.WantsKeyboard()
	}

	r.keyboard.Poll(r.game, captured)
	r.game.Update()
	return nil
}

func (r *Runner) Draw(screen *ebiten.Image) {
	r.game.Draw(r.screen.Target(screen))
	if r.overlay != nil {
		r.overlay.Draw(screen)
	}
}

// Layout keeps the court at its logical size; ebiten scales it to the window.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := int(pong.ScreenWidth), int(pong.ScreenHeight)
	if r.overlay != nil {
		r.overlay.Layout(w, h)
	}
	return w, h
}
