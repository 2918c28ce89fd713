package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/pong/game"
)

// Held keys report repeats like an OS keyboard: after repeatDelay ticks,
// then every repeatInterval ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// DefaultBindings maps W/S to the left paddle and the arrow keys to the
// right one.
func DefaultBindings() *game.Bindings {
	return game.NewBindings().
		Bind(game.Key(ebiten.KeyW), game.LeftUp).
		Bind(game.Key(ebiten.KeyS), game.LeftDown).
		Bind(game.Key(ebiten.KeyArrowUp), game.RightUp).
		Bind(game.Key(ebiten.KeyArrowDown), game.RightDown)
}

// Keyboard turns ebiten's polled key state into key events.
type Keyboard struct {
	keys []ebiten.Key
}

// Poll delivers this tick's key events to g. While captured is set (the
// overlay has keyboard focus) only releases are delivered.
func (k *Keyboard) Poll(g *game.Game, captured bool) {
	k.keys = inpututil.AppendJustReleasedKeys(k.keys[:0])
	for _, key := range k.keys {
		g.KeyUp(game.Key(key))
	}
	if captured {
		return
	}

	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		d := inpututil.KeyPressDuration(key)
		switch {
		case d == 1:
			g.KeyDown(game.Key(key), false)
		case d > repeatDelay && (d-repeatDelay)%repeatInterval == 0:
			g.KeyDown(game.Key(key), true)
		}
	}
}
