package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a user command read from the keyboard
type Action int

const (
	ActionNone Action = iota
	ActionToggleHUD
	ActionTogglePause
	ActionQuit
)

// KeySource reports keys pressed this tick. It exists so tests can drive the
// game without a window.
type KeySource interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Controls maps keys to actions
type Controls struct {
	keys     KeySource
	bindings map[ebiten.Key]Action
}

// NewControls creates the default key bindings: F1 toggles the HUD, Space
// pauses, Escape or Q quits.
func NewControls(keys KeySource) *Controls {
	if keys == nil {
		keys = ebitenKeys{}
	}
	return &Controls{
		keys: keys,
		bindings: map[ebiten.Key]Action{
			ebiten.KeyF1:     ActionToggleHUD,
			ebiten.KeySpace:  ActionTogglePause,
			ebiten.KeyEscape: ActionQuit,
			ebiten.KeyQ:      ActionQuit,
		},
	}
}

// Poll returns the actions triggered this tick in a stable order
func (c *Controls) Poll() []Action {
	var out []Action
	for _, key := range []ebiten.Key{ebiten.KeyF1, ebiten.KeySpace, ebiten.KeyEscape, ebiten.KeyQ} {
		if c.keys.IsKeyJustPressed(key) {
			out = append(out, c.bindings[key])
		}
	}
	return out
}
