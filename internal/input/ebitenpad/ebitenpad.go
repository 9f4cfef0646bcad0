// Package ebitenpad exposes ebiten gamepads and the keyboard as
// input.Device values. The functions here must be called from the ebiten
// game loop.
package ebitenpad

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"novella/internal/input"
)

// Gamepad reads the first connected gamepad through a button mapping.
type Gamepad struct {
	mapping input.Mapping
	ids     []ebiten.GamepadID
}

// NewGamepad returns a gamepad device using m.
func NewGamepad(m input.Mapping) *Gamepad {
	return &Gamepad{mapping: m}
}

// Held implements input.Device. ok is false when no gamepad is connected.
func (g *Gamepad) Held() (map[input.Channel]bool, bool) {
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	if len(g.ids) == 0 {
		return nil, false
	}
	id := g.ids[0]

	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		return g.mapping.Held(func(b int) bool {
			if b > int(ebiten.StandardGamepadButtonMax) {
				return false
			}
			return ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButton(b))
		}), true
	}
	n := ebiten.GamepadButtonCount(id)
	return g.mapping.Held(func(b int) bool {
		return b < n && ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton(b))
	}), true
}

// DefaultKeys binds keyboard keys to channels.
var DefaultKeys = map[input.Channel][]ebiten.Key{
	input.Confirm:  {ebiten.KeyEnter, ebiten.KeySpace},
	input.Cancel:   {ebiten.KeyBackspace},
	input.Menu:     {ebiten.KeyEscape},
	input.NavUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	input.NavDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	input.NavLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	input.NavRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

// Keyboard is always present.
type Keyboard struct {
	keys map[input.Channel][]ebiten.Key
}

// NewKeyboard returns a keyboard device using DefaultKeys, with the
// channels named in overrides rebound to the given ebiten key names
// (e.g. "Enter", "ArrowUp", "W").
func NewKeyboard(overrides map[input.Channel][]string) (*Keyboard, error) {
	keys := make(map[input.Channel][]ebiten.Key, len(DefaultKeys))
	for ch, ks := range DefaultKeys {
		keys[ch] = ks
	}
	for ch, names := range overrides {
		bound := make([]ebiten.Key, 0, len(names))
		for _, name := range names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("channel %s: key %q: %w", ch, name, err)
			}
			bound = append(bound, k)
		}
		keys[ch] = bound
	}
	return &Keyboard{keys: keys}, nil
}

// Held implements input.Device.
func (k *Keyboard) Held() (map[input.Channel]bool, bool) {
	held := make(map[input.Channel]bool, len(k.keys))
	for ch, keys := range k.keys {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				held[ch] = true
				break
			}
		}
	}
	return held, true
}
