// Package input turns polled held/not-held button states into discrete
// "pressed this frame" events.
package input

import (
	"fmt"
	"strings"
)

// Channel is a logical input action, independent of the physical control
// bound to it.
type Channel int

const (
	Confirm Channel = iota
	Cancel
	Menu
	NavUp
	NavDown
	NavLeft
	NavRight
)

var channelNames = [...]string{
	Confirm:  "CONFIRM",
	Cancel:   "CANCEL",
	Menu:     "MENU",
	NavUp:    "NAV_UP",
	NavDown:  "NAV_DOWN",
	NavLeft:  "NAV_LEFT",
	NavRight: "NAV_RIGHT",
}

// AllChannels lists every channel.
var AllChannels = []Channel{Confirm, Cancel, Menu, NavUp, NavDown, NavLeft, NavRight}

// NavigationChannels are the channels the navigation handler consumes.
var NavigationChannels = []Channel{Confirm, NavUp, NavDown}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel maps a name such as "NAV_UP" (case-insensitive) to a Channel.
func ParseChannel(s string) (Channel, error) {
	for i, name := range channelNames {
		if strings.EqualFold(name, s) {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input channel %q", s)
}

// Mapping binds channels to physical button indices.
type Mapping map[Channel]int

// DefaultMapping follows the W3C standard gamepad layout.
func DefaultMapping() Mapping {
	return Mapping{
		Confirm:  0,
		Cancel:   1,
		Menu:     9,
		NavUp:    12,
		NavDown:  13,
		NavLeft:  14,
		NavRight: 15,
	}
}

// Validate rejects negative indices and two channels sharing a button.
func (m Mapping) Validate() error {
	seen := make(map[int]Channel, len(m))
	for ch, btn := range m {
		if btn < 0 {
			return fmt.Errorf("channel %s: negative button index %d", ch, btn)
		}
		if other, ok := seen[btn]; ok {
			return fmt.Errorf("button %d bound to both %s and %s", btn, other, ch)
		}
		seen[btn] = ch
	}
	return nil
}

// Events holds the channels pressed during one poll cycle.
type Events map[Channel]bool

// Pressed reports whether ch went from released to held this cycle.
func (e Events) Pressed(ch Channel) bool { return e[ch] }

// Any reports whether any channel was pressed.
func (e Events) Any() bool {
	for _, p := range e {
		if p {
			return true
		}
	}
	return false
}

// Merge returns the union of the pressed channels of all events.
func Merge(evs ...Events) Events {
	out := Events{}
	for _, ev := range evs {
		for ch, p := range ev {
			if p {
				out[ch] = true
			}
		}
	}
	return out
}

// Held reads the held state of every mapped channel through pressed, which
// reports whether a physical button index is down.
func (m Mapping) Held(pressed func(button int) bool) map[Channel]bool {
	held := make(map[Channel]bool, len(m))
	for ch, btn := range m {
		held[ch] = pressed(btn)
	}
	return held
}
