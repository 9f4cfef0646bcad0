// Package nav maps directional/confirm input events onto scene controller
// intents.
package nav

import (
	"go.uber.org/zap"

	"novella/internal/input"
)

// Controller is the part of the scene controller the handler drives.
// *game.Engine satisfies it.
type Controller interface {
	ChoiceMode() bool
	ChoiceCount() int
	Highlighted() int
	SetHighlight(i int) error
	SelectChoice(i int) error
	NextVisible() bool
	Advance() error
}

// Handler moves the highlighted choice and triggers confirmation actions.
type Handler struct {
	ctrl   Controller
	logger *zap.Logger
}

// NewHandler returns a handler driving ctrl.
func NewHandler(ctrl Controller, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{ctrl: ctrl, logger: logger.Named("nav")}
}

// Handle applies one poll cycle's events. Cursor movement is evaluated
// before confirmation, both against the same events. When NAV_UP and
// NAV_DOWN arrive in the same cycle DOWN wins; the precedence is arbitrary
// but kept stable.
func (h *Handler) Handle(ev input.Events) error {
	if h.ctrl.ChoiceMode() {
		if n := h.ctrl.ChoiceCount(); n > 0 {
			cur := h.ctrl.Highlighted()
			next := cur
			switch {
			case ev.Pressed(input.NavDown):
				next = (cur + 1) % n
			case ev.Pressed(input.NavUp):
				next = (cur - 1 + n) % n
			}
			if next != cur {
				if err := h.ctrl.SetHighlight(next); err != nil {
					return err
				}
			}
		}
	}

	if !ev.Pressed(input.Confirm) {
		return nil
	}
	switch {
	case h.ctrl.ChoiceMode() && h.ctrl.Highlighted() != -1:
		i := h.ctrl.Highlighted()
		h.logger.Debug("confirm choice", zap.Int("choice", i))
		return h.ctrl.SelectChoice(i)
	case h.ctrl.NextVisible():
		return h.ctrl.Advance()
	default:
		return nil
	}
}
