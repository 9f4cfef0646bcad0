package nav

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"novella/internal/input"
	"novella/internal/save"
)

// SlotStore is the part of save.Service the slot menu drives.
type SlotStore interface {
	Slots(ctx context.Context) ([]save.SlotSummary, error)
	Save(ctx context.Context, slot int) (save.Record, error)
	Load(ctx context.Context, slot int) (save.Record, error)
	Delete(ctx context.Context, slot int) error
}

// Action reports what a slot menu input did.
type Action int

const (
	ActionNone Action = iota
	ActionOpened
	ActionClosed
	ActionSaved
	ActionLoaded
	ActionDeleted
)

// SlotMenu is the save/load overlay. MENU toggles it. While open, NAV_UP
// and NAV_DOWN move the cursor, CONFIRM loads, NAV_RIGHT saves and CANCEL
// empties the slot under the cursor.
type SlotMenu struct {
	saves  SlotStore
	open   bool
	cursor int
	slots  []save.SlotSummary
	logger *zap.Logger
}

// NewSlotMenu returns a closed menu over saves.
func NewSlotMenu(saves SlotStore, logger *zap.Logger) *SlotMenu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotMenu{saves: saves, logger: logger.Named("slotmenu")}
}

func (m *SlotMenu) Open() bool  { return m.open }
func (m *SlotMenu) Cursor() int { return m.cursor }

// Summaries returns the slot listing as of the last refresh.
func (m *SlotMenu) Summaries() []save.SlotSummary {
	return append([]save.SlotSummary(nil), m.slots...)
}

// Toggle opens the menu with a fresh listing, or closes it.
func (m *SlotMenu) Toggle(ctx context.Context) (Action, error) {
	if m.open {
		m.open = false
		return ActionClosed, nil
	}
	if err := m.refresh(ctx); err != nil {
		return ActionNone, err
	}
	if m.cursor >= len(m.slots) {
		m.cursor = 0
	}
	m.open = true
	return ActionOpened, nil
}

func (m *SlotMenu) refresh(ctx context.Context) error {
	slots, err := m.saves.Slots(ctx)
	if err != nil {
		return fmt.Errorf("list save slots: %w", err)
	}
	m.slots = slots
	return nil
}

// Handle applies one poll cycle's events. Events are consumed whenever the
// menu is open or MENU was pressed; callers should skip scene navigation
// then.
func (m *SlotMenu) Handle(ctx context.Context, ev input.Events) (Action, error) {
	if ev.Pressed(input.Menu) {
		return m.Toggle(ctx)
	}
	if !m.open || len(m.slots) == 0 {
		return ActionNone, nil
	}

	n := len(m.slots)
	switch {
	case ev.Pressed(input.NavDown):
		m.cursor = (m.cursor + 1) % n
	case ev.Pressed(input.NavUp):
		m.cursor = (m.cursor - 1 + n) % n
	}

	slot := m.cursor
	switch {
	case ev.Pressed(input.Confirm):
		if _, err := m.saves.Load(ctx, slot); err != nil {
			return ActionNone, err
		}
		m.open = false
		return ActionLoaded, nil
	case ev.Pressed(input.NavRight):
		if _, err := m.saves.Save(ctx, slot); err != nil {
			return ActionNone, err
		}
		return ActionSaved, m.refresh(ctx)
	case ev.Pressed(input.Cancel):
		if err := m.saves.Delete(ctx, slot); err != nil {
			return ActionNone, err
		}
		return ActionDeleted, m.refresh(ctx)
	}
	return ActionNone, nil
}

// Lines renders one row per slot, numbered from 1.
func (m *SlotMenu) Lines() []string {
	lines := make([]string, 0, len(m.slots))
	for _, s := range m.slots {
		var line string
		switch {
		case s.Empty:
			line = fmt.Sprintf("Slot %d  (empty)", s.Slot+1)
		case s.Corrupt:
			line = fmt.Sprintf("Slot %d  (damaged)", s.Slot+1)
		default:
			line = fmt.Sprintf("Slot %d  %s  Scene %d  %s",
				s.Slot+1, s.Timestamp.Local().Format("2006-01-02 15:04"), s.SceneIndex, s.Preview)
		}
		lines = append(lines, line)
	}
	return lines
}
