package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"novella/internal/assets"
	"novella/internal/config"
	"novella/internal/game"
	"novella/internal/input"
	"novella/internal/nav"
	"novella/internal/routemap"
	"novella/internal/save"
)

const (
	statusDuration = 3 * time.Second
	storeTimeout   = 3 * time.Second
)

var slotKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3,
	ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
}

// player is the ebiten.Game hosting the engine.
type player struct {
	cfg      *config.Config
	engine   *game.Engine
	saves    *save.Service
	nav      *nav.Handler
	menu     *nav.SlotMenu
	poller   *input.Poller
	resolver *assets.Resolver
	images   map[imageKey]*ebiten.Image
	logger   *zap.Logger

	pointer     nav.Pointer
	status      string
	statusUntil time.Time
}

func newPlayer(cfg *config.Config, engine *game.Engine, saves *save.Service, r *assets.Resolver, lg *zap.Logger) *player {
	return &player{
		cfg:      cfg,
		engine:   engine,
		saves:    saves,
		resolver: r,
		images:   make(map[imageKey]*ebiten.Image),
		logger:   lg.Named("player"),
	}
}

// Update implements ebiten.Game.
func (p *player) Update() error {
	if err := p.poller.Tick(); err != nil {
		return err
	}
	if !p.menu.Open() {
		p.handlePointer()
		p.handleSlotKeys()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		p.exportRoute()
	}
	return nil
}

// Layout implements ebiten.Game.
func (p *player) Layout(_, _ int) (int, int) {
	return p.cfg.WindowWidth, p.cfg.WindowHeight
}

// handleInput receives the merged device events of one tick. Engine
// refusals are logged, never fatal.
func (p *player) handleInput(ev input.Events) error {
	if p.handleMenu(ev) {
		return nil
	}
	atEnd := p.atFinalScene()
	if err := p.nav.Handle(ev); err != nil {
		p.logIntentError(err)
	}
	if atEnd && ev.Pressed(input.Confirm) {
		p.finish()
	}
	return nil
}

// handleMenu feeds ev to the slot menu and reports whether it consumed it.
func (p *player) handleMenu(ev input.Events) bool {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	wasOpen := p.menu.Open()
	act, err := p.menu.Handle(ctx, ev)
	if err != nil {
		p.reportSlotError(p.menu.Cursor(), "Slot action", err)
	}
	switch act {
	case nav.ActionSaved:
		p.setStatus(fmt.Sprintf("Saved to slot %d", p.menu.Cursor()+1))
	case nav.ActionLoaded:
		p.setStatus(fmt.Sprintf("Loaded slot %d", p.menu.Cursor()+1))
	case nav.ActionDeleted:
		p.setStatus(fmt.Sprintf("Slot %d cleared", p.menu.Cursor()+1))
	}
	return wasOpen || act != nav.ActionNone
}

// atFinalScene reports whether the last scene is showing and the end text
// has not been reached yet.
func (p *player) atFinalScene() bool {
	return !p.engine.ChoiceMode() && !p.engine.Ended() &&
		p.engine.Story().Last(p.engine.CurrentScene())
}

func (p *player) finish() {
	if err := p.engine.Advance(); err != nil {
		p.logIntentError(err)
	}
}

// handlePointer follows the mouse. Choice rectangles come from the current
// view, not from the previous frame.
func (p *player) handlePointer() {
	x, y := ebiten.CursorPosition()
	pt := image.Pt(x, y)

	v := p.engine.View()
	rects := choiceRects(v, p.cfg.WindowWidth)
	if i, ok := p.pointer.Hover(pt, rects, v.Highlighted); ok {
		if err := p.engine.SetHighlight(i); err != nil {
			p.logIntentError(err)
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}

	if v.Mode == game.ModeChoices {
		if i, ok := nav.Hit(pt, rects); ok {
			if err := p.engine.SelectChoice(i); err != nil {
				p.logIntentError(err)
			}
		}
		return
	}
	switch {
	case v.NextVisible:
		if err := p.engine.Advance(); err != nil {
			p.logIntentError(err)
		}
	case p.atFinalScene():
		p.finish()
	}
}

func (p *player) handleSlotKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for slot, key := range slotKeys {
		if slot >= p.saves.SlotCount() || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if shift {
			p.load(slot)
		} else {
			p.save(slot)
		}
	}
}

func (p *player) save(slot int) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := p.saves.Save(ctx, slot); err != nil {
		p.logger.Error("save failed", zap.Int("slot", slot), zap.Error(err))
		p.setStatus(fmt.Sprintf("Save to slot %d failed", slot+1))
		return
	}
	p.setStatus(fmt.Sprintf("Saved to slot %d", slot+1))
}

func (p *player) load(slot int) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := p.saves.Load(ctx, slot); err != nil {
		p.reportSlotError(slot, "Load from slot", err)
		return
	}
	p.setStatus(fmt.Sprintf("Loaded slot %d", slot+1))
}

func (p *player) reportSlotError(slot int, what string, err error) {
	switch {
	case errors.Is(err, save.ErrSlotEmpty):
		p.setStatus(fmt.Sprintf("Slot %d is empty", slot+1))
	case errors.Is(err, save.ErrSlotCorrupt):
		p.setStatus(fmt.Sprintf("Slot %d is damaged", slot+1))
	default:
		p.logger.Error("slot operation failed", zap.Int("slot", slot), zap.Error(err))
		p.setStatus(fmt.Sprintf("%s %d failed", what, slot+1))
	}
}

func (p *player) exportRoute() {
	b, err := routemap.Generate(p.engine.Story(), p.engine.Snapshot(), "")
	if err == nil {
		err = os.MkdirAll(p.cfg.ExportDir, 0o750)
	}
	name := filepath.Join(p.cfg.ExportDir, "route-"+time.Now().Format("20060102-150405")+".pdf")
	if err == nil {
		err = os.WriteFile(name, b, 0o600)
	}
	if err != nil {
		p.logger.Error("route export failed", zap.Error(err))
		p.setStatus("Route export failed")
		return
	}
	p.logger.Info("route exported", zap.String("path", name))
	p.setStatus("Route map written to " + name)
}

func (p *player) setStatus(msg string) {
	p.status = msg
	p.statusUntil = time.Now().Add(statusDuration)
}

func (p *player) logIntentError(err error) {
	if errors.Is(err, game.ErrIntentUnavailable) {
		p.logger.Debug("input ignored", zap.Error(err))
		return
	}
	p.logger.Warn("input rejected", zap.Error(err))
}
