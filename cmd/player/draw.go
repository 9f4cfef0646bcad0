package main

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"novella/internal/assets"
	"novella/internal/game"
	"novella/internal/nav"
)

const (
	glyphW     = 6
	lineH      = 16
	boxMargin  = 20
	boxHeight  = 150
	choiceW    = 420
	choiceH    = 32
	choiceGap  = 12
	spriteFrac = 0.7
)

var (
	colorBox       = color.RGBA{0x10, 0x10, 0x20, 0xd0}
	colorChoice    = color.RGBA{0x20, 0x20, 0x38, 0xe0}
	colorHighlight = color.RGBA{0xc4, 0x6c, 0x32, 0xff}
	colorBorder    = color.RGBA{0xe0, 0xd8, 0xc8, 0xff}
	colorOverlay   = color.RGBA{0x08, 0x08, 0x10, 0xe8}
)

const slotMenuHelp = "Enter load  Right save  Backspace delete  Esc close"

// imageKind separates the placeholder families sharing one cache.
type imageKind string

const (
	kindBackground imageKind = "background"
	kindSprite     imageKind = "sprite"
)

type imageKey struct {
	ref  string
	kind imageKind
}

var positionX = map[game.Position]float64{
	game.PositionLeft:   0.2,
	game.PositionCenter: 0.5,
	game.PositionRight:  0.8,
}

// Draw implements ebiten.Game.
func (p *player) Draw(screen *ebiten.Image) {
	v := p.engine.View()
	w, h := p.cfg.WindowWidth, p.cfg.WindowHeight

	p.drawBackground(screen, v.Background, w, h)
	p.drawCharacters(screen, v.Characters, w, h)
	p.drawTextBox(screen, v, w, h)
	p.drawChoices(screen, v, w)
	if p.menu.Open() {
		p.drawSlotMenu(screen, w, h)
	}

	if p.status != "" && time.Now().Before(p.statusUntil) {
		ebitenutil.DebugPrintAt(screen, p.status, boxMargin, boxMargin/2)
	}
}

func (p *player) drawBackground(screen *ebiten.Image, ref string, w, h int) {
	img := p.image(ref, kindBackground, assets.PlaceholderBackground)
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (p *player) drawCharacters(screen *ebiten.Image, chars []game.CharacterView, w, h int) {
	someoneSpeaks := false
	for _, c := range chars {
		someoneSpeaks = someoneSpeaks || c.Speaking
	}
	for _, c := range chars {
		img := p.image(assets.SpriteRef(c.ID, c.Emotion), kindSprite, assets.PlaceholderSprite)
		b := img.Bounds()
		scale := float64(h) * spriteFrac / float64(b.Dy())
		x := float64(w)*positionX[c.Position] - float64(b.Dx())*scale/2
		y := float64(h) - boxHeight - float64(b.Dy())*scale

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		if someoneSpeaks && !c.Speaking {
			op.ColorScale.Scale(0.6, 0.6, 0.6, 1)
		}
		screen.DrawImage(img, op)
	}
}

func (p *player) drawTextBox(screen *ebiten.Image, v game.View, w, h int) {
	top := float32(h - boxHeight)
	vector.DrawFilledRect(screen, boxMargin, top, float32(w-2*boxMargin), boxHeight-boxMargin, colorBox, false)

	y := int(top) + 10
	for _, c := range v.Characters {
		if c.Speaking {
			ebitenutil.DebugPrintAt(screen, c.Name, boxMargin+12, y)
			y += lineH + 4
			break
		}
	}
	for _, line := range wrap(v.Text, (w-2*boxMargin-24)/glyphW) {
		ebitenutil.DebugPrintAt(screen, line, boxMargin+12, y)
		y += lineH
	}

	hint := ""
	switch {
	case v.Ended:
		hint = "- The End -"
	case v.NextVisible:
		hint = "Next >"
	}
	if hint != "" {
		ebitenutil.DebugPrintAt(screen, hint, w-boxMargin-12-len(hint)*glyphW, h-boxMargin-lineH-6)
	}
}

var choiceLayout = nav.ChoiceLayout{Top: 120, Width: choiceW, Height: choiceH, Gap: choiceGap}

func choiceRects(v game.View, w int) []image.Rectangle {
	if v.Mode != game.ModeChoices {
		return nil
	}
	return choiceLayout.Rects(len(v.Choices), w)
}

func (p *player) drawChoices(screen *ebiten.Image, v game.View, w int) {
	for i, r := range choiceRects(v, w) {
		text := v.Choices[i]
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), choiceW, choiceH, colorChoice, false)
		border := colorBorder
		if i == v.Highlighted {
			border = colorHighlight
		}
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), choiceW, choiceH, 2, border, false)
		ebitenutil.DebugPrintAt(screen, text, r.Min.X+(choiceW-len([]rune(text))*glyphW)/2, r.Min.Y+(choiceH-lineH)/2)
	}
}

func (p *player) drawSlotMenu(screen *ebiten.Image, w, h int) {
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), colorOverlay, false)
	x, y := boxMargin*2, boxMargin*2
	ebitenutil.DebugPrintAt(screen, "Save slots", x, y)
	ebitenutil.DebugPrintAt(screen, slotMenuHelp, x, y+lineH)
	y += 3 * lineH

	rowW := float32(w - 4*boxMargin)
	for i, line := range p.menu.Lines() {
		if i == p.menu.Cursor() {
			vector.StrokeRect(screen, float32(x-6), float32(y-4), rowW, lineH+8, 2, colorHighlight, false)
		}
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += lineH + choiceGap
	}
}

// image returns the cached image for ref, falling back to a generated
// placeholder when the file is missing, remote or unreadable.
func (p *player) image(ref string, kind imageKind, placeholder func(string) *image.RGBA) *ebiten.Image {
	key := imageKey{ref: ref, kind: kind}
	if img, ok := p.images[key]; ok {
		return img
	}
	var src image.Image
	path, err := p.resolver.Resolve(ref, assets.ImageExtensions)
	if err == nil {
		src, err = decodeFile(path)
	}
	if err != nil {
		p.logger.Debug("using placeholder image", zap.String("ref", ref), zap.String("kind", string(kind)), zap.Error(err))
		src = placeholder(ref)
	}
	img := ebiten.NewImageFromImage(src)
	p.images[key] = img
	return img
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from assets.Resolver
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// wrap breaks s into lines of at most width runes at word boundaries.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
