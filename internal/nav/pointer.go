package nav

import "image"

// ChoiceLayout places choice buttons in a centred column.
type ChoiceLayout struct {
	Top, Width, Height, Gap int
}

// Rects returns the button rectangles for n choices on a screen w pixels
// wide. Drawing and pointer hit tests must use the same layout.
func (l ChoiceLayout) Rects(n, w int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rects := make([]image.Rectangle, 0, n)
	x := (w - l.Width) / 2
	y := l.Top
	for range n {
		rects = append(rects, image.Rect(x, y, x+l.Width, y+l.Height))
		y += l.Height + l.Gap
	}
	return rects
}

// Pointer tracks the mouse between ticks.
type Pointer struct {
	last image.Point
	seen bool
}

// Hover returns the choice under pt that should take the highlight. It
// only reports one when the cursor moved since the previous call, so a
// resting mouse never fights keyboard or gamepad navigation.
func (p *Pointer) Hover(pt image.Point, rects []image.Rectangle, highlighted int) (int, bool) {
	moved := !p.seen || pt != p.last
	p.last, p.seen = pt, true
	if !moved {
		return 0, false
	}
	for i, r := range rects {
		if pt.In(r) {
			return i, i != highlighted
		}
	}
	return 0, false
}

// Hit returns the index of the rectangle containing pt.
func Hit(pt image.Point, rects []image.Rectangle) (int, bool) {
	for i, r := range rects {
		if pt.In(r) {
			return i, true
		}
	}
	return 0, false
}
