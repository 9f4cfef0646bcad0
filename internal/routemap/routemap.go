// Package routemap renders the route a player took through a story as a
// printable PDF: one stop per visited scene, joined by the choices taken.
package routemap

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf/v2"

	"novella/internal/game"
)

const (
	pageW      = 595
	pageH      = 842
	margin     = 40
	stopW      = 110.0
	stopH      = 54.0
	colStep    = 130.0
	rowStep    = 110.0
	perRow     = 4
	fontSize   = 8
	titleSize  = 16
	labelSize  = 7
	previewLen = 60
)

// Stop is one scene on the route and the choice that left it, if any.
type Stop struct {
	Scene  int
	Text   string
	Choice string
}

// Route lists the stops of a playthrough: the origin scene of every choice
// in the history, then the current scene.
func Route(st *game.Story, gs game.GameState) []Stop {
	stops := make([]Stop, 0, len(gs.ChoiceHistory)+1)
	for _, rec := range gs.ChoiceHistory {
		stops = append(stops, Stop{Scene: rec.SceneIndex, Text: sceneText(st, rec.SceneIndex), Choice: rec.ChoiceText})
	}
	stops = append(stops, Stop{Scene: gs.CurrentScene, Text: sceneText(st, gs.CurrentScene)})
	return stops
}

func sceneText(st *game.Story, i int) string {
	sc, err := st.Scene(i)
	if err != nil {
		return ""
	}
	r := []rune(sc.Text)
	if len(r) > previewLen {
		return string(r[:previewLen-3]) + "..."
	}
	return sc.Text
}

// Generate returns PDF bytes for the route of gs through st. A nil story
// yields nil output.
func Generate(st *game.Story, gs game.GameState, title string) ([]byte, error) {
	if st == nil {
		return nil, nil
	}
	stops := Route(st, gs)

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	rows := (len(stops) + perRow - 1) / perRow
	perPage := stopsPerPage() / perRow
	carried := make(map[int]bool)
	for _, i := range PageBreaks(stops) {
		carried[i] = true
	}

	for page := 0; page*perPage < rows; page++ {
		pdf.AddPage()
		drawPaper(pdf)
		drawHeader(pdf, tr, st, title, page)

		first, last := pageRange(page, perPage*perRow, len(stops))
		pos := layout(last - first)

		pdf.SetDrawColor(150, 50, 60)
		pdf.SetLineWidth(1.5)
		pdf.SetDashPattern([]float64{6, 4}, 0)
		for i := first; i < last-1; i++ {
			a, b := pos[i-first], pos[i+1-first]
			pdf.Line(a[0], a[1], b[0], b[1])
		}
		pdf.SetDashPattern([]float64{}, 0)

		for i := first; i < last; i++ {
			p := pos[i-first]
			drawStop(pdf, tr, p[0], p[1], stops[i], i == len(stops)-1)
			switch {
			case carried[i]:
				drawChoiceLabel(pdf, tr, p[0], p[1]+stopH/2+18, stops[i].Choice+" (cont.)")
			case stops[i].Choice != "" && i+1 < last:
				q := pos[i+1-first]
				drawChoiceLabel(pdf, tr, (p[0]+q[0])/2, (p[1]+q[1])/2, stops[i].Choice)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageRange returns the stops [first, last) drawn on page.
func pageRange(page, size, n int) (first, last int) {
	first = page * size
	last = first + size
	if last > n {
		last = n
	}
	return first, last
}

// PageBreaks returns the stops whose outgoing leg crosses onto the next
// page. Their choice label is drawn under the stop.
func PageBreaks(stops []Stop) []int {
	size := stopsPerPage()
	var out []int
	for i := size - 1; i < len(stops)-1; i += size {
		if stops[i].Choice != "" {
			out = append(out, i)
		}
	}
	return out
}

func stopsPerPage() int {
	avail := float64(pageH - 2*margin - 90)
	rows := int(avail / rowStep)
	if rows < 1 {
		rows = 1
	}
	return rows * perRow
}

// layout places n stops on a snake path, left to right then back.
func layout(n int) [][2]float64 {
	pos := make([][2]float64, n)
	x0 := float64(margin) + stopW/2 + 10
	y0 := float64(margin) + 110
	for i := 0; i < n; i++ {
		row, col := i/perRow, i%perRow
		if row%2 == 1 {
			col = perRow - 1 - col
		}
		pos[i] = [2]float64{x0 + float64(col)*colStep, y0 + float64(row)*rowStep}
	}
	return pos
}

func drawPaper(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(248, 244, 236)
	pdf.Rect(0, 0, pageW, pageH, "F")
	pdf.SetDrawColor(60, 50, 70)
	pdf.SetLineWidth(1.5)
	pdf.Polygon(wobblyFrame(margin, margin, pageW-2*margin, pageH-2*margin, 14, 2.5), "D")
	pdf.SetLineWidth(1)
}

// wobblyFrame returns a rectangle outline with a slight sine wobble.
func wobblyFrame(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	edge := func(x0, y0, dx, dy, phase float64) {
		for i := 0; i < steps; i++ {
			t := float64(i) / float64(steps)
			wob := amp * math.Sin(float64(i)*0.9+phase)
			pts = append(pts, gofpdf.PointType{
				X: x0 + t*dx + wob*math.Abs(dy)/math.Max(math.Abs(dy), 1),
				Y: y0 + t*dy + wob*math.Abs(dx)/math.Max(math.Abs(dx), 1),
			})
		}
	}
	edge(x, y, w, 0, 0)
	edge(x+w, y, 0, h, 1)
	edge(x+w, y+h, -w, 0, 2)
	edge(x, y+h, 0, -h, 3)
	return append(pts, pts[0])
}

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, st *game.Story, title string, page int) {
	pdf.SetTextColor(60, 50, 70)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+10, margin+14)
	heading := "Story Route"
	if title != "" {
		heading = title
	} else if st.Title != "" {
		heading = st.Title
	}
	pdf.CellFormat(pageW-2*margin-20, 18, tr(heading), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetXY(margin+10, margin+36)
	sub := fmt.Sprintf("%d scenes in story", st.Len())
	if page > 0 {
		sub += fmt.Sprintf(" - page %d", page+1)
	}
	pdf.CellFormat(pageW-2*margin-20, 10, sub, "", 0, "L", false, 0, "")
}

func drawStop(pdf *gofpdf.Fpdf, tr func(string) string, cx, cy float64, s Stop, current bool) {
	x, y := cx-stopW/2, cy-stopH/2
	if current {
		pdf.SetFillColor(255, 236, 200)
		pdf.SetDrawColor(150, 50, 60)
		pdf.SetLineWidth(2)
	} else {
		pdf.SetFillColor(255, 255, 255)
		pdf.SetDrawColor(60, 50, 70)
		pdf.SetLineWidth(1)
	}
	pdf.RoundedRect(x, y, stopW, stopH, 6, "1234", "FD")
	pdf.SetLineWidth(1)

	pdf.SetTextColor(60, 50, 70)
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetXY(x+4, y+4)
	pdf.CellFormat(stopW-8, 10, fmt.Sprintf("Scene %d", s.Scene), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", labelSize)
	pdf.SetXY(x+4, y+15)
	pdf.MultiCell(stopW-8, 8, tr(s.Text), "", "L", false)

	if current {
		pdf.SetFont("Helvetica", "I", labelSize)
		pdf.SetTextColor(150, 50, 60)
		pdf.SetXY(x, y+stopH+2)
		pdf.CellFormat(stopW, 8, "You are here", "", 0, "C", false, 0, "")
	}
}

func drawChoiceLabel(pdf *gofpdf.Fpdf, tr func(string) string, cx, cy float64, text string) {
	r := []rune(text)
	if len(r) > 28 {
		text = string(r[:25]) + "..."
	}
	const w, h = 100.0, 10.0
	pdf.SetFillColor(248, 244, 236)
	pdf.SetTextColor(150, 50, 60)
	pdf.SetFont("Helvetica", "I", labelSize)
	pdf.SetXY(cx-w/2, cy-h/2)
	pdf.CellFormat(w, h, tr(text), "", 0, "C", true, 0, "")
}
