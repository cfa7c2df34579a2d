package terminal

import (
	"image/color"
	"math"

	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/render"
)

// paint blends clr into the cell at (col, row), ignoring cells off screen
func (t *Terminal) paint(col, row int, clr color.Color) {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return
	}
	i := row*t.cols + col
	t.cells[i] = render.Blend(t.cells[i], clr)
}

// cellRange returns the columns or rows overlapped by [lo, hi) at the given
// cell size, always at least one.
func cellRange(lo, hi, size float32) (int, int) {
	first := int(math.Floor(float64(lo / size)))
	last := int(math.Ceil(float64(hi/size))) - 1
	return first, max(first, last)
}

// center returns the logical position of a cell's center
func (t *Terminal) center(col, row int) shadows.Point {
	cw, ch := t.cellSize()
	return shadows.Point{X: (float32(col) + 0.5) * cw, Y: (float32(row) + 0.5) * ch}
}

// FillRect paints every cell the rectangle overlaps.
func (t *Terminal) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	cw, ch := t.cellSize()
	c0, c1 := cellRange(x, x+width, cw)
	r0, r1 := cellRange(y, y+height, ch)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			t.paint(col, row, clr)
		}
	}
}

// FillCircle paints the cells whose centers are inside the circle, and
// always the cell holding the center.
func (t *Terminal) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	cw, ch := t.cellSize()
	c0, c1 := cellRange(x-radius, x+radius, cw)
	r0, r1 := cellRange(y-radius, y+radius, ch)
	hit := shadows.Point{X: x, Y: y}
	own := [2]int{int(x / cw), int(y / ch)}

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if (col == own[0] && row == own[1]) || shadows.Distance(t.center(col, row), hit) <= radius {
				t.paint(col, row, clr)
			}
		}
	}
}

// StrokeCircle paints the cells whose centers lie within half a cell of the circle.
func (t *Terminal) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	cw, ch := t.cellSize()
	band := max(strokeWidth, max(cw, ch)) / 2
	c0, c1 := cellRange(x-radius-band, x+radius+band, cw)
	r0, r1 := cellRange(y-radius-band, y+radius+band, ch)
	hit := shadows.Point{X: x, Y: y}

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			d := shadows.Distance(t.center(col, row), hit)
			if radius-band <= d && d <= radius+band {
				t.paint(col, row, clr)
			}
		}
	}
}

// StrokeLine walks the segment in steps no longer than half a cell.
func (t *Terminal) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	cw, ch := t.cellSize()
	dx, dy := x1-x0, y1-y0
	steps := int(max(abs32(dx)/cw, abs32(dy)/ch)*2) + 1

	last := [2]int{-1, -1}
	for i := 0; i <= steps; i++ {
		f := float32(i) / float32(steps)
		cell := [2]int{int((x0 + dx*f) / cw), int((y0 + dy*f) / ch)}
		if cell == last {
			continue
		}
		t.paint(cell[0], cell[1], clr)
		last = cell
	}
}

// FillPolygon paints the cells whose centers fall inside the polygon.
func (t *Terminal) FillPolygon(dst render.Image, points []shadows.Point, clr color.Color) {
	if len(points) < 3 {
		return
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}

	cw, ch := t.cellSize()
	c0, c1 := cellRange(lo.X, hi.X, cw)
	r0, r1 := cellRange(lo.Y, hi.Y, ch)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, t.cols-1), min(r1, t.rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if shadows.PointInPolygon(t.center(col, row), points) {
				t.paint(col, row, clr)
			}
		}
	}
}

// DrawText writes text starting at the cell holding (x, y). Scale is ignored.
func (t *Terminal) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	cw, ch := t.cellSize()
	col, row := int(float32(x)/cw), int(float32(y)/ch)
	if row < 0 || row >= t.rows {
		return
	}

	fg := render.Blend(color.Black, clr)
	for _, r := range text {
		if r == '\n' {
			row++
			col = int(float32(x) / cw)
			if row >= t.rows {
				return
			}
			continue
		}
		if 0 <= col && col < t.cols {
			i := row*t.cols + col
			t.text[i] = r
			t.textColor[i] = fg
		}
		col++
	}
}

// MeasureText returns the logical size of text, one cell per rune and one
// row per line. Scale is ignored.
func (t *Terminal) MeasureText(text string, scale float64) (width, height int) {
	cw, ch := t.cellSize()
	columns, lines := render.TextExtent(text)
	return int(float32(columns) * cw), int(float32(lines) * ch)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
