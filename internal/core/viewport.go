package core

import "math"

// Viewport projects the world's xz plane onto the screen for a top-down
// view. Forward (-Z) is up; the focus point sits on AnchorRow.
type Viewport struct {
	Width     int
	Height    int
	FocusX    float64
	FocusZ    float64
	ScaleX    float64 // Columns per world unit
	ScaleZ    float64 // Rows per world unit
	AnchorRow int
}

// NewViewport centers the focus horizontally at the given row.
func NewViewport(s *Screen, focusX, focusZ, scaleX, scaleZ float64, anchorRow int) Viewport {
	return Viewport{
		Width:     s.Width(),
		Height:    s.Height(),
		FocusX:    focusX,
		FocusZ:    focusZ,
		ScaleX:    scaleX,
		ScaleZ:    scaleZ,
		AnchorRow: anchorRow,
	}
}

// Project returns the screen cell for world coordinates x, z.
func (v Viewport) Project(x, z float64) (col, row int) {
	col = v.Width/2 + int(math.Floor((x-v.FocusX)*v.ScaleX+0.5))
	row = v.AnchorRow + int(math.Floor((z-v.FocusZ)*v.ScaleZ+0.5))
	return col, row
}

// Footprint returns the screen rectangle covered by a box's xz extent.
// Every box covers at least one cell.
func (v Viewport) Footprint(b Box) Rect {
	lo, hi := b.Min(), b.Max()
	x0, z0 := v.Project(lo.X(), lo.Z())
	x1, z1 := v.Project(hi.X(), hi.Z())
	return NewRect(x0, z0, max(x1-x0, 1), max(z1-z0, 1))
}

// FillBox draws a box's footprint, clipped to the screen.
func (v Viewport) FillBox(s *Screen, b Box, fill rune, c Color) {
	s.DrawRect(v.Footprint(b), fill, c)
}

// DrawMessage draws a boxed two-line message in the center of the screen.
func (s *Screen) DrawMessage(title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (s.width - boxW) / 2
	boxY := (s.height - boxH) / 2

	r := NewRect(boxX, boxY, boxW, boxH)
	s.DrawRect(r, ' ', ColorDefault)
	s.DrawBox(r)
	s.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	s.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
