package tty

import (
	"math"

	"ballpit/internal/physics"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	bodyRune = '●'
	wallRune = '█'
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 110))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	selectStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// View maps the canvas onto a grid of terminal cells. The last row is the status line.
type View struct {
	width, height float64 // canvas size
	cols, rows    int     // cells used for the canvas
	walls         []bool  // cached wall coverage per cell
}

// NewView fits a width x height canvas into a cols x rows screen.
func NewView(width, height float64, cols, rows int, walls []physics.Wall) *View {
	v := &View{width: width, height: height}
	v.Resize(cols, rows, walls)
	return v
}

// Resize recomputes the cell grid and the wall mask.
func (v *View) Resize(cols, rows int, walls []physics.Wall) {
	v.cols, v.rows = max(cols, 1), max(rows-1, 1)
	v.walls = make([]bool, v.cols*v.rows)
	cw, ch := v.cellSize()
	slack := math.Hypot(cw, ch) / 4
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			c := v.CellCenter(x, y)
			for _, w := range walls {
				if w.Distance(c) <= w.HalfThickness()+slack {
					v.walls[y*v.cols+x] = true
					break
				}
			}
		}
	}
}

func (v *View) cellSize() (float64, float64) {
	return v.width / float64(v.cols), v.height / float64(v.rows)
}

// CellCenter returns the canvas point at the center of cell (x, y).
func (v *View) CellCenter(x, y int) mgl64.Vec2 {
	cw, ch := v.cellSize()
	return mgl64.Vec2{(float64(x) + 0.5) * cw, (float64(y) + 0.5) * ch}
}

// ToCell converts a canvas point to the cell containing it, clamped to the grid.
func (v *View) ToCell(p mgl64.Vec2) (int, int) {
	cw, ch := v.cellSize()
	x := int(math.Floor(p.X() / cw))
	y := int(math.Floor(p.Y() / ch))
	return min(max(x, 0), v.cols-1), min(max(y, 0), v.rows-1)
}

// Draw renders walls, bodies and the status line. selected is highlighted (NoSelection for none).
func (v *View) Draw(s tcell.Screen, frame physics.Frame, selected int, status string) {
	s.Clear()
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			if v.walls[y*v.cols+x] {
				s.SetContent(x, y, wallRune, nil, wallStyle)
			}
		}
	}
	for i, b := range frame.Bodies {
		style := tcell.StyleDefault.Foreground(colorOf(b.Color))
		if i == selected {
			style = selectStyle
		}
		// Every body covers at least the cell holding its center.
		cx, cy := v.ToCell(b.Position)
		s.SetContent(cx, cy, bodyRune, nil, style)
		x0, y0 := v.ToCell(b.Position.Sub(mgl64.Vec2{b.Radius, b.Radius}))
		x1, y1 := v.ToCell(b.Position.Add(mgl64.Vec2{b.Radius, b.Radius}))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if v.CellCenter(x, y).Sub(b.Position).Len() <= b.Radius {
					s.SetContent(x, y, bodyRune, nil, style)
				}
			}
		}
	}
	for x, r := range []rune(status) {
		if x >= v.cols {
			break
		}
		s.SetContent(x, v.rows, r, nil, statusStyle)
	}
	s.Show()
}

func colorOf(rgba uint32) tcell.Color {
	return tcell.NewRGBColor(int32(rgba>>24&0xff), int32(rgba>>16&0xff), int32(rgba>>8&0xff))
}
