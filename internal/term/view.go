package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/city"
)

// World units covered by one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	UnitsPerCol = 4.0
	UnitsPerRow = 8.0

	// probeHeight is above every building the layout can produce.
	probeHeight = 1000.0
)

// Cell is one character of the map.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Frame is a composed top-down view, row-major.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
}

func (f *Frame) at(col, row int) *Cell {
	return &f.Cells[row*f.Cols+col]
}

func (f *Frame) text(col, row int, s string, st tcell.Style) {
	for _, r := range s {
		if col >= f.Cols {
			return
		}
		if col >= 0 && row >= 0 && row < f.Rows {
			*f.at(col, row) = Cell{Ch: r, Style: st}
		}
		col++
	}
}

var (
	styleGround  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x44AA44))
	styleVoid    = tcell.StyleDefault
	styleActor   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleVehicle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewHexColor(0x87CEEB))
)

// shade picks a glyph and colour for a roof height.
func shade(y float64) (rune, tcell.Style) {
	switch {
	case y < 1:
		return '.', styleGround
	case y < 40:
		return '░', tcell.StyleDefault.Foreground(tcell.ColorSilver)
	case y < 70:
		return '▒', tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	default:
		return '▓', tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// arrow points along a facing direction, north (-Z) up.
func arrow(yaw float64) rune {
	f := city.Pose{Yaw: yaw}.Facing()
	a := math.Atan2(f.X(), -f.Z()) // 0 = north, clockwise
	sector := int(math.Round(a/(math.Pi/2))) & 3
	return [4]rune{'^', '>', 'v', '<'}[sector]
}

// cellCentre maps a cell to the world point under it, centred on focus.
func cellCentre(focus mgl64.Vec3, cols, rows, col, row int) (x, z float64) {
	x = focus.X() + (float64(col)-float64(cols)/2+0.5)*UnitsPerCol
	z = focus.Z() + (float64(row)-float64(rows)/2+0.5)*UnitsPerRow
	return x, z
}

// worldCell is the inverse of cellCentre.
func worldCell(focus mgl64.Vec3, cols, rows int, p mgl64.Vec3) (col, row int) {
	col = int(math.Floor((p.X()-focus.X())/UnitsPerCol + float64(cols)/2))
	row = int(math.Floor((p.Z()-focus.Z())/UnitsPerRow + float64(rows)/2))
	return col, row
}

// Compose draws the world from above around the active target. The top row
// is a status line.
func Compose(w *city.World, pending, cols, rows int) Frame {
	f := Frame{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	if cols <= 0 || rows <= 0 {
		return f
	}
	target := w.Target()
	focus := target.Position
	down := mgl64.Vec3{0, -1, 0}

	for row := 1; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, z := cellCentre(focus, cols, rows, col, row)
			c := Cell{Ch: ' ', Style: styleVoid}
			if hit, ok := w.Index.Probe(mgl64.Vec3{x, probeHeight, z}, down); ok {
				c.Ch, c.Style = shade(hit.Point.Y())
			}
			*f.at(col, row) = c
		}
	}

	for _, v := range w.Vehicles {
		col, row := worldCell(focus, cols, rows, v.Pose.Position)
		if col < 0 || col >= cols || row < 1 || row >= rows {
			continue
		}
		ch := 'V'
		if v.Driver != nil {
			ch = arrow(v.Pose.Yaw)
		}
		*f.at(col, row) = Cell{Ch: ch, Style: styleVehicle}
	}

	p := w.Player
	if p.Visible {
		col, row := worldCell(focus, cols, rows, p.Pose.Position)
		if col >= 0 && col < cols && row >= 1 && row < rows {
			*f.at(col, row) = Cell{Ch: '@', Style: styleActor}
		}
	}

	for col := 0; col < cols; col++ {
		*f.at(col, 0) = Cell{Ch: ' ', Style: styleHUD}
	}
	f.text(0, 0, statusLine(w, pending), styleHUD)
	return f
}

func statusLine(w *city.World, pending int) string {
	t := w.Target()
	s := fmt.Sprintf(" %s %c  x=%.0f y=%.1f z=%.0f", w.Player.Mode, arrow(t.Yaw),
		t.Position.X(), t.Position.Y(), t.Position.Z())
	if car := w.Player.CurrentCar; car != nil {
		s += "  [" + car.Model + "]"
	}
	if pending > 0 {
		s += fmt.Sprintf("  loading %d", pending)
	}
	if w.Last.Blocked {
		s += "  BLOCKED"
	}
	return s + "  | wasd move  space fly  e car  q quit"
}

// Blit copies a frame to the screen.
func Blit(s tcell.Screen, f Frame) {
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			c := f.at(col, row)
			s.SetContent(col, row, c.Ch, nil, c.Style)
		}
	}
}
