package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"linkage"
	"linkage/diagram"
	"linkage/geometry"
)

// BoxStyle defines the characters used for drawing elements.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// DefaultBoxStyle uses rounded corners.
var DefaultBoxStyle = BoxStyle{
	TopLeft:     '╭',
	TopRight:    '╮',
	BottomLeft:  '╰',
	BottomRight: '╯',
	Horizontal:  '─',
	Vertical:    '│',
}

// Runes for lines and handles.
const (
	LineRune      = '·'
	HandleRune    = 'o'
	GluedRune     = '◎'
	ConnectedRune = '●'
)

var (
	styleItem      = tcell.StyleDefault
	styleHandle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleConnected = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

// painter draws a model onto a screen, one view unit per cell.
type painter struct {
	screen tcell.Screen
	width  int
	height int
}

func newPainter(screen tcell.Screen) *painter {
	w, h := screen.Size()
	return &painter{screen: screen, width: w, height: h}
}

// Draw renders every item of m in paint order, then the handles and the
// status line.
func Draw(screen tcell.Screen, m *linkage.Model, status string) {
	p := newPainter(screen)
	screen.Clear()

	items := m.Canvas.Items()
	for _, item := range items {
		switch it := item.(type) {
		case *diagram.Element:
			p.drawBox(m.Canvas.ViewBounds(it), DefaultBoxStyle)
		default:
			p.drawPolyline(m, item)
		}
	}
	for _, item := range items {
		p.drawHandles(m, item)
	}
	p.drawStatus(status)
	screen.Show()
}

// drawBox draws a rectangle, clipped to the screen.
func (p *painter) drawBox(r geometry.Rect, style BoxStyle) {
	x, y := round(r.X), round(r.Y)
	x2, y2 := round(r.X+r.Width), round(r.Y+r.Height)
	if x2 <= x || y2 <= y {
		return
	}

	for i := x + 1; i < x2; i++ {
		p.setClipped(i, y, style.Horizontal, styleItem)
		p.setClipped(i, y2, style.Horizontal, styleItem)
	}
	for i := y + 1; i < y2; i++ {
		p.setClipped(x, i, style.Vertical, styleItem)
		p.setClipped(x2, i, style.Vertical, styleItem)
	}
	p.setClipped(x, y, style.TopLeft, styleItem)
	p.setClipped(x2, y, style.TopRight, styleItem)
	p.setClipped(x, y2, style.BottomLeft, styleItem)
	p.setClipped(x2, y2, style.BottomRight, styleItem)
}

func (p *painter) drawPolyline(m *linkage.Model, item diagram.Item) {
	i2v := m.Canvas.ItemToView(item)
	handles := item.Handles()
	for i := 0; i+1 < len(handles); i++ {
		a := geometry.Apply(i2v, handles[i].Pos)
		b := geometry.Apply(i2v, handles[i+1].Pos)
		p.drawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), LineRune)
	}
}

// drawLine draws a line between two cells using Bresenham's algorithm.
func (p *painter) drawLine(x1, y1, x2, y2 int, char rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	x, y := x1, y1

	xInc := 1
	if x1 > x2 {
		xInc = -1
	}
	yInc := 1
	if y1 > y2 {
		yInc = -1
	}

	if dx > dy {
		err := dx / 2
		for x != x2 {
			p.setClipped(x, y, char, styleItem)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != y2 {
			p.setClipped(x, y, char, styleItem)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}

	p.setClipped(x2, y2, char, styleItem)
}

func (p *painter) drawHandles(m *linkage.Model, item diagram.Item) {
	i2v := m.Canvas.ItemToView(item)
	for _, h := range item.Handles() {
		if !h.Connectable {
			continue
		}
		pos := geometry.Apply(i2v, h.Pos)
		r, style := HandleRune, styleHandle
		if _, ok := m.Registry.GetConnection(h); ok {
			r, style = ConnectedRune, styleConnected
		} else if h.Glued {
			r = GluedRune
		}
		p.setClipped(round(pos.X), round(pos.Y), r, style)
	}
}

func (p *painter) drawStatus(status string) {
	y := p.height - 1
	for x := 0; x < p.width; x++ {
		p.setClipped(x, y, ' ', styleStatus)
	}
	x := 0
	for _, r := range status {
		p.setClipped(x, y, r, styleStatus)
		x++
	}
}

// setClipped sets a cell, ignoring positions off screen.
func (p *painter) setClipped(x, y int, char rune, style tcell.Style) {
	if x >= 0 && x < p.width && y >= 0 && y < p.height {
		p.screen.SetContent(x, y, char, nil, style)
	}
}

// Status formats the status line for m.
func Status(m *linkage.Model) string {
	return fmt.Sprintf(" connections: %d  drag handles with the mouse, q to quit", m.Registry.Len())
}

func round(v float64) int {
	return int(math.Round(v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
