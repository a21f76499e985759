package renderer

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell"

	"airhockey/internal/hockey"
)

const (
	PaddleSymbol = '█'
	PuckSymbol   = '●'
	CentreSymbol = '┄'
	GoalSymbol   = '━'

	// terminal cells are about twice as tall as they are wide
	cellAspect = 2.0

	minWidth  = 16
	minHeight = 10

	tooSmall = "terminal too small"
)

var (
	rinkStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	goalStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	puckStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	paddleStyles = [2]tcell.Style{
		hockey.Player1: tcell.StyleDefault.Foreground(tcell.ColorBlue),
		hockey.Player2: tcell.StyleDefault.Foreground(tcell.ColorRed),
	}
)

// rink is the screen area inside the boards, in cells. The table's x axis
// runs left to right and its z axis top to bottom, so paddle 2 defends the
// top goal and paddle 1 the bottom one.
type rink struct {
	left, top     int
	width, height int
	table         hockey.Table
}

func fit(screenWidth, screenHeight int, t hockey.Table) rink {
	// one row for the score and one for each board
	height := screenHeight - 3
	width := int(math.Round(float64(height) * t.Width / t.Height * cellAspect))
	if width > screenWidth-2 {
		width = screenWidth - 2
		height = int(math.Round(float64(width) * t.Height / t.Width / cellAspect))
	}
	return rink{
		left:   (screenWidth - width) / 2,
		top:    2,
		width:  width,
		height: height,
		table:  t,
	}
}

// cell maps a table position to the screen cell containing it.
func (r rink) cell(p hockey.Vec) (col, row int) {
	fx := (p[0] + r.table.HalfWidth()) / r.table.Width
	fz := (p[1] + r.table.HalfHeight()) / r.table.Height
	col = r.left + clamp(int(fx*float64(r.width)), 0, r.width-1)
	row = r.top + clamp(int(fz*float64(r.height)), 0, r.height-1)
	return col, row
}

// point maps the centre of a screen cell back to the table.
func (r rink) point(col, row int) hockey.Vec {
	fx := (float64(col-r.left) + 0.5) / float64(r.width)
	fz := (float64(row-r.top) + 0.5) / float64(r.height)
	return hockey.Vec{
		fx*r.table.Width - r.table.HalfWidth(),
		fz*r.table.Height - r.table.HalfHeight(),
	}
}

// Render draws the whole table and score line and shows the screen.
func Render(screen tcell.Screen, snap hockey.Snapshot) {
	screen.Clear()
	defer screen.Show()

	w, h := screen.Size()
	if w < minWidth || h < minHeight {
		drawText(screen, 0, 0, tooSmall, rinkStyle)
		return
	}

	r := fit(w, h, snap.Table)
	drawScore(screen, w, snap.Score)
	drawBoards(screen, r)
	drawCentreLine(screen, r)
	for side := hockey.Player1; side <= hockey.Player2; side++ {
		drawDisc(screen, r, snap.Paddles[side], PaddleSymbol, paddleStyles[side])
	}
	drawDisc(screen, r, snap.Puck, PuckSymbol, puckStyle)
}

func drawScore(screen tcell.Screen, w int, s hockey.Score) {
	line := fmt.Sprintf("player2 %d : %d player1", s.Player2, s.Player1)
	drawText(screen, (w-len(line))/2, 0, line, rinkStyle)
}

func drawBoards(screen tcell.Screen, r rink) {
	left, right := r.left-1, r.left+r.width
	top, bottom := r.top-1, r.top+r.height

	for col := r.left; col < right; col++ {
		ch := '─'
		style := rinkStyle
		if r.table.InGoalMouth(r.point(col, r.top)[0]) {
			ch, style = GoalSymbol, goalStyle
		}
		screen.SetContent(col, top, ch, nil, style)
		screen.SetContent(col, bottom, ch, nil, style)
	}
	for row := r.top; row < bottom; row++ {
		screen.SetContent(left, row, '│', nil, rinkStyle)
		screen.SetContent(right, row, '│', nil, rinkStyle)
	}
	screen.SetContent(left, top, '┌', nil, rinkStyle)
	screen.SetContent(right, top, '┐', nil, rinkStyle)
	screen.SetContent(left, bottom, '└', nil, rinkStyle)
	screen.SetContent(right, bottom, '┘', nil, rinkStyle)
}

func drawCentreLine(screen tcell.Screen, r rink) {
	_, row := r.cell(hockey.Vec{})
	for col := r.left; col < r.left+r.width; col++ {
		screen.SetContent(col, row, CentreSymbol, nil, rinkStyle)
	}
}

// drawDisc fills every cell whose centre lies within the body. The cell
// holding the body's centre is always drawn so small bodies never vanish.
func drawDisc(screen tcell.Screen, r rink, b hockey.Body, ch rune, style tcell.Style) {
	c0, r0 := r.cell(b.Position.Sub(hockey.Vec{b.Radius, b.Radius}))
	c1, r1 := r.cell(b.Position.Add(hockey.Vec{b.Radius, b.Radius}))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if r.point(col, row).Sub(b.Position).Len() <= b.Radius {
				screen.SetContent(col, row, ch, nil, style)
			}
		}
	}
	col, row := r.cell(b.Position)
	screen.SetContent(col, row, ch, nil, style)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Screen publishes every frame of a match to a terminal.
type Screen struct {
	tcell.Screen
}

func (s Screen) Publish(snap hockey.Snapshot, _ []hockey.Event) {
	Render(s.Screen, snap)
}
