package termui

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/gdamore/tcell/v2"
)

const (
	headerRows  = 1
	footerRows  = 4
	messageRows = 3
)

var (
	styleDefault = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorDarkSeaGreen)
	styleTree    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleChop    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBlocked = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLog     = tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)
	styleDock    = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue).Bold(true)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleInput   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

const (
	glyphTree    = '♣'
	glyphChop    = '♠'
	glyphBlocked = '·'
	glyphLog     = '='
	glyphDock    = '#'
	glyphPlayer  = '@'
)

type cell struct {
	r     rune
	style tcell.Style
}

// frame is a full terminal picture, composed off-screen so layout can be
// checked without a terminal.
type frame struct {
	w, h  int
	cells []cell
}

func newFrame(w, h int) frame {
	f := frame{w: max(w, 0), h: max(h, 0)}
	f.cells = make([]cell, f.w*f.h)
	for i := range f.cells {
		f.cells[i] = cell{r: ' ', style: styleDefault}
	}
	return f
}

func (f frame) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.cells[y*f.w+x] = cell{r: r, style: style}
}

func (f frame) at(x, y int) rune {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	return f.cells[y*f.w+x].r
}

func (f frame) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= f.w {
			return
		}
		f.set(x, y, r, style)
		x++
	}
}

func (f frame) row(y int) string {
	if y < 0 || y >= f.h {
		return ""
	}
	var b strings.Builder
	for x := 0; x < f.w; x++ {
		b.WriteRune(f.cells[y*f.w+x].r)
	}
	return b.String()
}

type rect struct {
	X, Y, W, H int
}

func mapArea(w, h int) rect {
	return rect{X: 0, Y: headerRows, W: w, H: max(h-headerRows-footerRows, 0)}
}

// project maps a world position into a cell of area. Positions on the max
// edge land in the last row or column.
func project(region game.Region, area rect, pos game.Vec2) (int, int, bool) {
	if area.W <= 0 || area.H <= 0 || !region.IsValid() {
		return 0, 0, false
	}
	u, v := 0.0, 0.0
	if region.Width() > 0 {
		u = (pos.X - region.Min.X) / region.Width()
	}
	if region.Height() > 0 {
		v = (pos.Y - region.Min.Y) / region.Height()
	}
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}
	x := min(int(u*float64(area.W)), area.W-1)
	y := min(int(v*float64(area.H)), area.H-1)
	return area.X + x, area.Y + y, true
}

func headerLine(snap game.WorldSnapshot) string {
	carry := "empty-handed"
	if snap.Carrying {
		carry = "carrying a log"
	}
	return fmt.Sprintf(" Trees %d/%d  Blocked %d  Logs %d  Dock %d/%d  %s  t=%.0fs ",
		len(snap.Trees), snap.Target, len(snap.Blocked), len(snap.Logs),
		snap.Dock.PlanksPlaced, snap.Dock.PlanksNeeded, carry, snap.Elapsed)
}

type view struct {
	snap     game.WorldSnapshot
	messages []string
	input    string
	editing  bool
	hint     string
}

func compose(v view, w, h int) frame {
	f := newFrame(w, h)
	if w <= 0 || h <= 0 {
		return f
	}
	for x := 0; x < w; x++ {
		f.set(x, 0, ' ', styleHeader)
	}
	f.text(0, 0, headerLine(v.snap), styleHeader)

	area := mapArea(w, h)
	region := v.snap.Region
	for _, b := range v.snap.Blocked {
		if x, y, ok := project(region, area, b.Pos); ok {
			f.set(x, y, glyphBlocked, styleBlocked)
		}
	}
	for _, t := range v.snap.Trees {
		x, y, ok := project(region, area, t.Pos)
		if !ok {
			continue
		}
		if t.HoldTimer > 0 {
			f.set(x, y, glyphChop, styleChop)
		} else {
			f.set(x, y, glyphTree, styleTree)
		}
	}
	for _, l := range v.snap.Logs {
		if l.Carried {
			continue
		}
		if x, y, ok := project(region, area, l.Pos); ok {
			f.set(x, y, glyphLog, styleLog)
		}
	}
	if x, y, ok := project(region, area, v.snap.Dock.Pos); ok {
		f.set(x, y, glyphDock, styleDock)
	}
	if x, y, ok := project(region, area, v.snap.Player); ok {
		f.set(x, y, glyphPlayer, stylePlayer)
	}

	msgTop := area.Y + area.H
	tail := v.messages
	if len(tail) > messageRows {
		tail = tail[len(tail)-messageRows:]
	}
	for i, msg := range tail {
		f.text(1, msgTop+i, msg, styleMessage)
	}

	inputY := h - 1
	if v.editing {
		for x := 0; x < w; x++ {
			f.set(x, inputY, ' ', styleInput)
		}
		f.text(0, inputY, "> "+v.input, styleInput)
	} else {
		f.text(0, inputY, v.hint, styleMessage)
	}
	return f
}

func blit(screen tcell.Screen, f frame) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := f.cells[y*f.w+x]
			screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
}
