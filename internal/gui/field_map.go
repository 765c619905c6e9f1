package gui

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/timberline/internal/game"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fieldSplitRatio = 0.7
	layoutPadding   = 16
	layoutGap       = 10
)

type fieldLayout struct {
	Outer      rl.Rectangle
	StatusRect rl.Rectangle
	FieldRect  rl.Rectangle
	LogRect    rl.Rectangle
	InputRect  rl.Rectangle
}

func fieldScreenLayout(width, height int32) fieldLayout {
	outer := rl.NewRectangle(layoutPadding, layoutPadding, float32(width-layoutPadding*2), float32(height-layoutPadding*2))
	statusH := float32(96)
	inputH := float32(64)
	if outer.Height < 520 {
		statusH = 80
		inputH = 56
	}
	gap := float32(layoutGap)
	middleTop := outer.Y + statusH + gap
	inputTop := outer.Y + outer.Height - inputH
	if inputTop-middleTop-gap < 160 {
		inputTop = middleTop + gap + 160
	}
	middleH := inputTop - middleTop - gap
	splitX := outer.X + outer.Width*fieldSplitRatio
	return fieldLayout{
		Outer:      outer,
		StatusRect: rl.NewRectangle(outer.X, outer.Y, outer.Width, statusH),
		FieldRect:  rl.NewRectangle(outer.X, middleTop, splitX-outer.X-gap/2, middleH),
		LogRect:    rl.NewRectangle(splitX+gap/2, middleTop, outer.X+outer.Width-splitX-gap/2, middleH),
		InputRect:  rl.NewRectangle(outer.X, inputTop, outer.Width, outer.Y+outer.Height-inputTop),
	}
}

// fieldGeometry fits the world region into a screen area with a uniform
// scale, centred on the spare axis.
type fieldGeometry struct {
	Region   game.Region
	OriginX  float32
	OriginY  float32
	Scale    float32
	DrawRect rl.Rectangle
}

func computeFieldGeometry(area rl.Rectangle, region game.Region) (fieldGeometry, bool) {
	if !region.IsValid() || area.Width <= 1 || area.Height <= 1 {
		return fieldGeometry{}, false
	}
	w := math.Max(region.Width(), 1e-6)
	h := math.Max(region.Height(), 1e-6)
	scale := float32(math.Min(float64(area.Width)/w, float64(area.Height)/h))
	drawW := scale * float32(w)
	drawH := scale * float32(h)
	originX := area.X + (area.Width-drawW)/2
	originY := area.Y + (area.Height-drawH)/2
	return fieldGeometry{
		Region:   region,
		OriginX:  originX,
		OriginY:  originY,
		Scale:    scale,
		DrawRect: rl.NewRectangle(originX, originY, drawW, drawH),
	}, true
}

func (g fieldGeometry) toScreen(p game.Vec2) rl.Vector2 {
	return rl.NewVector2(
		g.OriginX+float32(p.X-g.Region.Min.X)*g.Scale,
		g.OriginY+float32(p.Y-g.Region.Min.Y)*g.Scale,
	)
}

// radius converts a world distance to pixels, never below floor.
func (g fieldGeometry) radius(d float64, floor float32) float32 {
	return max(float32(d)*g.Scale, floor)
}

func drawField(area rl.Rectangle, snap game.WorldSnapshot) {
	geo, ok := computeFieldGeometry(area, snap.Region)
	if !ok {
		drawText("Region is empty.", int32(area.X+spaceM), int32(area.Y+spaceM), typeScale.Body, colorWarn)
		return
	}
	rl.DrawRectangleRec(geo.DrawRect, colorGround)
	rl.DrawRectangleLinesEx(geo.DrawRect, 1.0, rl.Fade(colorBorder, 0.8))

	cooldown := 0.0
	for _, b := range snap.Blocked {
		cooldown = math.Max(cooldown, b.Remaining)
	}
	for _, b := range snap.Blocked {
		// Stumps fade out as their cooldown runs down.
		alpha := float32(0.25)
		if cooldown > 0 {
			alpha += 0.6 * float32(b.Remaining/cooldown)
		}
		rl.DrawCircleV(geo.toScreen(b.Pos), geo.radius(0.3, 2), rl.Fade(colorBlocked, alpha))
	}

	dock := geo.toScreen(snap.Dock.Pos)
	dockR := geo.radius(snap.Carry.DockRange, 6)
	rl.DrawCircleLinesV(dock, dockR, rl.Fade(colorDock, 0.5))
	side := geo.radius(0.9, 8)
	rl.DrawRectangleRec(rl.NewRectangle(dock.X-side/2, dock.Y-side/2, side, side), colorDock)

	for _, t := range snap.Trees {
		c := geo.toScreen(t.Pos)
		r := geo.radius(0.55, 3)
		rl.DrawCircleV(rl.NewVector2(c.X, c.Y+r*0.6), r*0.35, colorTrunk)
		rl.DrawCircleV(c, r, colorTree)
		if t.HoldTimer > 0 && snap.Chop.HoldTime > 0 {
			progress := clampUnit(t.HoldTimer / float64(snap.Chop.HoldTime))
			rl.DrawRing(c, r+2, r+5, -90, -90+float32(360*progress), 24, colorChopIndicator)
		}
	}

	for _, l := range snap.Logs {
		if l.Carried {
			continue
		}
		c := geo.toScreen(l.Pos)
		w := geo.radius(0.8, 8)
		rl.DrawRectangleRec(rl.NewRectangle(c.X-w/2, c.Y-w/6, w, w/3), colorLog)
	}

	p := geo.toScreen(snap.Player)
	pr := geo.radius(0.4, 4)
	rl.DrawCircleLinesV(p, geo.radius(snap.Chop.InteractionDistance, 6), rl.Fade(colorPlayer, 0.25))
	rl.DrawCircleV(p, pr, colorPlayer)
	if snap.Carrying {
		w := geo.radius(0.8, 8)
		rl.DrawRectangleRec(rl.NewRectangle(p.X-w/2, p.Y-pr-w/3-2, w, w/3), colorLog)
	}
}

func drawStatus(rect rl.Rectangle, snap game.WorldSnapshot) {
	drawPanel(rect, "")
	x := int32(rect.X + spaceM)
	y := int32(rect.Y + spaceS)
	carry := "Empty-handed"
	if snap.Carrying {
		carry = "Carrying a log"
	}
	line := fmt.Sprintf("Trees %d/%d   Blocked spots %d   Logs %d   %s   %.0fs",
		len(snap.Trees), snap.Target, len(snap.Blocked), len(snap.Logs), carry, snap.Elapsed)
	drawText(line, x, y, typeScale.Body, colorText)

	barW := (rect.Width - spaceM*3) / 2
	barY := rect.Y + spaceS + float32(textLineHeight(typeScale.Body)) + 4
	dockLabel := fmt.Sprintf("Dock %d/%d planks", snap.Dock.PlanksPlaced, snap.Dock.PlanksNeeded)
	drawProgressBar(dockLabel, snap.Dock.Progress(), rl.NewRectangle(rect.X+spaceM, barY, barW, 30), colorForest)

	chop := 0.0
	for _, t := range snap.Trees {
		if snap.Chop.HoldTime > 0 {
			chop = math.Max(chop, t.HoldTimer/float64(snap.Chop.HoldTime))
		}
	}
	drawProgressBar("Chop", chop, rl.NewRectangle(rect.X+spaceM*2+barW, barY, barW, 30), colorAccent)
}

func drawMessageLog(rect rl.Rectangle, messages []string) {
	drawPanel(rect, "Field log")
	maxWidth := int32(rect.Width - spaceM*2)
	lineHeight := textLineHeight(typeScale.Log)
	maxLines := int((rect.Height - 52) / float32(lineHeight))
	if maxLines < 4 {
		maxLines = 4
	}
	flattened := make([]string, 0, maxLines)
	for i := len(messages) - 1; i >= 0 && len(flattened) < maxLines; i-- {
		lines := wrapText(messages[i], typeScale.Log, maxWidth)
		for j := len(lines) - 1; j >= 0 && len(flattened) < maxLines; j-- {
			flattened = append(flattened, lines[j])
		}
	}
	y := int32(rect.Y+rect.Height) - 16
	for _, line := range flattened {
		if y-lineHeight < int32(rect.Y)+44 {
			break
		}
		drawText(line, int32(rect.X+spaceM), y-lineHeight, typeScale.Log, colorText)
		y -= lineHeight
	}
}
