package gui

import rl "github.com/gen2brain/raylib-go/raylib"

// Field-log palette.
var (
	colorBG            = rl.NewColor(0x14, 0x1A, 0x1F, 255) // #141A1F
	colorPanel         = rl.NewColor(0x1C, 0x23, 0x29, 255) // #1C2329
	colorPanelRaised   = rl.NewColor(0x21, 0x2A, 0x31, 255) // #212A31
	colorBorder        = rl.NewColor(0x2E, 0x3A, 0x40, 255) // #2E3A40
	colorText          = rl.NewColor(0xE8, 0xE2, 0xD8, 255) // #E8E2D8
	colorDim           = rl.NewColor(0xA6, 0xAD, 0xB1, 255) // #A6ADB1
	colorMuted         = rl.NewColor(0x7D, 0x85, 0x8A, 255) // #7D858A
	colorAccent        = rl.NewColor(0xD4, 0x6A, 0x1E, 255) // #D46A1E
	colorForest        = rl.NewColor(0x2F, 0x5D, 0x42, 255) // #2F5D42
	colorWarn          = rl.NewColor(0xC1, 0x8B, 0x2F, 255) // #C18B2F
	colorGround        = rl.NewColor(0x4A, 0x5E, 0x3F, 255)
	colorTree          = rl.NewColor(0x3E, 0x8E, 0x5A, 255)
	colorTrunk         = rl.NewColor(0x6B, 0x4A, 0x2F, 255)
	colorLog           = rl.NewColor(0xA0, 0x6A, 0x3C, 255)
	colorBlocked       = rl.NewColor(0x8A, 0x7A, 0x5C, 255)
	colorDock          = rl.NewColor(0x5B, 0x8D, 0xB8, 255)
	colorPlayer        = rl.NewColor(0xF2, 0xE6, 0xC8, 255)
	colorChopIndicator = colorAccent
)

const (
	spaceS  = float32(12)
	spaceM  = float32(18)

	cornerRadius   = float32(0.04)
	cornerSegments = int32(8)
)

// drawPanel draws a rounded panel with an optional header and ember underline.
func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRounded(rect, cornerRadius, cornerSegments, colorPanel)
	rl.DrawRectangleRoundedLinesEx(rect, cornerRadius, cornerSegments, 1.2, colorBorder)
	if title == "" {
		return
	}
	x := int32(rect.X + spaceM)
	y := int32(rect.Y + spaceS)
	drawText(title, x, y, typeScale.Header, colorText)
	w := measureText(title, typeScale.Header)
	lineW := max(int32(float32(w)*0.6), 44)
	underY := float32(y + typeScale.Header + 6)
	rl.DrawLineEx(rl.NewVector2(float32(x), underY), rl.NewVector2(float32(x+lineW), underY), 2.0, colorAccent)
}

// drawProgressBar draws label above a thin track filled to progress in [0,1].
func drawProgressBar(label string, progress float64, rect rl.Rectangle, fillColor rl.Color) {
	progress = clampUnit(progress)
	drawText(label, int32(rect.X), int32(rect.Y), typeScale.Small, colorDim)
	track := rl.NewRectangle(rect.X, rect.Y+float32(typeScale.Small)+4, rect.Width, 8)
	rl.DrawRectangleRec(track, rl.Fade(colorPanelRaised, 0.9))
	if fill := (track.Width - 2) * float32(progress); fill > 0 {
		rl.DrawRectangleRec(rl.NewRectangle(track.X+1, track.Y+1, fill, track.Height-2), fillColor)
	}
	rl.DrawRectangleLinesEx(track, 1.0, rl.Fade(colorBorder, 0.95))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
