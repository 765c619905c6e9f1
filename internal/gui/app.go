// Package gui is the raylib front end: a top-down view of the forest, live
// input, and a command line routed through the intent parser.
package gui

import (
	"fmt"
	"strings"
	"time"

	"github.com/appengine-ltd/timberline/internal/console"
	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/appengine-ltd/timberline/internal/parser"
	"github.com/appengine-ltd/timberline/internal/sound"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxInputLen = 180
	// Larger frame gaps (window drag, breakpoint) are clamped so the world
	// does not jump.
	maxFrameDelta = 250 * time.Millisecond
)

type AppConfig struct {
	Title      string
	Session    *game.Session
	Dispatcher *console.Dispatcher
	Sound      *sound.Manager
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	if a.cfg.Session == nil {
		return fmt.Errorf("gui: no session")
	}
	ui := newFieldUI(a.cfg)
	return ui.Run()
}

type fieldUI struct {
	title      string
	session    *game.Session
	dispatcher *console.Dispatcher
	sound      *sound.Manager
	queue      *intentQueue

	width    int32
	height   int32
	lastTick time.Time
	lastSnap game.WorldSnapshot

	editing bool
	input   string
	replies []string
	quit    bool
}

func newFieldUI(cfg AppConfig) *fieldUI {
	title := cfg.Title
	if title == "" {
		title = "timberline"
	}
	d := cfg.Dispatcher
	if d == nil {
		d = console.NewDispatcher(cfg.Session, nil)
	}
	return &fieldUI{
		title:      title,
		session:    cfg.Session,
		dispatcher: d,
		sound:      cfg.Sound,
		queue:      newIntentQueue(16),
		width:      1280,
		height:     760,
		lastSnap:   cfg.Session.Snapshot(),
		lastTick:   time.Now(),
	}
}

func (ui *fieldUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, ui.title)
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	initTypography()
	defer shutdownTypography()

	for !ui.quit && !rl.WindowShouldClose() {
		now := time.Now()
		delta := now.Sub(ui.lastTick)
		if delta < 0 {
			delta = 0
		}
		if delta > maxFrameDelta {
			delta = maxFrameDelta
		}
		ui.lastTick = now

		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())

		ui.update(delta)

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		ui.draw()
		rl.EndDrawing()
	}

	rl.CloseWindow()
	return nil
}

func (ui *fieldUI) update(delta time.Duration) {
	if ui.editing {
		ui.updateCommandLine()
	} else {
		ui.updateField()
	}

	for {
		intent, ok := ui.queue.Dequeue()
		if !ok {
			break
		}
		res := ui.session.ExecuteCommand(parser.IntentToCommandString(intent))
		ui.appendReply(res.Message)
	}

	var in game.Input
	if hotkeysEnabled(ui) {
		in = game.Input{
			Move:     movementFromKeys(),
			Chop:     rl.IsKeyDown(rl.KeyE),
			Interact: rl.IsKeyPressed(rl.KeyF),
		}
	}
	ui.session.Step(delta.Seconds(), in)

	snap := ui.session.Snapshot()
	ui.sound.Play(sound.CuesBetween(ui.lastSnap, snap)...)
	ui.lastSnap = snap
}

func (ui *fieldUI) updateField() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySlash) {
		ui.editing = true
		ui.input = ""
		// Drain the character queue so the opening key is not typed.
		for rl.GetCharPressed() > 0 {
		}
		return
	}
	for _, qa := range quickActions {
		if rl.IsKeyPressed(qa.Key) {
			ui.queue.EnqueueIntent(qa.Intent)
		}
	}
}

func (ui *fieldUI) updateCommandLine() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.editing = false
		ui.input = ""
		return
	}
	captureTextInput(&ui.input, maxInputLen)
	if rl.IsKeyPressed(rl.KeyEnter) {
		ui.submitInput()
	}
}

func (ui *fieldUI) submitInput() {
	line := strings.TrimSpace(ui.input)
	ui.input = ""
	ui.editing = false
	if line == "" {
		return
	}
	reply := ui.dispatcher.Submit(line)
	for _, l := range reply.Lines {
		ui.appendReply(l)
	}
	if ui.dispatcher.Pending() != nil {
		// Keep the line open so the player can answer with a number.
		ui.editing = true
	}
	if reply.Quit {
		ui.quit = true
	}
}

func (ui *fieldUI) appendReply(message string) {
	line := strings.TrimSpace(message)
	if line == "" {
		return
	}
	ui.replies = append(ui.replies, "> "+line)
	if len(ui.replies) > 60 {
		ui.replies = append([]string(nil), ui.replies[len(ui.replies)-60:]...)
	}
}

func (ui *fieldUI) draw() {
	layout := fieldScreenLayout(ui.width, ui.height)
	drawStatus(layout.StatusRect, ui.lastSnap)

	drawPanel(layout.FieldRect, "")
	inset := rl.NewRectangle(layout.FieldRect.X+spaceS, layout.FieldRect.Y+spaceS, layout.FieldRect.Width-spaceS*2, layout.FieldRect.Height-spaceS*2)
	drawField(inset, ui.lastSnap)

	drawMessageLog(layout.LogRect, mergeLog(ui.session.Messages(), ui.replies))
	ui.drawInput(layout.InputRect)
}

// mergeLog shows world events with the latest command replies after them.
func mergeLog(messages, replies []string) []string {
	const keep = 6
	if len(replies) > keep {
		replies = replies[len(replies)-keep:]
	}
	out := make([]string, 0, len(messages)+len(replies))
	out = append(out, messages...)
	return append(out, replies...)
}

func (ui *fieldUI) drawInput(rect rl.Rectangle) {
	drawPanel(rect, "")
	x := int32(rect.X + spaceM)
	y := int32(rect.Y + (rect.Height-float32(typeScale.Body))/2)
	if ui.editing {
		prompt := "> " + ui.input
		if (time.Now().UnixMilli()/500)%2 == 0 {
			prompt += "_"
		}
		rl.DrawRectangleRoundedLinesEx(rect, cornerRadius, cornerSegments, 2.0, colorAccent)
		drawText(prompt, x, y, typeScale.Body, colorText)
		if q := ui.dispatcher.Pending(); q != nil {
			hint := q.Prompt
			drawText(hint, int32(rect.X+rect.Width)-measureText(hint, typeScale.Small)-int32(spaceM), y+2, typeScale.Small, colorWarn)
		}
		return
	}
	hints := []string{"WASD move", "hold E chop", "F interact", "Enter command"}
	for _, qa := range quickActions {
		hints = append(hints, qa.Label)
	}
	hints = append(hints, "Esc quit")
	drawText(strings.Join(hints, "  |  "), x, y, typeScale.Small, colorMuted)
}

func captureTextInput(target *string, maxLen int) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(*target) < maxLen {
			*target += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}

func wrapText(text string, size int32, maxWidth int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 8)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measureText(candidate, size) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)
	return lines
}
