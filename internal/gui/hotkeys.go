package gui

import (
	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/appengine-ltd/timberline/internal/parser"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// quickAction binds a function key to a canned command.
type quickAction struct {
	Key    int32
	Label  string
	Intent parser.Intent
}

var quickActions = []quickAction{
	{Key: rl.KeyF1, Label: "F1 help", Intent: parser.Intent{Kind: parser.Help, Verb: "help"}},
	{Key: rl.KeyF2, Label: "F2 look", Intent: parser.Intent{Kind: parser.Query, Verb: "look"}},
	{Key: rl.KeyF3, Label: "F3 status", Intent: parser.Intent{Kind: parser.Query, Verb: "status"}},
	{Key: rl.KeyF4, Label: "F4 wait 10s", Intent: parser.Intent{Kind: parser.Command, Verb: "wait", Quantity: &parser.Quantity{Raw: "10s", N: 10, Unit: "seconds"}}},
}

func hotkeysEnabled(ui *fieldUI) bool {
	if ui == nil {
		return true
	}
	return !ui.editing
}

// movementFromKeys reads WASD and the arrow keys into a direction; opposite
// keys cancel out.
func movementFromKeys() game.Vec2 {
	var dir game.Vec2
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		dir.Y--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		dir.Y++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		dir.X--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		dir.X++
	}
	return dir
}
