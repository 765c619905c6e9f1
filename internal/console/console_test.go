package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/appengine-ltd/timberline/internal/parser"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	cfg := game.DefaultWorldConfig()
	cfg.Spawner.Target = 5
	cfg.Seed = 7
	w, err := game.NewWorld(cfg)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return NewDispatcher(game.NewSession(w), nil)
}

func TestSubmitHelpListsCommands(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Submit("help")
	if len(reply.Lines) == 0 || !strings.Contains(reply.Lines[0], "Commands:") {
		t.Fatalf("expected help text, got %+v", reply.Lines)
	}
}

func TestSubmitWaitAdvancesTime(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Submit("wait 5s")
	if len(reply.Lines) == 0 || !strings.Contains(reply.Lines[0], "You wait 5s") {
		t.Fatalf("expected wait confirmation, got %+v", reply.Lines)
	}
	if got := d.session.Snapshot().Elapsed; got != 5 {
		t.Fatalf("expected 5s elapsed, got %.2f", got)
	}
}

func TestSubmitQuit(t *testing.T) {
	d := newTestDispatcher(t)
	if reply := d.Submit("exit"); !reply.Quit {
		t.Fatalf("expected quit reply, got %+v", reply)
	}
}

func TestAmbiguousInputThenNumberedChoice(t *testing.T) {
	d := newTestDispatcher(t)
	reply := d.Submit("re")
	if d.Pending() == nil {
		t.Fatalf("expected a pending clarify question, got %+v", reply.Lines)
	}
	if len(reply.Lines) < 3 {
		t.Fatalf("expected prompt plus options, got %+v", reply.Lines)
	}
	reply = d.Submit("1")
	if d.Pending() != nil {
		t.Fatalf("expected clarify question resolved")
	}
	if len(reply.Lines) == 0 || reply.Lines[0] == "" {
		t.Fatalf("expected the chosen command to run, got %+v", reply.Lines)
	}
}

func TestContextForReportsReachableThings(t *testing.T) {
	snap := game.WorldSnapshot{
		Player:   game.Vec2{X: 5, Y: 5},
		Trees:    []game.Tree{{ID: 1, Pos: game.Vec2{X: 6, Y: 5}}},
		Logs:     []game.Log{{ID: 1, Pos: game.Vec2{X: 50, Y: 50}}},
		Dock:     game.Dock{Pos: game.Vec2{X: 5, Y: 7}},
		Carrying: true,
		Chop:     game.ChopConfig{InteractionDistance: 2},
		Carry:    game.CarryConfig{PickupRange: 5, DockRange: 3},
	}
	ctx := ContextFor(snap, "tree")
	if strings.Join(ctx.Nearby, ",") != "tree,dock" {
		t.Fatalf("expected tree and dock nearby, got %v", ctx.Nearby)
	}
	if len(ctx.Carrying) != 1 || ctx.Carrying[0] != "log" {
		t.Fatalf("expected carried log, got %v", ctx.Carrying)
	}
	if ctx.LastEntity != "tree" {
		t.Fatalf("expected last entity kept, got %q", ctx.LastEntity)
	}
}

func TestRunReadsUntilQuit(t *testing.T) {
	d := newTestDispatcher(t)
	var out bytes.Buffer
	in := strings.NewReader("status\nquit\nlook\n")
	if err := Run(in, &out, d); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Trees 5/5") {
		t.Fatalf("expected status line, got %q", text)
	}
	if !strings.Contains(text, "You leave the forest.") {
		t.Fatalf("expected quit line, got %q", text)
	}
	if strings.Contains(text, "within reach") {
		t.Fatalf("expected input after quit to be ignored, got %q", text)
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	d := newTestDispatcher(t)
	var out bytes.Buffer
	if err := Run(strings.NewReader("wait 2s"), &out, d); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := d.session.Snapshot().Elapsed; got != 2 {
		t.Fatalf("expected final unterminated line processed, got %.2f elapsed", got)
	}
}

func TestRunRepliesWithWorldMessage(t *testing.T) {
	d := newTestDispatcher(t)

	reply := d.run(parser.Intent{Kind: parser.Command, Verb: "dance"})
	if len(reply.Lines) != 1 || !strings.Contains(reply.Lines[0], `Unknown command "dance"`) {
		t.Fatalf("expected the world's unknown command message, got %+v", reply.Lines)
	}

	reply = d.run(parser.Intent{})
	if len(reply.Lines) != 1 || reply.Lines[0] != "Unknown command." {
		t.Fatalf("expected fallback for an empty result, got %+v", reply.Lines)
	}

	reply = d.run(parser.Intent{Kind: parser.Query, Verb: "status"})
	if len(reply.Lines) != 1 || reply.Lines[0] == "" || reply.Quit {
		t.Fatalf("expected a status line, got %+v", reply)
	}
}
