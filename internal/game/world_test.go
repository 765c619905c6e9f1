package game

import (
	"math"
	"strings"
	"testing"
)

func testWorldConfig() WorldConfig {
	cfg := DefaultWorldConfig()
	cfg.Spawner.Region = Region{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 20, Y: 20}}
	cfg.Spawner.Target = 5
	cfg.Spawner.MinSpacing = 2
	cfg.Spawner.Cooldown = 10
	cfg.Dock = DockConfig{Pos: Vec2{X: 1, Y: 1}, PlanksNeeded: 2}
	cfg.PlayerStart = Vec2{X: 10, Y: 10}
	cfg.Seed = 31
	return cfg
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(testWorldConfig())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func walkTo(w *World, pos Vec2) {
	dir := pos.Sub(w.Player())
	d := dir.Len()
	if d == 0 {
		return
	}
	w.Step(d/w.Config().PlayerSpeed, Input{Move: dir})
}

func TestNewWorldFillsForest(t *testing.T) {
	w := newTestWorld(t)
	snap := w.Snapshot()
	if len(snap.Trees) != 5 {
		t.Fatalf("expected 5 trees at start, got %d", len(snap.Trees))
	}
	if w.Spawner().Count() != len(snap.Trees) {
		t.Fatalf("expected spawner and world tree counts to agree")
	}
	if len(w.Messages()) == 0 {
		t.Fatalf("expected an opening message")
	}
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := testWorldConfig()
	cfg.Chop.HoldTime = 0
	if _, err := NewWorld(cfg); err == nil {
		t.Fatalf("expected invalid chop config rejected")
	}
}

func TestChopCarryDepositFlow(t *testing.T) {
	w := newTestWorld(t)
	tree := w.Snapshot().Trees[0]

	walkTo(w, tree.Pos)
	for i := 0; i < 3; i++ {
		w.Step(1, Input{Chop: true})
	}
	if _, ok := w.Tree(tree.ID); !ok {
		t.Fatalf("expected tree still standing before hold time")
	}
	w.Step(1, Input{Chop: true})
	if _, ok := w.Tree(tree.ID); ok {
		t.Fatalf("expected tree felled after hold time")
	}

	snap := w.Snapshot()
	if len(snap.Logs) != 1 || Distance(snap.Logs[0].Pos, tree.Pos) > 1e-9 {
		t.Fatalf("expected a log dropped at the tree, got %+v", snap.Logs)
	}
	if len(snap.Blocked) != 1 {
		t.Fatalf("expected chop to block the spot, got %+v", snap.Blocked)
	}
	if len(snap.Trees) != 5 {
		t.Fatalf("expected spawner to top the forest up, got %d", len(snap.Trees))
	}

	if got := w.Interact(); got != InteractPickedUp {
		t.Fatalf("expected pickup, got %s", got)
	}
	walkTo(w, w.Dock().Pos)
	if !w.Snapshot().Carrying {
		t.Fatalf("expected log still carried at the dock")
	}
	w.Step(0, Input{Interact: true})
	if w.Dock().PlanksPlaced != 1 {
		t.Fatalf("expected one plank at the dock, got %d", w.Dock().PlanksPlaced)
	}
	if len(w.Snapshot().Logs) != 0 {
		t.Fatalf("expected deposited log consumed")
	}
}

func TestReleasingChopResetsProgress(t *testing.T) {
	w := newTestWorld(t)
	tree := w.Snapshot().Trees[0]
	walkTo(w, tree.Pos)

	w.Step(3, Input{Chop: true})
	w.Step(0.1, Input{})
	w.Step(3, Input{Chop: true})
	got, ok := w.Tree(tree.ID)
	if !ok {
		t.Fatalf("expected tree to survive interrupted chopping")
	}
	if math.Abs(got.HoldTimer-3) > 1e-9 {
		t.Fatalf("expected restarted hold timer, got %.2f", got.HoldTimer)
	}
}

func TestPlayerClampedToRegion(t *testing.T) {
	w := newTestWorld(t)
	w.Step(100, Input{Move: Vec2{X: -1, Y: 0}})
	if w.Player().X != 0 {
		t.Fatalf("expected player clamped at west edge, got %+v", w.Player())
	}
}

func TestRemoveTreeLeavesNoLogOrBlock(t *testing.T) {
	w := newTestWorld(t)
	id := w.Snapshot().Trees[0].ID
	if !w.RemoveTree(id) {
		t.Fatalf("expected tree removed")
	}
	if w.RemoveTree(id) {
		t.Fatalf("expected second removal to be a no-op")
	}
	snap := w.Snapshot()
	if len(snap.Logs) != 0 || len(snap.Blocked) != 0 {
		t.Fatalf("expected no log or blocked spot, got %+v %+v", snap.Logs, snap.Blocked)
	}
}

func TestChopTreeByID(t *testing.T) {
	w := newTestWorld(t)
	id := w.Snapshot().Trees[0].ID
	if !w.ChopTree(id) {
		t.Fatalf("expected chop by id")
	}
	if w.ChopTree(id) {
		t.Fatalf("expected repeated chop to be a no-op")
	}
	if got := len(w.Snapshot().Blocked); got != 1 {
		t.Fatalf("expected one blocked spot, got %d", got)
	}
}

func TestMessagesAreCapped(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < maxWorldMessages+25; i++ {
		w.Interact()
	}
	msgs := w.Messages()
	if len(msgs) != maxWorldMessages {
		t.Fatalf("expected %d messages, got %d", maxWorldMessages, len(msgs))
	}
	if !strings.Contains(msgs[len(msgs)-1], "No logs") {
		t.Fatalf("expected latest message kept, got %q", msgs[len(msgs)-1])
	}
}
