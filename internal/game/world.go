package game

import (
	"fmt"
	"sort"
	"time"
)

const maxWorldMessages = 200

// Input is one frame of player intent. Chop is a held button; Interact is
// the press edge.
type Input struct {
	Move     Vec2
	Chop     bool
	Interact bool
}

// World ties the spawner to the trees, logs, dock and player it manages.
type World struct {
	cfg      WorldConfig
	spawner  *Spawner
	trees    map[TreeID]*Tree
	nextTree TreeID
	logs     *LogPile
	carrier  *Carrier
	dock     Dock
	player   Vec2
	elapsed  float64
	messages []string
}

func NewWorld(cfg WorldConfig) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	w := &World{
		cfg:     cfg,
		trees:   make(map[TreeID]*Tree, cfg.Spawner.Target),
		logs:    NewLogPile(),
		carrier: NewCarrier(cfg.Carry),
		dock:    NewDock(cfg.Dock),
		player:  cfg.Spawner.Region.Clamp(cfg.PlayerStart),
	}
	spawner, err := NewSpawner(cfg.Spawner, w, seededRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	w.spawner = spawner
	w.spawner.Tick(0)
	w.logf("%d trees stand in the forest. The dock needs %d planks.", w.spawner.Count(), w.dock.PlanksNeeded)
	return w, nil
}

// CreateTree implements TreeFactory.
func (w *World) CreateTree(pos Vec2) TreeID {
	w.nextTree++
	w.trees[w.nextTree] = &Tree{ID: w.nextTree, Pos: pos}
	return w.nextTree
}

// Step advances the world by dt seconds of player input and spawner time.
func (w *World) Step(dt float64, in Input) {
	dt = stepDelta(dt)
	if dir := in.Move.Normalized(); dir != (Vec2{}) {
		w.player = w.cfg.Spawner.Region.Clamp(w.player.Add(dir.Scale(w.cfg.PlayerSpeed * dt)))
	}
	w.carrier.Follow(w.player, w.logs)

	target, _ := w.NearestTree()
	for _, t := range w.trees {
		if t != target {
			t.ResetChop()
		}
	}
	if target != nil && target.AdvanceChop(dt, w.player, in.Chop, w.cfg.Chop) {
		w.fell(target)
	}

	if in.Interact {
		w.Interact()
	}

	w.spawner.Tick(dt)
	w.elapsed += dt
}

// NearestTree returns the closest standing tree within chop range.
func (w *World) NearestTree() (*Tree, bool) {
	var best *Tree
	bestDist := 0.0
	for _, t := range w.trees {
		if t.Chopped || !t.InRange(w.player, w.cfg.Chop) {
			continue
		}
		d := Distance(t.Pos, w.player)
		if best == nil || d < bestDist || (d == bestDist && t.ID < best.ID) {
			best = t
			bestDist = d
		}
	}
	return best, best != nil
}

func (w *World) fell(t *Tree) {
	t.Chopped = true
	logID := w.logs.Spawn(t.Pos)
	w.spawner.ChopTree(t.ID)
	delete(w.trees, t.ID)
	w.logf("Timber! Tree %d came down and dropped log %d.", t.ID, logID)
}

// ChopTree fells a tree outright, skipping the hold timer.
func (w *World) ChopTree(id TreeID) bool {
	t, ok := w.trees[id]
	if !ok {
		return false
	}
	w.fell(t)
	return true
}

// RemoveTree destroys a tree without leaving a log or blocking its spot.
func (w *World) RemoveTree(id TreeID) bool {
	if _, ok := w.trees[id]; !ok {
		return false
	}
	delete(w.trees, id)
	w.spawner.OnTreeDestroyedExternally(id)
	w.logf("Tree %d was cleared away.", id)
	return true
}

func (w *World) Interact() InteractOutcome {
	outcome := w.carrier.Interact(w.player, w.logs, &w.dock)
	switch outcome {
	case InteractPickedUp:
		w.logf("You shoulder a log.")
	case InteractDropped:
		w.logf("You drop the log.")
	case InteractDeposited:
		w.logDeposit()
	default:
		w.logf("No logs within reach.")
	}
	return outcome
}

func (w *World) logDeposit() {
	if w.dock.Repaired() {
		w.logf("Dock repaired: %d/%d planks. You can leave the island.", w.dock.PlanksPlaced, w.dock.PlanksNeeded)
		return
	}
	w.logf("Dock repaired: %d/%d planks.", w.dock.PlanksPlaced, w.dock.PlanksNeeded)
}

func (w *World) logf(format string, args ...any) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
	if over := len(w.messages) - maxWorldMessages; over > 0 {
		w.messages = append([]string(nil), w.messages[over:]...)
	}
}

func (w *World) Messages() []string {
	return append([]string(nil), w.messages...)
}

func (w *World) Player() Vec2 {
	return w.player
}

func (w *World) Dock() Dock {
	return w.dock
}

func (w *World) Config() WorldConfig {
	return w.cfg
}

func (w *World) Spawner() *Spawner {
	return w.spawner
}

func (w *World) Tree(id TreeID) (Tree, bool) {
	t, ok := w.trees[id]
	if !ok {
		return Tree{}, false
	}
	return *t, true
}

// WorldSnapshot is a value copy safe to hand to renderers and other goroutines.
type WorldSnapshot struct {
	Elapsed  float64       `json:"elapsed_seconds"`
	Region   Region        `json:"region"`
	Player   Vec2          `json:"player"`
	Carrying bool          `json:"carrying"`
	Trees    []Tree        `json:"trees"`
	Blocked  []BlockedSpot `json:"blocked_spots"`
	Logs     []Log         `json:"logs"`
	Dock     Dock          `json:"dock"`
	Target   int           `json:"target"`
	Stats    SpawnerStats  `json:"stats"`
	Chop     ChopConfig    `json:"chop"`
	Carry    CarryConfig   `json:"carry"`
}

func (w *World) Snapshot() WorldSnapshot {
	trees := make([]Tree, 0, len(w.trees))
	for _, t := range w.trees {
		trees = append(trees, *t)
	}
	sort.Slice(trees, func(i, j int) bool { return trees[i].ID < trees[j].ID })
	_, carrying := w.carrier.Carrying()
	return WorldSnapshot{
		Elapsed:  w.elapsed,
		Region:   w.cfg.Spawner.Region,
		Player:   w.player,
		Carrying: carrying,
		Trees:    trees,
		Blocked:  w.spawner.Blocked(),
		Logs:     w.logs.All(),
		Dock:     w.dock,
		Target:   w.cfg.Spawner.Target,
		Stats:    w.spawner.Stats(),
		Chop:     w.cfg.Chop,
		Carry:    w.cfg.Carry,
	}
}
