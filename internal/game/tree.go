package game

// Tree is a choppable entity. Holding the chop input while in range fills
// HoldTimer; letting go or walking away loses the progress.
type Tree struct {
	ID        TreeID  `json:"id"`
	Pos       Vec2    `json:"pos"`
	HoldTimer float64 `json:"hold_timer"`
	Chopping  bool    `json:"chopping"`
	Chopped   bool    `json:"chopped"`
}

func (t *Tree) InRange(player Vec2, cfg ChopConfig) bool {
	return Distance(t.Pos, player) <= cfg.InteractionDistance
}

// AdvanceChop reports true exactly once, on the update that fells the tree.
func (t *Tree) AdvanceChop(dt float64, player Vec2, held bool, cfg ChopConfig) bool {
	if t == nil || t.Chopped {
		return false
	}
	if !held || !t.InRange(player, cfg) {
		t.ResetChop()
		return false
	}
	if !t.Chopping {
		t.Chopping = true
		t.HoldTimer = 0
	}
	if dt > 0 {
		t.HoldTimer += dt
	}
	if t.HoldTimer < float64(cfg.HoldTime) {
		return false
	}
	t.Chopped = true
	t.Chopping = false
	t.HoldTimer = float64(cfg.HoldTime)
	return true
}

func (t *Tree) ResetChop() {
	t.Chopping = false
	t.HoldTimer = 0
}

func (t *Tree) Progress(cfg ChopConfig) float64 {
	if t.Chopped {
		return 1
	}
	if cfg.HoldTime <= 0 {
		return 0
	}
	return clampFloat(t.HoldTimer/float64(cfg.HoldTime), 0, 1)
}
