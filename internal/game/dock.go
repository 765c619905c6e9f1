package game

// Dock accepts logs as planks until it is fully repaired.
type Dock struct {
	Pos          Vec2 `json:"pos"`
	PlanksPlaced int  `json:"planks_placed"`
	PlanksNeeded int  `json:"planks_needed"`
}

func NewDock(cfg DockConfig) Dock {
	return Dock{Pos: cfg.Pos, PlanksNeeded: cfg.PlanksNeeded}
}

func (d *Dock) Deposit() bool {
	if d.Repaired() {
		return false
	}
	d.PlanksPlaced++
	return true
}

func (d Dock) Repaired() bool {
	return d.PlanksNeeded > 0 && d.PlanksPlaced >= d.PlanksNeeded
}

func (d Dock) Progress() float64 {
	if d.PlanksNeeded <= 0 {
		return 0
	}
	return clampFloat(float64(d.PlanksPlaced)/float64(d.PlanksNeeded), 0, 1)
}
