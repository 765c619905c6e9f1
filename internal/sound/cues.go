// Package sound plays short procedural cues for forest events.
package sound

import (
	"math"

	"github.com/appengine-ltd/timberline/internal/game"
)

type Cue int

const (
	CueChop Cue = iota
	CueTimber
	CuePickUp
	CueDrop
	CueDeposit
	CueRepaired
)

func (c Cue) String() string {
	switch c {
	case CueChop:
		return "chop"
	case CueTimber:
		return "timber"
	case CuePickUp:
		return "pickup"
	case CueDrop:
		return "drop"
	case CueDeposit:
		return "deposit"
	case CueRepaired:
		return "repaired"
	default:
		return "unknown"
	}
}

// CuesBetween derives the cues for everything that happened between two
// snapshots of the same world. An axe stroke sounds once per whole second
// of hold time.
func CuesBetween(prev, next game.WorldSnapshot) []Cue {
	var cues []Cue

	held := make(map[game.TreeID]float64, len(prev.Trees))
	for _, t := range prev.Trees {
		held[t.ID] = t.HoldTimer
	}
	for _, t := range next.Trees {
		if t.HoldTimer <= 0 {
			continue
		}
		if math.Floor(t.HoldTimer) > math.Floor(held[t.ID]) {
			cues = append(cues, CueChop)
			break
		}
	}

	if next.Stats.Chopped > prev.Stats.Chopped {
		cues = append(cues, CueTimber)
	}

	deposited := next.Dock.PlanksPlaced > prev.Dock.PlanksPlaced
	switch {
	case !prev.Carrying && next.Carrying:
		cues = append(cues, CuePickUp)
	case prev.Carrying && !next.Carrying && !deposited:
		cues = append(cues, CueDrop)
	}
	if deposited {
		cues = append(cues, CueDeposit)
		if next.Dock.Repaired() && !prev.Dock.Repaired() {
			cues = append(cues, CueRepaired)
		}
	}
	return cues
}
