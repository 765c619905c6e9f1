package game

import (
	"math"
	"sort"
)

type LogID uint64

type Log struct {
	ID      LogID `json:"id"`
	Pos     Vec2  `json:"pos"`
	Carried bool  `json:"carried"`
}

// LogPile owns every log on the map, carried or not.
type LogPile struct {
	logs   map[LogID]*Log
	nextID LogID
}

func NewLogPile() *LogPile {
	return &LogPile{logs: make(map[LogID]*Log)}
}

func (p *LogPile) Spawn(pos Vec2) LogID {
	p.nextID++
	p.logs[p.nextID] = &Log{ID: p.nextID, Pos: pos}
	return p.nextID
}

func (p *LogPile) Get(id LogID) (*Log, bool) {
	l, ok := p.logs[id]
	return l, ok
}

func (p *LogPile) Remove(id LogID) {
	delete(p.logs, id)
}

func (p *LogPile) Len() int {
	return len(p.logs)
}

// Closest returns the nearest log lying on the ground within maxRange.
func (p *LogPile) Closest(pos Vec2, maxRange float64) (*Log, bool) {
	var best *Log
	bestDist := math.Inf(1)
	for _, l := range p.logs {
		if l.Carried {
			continue
		}
		d := Distance(pos, l.Pos)
		if d > maxRange {
			continue
		}
		if d < bestDist || (d == bestDist && best != nil && l.ID < best.ID) {
			best = l
			bestDist = d
		}
	}
	return best, best != nil
}

func (p *LogPile) All() []Log {
	out := make([]Log, 0, len(p.logs))
	for _, l := range p.logs {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type InteractOutcome int

const (
	InteractNone InteractOutcome = iota
	InteractPickedUp
	InteractDropped
	InteractDeposited
)

func (o InteractOutcome) String() string {
	switch o {
	case InteractPickedUp:
		return "picked_up"
	case InteractDropped:
		return "dropped"
	case InteractDeposited:
		return "deposited"
	default:
		return "none"
	}
}

// Carrier is the player's hands: at most one log at a time.
type Carrier struct {
	cfg      CarryConfig
	carried  LogID
	carrying bool
}

func NewCarrier(cfg CarryConfig) *Carrier {
	return &Carrier{cfg: cfg}
}

func (c *Carrier) Carrying() (LogID, bool) {
	return c.carried, c.carrying
}

// Interact is the single-button action: pick up when empty-handed, deposit
// when near a dock that still needs planks, otherwise drop.
func (c *Carrier) Interact(player Vec2, pile *LogPile, dock *Dock) InteractOutcome {
	if !c.carrying {
		if c.PickUp(player, pile) {
			return InteractPickedUp
		}
		return InteractNone
	}
	if c.Deposit(player, pile, dock) {
		return InteractDeposited
	}
	if c.Drop(player, pile) {
		return InteractDropped
	}
	return InteractNone
}

func (c *Carrier) PickUp(player Vec2, pile *LogPile) bool {
	if c.carrying {
		return false
	}
	l, ok := pile.Closest(player, c.cfg.PickupRange)
	if !ok {
		return false
	}
	l.Carried = true
	l.Pos = player
	c.carried = l.ID
	c.carrying = true
	return true
}

func (c *Carrier) Drop(player Vec2, pile *LogPile) bool {
	l, ok := c.held(pile)
	if !ok {
		return false
	}
	l.Carried = false
	l.Pos = player
	c.release()
	return true
}

func (c *Carrier) Deposit(player Vec2, pile *LogPile, dock *Dock) bool {
	if dock == nil || Distance(player, dock.Pos) > c.cfg.DockRange {
		return false
	}
	if _, ok := c.held(pile); !ok {
		return false
	}
	if !dock.Deposit() {
		return false
	}
	pile.Remove(c.carried)
	c.release()
	return true
}

// Follow keeps the carried log attached to the player.
func (c *Carrier) Follow(player Vec2, pile *LogPile) {
	if l, ok := c.held(pile); ok {
		l.Pos = player
	}
}

func (c *Carrier) held(pile *LogPile) (*Log, bool) {
	if !c.carrying {
		return nil, false
	}
	l, ok := pile.Get(c.carried)
	if !ok {
		c.release()
		return nil, false
	}
	return l, true
}

func (c *Carrier) release() {
	c.carried = 0
	c.carrying = false
}
