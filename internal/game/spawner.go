package game

import (
	"fmt"
	"time"
)

type TreeID uint64

// TreeFactory instantiates a tree entity at a placed position.
type TreeFactory interface {
	CreateTree(pos Vec2) TreeID
}

type TreeFactoryFunc func(pos Vec2) TreeID

func (f TreeFactoryFunc) CreateTree(pos Vec2) TreeID {
	return f(pos)
}

type LiveTree struct {
	ID  TreeID `json:"id"`
	Pos Vec2   `json:"pos"`
}

// BlockedSpot is a chopped position that still excludes placement.
type BlockedSpot struct {
	Pos       Vec2    `json:"pos"`
	Remaining float64 `json:"remaining_seconds"`
}

type SpawnerStats struct {
	Attempts   int `json:"attempts"`
	Candidates int `json:"candidates"`
	Placed     int `json:"placed"`
	Failures   int `json:"failures"`
	Chopped    int `json:"chopped"`
	Expired    int `json:"expired"`
}

// Spawner keeps the live tree population at its target. It is not safe for
// concurrent use; see Session.
type Spawner struct {
	cfg     SpawnerConfig
	factory TreeFactory
	rng     RandomSource

	live    []LiveTree
	blocked []BlockedSpot
	stats   SpawnerStats
}

func NewSpawner(cfg SpawnerConfig, factory TreeFactory, rng RandomSource) (*Spawner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: tree factory is required", ErrInvalidConfig)
	}
	if rng == nil {
		rng = SeededSource(time.Now().UnixNano())
	}
	return &Spawner{
		cfg:     cfg,
		factory: factory,
		rng:     rng,
		live:    make([]LiveTree, 0, cfg.Target),
	}, nil
}

// Tick ages blocked spots by dt seconds and tops the population up. A failed
// placement ends the top-up for this tick; the next tick tries again.
func (s *Spawner) Tick(dt float64) {
	dt = stepDelta(dt)
	kept := s.blocked[:0]
	for _, spot := range s.blocked {
		spot.Remaining -= dt
		if spot.Remaining <= 0 {
			s.stats.Expired++
			continue
		}
		kept = append(kept, spot)
	}
	s.blocked = kept

	for len(s.live) < s.cfg.Target {
		if _, ok := s.AttemptPlacement(); !ok {
			break
		}
	}
}

// AttemptPlacement draws up to AttemptBudget candidates and places a tree at
// the first one clear of every live tree and blocked spot.
func (s *Spawner) AttemptPlacement() (Vec2, bool) {
	s.stats.Attempts++
	for i := 0; i < s.cfg.AttemptBudget; i++ {
		s.stats.Candidates++
		candidate := s.cfg.Region.Lerp(s.rng.Float64(), s.rng.Float64())
		if !s.isClear(candidate) {
			continue
		}
		id := s.factory.CreateTree(candidate)
		s.live = append(s.live, LiveTree{ID: id, Pos: candidate})
		s.stats.Placed++
		return candidate, true
	}
	s.stats.Failures++
	return Vec2{}, false
}

func (s *Spawner) isClear(p Vec2) bool {
	for _, spot := range s.blocked {
		if Distance(p, spot.Pos) < s.cfg.MinSpacing {
			return false
		}
	}
	for _, tree := range s.live {
		if Distance(p, tree.Pos) < s.cfg.MinSpacing {
			return false
		}
	}
	return true
}

// OnTreeChopped removes the live tree standing at pos and blocks the spot for
// the configured cooldown. Repeated calls for the same tree are no-ops.
// A pos that matches no live tree exactly blocks nothing; hosts that track
// handles should prefer ChopTree.
func (s *Spawner) OnTreeChopped(pos Vec2) bool {
	idx := s.indexAt(pos)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	s.block(pos)
	return true
}

// ChopTree is OnTreeChopped keyed by handle.
func (s *Spawner) ChopTree(id TreeID) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	pos := s.live[idx].Pos
	s.removeAt(idx)
	s.block(pos)
	return true
}

// OnTreeDestroyedExternally drops a tree without blocking its spot.
func (s *Spawner) OnTreeDestroyedExternally(id TreeID) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *Spawner) block(pos Vec2) {
	s.blocked = append(s.blocked, BlockedSpot{Pos: pos, Remaining: float64(s.cfg.Cooldown)})
	s.stats.Chopped++
}

func (s *Spawner) indexOf(id TreeID) int {
	for i, tree := range s.live {
		if tree.ID == id {
			return i
		}
	}
	return -1
}

func (s *Spawner) indexAt(pos Vec2) int {
	for i, tree := range s.live {
		if tree.Pos == pos {
			return i
		}
	}
	return -1
}

func (s *Spawner) removeAt(idx int) {
	s.live = append(s.live[:idx], s.live[idx+1:]...)
}

func (s *Spawner) Count() int {
	return len(s.live)
}

func (s *Spawner) Live() []LiveTree {
	return append([]LiveTree(nil), s.live...)
}

func (s *Spawner) Blocked() []BlockedSpot {
	return append([]BlockedSpot(nil), s.blocked...)
}

func (s *Spawner) Config() SpawnerConfig {
	return s.cfg
}

func (s *Spawner) Stats() SpawnerStats {
	return s.stats
}
