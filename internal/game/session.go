package game

import "sync"

// Session serialises access to a World for hosts that drive it from more
// than one goroutine.
type Session struct {
	mu    sync.Mutex
	world *World
}

func NewSession(w *World) *Session {
	return &Session{world: w}
}

func (s *Session) Step(dt float64, in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Step(dt, in)
}

func (s *Session) ExecuteCommand(raw string) CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.ExecuteCommand(raw)
}

func (s *Session) ChopTree(id TreeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.ChopTree(id)
}

func (s *Session) RemoveTree(id TreeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.RemoveTree(id)
}

func (s *Session) Snapshot() WorldSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Snapshot()
}

func (s *Session) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Messages()
}
