package game

import (
	"sync"
	"testing"
)

func TestSessionSerialisesConcurrentAccess(t *testing.T) {
	s := NewSession(newTestWorld(t))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Step(0.05, Input{Move: Vec2{X: 1}})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			snap := s.Snapshot()
			if len(snap.Trees) > 0 {
				s.ChopTree(snap.Trees[0].ID)
			}
		}
	}()
	wg.Wait()

	snap := s.Snapshot()
	if len(snap.Trees) > snap.Target {
		t.Fatalf("expected population never above target, got %d", len(snap.Trees))
	}
	if len(s.Messages()) == 0 {
		t.Fatalf("expected messages recorded")
	}
}
