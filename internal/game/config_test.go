package game

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultWorldConfigIsValid(t *testing.T) {
	cfg := DefaultWorldConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config valid, got %v", err)
	}
	if cfg.Spawner.Target != 50 || cfg.Spawner.AttemptBudget != 20 {
		t.Fatalf("unexpected spawner defaults: %+v", cfg.Spawner)
	}
	if !cfg.Spawner.Region.Contains(cfg.Dock.Pos) {
		t.Fatalf("expected dock inside the map, got %+v", cfg.Dock.Pos)
	}
}

func TestWorldConfigValidateWrapsSentinel(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *WorldConfig)
	}{
		{name: "spawner", mutate: func(c *WorldConfig) { c.Spawner.Target = -3 }},
		{name: "chop", mutate: func(c *WorldConfig) { c.Chop.InteractionDistance = -1 }},
		{name: "carry", mutate: func(c *WorldConfig) { c.Carry.PickupRange = -1 }},
		{name: "dock", mutate: func(c *WorldConfig) { c.Dock.PlanksNeeded = 0 }},
		{name: "speed", mutate: func(c *WorldConfig) { c.PlayerSpeed = -2 }},
		{name: "nan hold time", mutate: func(c *WorldConfig) { c.Chop.HoldTime = Seconds(math.NaN()) }},
		{name: "infinite hold time", mutate: func(c *WorldConfig) { c.Chop.HoldTime = Seconds(math.Inf(1)) }},
		{name: "nan interaction distance", mutate: func(c *WorldConfig) { c.Chop.InteractionDistance = math.NaN() }},
		{name: "nan pickup range", mutate: func(c *WorldConfig) { c.Carry.PickupRange = math.NaN() }},
		{name: "infinite dock range", mutate: func(c *WorldConfig) { c.Carry.DockRange = math.Inf(1) }},
		{name: "nan speed", mutate: func(c *WorldConfig) { c.PlayerSpeed = math.NaN() }},
		{name: "infinite speed", mutate: func(c *WorldConfig) { c.PlayerSpeed = math.Inf(1) }},
		{name: "nan player start", mutate: func(c *WorldConfig) { c.PlayerStart.X = math.NaN() }},
		{name: "nan dock position", mutate: func(c *WorldConfig) { c.Dock.Pos.Y = math.NaN() }},
		{name: "nan spacing", mutate: func(c *WorldConfig) { c.Spawner.MinSpacing = math.NaN() }},
	}
	for _, tc := range tests {
		cfg := DefaultWorldConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}
