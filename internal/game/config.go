package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks configuration errors that no runtime retry can fix.
var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultAttemptBudget = 20
	defaultPlanksNeeded  = 10
)

type SpawnerConfig struct {
	Target        int     `json:"target" yaml:"target"`
	Region        Region  `json:"region" yaml:"region"`
	MinSpacing    float64 `json:"min_spacing" yaml:"min_spacing"`
	Cooldown      Seconds `json:"cooldown_seconds" yaml:"cooldown_seconds"`
	AttemptBudget int     `json:"attempt_budget" yaml:"attempt_budget"`
}

func (c SpawnerConfig) Validate() error {
	if c.Target < 0 {
		return fmt.Errorf("%w: target population must be >= 0, got %d", ErrInvalidConfig, c.Target)
	}
	if !c.Region.IsValid() {
		return fmt.Errorf("%w: region must be finite with min <= max, got %v-%v", ErrInvalidConfig, c.Region.Min, c.Region.Max)
	}
	if !isFinite(c.MinSpacing) || c.MinSpacing < 0 {
		return fmt.Errorf("%w: min spacing must be >= 0, got %g", ErrInvalidConfig, c.MinSpacing)
	}
	if !isFinite(float64(c.Cooldown)) || c.Cooldown < 0 {
		return fmt.Errorf("%w: respawn cooldown must be >= 0, got %g", ErrInvalidConfig, c.Cooldown)
	}
	if c.AttemptBudget < 1 {
		return fmt.Errorf("%w: attempt budget must be >= 1, got %d", ErrInvalidConfig, c.AttemptBudget)
	}
	return nil
}

type ChopConfig struct {
	HoldTime            Seconds `json:"hold_seconds" yaml:"hold_seconds"`
	InteractionDistance float64 `json:"interaction_distance" yaml:"interaction_distance"`
}

func (c ChopConfig) Validate() error {
	if !isFinite(float64(c.HoldTime)) || c.HoldTime <= 0 {
		return fmt.Errorf("%w: chop hold time must be > 0, got %g", ErrInvalidConfig, c.HoldTime)
	}
	if !isFinite(c.InteractionDistance) || c.InteractionDistance < 0 {
		return fmt.Errorf("%w: chop interaction distance must be >= 0, got %g", ErrInvalidConfig, c.InteractionDistance)
	}
	return nil
}

type CarryConfig struct {
	PickupRange float64 `json:"pickup_range" yaml:"pickup_range"`
	DockRange   float64 `json:"dock_range" yaml:"dock_range"`
}

func (c CarryConfig) Validate() error {
	if !isFinite(c.PickupRange) || !isFinite(c.DockRange) || c.PickupRange < 0 || c.DockRange < 0 {
		return fmt.Errorf("%w: carry ranges must be finite and >= 0", ErrInvalidConfig)
	}
	return nil
}

type DockConfig struct {
	Pos          Vec2 `json:"pos" yaml:"pos"`
	PlanksNeeded int  `json:"planks_needed" yaml:"planks_needed"`
}

func (c DockConfig) Validate() error {
	if c.PlanksNeeded < 1 {
		return fmt.Errorf("%w: dock needs at least 1 plank, got %d", ErrInvalidConfig, c.PlanksNeeded)
	}
	if !c.Pos.IsFinite() {
		return fmt.Errorf("%w: dock position must be finite, got %v", ErrInvalidConfig, c.Pos)
	}
	return nil
}

type WorldConfig struct {
	Spawner     SpawnerConfig `json:"spawner" yaml:"spawner"`
	Chop        ChopConfig    `json:"chop" yaml:"chop"`
	Carry       CarryConfig   `json:"carry" yaml:"carry"`
	Dock        DockConfig    `json:"dock" yaml:"dock"`
	PlayerSpeed float64       `json:"player_speed" yaml:"player_speed"`
	PlayerStart Vec2          `json:"player_start" yaml:"player_start"`
	Seed        int64         `json:"seed" yaml:"seed"`
}

// DefaultWorldConfig matches the stock forest: 50 trees on a 40x24 map.
func DefaultWorldConfig() WorldConfig {
	region := Region{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 40, Y: 24}}
	return WorldConfig{
		Spawner: SpawnerConfig{
			Target:        50,
			Region:        region,
			MinSpacing:    1.5,
			Cooldown:      30,
			AttemptBudget: defaultAttemptBudget,
		},
		Chop: ChopConfig{
			HoldTime:            4,
			InteractionDistance: 2,
		},
		Carry: CarryConfig{
			PickupRange: 5,
			DockRange:   3,
		},
		Dock: DockConfig{
			Pos:          Vec2{X: 2, Y: region.Max.Y - 2},
			PlanksNeeded: defaultPlanksNeeded,
		},
		PlayerSpeed: 6,
		PlayerStart: region.Center(),
	}
}

func (c WorldConfig) Validate() error {
	if err := c.Spawner.Validate(); err != nil {
		return err
	}
	if err := c.Chop.Validate(); err != nil {
		return err
	}
	if err := c.Carry.Validate(); err != nil {
		return err
	}
	if err := c.Dock.Validate(); err != nil {
		return err
	}
	if !isFinite(c.PlayerSpeed) || c.PlayerSpeed < 0 {
		return fmt.Errorf("%w: player speed must be >= 0, got %g", ErrInvalidConfig, c.PlayerSpeed)
	}
	if !c.PlayerStart.IsFinite() {
		return fmt.Errorf("%w: player start must be finite, got %v", ErrInvalidConfig, c.PlayerStart)
	}
	return nil
}
