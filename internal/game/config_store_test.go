package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWorldConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWorldConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultWorldConfig() {
		t.Fatalf("expected defaults for a missing file")
	}
}

func TestWorldConfigYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.yaml")
	want := DefaultWorldConfig()
	want.Spawner.Target = 12
	want.Spawner.Cooldown = 45
	want.Chop.HoldTime = 2.5
	want.Seed = 77

	if err := SaveWorldConfig(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestWorldConfigJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.json")
	want := DefaultWorldConfig()
	want.Spawner.MinSpacing = 3
	want.Dock.PlanksNeeded = 4

	if err := SaveWorldConfig(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadWorldConfigPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.yml")
	data := []byte("world:\n  spawner:\n    target: 8\n    cooldown_seconds: 1m30s\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Spawner.Target != 8 || cfg.Spawner.Cooldown != 90 {
		t.Fatalf("expected overrides applied, got %+v", cfg.Spawner)
	}
	if cfg.Spawner.AttemptBudget != 20 || cfg.Chop.HoldTime != 4 {
		t.Fatalf("expected untouched fields to keep defaults, got %+v", cfg)
	}
}

func TestLoadWorldConfigNumericSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.json")
	data := []byte(`{"world":{"spawner":{"cooldown_seconds":12.5},"chop":{"hold_seconds":"3s"}}}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Spawner.Cooldown != 12.5 || cfg.Chop.HoldTime != 3 {
		t.Fatalf("expected numeric and string seconds, got %v %v", cfg.Spawner.Cooldown, cfg.Chop.HoldTime)
	}
}

func TestLoadWorldConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := []byte(`{"world":{"spawner":{"region":{"min":{"x":5,"y":0},"max":{"x":1,"y":1}}}}}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWorldConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadWorldConfigRejectsNewerFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"format_version":99}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWorldConfig(path); err == nil {
		t.Fatalf("expected newer format rejected")
	}
}

func TestLoadWorldConfigRejectsNonFiniteYAML(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		sentinel bool
	}{
		{name: "nan spacing", body: "world:\n  spawner:\n    min_spacing: .nan\n", sentinel: true},
		{name: "infinite spacing", body: "world:\n  spawner:\n    min_spacing: .inf\n", sentinel: true},
		{name: "nan cooldown", body: "world:\n  spawner:\n    cooldown_seconds: NaN\n"},
		{name: "infinite hold time", body: "world:\n  chop:\n    hold_seconds: +Inf\n"},
	}
	for _, tc := range tests {
		path := filepath.Join(t.TempDir(), "forest.yaml")
		if err := os.WriteFile(path, []byte(tc.body), 0o600); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}
		_, err := LoadWorldConfig(path)
		if err == nil {
			t.Fatalf("%s: expected load to fail", tc.name)
		}
		if tc.sentinel && !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}
