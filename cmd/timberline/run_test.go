package main

import (
	"path/filepath"
	"testing"

	"github.com/appengine-ltd/timberline/internal/game"
)

func TestParseFlagsDefaultsToUserConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if filepath.Base(opts.configPath) != "world.yaml" {
		t.Fatalf("expected per-user world.yaml, got %s", opts.configPath)
	}
}

func TestWriteConfigThenLoadWithSeedOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := run([]string{"-config", path, "-seed", "99", "-write-config"}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := game.LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected seed 99 persisted, got %d", cfg.Seed)
	}

	opts, err := parseFlags([]string{"-config", path, "-seed", "5"})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err = loadConfig(opts)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Seed != 5 {
		t.Fatalf("expected flag seed to win, got %d", cfg.Seed)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	cfg := game.DefaultWorldConfig()
	cfg.Spawner.AttemptBudget = 0
	if err := game.SaveWorldConfig(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if err := run([]string{"-config", path, "-console"}); err == nil {
		t.Fatalf("expected invalid config to fail fast")
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	if err := run([]string{"-version"}); err != nil {
		t.Fatalf("version: %v", err)
	}
	if err := run([]string{"-h"}); err != nil {
		t.Fatalf("help should not be an error: %v", err)
	}
}
