package appdir

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigPathUsesUserConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	want := filepath.Join(base, "timberline", "world.yaml")
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestWriteFileCreatesParentsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "world.json")
	if err := WriteFile(path, []byte("first"), 0o600); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected replaced contents, got %q", data)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
		}
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files cleaned up, found %d entries", len(entries))
	}
}
