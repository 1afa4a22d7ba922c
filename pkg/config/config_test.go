package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"laptudirm.com/x/chessbridge/pkg/config"
	"laptudirm.com/x/chessbridge/pkg/uci"
)

func TestDefault(t *testing.T) {
	got := config.Default()
	want := config.Config{
		Engine: uci.EngineConfig{
			Name:    "chessbridge",
			Options: map[string]string{},
			Depth:   2,
		},
		Keepalive: 5 * time.Second,
		Listen:    "127.0.0.1:8080",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
engine:
  name: stockfish
  cmd: /usr/bin/stockfish
  options:
    Hash: "64"
  depth: 12
keepalive: 250ms
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := config.Config{
		Engine: uci.EngineConfig{
			Name:    "stockfish",
			Cmd:     "/usr/bin/stockfish",
			Options: map[string]string{"Hash": "64"},
			Depth:   12,
		},
		Keepalive: 250 * time.Millisecond,
		Listen:    "127.0.0.1:8080",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadBuiltinEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, config.DefaultFile, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	self, _ := os.Executable()
	if got.Engine.Cmd != self || got.Engine.Arg != "engine" {
		t.Errorf("engine command = %q %q, want %q engine", got.Engine.Cmd, got.Engine.Arg, self)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("keepalive: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(bad); err == nil {
		t.Error("Load accepted malformed yaml")
	}

	negative := filepath.Join(dir, "negative.yaml")
	if err := os.WriteFile(negative, []byte("keepalive: -1s\nengine:\n  cmd: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(negative); err == nil {
		t.Error("Load accepted a negative keepalive")
	}
}
