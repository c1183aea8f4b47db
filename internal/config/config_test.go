package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"yuquest/internal/mandala"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath == "" {
		t.Fatalf("expected a default db path")
	}
	if cfg.DailyUnlockLimit != 2 {
		t.Fatalf("DailyUnlockLimit=%d, want 2", cfg.DailyUnlockLimit)
	}
	if cfg.CompletionCooldown != 60*time.Minute {
		t.Fatalf("CompletionCooldown=%v, want 60m", cfg.CompletionCooldown)
	}
	if cfg.Adjacency != mandala.AdjacencyOrthogonal {
		t.Fatalf("Adjacency=%v, want orthogonal", cfg.Adjacency)
	}
	if cfg.EventRingSize != 50 {
		t.Fatalf("EventRingSize=%d, want 50", cfg.EventRingSize)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	body := "db_path: /tmp/yu.db\ngrid:\n  daily_unlock_limit: 5\n  adjacency: eight\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/yu.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.DailyUnlockLimit != 5 {
		t.Fatalf("DailyUnlockLimit=%d, want 5", cfg.DailyUnlockLimit)
	}
	if cfg.Adjacency != mandala.AdjacencyEight {
		t.Fatalf("Adjacency=%v, want eight", cfg.Adjacency)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolate(t)

	// A file found through the search path must fail just as loudly as
	// one named with --config; a typo in yuquest.yaml should never make
	// the defaults apply silently.
	path := filepath.Join(dir, "yuquest.yaml")
	if err := os.WriteFile(path, []byte("grid: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for malformed implicit config")
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed explicit config")
	}
}

func TestLoadRejectsBadAdjacency(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "yuquest.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  adjacency: diagonal\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown adjacency mode")
	}
}
