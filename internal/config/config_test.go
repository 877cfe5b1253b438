package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing config to be ignored, got %v", err)
	}
	if cfg.Greeting.Name != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigDecodesGreeting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[greeting]
name = "Maila"
speed-ms = 30
max-wishes = 15
autoplay = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	g := cfg.Greeting
	if g.Name == nil || *g.Name != "Maila" {
		t.Fatalf("unexpected name %v", g.Name)
	}
	if g.SpeedMs == nil || *g.SpeedMs != 30 {
		t.Fatalf("unexpected speed %v", g.SpeedMs)
	}
	if g.MaxWishes == nil || *g.MaxWishes != 15 {
		t.Fatalf("unexpected max wishes %v", g.MaxWishes)
	}
	if g.Autoplay == nil || *g.Autoplay {
		t.Fatalf("expected autoplay=false")
	}
	if g.Candles != nil {
		t.Fatalf("expected unset candles to stay nil")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[greeting]\nnmae = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BDAY_NAME", "Env Name")
	t.Setenv("BDAY_SPEED_MS", "25")
	t.Setenv("BDAY_AUDIO", "false")
	t.Setenv("BDAY_DEBUG", "true")
	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if !e.Debug {
		t.Fatalf("expected debug flag")
	}
	fileName := "File Name"
	fileCandles := 7
	merged := e.Merge(GreetingConfig{Name: &fileName, Candles: &fileCandles})
	if *merged.Name != "Env Name" {
		t.Fatalf("expected env to override name, got %q", *merged.Name)
	}
	if *merged.SpeedMs != 25 {
		t.Fatalf("unexpected speed %d", *merged.SpeedMs)
	}
	if merged.Audio == nil || *merged.Audio {
		t.Fatalf("expected audio=false from env")
	}
	if *merged.Candles != 7 {
		t.Fatalf("expected file candles to survive, got %d", *merged.Candles)
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("BDAY_MAX_WISHES", "lots")
	if _, err := LoadEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "bday", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDeckPath(); got != filepath.Join(dir, "bday", "deck.yaml") {
		t.Fatalf("unexpected deck path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "bday", "debug.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}

func TestXDGFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	if got := DefaultConfigPath(); got != filepath.Join(home, ".config", "bday", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(home, ".local", "share", "bday", "debug.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}

func TestEnsureParentCreatesNestedDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "deck.yaml")
	if err := EnsureParent(path); err != nil {
		t.Fatalf("ensure parent: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, got %v", err)
	}
	if err := EnsureParent(path); err != nil {
		t.Fatalf("expected idempotent ensure, got %v", err)
	}
}
