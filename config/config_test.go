package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ActionFor("q") != ActionQuit {
		t.Errorf("expected q=quit, got %q", cfg.ActionFor("q"))
	}
	if cfg.ActionFor("j") != ActionMoveDown {
		t.Errorf("expected j=move_down, got %q", cfg.ActionFor("j"))
	}
	if cfg.ActionFor(" ") != ActionToggle {
		t.Errorf("expected space=toggle, got %q", cfg.ActionFor(" "))
	}
	if cfg.ActionFor("esc") != ActionCancelDrag {
		t.Errorf("expected esc=cancel_drag, got %q", cfg.ActionFor("esc"))
	}
	if cfg.Indent != 2 || cfg.HoldThreshold != 600*time.Millisecond || cfg.DropEdge != 0.25 {
		t.Errorf("unexpected drag defaults: %+v", cfg)
	}
	if !cfg.PersistExpanded {
		t.Error("expected persist-expanded=true by default")
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.ActionFor("q") != ActionQuit {
		t.Error("expected defaults when file missing")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Indent != 2 {
		t.Errorf("Indent = %d, want 2", cfg.Indent)
	}
}

func TestLoadKeybinds(t *testing.T) {
	path := writeConfig(t, `# My arbor config

keybind = q=quit
keybind = ctrl+c=quit
keybind = j=move_down
keybind = k=move_up
keybind = x=expand_all
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// When keybinds are present, defaults are cleared
	if cfg.ActionFor("G") != "" {
		t.Error("expected G to be unbound when user provides keybinds")
	}
	if cfg.ActionFor("q") != ActionQuit {
		t.Errorf("expected q=quit, got %q", cfg.ActionFor("q"))
	}
	if cfg.ActionFor("x") != ActionExpandAll {
		t.Errorf("expected x=expand_all, got %q", cfg.ActionFor("x"))
	}
}

func TestLoadSpaceKey(t *testing.T) {
	path := writeConfig(t, "keybind = space=toggle\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActionFor(" ") != ActionToggle {
		t.Errorf("expected space=toggle, got %q", cfg.ActionFor(" "))
	}
}

func TestLoadUnbind(t *testing.T) {
	path := writeConfig(t, `keybind = q=quit
keybind = q=unbind
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ActionFor("q") != "" {
		t.Error("expected q to be unbound")
	}
}

func TestLoadDragSettings(t *testing.T) {
	path := writeConfig(t, `indent = 3
hold-threshold = 1s
drop-edge = 0.4
auto-scroll-margin = 0
auto-scroll-interval = 100ms
persist-expanded = false
theme = TokyoNight
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Indent != 3 {
		t.Errorf("Indent = %d, want 3", cfg.Indent)
	}
	if cfg.HoldThreshold != time.Second {
		t.Errorf("HoldThreshold = %v, want 1s", cfg.HoldThreshold)
	}
	if cfg.DropEdge != 0.4 {
		t.Errorf("DropEdge = %v, want 0.4", cfg.DropEdge)
	}
	if cfg.AutoScrollMargin != 0 {
		t.Errorf("AutoScrollMargin = %d, want 0", cfg.AutoScrollMargin)
	}
	if cfg.AutoScrollInterval != 100*time.Millisecond {
		t.Errorf("AutoScrollInterval = %v, want 100ms", cfg.AutoScrollInterval)
	}
	if cfg.PersistExpanded {
		t.Error("expected persist-expanded=false")
	}
	if cfg.Theme != "TokyoNight" {
		t.Errorf("Theme = %q", cfg.Theme)
	}

	// Defaults should still be present since no keybind lines
	if cfg.ActionFor("q") != ActionQuit {
		t.Error("expected defaults preserved when no keybind lines")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown action", "keybind = q=does_not_exist\n", "unknown action"},
		{"invalid syntax", "this has no equals sign\n", "invalid syntax"},
		{"unknown key", "foobar = baz\n", "unknown config key"},
		{"empty key", "= value\n", "empty key"},
		{"keybind without action", "keybind = q\n", "invalid keybind"},
		{"indent zero", "indent = 0\n", "indent"},
		{"bad duration", "hold-threshold = soon\n", "hold-threshold"},
		{"negative interval", "auto-scroll-interval = -1s\n", "auto-scroll-interval"},
		{"edge too wide", "drop-edge = 0.8\n", "drop-edge"},
		{"negative margin", "auto-scroll-margin = -2\n", "auto-scroll-margin"},
		{"bad bool", "persist-expanded = yes\n", "persist-expanded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "# header\n"+tt.content)
			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), path+":2:") {
				t.Errorf("error %q missing line prefix", err)
			}
		})
	}
}

func TestKeysFor(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.KeysFor(ActionQuit)
	want := []string{"q", "ctrl+c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeysFor(quit) = %v, want %v", got, want)
	}
	if keys := cfg.KeysFor(ActionSearchNextMatch); len(keys) != 0 {
		t.Errorf("expected no keys for search_next_match, got %v", keys)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	if got := ConfigPath(); got != filepath.Join("/tmp/cfg", "arbor", "config") {
		t.Errorf("ConfigPath() = %q", got)
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	path := writeConfig(t, `# This is a comment
# Another comment

   # Indented comment

keybind = q=quit

# Trailing comment
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ActionFor("q") != ActionQuit {
		t.Error("expected q=quit")
	}
}
