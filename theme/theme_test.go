package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sample = `# Test theme
palette = 0=#000000
palette = 1=#ff0000
palette = 12=#0000ff
palette = 16=#ffffff
palette = nope
background = #1a1b26
foreground = #c0caf5
selection-background = #33467c
selection-foreground = #c0caf5
cursor-color = #c0caf5
garbage line
`

func TestParse(t *testing.T) {
	th, err := Parse(strings.NewReader(sample), "test-theme")
	if err != nil {
		t.Fatal(err)
	}

	if th.Name != "test-theme" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Palette[0] != "#000000" {
		t.Errorf("palette[0] = %q, want #000000", th.Palette[0])
	}
	if th.Palette[1] != "#ff0000" {
		t.Errorf("palette[1] = %q, want #ff0000", th.Palette[1])
	}
	if th.Palette[12] != "#0000ff" {
		t.Errorf("palette[12] = %q, want #0000ff", th.Palette[12])
	}
	if th.Background != "#1a1b26" {
		t.Errorf("background = %q, want #1a1b26", th.Background)
	}
	if th.Foreground != "#c0caf5" {
		t.Errorf("foreground = %q, want #c0caf5", th.Foreground)
	}
	if th.SelectionBackground != "#33467c" {
		t.Errorf("selection-background = %q, want #33467c", th.SelectionBackground)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	dir := filepath.Join(cfgHome, "arbor", "themes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Zenburn", "Dusk", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(sample), 0644); err != nil {
			t.Fatal(err)
		}
	}

	th, err := Load("Dusk")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Dusk" || th.Palette[12] != "#0000ff" {
		t.Errorf("unexpected theme %+v", th)
	}

	names := List()
	want := []string{"Dusk", "Zenburn"}
	if !reflect.DeepEqual(names, want) && !containsAll(names, want) {
		t.Errorf("List() = %v, want it to include %v", names, want)
	}
}

func containsAll(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

func TestLoadAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs-theme")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	th, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "abs-theme" {
		t.Errorf("Name = %q", th.Name)
	}
}

func TestLoadNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := Load("this-theme-definitely-does-not-exist-xyz")
	if err == nil {
		t.Error("expected error for non-existent theme")
	}
}

func TestLoadEmpty(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Errorf("unexpected error for empty theme: %v", err)
	}
	if th != nil {
		t.Error("expected nil theme for empty name")
	}
}

func TestRoles(t *testing.T) {
	th, err := Parse(strings.NewReader(sample), "test-theme")
	if err != nil {
		t.Fatal(err)
	}
	r := th.Roles()

	tests := []struct {
		role, got, want string
	}{
		{"accent", r.Accent, "#0000ff"},
		{"error falls back to palette 1", r.Error, "#ff0000"},
		{"success unset", r.Success, ""},
		{"drop falls back to accent", r.Drop, "#0000ff"},
		{"drop text", r.DropFg, "#c0caf5"},
		{"muted falls back to foreground", r.Muted, "#c0caf5"},
		{"selection", r.Selection, "#33467c"},
		{"background", r.Background, "#1a1b26"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.role, tt.got, tt.want)
		}
	}
}
