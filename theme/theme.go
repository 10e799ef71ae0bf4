// Package theme loads Ghostty-compatible color themes for arbor.
//
// Themes are plain text files using the same format as Ghostty:
//
//	palette = 0=#1a1b26
//	palette = 12=#7aa2f7
//	background = #1a1b26
//	foreground = #c0caf5
//	selection-background = #33467c
//	selection-foreground = #c0caf5
//
// Theme search order:
//  1. ~/.config/arbor/themes/<name>
//  2. Ghostty app bundle themes (macOS)
//  3. ~/.config/ghostty/themes/<name>
package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Theme holds the parsed color palette from a Ghostty-format theme file.
type Theme struct {
	Name string

	// 16-color ANSI palette (indices 0–15). Empty string means "not set".
	Palette [16]string

	Background          string
	Foreground          string
	SelectionBackground string
	SelectionForeground string
}

// Roles are the colors arbor draws with. An empty role means the theme
// leaves it to the terminal.
type Roles struct {
	Accent  string // mode badge, titles, hovered rows
	Success string
	Error   string
	Search  string
	Drop    string // background of the drop parent while dragging
	DropFg  string

	Text       string
	Muted      string
	Guide      string
	Background string
	Selection  string
}

// Roles resolves arbor's colors from the palette, preferring the bright
// variant of each ANSI color and falling back to the normal one.
func (t *Theme) Roles() Roles {
	pick := func(values ...string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}
	p := t.Palette
	r := Roles{
		Accent:     pick(p[12], p[4]),
		Success:    pick(p[10], p[2]),
		Error:      pick(p[9], p[1]),
		Search:     pick(p[13], p[5]),
		Text:       t.Foreground,
		Muted:      pick(p[7], t.Foreground),
		Guide:      pick(p[8], p[7]),
		Background: t.Background,
		Selection:  t.SelectionBackground,
	}
	r.Drop = pick(p[4], r.Accent)
	r.DropFg = pick(t.SelectionForeground, t.Foreground)
	return r
}

func themeSearchDirs() []string {
	var dirs []string

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		dirs = append(dirs, filepath.Join(configHome, "arbor", "themes"))
	}
	if runtime.GOOS == "darwin" {
		dirs = append(dirs, "/Applications/Ghostty.app/Contents/Resources/ghostty/themes")
	}
	if configHome != "" {
		dirs = append(dirs, filepath.Join(configHome, "ghostty", "themes"))
	}

	return dirs
}

// Load finds and parses a theme by name or absolute path. An empty name
// returns nil, nil: use the terminal's colors.
func Load(name string) (*Theme, error) {
	if name == "" {
		return nil, nil
	}
	if filepath.IsAbs(name) {
		return parseFile(name)
	}
	for _, dir := range themeSearchDirs() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening theme: %w", err)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}

// Parse reads a Ghostty-format theme. Lines it does not understand are
// skipped, as Ghostty themes carry settings arbor has no use for.
func Parse(r io.Reader, name string) (*Theme, error) {
	t := &Theme{Name: name}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch key {
		case "palette":
			// "N=#rrggbb"
			idxStr, color, ok := strings.Cut(value, "=")
			if !ok {
				continue
			}
			idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
			if err != nil || idx < 0 || idx > 15 {
				continue
			}
			t.Palette[idx] = strings.TrimSpace(color)
		case "background":
			t.Background = value
		case "foreground":
			t.Foreground = value
		case "selection-background":
			t.SelectionBackground = value
		case "selection-foreground":
			t.SelectionForeground = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	return t, nil
}

// List returns the sorted names of all themes across the search directories.
func List() []string {
	seen := make(map[string]bool)
	var names []string

	for _, dir := range themeSearchDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") || seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
