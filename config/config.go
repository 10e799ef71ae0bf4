package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Action represents a named action that can be bound to a key.
type Action string

const (
	ActionQuit        Action = "quit"
	ActionMoveDown    Action = "move_down"
	ActionMoveUp      Action = "move_up"
	ActionGoTop       Action = "go_top"
	ActionGoBottom    Action = "go_bottom"
	ActionExpand      Action = "expand"
	ActionCollapse    Action = "collapse"
	ActionToggle      Action = "toggle"
	ActionDelete      Action = "delete"
	ActionCancelDrag  Action = "cancel_drag"
	ActionCopyID      Action = "copy_id"
	ActionExpandAll   Action = "expand_all"
	ActionCollapseAll Action = "collapse_all"
	ActionSearch      Action = "search"
	ActionHelp        Action = "help"
	ActionReload      Action = "reload"

	// Search mode actions
	ActionSearchConfirm   Action = "search_confirm"
	ActionSearchCancel    Action = "search_cancel"
	ActionSearchNextMatch Action = "search_next_match"
	ActionSearchPrevMatch Action = "search_prev_match"
)

var validActions = map[Action]bool{
	ActionQuit: true, ActionMoveDown: true, ActionMoveUp: true,
	ActionGoTop: true, ActionGoBottom: true, ActionExpand: true,
	ActionCollapse: true, ActionToggle: true, ActionDelete: true,
	ActionCancelDrag: true, ActionCopyID: true, ActionExpandAll: true,
	ActionCollapseAll: true, ActionSearch: true, ActionHelp: true,
	ActionReload: true, ActionSearchConfirm: true, ActionSearchCancel: true,
	ActionSearchNextMatch: true, ActionSearchPrevMatch: true,
}

// Config holds all parsed configuration.
type Config struct {
	// Keybinds maps a key string (e.g. "ctrl+c", "j", "G") to an action.
	Keybinds map[string]Action

	// Theme is the name of a Ghostty-compatible theme to use.
	// Empty string means inherit from the terminal.
	Theme string

	// Indent is the number of cells per tree level.
	Indent int

	HoldThreshold      time.Duration
	DropEdge           float64
	AutoScrollMargin   int
	AutoScrollInterval time.Duration

	// PersistExpanded saves the expand state beside the document.
	PersistExpanded bool
}

// DefaultConfig returns the config with all default keybindings.
func DefaultConfig() *Config {
	c := &Config{
		Keybinds:           make(map[string]Action),
		Indent:             2,
		HoldThreshold:      600 * time.Millisecond,
		DropEdge:           0.25,
		AutoScrollMargin:   2,
		AutoScrollInterval: 60 * time.Millisecond,
		PersistExpanded:    true,
	}

	defaults := map[string]Action{
		"q":         ActionQuit,
		"ctrl+c":    ActionQuit,
		"j":         ActionMoveDown,
		"down":      ActionMoveDown,
		"k":         ActionMoveUp,
		"up":        ActionMoveUp,
		"g":         ActionGoTop,
		"home":      ActionGoTop,
		"G":         ActionGoBottom,
		"end":       ActionGoBottom,
		"l":         ActionExpand,
		"right":     ActionExpand,
		"h":         ActionCollapse,
		"left":      ActionCollapse,
		" ":         ActionToggle,
		"backspace": ActionDelete,
		"delete":    ActionDelete,
		"esc":       ActionCancelDrag,
		"c":         ActionCopyID,
		"E":         ActionExpandAll,
		"W":         ActionCollapseAll,
		"/":         ActionSearch,
		"?":         ActionHelp,
		"ctrl+r":    ActionReload,
	}
	for k, v := range defaults {
		c.Keybinds[k] = v
	}

	return c
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbor", "config")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "arbor", "config")
}

// Load reads the config file from the default path. If the file doesn't
// exist, it returns the default config with no error.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from the given path. If the file doesn't
// exist, it returns the default config with no error.
//
// The first keybind line replaces the default keybinds; later lines add to
// or unbind from that set.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	p := &parser{cfg: cfg, path: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return cfg, nil
}

type parser struct {
	cfg          *Config
	path         string
	line         int
	seenKeybinds bool
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.path, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) parseLine(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	eqIdx := strings.Index(line, "=")
	if eqIdx < 0 {
		return p.errorf("invalid syntax (expected key = value): %s", line)
	}
	key := strings.TrimSpace(line[:eqIdx])
	value := strings.TrimSpace(line[eqIdx+1:])
	if key == "" {
		return p.errorf("empty key")
	}

	cfg := p.cfg
	switch key {
	case "keybind":
		if !p.seenKeybinds {
			p.seenKeybinds = true
			cfg.Keybinds = make(map[string]Action)
		}
		return p.parseKeybind(value)

	case "theme":
		cfg.Theme = value

	case "indent":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 8 {
			return p.errorf("indent must be a number from 1 to 8, got %q", value)
		}
		cfg.Indent = n

	case "hold-threshold", "auto-scroll-interval":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return p.errorf("%s must be a positive duration, got %q", key, value)
		}
		if key == "hold-threshold" {
			cfg.HoldThreshold = d
		} else {
			cfg.AutoScrollInterval = d
		}

	case "drop-edge":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v <= 0 || v > 0.5 {
			return p.errorf("drop-edge must be greater than 0 and at most 0.5, got %q", value)
		}
		cfg.DropEdge = v

	case "auto-scroll-margin":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return p.errorf("auto-scroll-margin must be a non-negative number, got %q", value)
		}
		cfg.AutoScrollMargin = n

	case "persist-expanded":
		switch value {
		case "true":
			cfg.PersistExpanded = true
		case "false":
			cfg.PersistExpanded = false
		default:
			return p.errorf("persist-expanded must be true or false, got %q", value)
		}

	default:
		return p.errorf("unknown config key %q", key)
	}
	return nil
}

// parseKeybind parses a keybind value like "ctrl+c=quit" or "j=unbind".
func (p *parser) parseKeybind(value string) error {
	// The key itself may be "=", so split on the last one.
	eqIdx := strings.LastIndex(value, "=")
	if eqIdx < 0 {
		return p.errorf("invalid keybind syntax (expected key=action): %s", value)
	}

	bindKey := strings.TrimSpace(value[:eqIdx])
	actionStr := strings.TrimSpace(value[eqIdx+1:])

	if bindKey == "space" {
		bindKey = " "
	}
	if bindKey == "" {
		return p.errorf("empty keybind key")
	}

	if actionStr == "unbind" {
		delete(p.cfg.Keybinds, bindKey)
		return nil
	}

	action := Action(actionStr)
	if !validActions[action] {
		return p.errorf("unknown action %q", actionStr)
	}
	p.cfg.Keybinds[bindKey] = action
	return nil
}

// ActionFor returns the action bound to the given key string, or "" if unbound.
func (c *Config) ActionFor(key string) Action {
	return c.Keybinds[key]
}

// KeysFor returns all keys bound to the given action, sorted so help text
// is stable.
func (c *Config) KeysFor(action Action) []string {
	var keys []string
	for k, a := range c.Keybinds {
		if a == action {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
