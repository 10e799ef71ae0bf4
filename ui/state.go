package ui

import (
	"os"
	"path/filepath"

	"github.com/almonk/arbor/logger"
	json "github.com/goccy/go-json"
)

// viewState is what arbor remembers about a document between runs.
type viewState struct {
	Expanded map[string]bool `json:"expanded"`
	Selected string          `json:"selected,omitempty"`
}

// statePath is the hidden file beside the document, e.g.
// "site/.page.yaml.arbor-state.json".
func statePath(doc string) string {
	if doc == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(doc), "."+filepath.Base(doc)+".arbor-state.json")
}

func (m Model) loadState() (viewState, bool) {
	path := statePath(m.path)
	if path == "" || !m.cfg.PersistExpanded {
		return viewState{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return viewState{}, false
	}
	var st viewState
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warn("ignoring bad state file", "path", path, "err", err)
		return viewState{}, false
	}
	return st, true
}

func (m Model) saveState() {
	path := statePath(m.path)
	if path == "" || !m.cfg.PersistExpanded {
		return
	}
	st := viewState{Expanded: m.tree.ExpandedRecord(), Selected: m.sel.ID()}
	data, err := json.Marshal(st)
	if err != nil {
		logger.Warn("encoding state", "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Warn("writing state", "path", path, "err", err)
	}
}
