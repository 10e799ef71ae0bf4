package ui

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/almonk/arbor/config"
	"github.com/almonk/arbor/logger"
	"github.com/almonk/arbor/selection"
	"github.com/almonk/arbor/theme"
	"github.com/almonk/arbor/tree"
	"github.com/almonk/arbor/treeview"
	"github.com/almonk/arbor/watcher"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type clearFlashMsg struct{}

// Options configures a Model.
type Options struct {
	// Path is the document file. Saves and reloads go through it.
	Path   string
	Config *config.Config
	Theme  *theme.Theme
	// Watch reloads the document when another program edits it.
	Watch bool
}

// Model is the Bubble Tea model hosting the element tree.
type Model struct {
	cfg  *config.Config
	path string

	root      *tree.Node
	lastBytes []byte // what we last read or wrote; reloads of these are ours

	tree   *treeview.Model[*tree.Node]
	keys   treeview.KeyMap
	sel    *selection.Store
	selCh  <-chan selection.Event
	render *renderer
	crumbs []string

	watch    *watcher.Watcher
	watchErr chan error

	width    int
	height   int
	flashMsg string
	flashErr bool
	showHelp bool
	help     help.Model

	// Search
	searching     bool
	input         textinput.Model
	matches       []string
	matchIdx      int
	savedExpanded map[string]bool
	savedSelected string
}

// New loads the document at opts.Path and builds the model around it.
func New(opts Options) (Model, error) {
	root, data, err := tree.Load(opts.Path)
	if err != nil {
		return Model{}, err
	}
	return newModel(root, data, opts), nil
}

func newModel(root *tree.Node, data []byte, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	palette := applyTheme(opts.Theme)
	styles := treeview.NewStyles(palette)
	keys := keyMapFromConfig(cfg)
	r := &renderer{}

	tv := treeview.New(treeview.Options[*tree.Node]{
		Accessors:          tree.NodeAccessors(),
		RenderItem:         r.render,
		Indent:             cfg.Indent,
		HoldThreshold:      cfg.HoldThreshold,
		DropEdge:           cfg.DropEdge,
		AutoScrollMargin:   cfg.AutoScrollMargin,
		AutoScrollInterval: cfg.AutoScrollInterval,
		Keys:               &keys,
		Styles:             &styles,
	})
	r.expanded = tv.IsExpanded

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "jump to element"

	m := Model{
		cfg:       cfg,
		path:      opts.Path,
		root:      root,
		lastBytes: data,
		tree:      tv,
		keys:      keys,
		render:    r,
		input:     input,
		help:      help.New(),
	}
	m.help.ShortSeparator = "  "

	selected := ""
	if st, ok := m.loadState(); ok {
		tv.Sync(root, "")
		tv.RestoreExpanded(st.Expanded)
		if tree.Find(root, st.Selected) != nil {
			selected = st.Selected
		}
	}
	if selected == "" && len(root.Children) > 0 {
		selected = root.Children[0].ID
	}
	m.sel = selection.NewStore(selected)
	m.selCh = m.sel.Subscribe()
	m.crumbs = breadcrumb(root, selected)

	tv.Sync(root, selected)
	tv.Focus()

	if opts.Watch && opts.Path != "" {
		if err := m.startWatch(); err != nil {
			logger.Warn("watch failed", "path", opts.Path, "err", err)
			m.flashMsg, m.flashErr = "✗ Not watching: "+err.Error(), true
		}
	}
	return m
}

var newWatcher = watcher.New

// startWatch follows edits other programs make to the document.
func (m *Model) startWatch() error {
	errs := make(chan error, 1)
	w, err := newWatcher(m.path, watcher.WithOnError(func(err error) {
		select {
		case errs <- err:
		default:
		}
	}))
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	m.watch, m.watchErr = w, errs
	logger.Debug("watching document", "path", w.Path(), "polling", w.IsPolling())
	return nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForSelection(m.selCh), waitForDocument(m.watch, m.watchErr)}
	if m.flashMsg != "" {
		cmds = append(cmds, clearFlashLater())
	}
	return tea.Batch(cmds...)
}

// Close stops the watcher and selection subscribers.
func (m Model) Close() {
	if m.watch != nil {
		m.watch.Stop()
	}
	m.sel.Close()
}

// Root returns the current document tree.
func (m Model) Root() *tree.Node { return m.root }

// SelectedID returns the id held by the selection store.
func (m Model) SelectedID() string { return m.sel.ID() }

// flash sets a temporary flash message that auto-clears.
func flash(m *Model, msg string) tea.Cmd {
	m.flashMsg = msg
	m.flashErr = false
	return clearFlashLater()
}

func clearFlashLater() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearFlashMsg{}
	})
}

func flashError(m *Model, msg string) tea.Cmd {
	cmd := flash(m, msg)
	m.flashErr = true
	return cmd
}

// selectID selects id in the store and the tree, moving keyboard focus with
// it. Used for host-driven selection such as search and deletes.
func (m *Model) selectID(id string) {
	m.sel.Set(id)
	m.tree.SetSelectedID(id)
	m.tree.ScrollToID(id)
	m.tree.Focus()
}

// commit replaces the document root, keeps the selection on selected and
// writes the document back to disk.
func (m *Model) commit(root *tree.Node, selected string) error {
	m.root = root
	m.sel.Set(selected)
	m.tree.Sync(root, selected)
	if m.path == "" {
		return nil
	}
	data, err := tree.Save(m.path, root)
	if err != nil {
		logger.Error("save failed", "path", m.path, "err", err)
		return err
	}
	m.lastBytes = data
	logger.Debug("saved document", "path", m.path, "bytes", len(data))
	return nil
}

func (m *Model) applyDragEnd(msg treeview.DragEndMsg) tea.Cmd {
	target := msg.DropTarget
	root, err := tree.Reparent(m.root, msg.ItemID, target.ItemID, target.Position)
	if err != nil {
		logger.Warn("move rejected", "item", msg.ItemID, "parent", target.ItemID, "pos", target.Position.String(), "err", err)
		return flashError(m, fmt.Sprintf("✗ Cannot move %s: %s", msg.ItemID, err))
	}
	logger.Info("moved element", "item", msg.ItemID, "parent", target.ItemID, "pos", target.Position.String())
	if err := m.commit(root, msg.ItemID); err != nil {
		return flashError(m, fmt.Sprintf("✗ Save failed: %s", err))
	}
	return flash(m, fmt.Sprintf("✓ Moved %s into %s", msg.ItemID, target.ItemID))
}

func (m *Model) applyDelete(id string) tea.Cmd {
	next := selectionAfterDelete(m.root, id)
	root, err := tree.Delete(m.root, id)
	if err != nil {
		return flashError(m, fmt.Sprintf("✗ Cannot delete %s: %s", id, err))
	}
	logger.Info("deleted element", "item", id)
	if err := m.commit(root, next); err != nil {
		return flashError(m, fmt.Sprintf("✗ Save failed: %s", err))
	}
	return flash(m, fmt.Sprintf("✓ Deleted %s", id))
}

// selectionAfterDelete picks the next sibling of id, else the previous one,
// else its parent.
func selectionAfterDelete(root *tree.Node, id string) string {
	path := tree.Path(root, id)
	if len(path) < 2 {
		return ""
	}
	parent := path[len(path)-2]
	for i, c := range parent.Children {
		if c.ID != id {
			continue
		}
		switch {
		case i+1 < len(parent.Children):
			return parent.Children[i+1].ID
		case i > 0:
			return parent.Children[i-1].ID
		}
	}
	return parent.ID
}

// reload re-reads the document after an external change. Content identical
// to our own last write is skipped.
func (m *Model) reload(force bool) tea.Cmd {
	if m.path == "" {
		return nil
	}
	root, data, err := tree.Load(m.path)
	if err != nil {
		logger.Warn("reload failed", "path", m.path, "err", err)
		return flashError(m, fmt.Sprintf("✗ Reload failed: %s", err))
	}
	if !force && bytes.Equal(data, m.lastBytes) {
		return nil
	}
	m.root, m.lastBytes = root, data
	m.sel.Reconcile(root)
	m.tree.Sync(root, m.sel.ID())
	logger.Info("reloaded document", "path", m.path)
	return flash(m, "↻ Reloaded "+m.path)
}

func (m *Model) onWatchError(err error) tea.Cmd {
	logger.Warn("watch error", "path", m.path, "err", err)
	if errors.Is(err, watcher.ErrFileRemoved) {
		return flashError(m, "✗ Document was removed; saving will recreate it")
	}
	return flashError(m, "✗ Watch: "+err.Error())
}
