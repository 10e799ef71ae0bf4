package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 call, got %d", n)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	if called.Load() {
		t.Error("callback ran after Cancel")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	if d := NewDebouncer(0); d.Duration() != DefaultDebounceDuration {
		t.Errorf("Duration() = %v, want %v", d.Duration(), DefaultDebounceDuration)
	}
}

func waitChanged(t *testing.T, w *Watcher, within time.Duration) {
	t.Helper()
	select {
	case <-w.Changed():
	case <-time.After(within):
		t.Fatal("expected a change notification")
	}
}

func writeDoc(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, "id: body\n")

	w, err := New(path, WithDebounce(30*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	writeDoc(t, path, "id: body\nkind: body\n")
	waitChanged(t, w, 2*time.Second)
}

func TestWatcher_DetectsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.yaml")
	writeDoc(t, path, "id: body\n")

	w, err := New(path, WithDebounce(30*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	tmp := filepath.Join(dir, ".page.yaml.tmp")
	writeDoc(t, tmp, "id: other\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	waitChanged(t, w, 2*time.Second)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.yaml")
	writeDoc(t, path, "id: body\n")

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	writeDoc(t, filepath.Join(dir, "other.yaml"), "x")

	select {
	case <-w.Changed():
		t.Error("unexpected notification for a sibling file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Polling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.json")
	writeDoc(t, path, `{"id":"body"}`)

	w, err := New(path,
		WithPolling(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounce(10*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode")
	}
	time.Sleep(50 * time.Millisecond)
	writeDoc(t, path, `{"id":"body","kind":"body"}`)
	waitChanged(t, w, 2*time.Second)
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, "id: body\n")

	errCh := make(chan error, 4)
	w, err := New(path,
		WithPolling(true),
		WithPollInterval(20*time.Millisecond),
		WithOnError(func(err error) { errCh <- err }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(40 * time.Millisecond)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrFileRemoved) {
			t.Errorf("got %v, want ErrFileRemoved", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("removal was not reported")
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, "id: body\n")

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() = %v, want ErrAlreadyStarted", err)
	}
	if !w.IsStarted() {
		t.Error("IsStarted() = false")
	}
	w.Stop()
	if w.IsStarted() {
		t.Error("IsStarted() = true after Stop")
	}
	w.Stop()
}

func TestWatcher_PathIsAbsolute(t *testing.T) {
	w, err := New("page.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q, want absolute", w.Path())
	}
}
