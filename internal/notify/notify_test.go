package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/promraw/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		existed := false
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			existed = err == nil
		}
		got = append(got, sent{title, body, opts, existed})
		return nil
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("x.png")
	n.Copy("")
	n.Submit("93", nil)
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %+v", *got)
	}
}

func TestSaveCopySubmit(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	for _, e := range Events() {
		n.Enable(e, true)
	}

	path := filepath.Join(t.TempDir(), "drawing.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Save(path)
	n.Copy("")
	n.Submit("Legendary 93/100", image.NewRGBA(image.Rect(0, 0, 2, 2)))

	if len(*got) != 3 {
		t.Fatalf("got %d notifications", len(*got))
	}
	save, copied, submit := (*got)[0], (*got)[1], (*got)[2]
	if save.body != "Saved "+path || save.opts.IconPath != path {
		t.Errorf("save = %+v", save)
	}
	if copied.body != "Copied drawing to clipboard" || copied.title != "Promraw" {
		t.Errorf("copy = %+v", copied)
	}
	if submit.body != "Submitted: Legendary 93/100" || !submit.iconExisted {
		t.Errorf("submit = %+v", submit)
	}
	if _, err := os.Stat(submit.opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("preview not cleaned up: %v", err)
	}
	if submit.opts.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", submit.opts.Timeout)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PROMRAW_NOTIFY_TITLE", "Art")
	t.Setenv("PROMRAW_NOTIFY_COPY_TEXT", "On the clipboard")
	t.Setenv("PROMRAW_NOTIFY_TIMEOUT", "2s")
	prefs := LoadPreferences()
	if prefs.Title != "Art" || prefs.Timeout != 2*time.Second {
		t.Fatalf("prefs = %+v", prefs)
	}

	got := capture(t)
	n := New(prefs)
	n.Enable(EventCopy, true)
	n.Copy("ignored")
	if len(*got) != 1 || (*got)[0].body != "On the clipboard" || (*got)[0].opts.AppName != "Art" {
		t.Fatalf("got %+v", *got)
	}
}
