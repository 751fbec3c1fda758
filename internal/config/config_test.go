package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/promraw/internal/canvas"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/drawings

[canvas]
width = 640
height = 480
background = "#202020"
color = red
stroke_width = 6
antialias = true
history_limit = 25

[notify]
save = false
copy = true
submit = true

[theme.my_custom_theme]
Background = #111111
cardaccent: #FF00FF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "my_custom_theme" || cfg.SaveDir != "/tmp/drawings" {
		t.Errorf("root section = %q %q", cfg.Theme, cfg.SaveDir)
	}
	want := Canvas{Width: 640, Height: 480, Background: "#202020", Color: "red", StrokeWidth: 6, Antialias: true, HistoryLimit: 25}
	if cfg.Canvas != want {
		t.Errorf("canvas = %+v, want %+v", cfg.Canvas, want)
	}
	if cfg.Notify != (Notify{Copy: true, Submit: true}) {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.CardAccent.G != 0 || th.CardAccent.B != 0xff {
		t.Errorf("theme colors: %+v %+v", th.Background, th.CardAccent)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"[canvas]\nwidth = 0\n":           "[canvas]",
		"[canvas]\nbackground = nope\n":   "invalid color",
		"[notify]\nsave = maybe\n":        "invalid boolean",
		"[theme.x]\nBackground = #12345\n": "[theme.x]",
	}
	for in, want := range cases {
		_, err := Parse(strings.NewReader(in))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("Parse(%q) error = %v, want %q", in, err, want)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/drawings

[canvas]
width = 300
height = 200
antialias = true

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Canvas != cfg2.Canvas {
		t.Errorf("Canvas mismatch: %+v vs %+v", cfg.Canvas, cfg2.Canvas)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestEngineOptions(t *testing.T) {
	opts, err := Canvas{Background: "#000000", Color: "#00FF00", StrokeWidth: 5, HistoryLimit: 1}.EngineOptions()
	if err != nil {
		t.Fatal(err)
	}
	e := canvas.New(opts...)
	e.Initialize(4, 4)
	if got := canvas.FormatColor(e.Background()); got != "#000000" {
		t.Errorf("background = %s", got)
	}
	if got := e.Style(); got.Width != 5 || canvas.FormatColor(got.Color) != "#00FF00" {
		t.Errorf("style = %+v", got)
	}
	if _, err := (Canvas{Color: "bogus"}).EngineOptions(); err == nil {
		t.Error("expected color error")
	}
}

func TestLoaderPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	l := NewLoader("v1", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("expected no config, got %q", p)
	}
	cfg, err := l.Load()
	if err != nil || cfg.Canvas.Width != 800 {
		t.Fatalf("defaults: %+v %v", cfg, err)
	}

	cfg.Theme = "light"
	if err := Save(l.SavePath(), cfg); err != nil {
		t.Fatal(err)
	}
	if got := l.GetConfigPath(); got != l.SavePath() {
		t.Fatalf("config path = %q, want %q", got, l.SavePath())
	}
	back, err := l.Load()
	if err != nil || back.Theme != "light" {
		t.Fatalf("reload: %+v %v", back, err)
	}

	override := filepath.Join(dir, "other.rc")
	if err := os.WriteFile(override, []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewLoader("v1", override).GetConfigPath(); got != override {
		t.Fatalf("override ignored: %q", got)
	}
}

func TestWatchReloads(t *testing.T) {
	old := reloadDelay
	reloadDelay = 10 * time.Millisecond
	t.Cleanup(func() { reloadDelay = old })

	path := filepath.Join(t.TempDir(), "config.rc")
	if err := os.WriteFile(path, []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 4)
	if err := Watch(ctx, path, func(c *Config, err error) {
		if err == nil {
			got <- c
		}
	}); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := os.WriteFile(path, []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-got:
		if c.Theme != "light" {
			t.Fatalf("theme = %q", c.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}
