package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader with the standard promraw paths.
func NewLoader() *Loader {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return &Loader{
		ConfigDir: filepath.Join(dir, "promraw", "themes"),
		SystemDir: "/usr/share/promraw/themes",
	}
}

func fileName(name string) string {
	if strings.HasSuffix(name, ".theme") {
		return name
	}
	return name + ".theme"
}

// Load resolves a theme by name or path. Lookup order is an existing file
// path, the embedded themes, ConfigDir and then SystemDir. An empty name
// returns Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	filename := fileName(strings.ToLower(name))
	sources := []fs.FS{mustSub(EmbeddedThemes, "defaults")}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			sources = append(sources, os.DirFS(dir))
		}
	}
	for _, src := range sources {
		t, err := parseFile(src, filename)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return t, err
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Names lists the embedded and installed themes without extension.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	add := func(fsys fs.FS) {
		matches, _ := fs.Glob(fsys, "*.theme")
		for _, m := range matches {
			seen[strings.TrimSuffix(m, ".theme")] = true
		}
	}
	add(mustSub(EmbeddedThemes, "defaults"))
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			add(os.DirFS(dir))
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
