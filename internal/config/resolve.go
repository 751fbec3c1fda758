package config

import (
	"os"
	"strings"

	"github.com/example/promraw/internal/notify"
	"github.com/example/promraw/internal/theme"
)

// ThemeEnv overrides the configured theme name.
const ThemeEnv = "PROMRAW_THEME"

// ThemeName returns the theme to use: override, then PROMRAW_THEME, then
// the configured name.
func (c *Config) ThemeName(override string) string {
	if override != "" {
		return override
	}
	if env := strings.TrimSpace(os.Getenv(ThemeEnv)); env != "" {
		return env
	}
	return c.Theme
}

// ResolveTheme returns the named theme. Themes defined in the config file
// win over installed ones; unknown names fall back to the default theme
// along with the lookup error.
func (c *Config) ResolveTheme(override string) (*theme.Theme, error) {
	name := c.ThemeName(override)
	if name == "" {
		return theme.Default(), nil
	}
	if t, ok := c.Themes[strings.ToLower(name)]; ok && t != nil {
		return t, nil
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		return theme.Default(), err
	}
	return t, nil
}

// Configure enables the notifier events selected in the [notify] section.
func (n Notify) Configure(nt *notify.Notifier) {
	nt.Enable(notify.EventSave, n.Save)
	nt.Enable(notify.EventCopy, n.Copy)
	nt.Enable(notify.EventSubmit, n.Submit)
}
