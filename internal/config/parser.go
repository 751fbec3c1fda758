package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || (strings.HasPrefix(line, "#") && !strings.ContainsAny(line, "=:")) {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				current = theme.Default()
				current.Name = name
				cfg.Themes[strings.ToLower(name)] = current
			}
			continue
		}

		// Key = Value or Key: Value
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case current != nil:
			err = theme.SetField(current, key, value)
		case section == "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			setRootField(cfg, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
}

func setCanvasField(c *Canvas, key, value string) error {
	atoi := func(lo int) (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < lo {
			return 0, fmt.Errorf("invalid value %q for key %s", value, key)
		}
		return n, nil
	}
	var err error
	switch strings.ToLower(key) {
	case "width":
		c.Width, err = atoi(1)
	case "height":
		c.Height, err = atoi(1)
	case "stroke_width":
		c.StrokeWidth, err = atoi(1)
	case "history_limit":
		c.HistoryLimit, err = atoi(0)
	case "antialias":
		c.Antialias, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
	case "background":
		_, err = canvas.ParseColor(value)
		c.Background = value
	case "color":
		_, err = canvas.ParseColor(value)
		c.Color = value
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "submit":
		n.Submit = b
	}
	return nil
}
