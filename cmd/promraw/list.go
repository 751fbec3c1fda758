package main

import (
	"flag"
	"fmt"

	"github.com/example/promraw/internal/appstate"
	"github.com/example/promraw/internal/canvas"
)

// parseListing parses a listing command, which takes no flags or arguments.
func parseListing(name string, args []string, h HelpData) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = usageFunc(h)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: h}
	}
	return fs, nil
}

type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	cmd := &toolsCmd{root: r}
	var err error
	cmd.fs, err = parseListing("tools", args, cmd)
	return cmd, err
}

func (c *toolsCmd) Run() error {
	fmt.Fprintln(c.stdout, "available tools (* marks the default tool, the letter is its key):")
	for _, t := range canvas.Tools() {
		marker := " "
		if t == canvas.Brush {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %-8s %s\n", marker, t, appstate.ToolLabel(t))
	}
	return nil
}

func (c *toolsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	cmd := &colorsCmd{root: r}
	var err error
	cmd.fs, err = parseListing("colors", args, cmd)
	return cmd, err
}

func (c *colorsCmd) Run() error {
	palette := appstate.PaletteColors()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the default color):")
	defaultIdx := clampIndex(appstate.DefaultColorIndex(), len(palette))
	for idx, entry := range palette {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		hex := canvas.FormatColor(entry.Color)
		name := entry.Name
		if name == "" {
			name = hex
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	cmd := &widthsCmd{root: r}
	var err error
	cmd.fs, err = parseListing("widths", args, cmd)
	return cmd, err
}

func (c *widthsCmd) Run() error {
	widths := appstate.WidthOptions()
	if len(widths) == 0 {
		fmt.Fprintln(c.stdout, "no widths available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available stroke widths (* marks the default width):")
	defaultIdx := clampIndex(appstate.DefaultWidthIndex(), len(widths))
	for idx, width := range widths {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %3dpx\n", marker, width)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
