package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/export"
	"github.com/example/promraw/internal/script"
)

// interactiveCmd drives an engine from line commands on stdin.
type interactiveCmd struct {
	*root
	fs         *flag.FlagSet
	canvas     canvasFlags
	scriptPath string
	execs      commandList
	engine     *canvas.Engine
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.canvas.register(fs, r.config.Canvas)
	fs.StringVar(&c.scriptPath, "script", "", "replay a gesture script before reading commands")
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCmd) setup() error {
	var s *script.Script
	if c.scriptPath != "" {
		var err error
		if s, err = loadScript(c.scriptPath); err != nil {
			return err
		}
	}
	e, err := c.canvas.engine(s)
	if err != nil {
		return err
	}
	if s != nil {
		if err := s.Apply(e); err != nil {
			return fmt.Errorf("%s: %w", c.scriptPath, err)
		}
	}
	c.engine = e
	return nil
}

func (c *interactiveCmd) Run() error {
	if err := c.setup(); err != nil {
		return err
	}
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command and reports whether the session should end.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		c.printHelp()
		return false, nil
	case "export", "save":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: export <path>")
		}
		return false, c.export(fields[1])
	case "datauri":
		img, err := c.engine.ExportImage()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(c.stdout, img.DataURI())
		return false, nil
	case "copy":
		img, err := c.engine.ExportImage()
		if err != nil {
			return false, err
		}
		if err := copyDrawingFn(img, false); err != nil {
			return false, fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(c.stdout, "copied drawing to clipboard")
		c.notifyCopy("drawing")
		return false, nil
	}

	cmd, err := script.ParseCommand(line)
	if err != nil {
		if errors.Is(err, script.ErrUnknownCommand) {
			return false, fmt.Errorf("%w (type 'help' for a list)", err)
		}
		return false, err
	}
	status, err := cmd.Apply(c.engine)
	if err != nil {
		return false, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	fmt.Fprintln(c.stdout, status)
	return false, nil
}

func (c *interactiveCmd) export(path string) error {
	img, err := c.engine.ExportImage()
	if err != nil {
		return err
	}
	if err := export.WriteFile(path, img, ""); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "saved %s\n", path)
	c.notifySave(path)
	return nil
}

func (c *interactiveCmd) printHelp() {
	for _, name := range script.CommandNames() {
		fmt.Fprintf(c.stdout, "  %s\n", script.Usage(name))
	}
	for _, usage := range []string{"export <path>", "datauri", "copy", "help", "exit"} {
		fmt.Fprintf(c.stdout, "  %s\n", usage)
	}
}
