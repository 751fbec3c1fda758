package main

import (
	"flag"
	"fmt"

	"github.com/example/promraw/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		fmt.Fprint(c.stdout, c.config.String())
		return nil
	case "path":
		return c.runPath()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

func (c *configCmd) runPath() error {
	if c.configPath != "" {
		fmt.Fprintln(c.stdout, c.configPath)
		return nil
	}
	path := config.NewLoader(version, configPathOverride).SavePath()
	if path == "" {
		return fmt.Errorf("no config location available")
	}
	fmt.Fprintf(c.stdout, "%s (not created yet)\n", path)
	return nil
}

func (c *configCmd) runSave() error {
	path := c.configPath
	if path == "" {
		path = config.NewLoader(version, configPathOverride).SavePath()
	}
	if path == "" {
		return fmt.Errorf("no config location available")
	}
	if err := config.Save(path, c.config); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
