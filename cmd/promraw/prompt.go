package main

import (
	"context"
	"flag"
	"fmt"
	"time"
)

// promptCmd prints drawing prompts.
type promptCmd struct {
	*root
	fs    *flag.FlagSet
	count int
}

func parsePromptCmd(args []string, r *root) (*promptCmd, error) {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	p := &promptCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.IntVar(&p.count, "n", 1, "number of prompts to print")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || p.count < 1 {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *promptCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func (p *promptCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for i := 0; i < p.count; i++ {
		text, err := p.prompts.Prompt(ctx)
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		fmt.Fprintln(p.stdout, text)
	}
	return nil
}
