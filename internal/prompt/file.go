package prompt

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// File is a Generator that picks a line from a text file, reread on every
// call so edits show up in a running window. Blank lines and lines starting
// with # are skipped.
type File struct {
	Path string
	Rand *rand.Rand
}

func (f File) Prompt(ctx context.Context) (string, error) {
	lines, err := ReadLines(f.Path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%s: %w", f.Path, ErrNoPrompts)
	}
	return NewFallback(f.Rand, lines...).Prompt(ctx)
}

// ReadLines returns the prompts listed in path.
func ReadLines(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}
	defer fh.Close()
	var out []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}
	return out, nil
}
