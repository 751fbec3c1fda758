// Package prompt supplies the drawing prompts shown above the canvas.
package prompt

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Defaults are used whenever no generator is configured or it fails.
var Defaults = []string{
	"a wizard on a skateboard doing a kickflip over a rainbow",
	"a pirate DJ spinning records on a floating island",
	"a robot having a tea party with dinosaurs in space",
	"a penguin teaching mathematics to a group of vegetables",
	"a breakdancing astronaut on a cloud made of cotton candy",
}

// ErrNoPrompts is returned by a Fallback with an empty list.
var ErrNoPrompts = errors.New("prompt: no prompts available")

// Generator produces a drawing prompt.
type Generator interface {
	Prompt(ctx context.Context) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context) (string, error)

func (f GeneratorFunc) Prompt(ctx context.Context) (string, error) { return f(ctx) }

// Fallback picks uniformly from a fixed list.
type Fallback struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	prompts []string
}

// NewFallback returns a Fallback over prompts, or Defaults when empty. A nil
// rnd is seeded from the clock.
func NewFallback(rnd *rand.Rand, prompts ...string) *Fallback {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(prompts) == 0 {
		prompts = Defaults
	}
	return &Fallback{rnd: rnd, prompts: append([]string(nil), prompts...)}
}

func (f *Fallback) Prompt(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.prompts) == 0 {
		return "", ErrNoPrompts
	}
	f.mu.Lock()
	i := f.rnd.Intn(len(f.prompts))
	f.mu.Unlock()
	return f.prompts[i], nil
}

type withFallback struct {
	primary  Generator
	fallback Generator
	logf     func(string, ...any)
}

// WithFallback asks primary first and falls back when it errors or returns
// a blank prompt. A nil logf logs with the standard logger.
func WithFallback(primary, fallback Generator, logf func(string, ...any)) Generator {
	if logf == nil {
		logf = log.Printf
	}
	return &withFallback{primary: primary, fallback: fallback, logf: logf}
}

func (w *withFallback) Prompt(ctx context.Context) (string, error) {
	if w.primary != nil {
		p, err := w.primary.Prompt(ctx)
		p = strings.TrimSpace(p)
		switch {
		case err == nil && p != "":
			return p, nil
		case err != nil:
			w.logf("failed to generate prompt, using a random prompt instead: %v", err)
		default:
			w.logf("generator returned an empty prompt, using a random prompt instead")
		}
	}
	return w.fallback.Prompt(ctx)
}
