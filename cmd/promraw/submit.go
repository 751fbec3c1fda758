package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/render"
	"github.com/example/promraw/internal/submission"
)

// now is the submission clock. Replaced in tests.
var now = time.Now

// submitCmd scores a drawing and writes its bundle directory.
type submitCmd struct {
	*root
	fs      *flag.FlagSet
	drawing string
	prompt  string
	score   int
	dir     string
	card    bool
	scorer  submission.Scorer
}

func parseSubmitCmd(args []string, r *root) (*submitCmd, error) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	s := &submitCmd{root: r, fs: fs, scorer: submission.NewMockScorer(nil)}
	fs.Usage = usageFunc(s)
	dir := r.config.SaveDir
	if dir == "" {
		dir = "."
	}
	fs.StringVar(&s.drawing, "drawing", "", "drawing PNG file or data URI (required)")
	fs.StringVar(&s.prompt, "prompt", "", "prompt the drawing answers")
	fs.IntVar(&s.score, "score", -1, "fixed score (0-100); -1 asks the scorer")
	fs.StringVar(&s.dir, "dir", dir, "directory the bundle is written under")
	fs.BoolVar(&s.card, "card", true, "also write the submission card")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || s.drawing == "" {
		return nil, &UsageError{of: s}
	}
	if s.score < -1 || s.score > 100 {
		return nil, fmt.Errorf("score %d out of range 0-100", s.score)
	}
	return s, nil
}

func (s *submitCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *submitCmd) Run() error {
	enc, err := loadDrawing(s.drawing)
	if err != nil {
		return err
	}
	score := s.score
	if score < 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if score, err = s.scorer.Score(ctx, s.prompt, enc); err != nil {
			return err
		}
	}
	bundle, err := submission.New(s.prompt, score, enc, now())
	if err != nil {
		return err
	}
	drawing, err := enc.Decode()
	if err != nil {
		return fmt.Errorf("%s: %w", s.drawing, err)
	}

	var cardEnc canvas.EncodedImage
	if s.card {
		card, err := render.Card(render.CardInput{Drawing: drawing, Prompt: s.prompt, Score: score, Theme: s.activeTheme, Shadow: true})
		if err != nil {
			return fmt.Errorf("render card: %w", err)
		}
		if cardEnc, err = canvas.Encode(card); err != nil {
			return err
		}
	}
	out, err := bundle.WriteDir(s.dir, cardEnc)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.stdout, bundle.Summary())
	fmt.Fprintf(s.stderr, "wrote %s\n", out)
	if s.notifier != nil {
		s.notifier.Submit(bundle.Summary(), drawing)
	}
	return nil
}
