package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/example/promraw/internal/canvas"
	"github.com/example/promraw/internal/export"
	"github.com/example/promraw/internal/render"
	"github.com/example/promraw/internal/submission"
)

// cardCmd renders a submission card for an existing drawing.
type cardCmd struct {
	*root
	fs       *flag.FlagSet
	drawing  string
	enhanced string
	prompt   string
	score    int
	output   string
	shadow   bool
}

func parseCardCmd(args []string, r *root) (*cardCmd, error) {
	fs := flag.NewFlagSet("card", flag.ExitOnError)
	c := &cardCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.drawing, "drawing", "", "drawing PNG file or data URI (required)")
	fs.StringVar(&c.enhanced, "enhanced", "", "enhanced PNG file or data URI shown beside the drawing")
	fs.StringVar(&c.prompt, "prompt", "", "prompt printed on the card")
	fs.IntVar(&c.score, "score", 0, "score printed on the card (0-100)")
	fs.StringVar(&c.output, "output", submission.CardFile, "card file to write (.png or .pdf)")
	fs.BoolVar(&c.shadow, "shadow", false, "drop a soft shadow under the card")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || c.drawing == "" {
		return nil, &UsageError{of: c}
	}
	if c.score < 0 || c.score > 100 {
		return nil, fmt.Errorf("score %d out of range 0-100", c.score)
	}
	if _, err := export.FormatFor(c.output); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *cardCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func decodeDrawing(path string) (image.Image, error) {
	enc, err := loadDrawing(path)
	if err != nil {
		return nil, err
	}
	img, err := enc.Decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func (c *cardCmd) Run() error {
	drawing, err := decodeDrawing(c.drawing)
	if err != nil {
		return err
	}
	var enhanced image.Image
	if c.enhanced != "" {
		if enhanced, err = decodeDrawing(c.enhanced); err != nil {
			return err
		}
	}
	card, err := render.Card(render.CardInput{
		Drawing:  drawing,
		Enhanced: enhanced,
		Prompt:   c.prompt,
		Score:    c.score,
		Theme:    c.activeTheme,
		Shadow:   c.shadow,
	})
	if err != nil {
		return fmt.Errorf("render card: %w", err)
	}
	enc, err := canvas.Encode(card)
	if err != nil {
		return err
	}
	if err := export.WriteFile(c.output, enc, render.CardTitle); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "saved %s (%dx%d)\n", c.output, enc.Width, enc.Height)
	c.notifySave(c.output)
	return nil
}
