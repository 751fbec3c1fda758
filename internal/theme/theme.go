package theme

import (
	"image/color"
)

// Theme defines the colors of the drawing window and the submission card.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the canvas
	Foreground color.RGBA // prompt and status text

	// Toolbar
	ToolbarBackground  color.RGBA
	ButtonBackground   color.RGBA
	ButtonHover        color.RGBA
	ButtonActive       color.RGBA // selected tool or width
	ButtonText         color.RGBA
	ButtonTextActive   color.RGBA
	ButtonBorder       color.RGBA
	SwatchBorder       color.RGBA
	SwatchSelected     color.RGBA
	ShortcutBackground color.RGBA
	ShortcutText       color.RGBA
	PromptBackground   color.RGBA
	TextCaret          color.RGBA

	// Card
	CardBorderStart color.RGBA
	CardBorderMid   color.RGBA
	CardBorderEnd   color.RGBA
	CardBackground  color.RGBA
	CardPanel       color.RGBA
	CardText        color.RGBA
	CardMuted       color.RGBA
	CardAccent      color.RGBA
	CardLabel       color.RGBA // label chip behind "Original" and "AI Enhanced"
}

// Default returns the built-in dark theme used when nothing else loads.
func Default() *Theme {
	return &Theme{
		Name:               "Dark",
		Background:         color.RGBA{0x31, 0x2e, 0x81, 0xff},
		Foreground:         color.RGBA{0xff, 0xff, 0xff, 0xff},
		ToolbarBackground:  color.RGBA{0x1e, 0x1b, 0x4b, 0xff},
		ButtonBackground:   color.RGBA{0x3b, 0x37, 0x6b, 0xff},
		ButtonHover:        color.RGBA{0x58, 0x4d, 0x9c, 0xff},
		ButtonActive:       color.RGBA{0xec, 0x48, 0x99, 0xff},
		ButtonText:         color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
		ButtonTextActive:   color.RGBA{0xff, 0xff, 0xff, 0xff},
		ButtonBorder:       color.RGBA{0x00, 0x00, 0x00, 0x80},
		SwatchBorder:       color.RGBA{0xff, 0xff, 0xff, 0x33},
		SwatchSelected:     color.RGBA{0xff, 0xff, 0xff, 0xff},
		ShortcutBackground: color.RGBA{0x00, 0x00, 0x00, 0x66},
		ShortcutText:       color.RGBA{0xd1, 0xd5, 0xdb, 0xff},
		PromptBackground:   color.RGBA{0x1e, 0x1b, 0x4b, 0xff},
		TextCaret:          color.RGBA{0xfa, 0xcc, 0x15, 0xff},
		CardBorderStart:    color.RGBA{0xfa, 0xcc, 0x15, 0xff},
		CardBorderMid:      color.RGBA{0xa8, 0x55, 0xf7, 0xff},
		CardBorderEnd:      color.RGBA{0xec, 0x48, 0x99, 0xff},
		CardBackground:     color.RGBA{0x11, 0x18, 0x27, 0xff},
		CardPanel:          color.RGBA{0x1d, 0x23, 0x32, 0xff},
		CardText:           color.RGBA{0xff, 0xff, 0xff, 0xff},
		CardMuted:          color.RGBA{0xcf, 0xd1, 0xd4, 0xff},
		CardAccent:         color.RGBA{0xfa, 0xcc, 0x15, 0xff},
		CardLabel:          color.RGBA{0x00, 0x00, 0x00, 0x99},
	}
}
