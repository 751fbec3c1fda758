package appstate

import (
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/promraw/internal/canvas"
)

// Action names something the user can trigger from a key or button.
type Action string

const (
	ActionNone       Action = ""
	ActionUndo       Action = "undo"
	ActionRedo       Action = "redo"
	ActionClear      Action = "clear"
	ActionSave       Action = "save"
	ActionCopy       Action = "copy"
	ActionPrompt     Action = "prompt"
	ActionSubmit     Action = "submit"
	ActionQuit       Action = "quit"
	ActionTextDone   Action = "textdone"
	ActionTextCancel Action = "textcancel"
	ActionTextDelete Action = "textdelete"

	toolPrefix = "tool:"
)

// ToolAction returns the action that selects t.
func ToolAction(t canvas.Tool) Action { return Action(toolPrefix + t.String()) }

// Tool returns the tool an action selects.
func (a Action) Tool() (canvas.Tool, bool) {
	name, ok := strings.CutPrefix(string(a), toolPrefix)
	if !ok {
		return canvas.Brush, false
	}
	t, err := canvas.ParseTool(name)
	return t, err == nil
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

const modMask = key.ModControl | key.ModShift

var drawingKeys = map[Action]KeyboardShortcuts{
	ToolAction(canvas.Brush):  shortcutList{{Rune: 'b'}},
	ToolAction(canvas.Eraser): shortcutList{{Rune: 'e'}},
	ToolAction(canvas.Circle): shortcutList{{Rune: 'o'}},
	ToolAction(canvas.Square): shortcutList{{Rune: 's'}},
	ToolAction(canvas.Line):   shortcutList{{Rune: 'l'}},
	ToolAction(canvas.Text):   shortcutList{{Rune: 't'}},
	ActionUndo:                shortcutList{{Rune: 'z', Modifiers: key.ModControl}},
	ActionRedo: shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	},
	ActionSave:   shortcutList{{Rune: 's', Modifiers: key.ModControl}},
	ActionCopy:   shortcutList{{Rune: 'c', Modifiers: key.ModControl}},
	ActionPrompt: shortcutList{{Rune: 'n', Modifiers: key.ModControl}},
	ActionSubmit: shortcutList{{Code: key.CodeReturnEnter, Modifiers: key.ModControl}},
	ActionQuit:   shortcutList{{Rune: 'q'}},
}

var textKeys = map[Action]KeyboardShortcuts{
	ActionTextDone:   shortcutList{{Code: key.CodeReturnEnter}},
	ActionTextCancel: shortcutList{{Code: key.CodeEscape}},
	ActionTextDelete: shortcutList{{Code: key.CodeDeleteBackspace}},
}

// Keymap resolves key presses to actions.
type Keymap struct {
	drawing map[KeyShortcut]Action
	text    map[KeyShortcut]Action
}

// NewKeymap builds the default bindings.
func NewKeymap() *Keymap {
	return &Keymap{drawing: index(drawingKeys), text: index(textKeys)}
}

func index(bindings map[Action]KeyboardShortcuts) map[KeyShortcut]Action {
	out := make(map[KeyShortcut]Action)
	for action, keys := range bindings {
		for _, sc := range keys.KeyboardShortcuts() {
			out[sc] = action
		}
	}
	return out
}

// keyRune returns the lower-case letter for letter keys so control
// combinations match regardless of what rune the driver reports.
func keyRune(e key.Event) rune {
	if e.Code >= key.CodeA && e.Code <= key.CodeZ {
		return 'a' + rune(e.Code-key.CodeA)
	}
	return unicode.ToLower(e.Rune)
}

// Resolve returns the action for a key press. While text is being captured
// only the text editing keys resolve; printable runes are returned as typed
// text instead.
func (k *Keymap) Resolve(e key.Event, capturing bool) (Action, string) {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return ActionNone, ""
	}
	mods := e.Modifiers & modMask
	if capturing {
		if a, ok := k.text[KeyShortcut{Code: e.Code}]; ok && mods&key.ModControl == 0 {
			return a, ""
		}
		if e.Modifiers&key.ModControl == 0 && e.Rune > 0 && unicode.IsPrint(e.Rune) {
			return ActionNone, string(e.Rune)
		}
		return ActionNone, ""
	}
	r := keyRune(e)
	for _, sc := range []KeyShortcut{
		{Rune: r, Modifiers: mods},
		{Code: e.Code, Modifiers: mods},
		{Rune: r, Modifiers: mods &^ key.ModShift},
	} {
		if sc.Rune == 0 && sc.Code == key.CodeUnknown {
			continue
		}
		if a, ok := k.drawing[sc]; ok {
			return a, ""
		}
	}
	return ActionNone, ""
}

type shortcutEntry struct {
	label  string
	action Action
}

var drawingShortcuts = []shortcutEntry{
	{"^Z:undo", ActionUndo},
	{"^Y:redo", ActionRedo},
	{"clear", ActionClear},
	{"^S:save", ActionSave},
	{"^C:copy", ActionCopy},
	{"^N:prompt", ActionPrompt},
	{"^Enter:submit", ActionSubmit},
	{"Q:quit", ActionQuit},
}

var textShortcuts = []shortcutEntry{
	{"Enter:place", ActionTextDone},
	{"Esc:cancel", ActionTextCancel},
}

func shortcutsFor(capturing bool) []shortcutEntry {
	if capturing {
		return textShortcuts
	}
	return drawingShortcuts
}

func shortcutLabels(entries []shortcutEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.label
	}
	return out
}
