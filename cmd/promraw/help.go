package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"

	"github.com/example/promraw/internal/script"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
		"commands": func() []commandInfo {
			var out []commandInfo
			for _, name := range script.CommandNames() {
				out = append(out, commandInfo{name, script.Usage(name)})
			}
			return out
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type commandInfo struct {
	Name  string
	Usage string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc renders the help template for h as a flag.FlagSet Usage.
func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: h}).Error())
	}
}

func (r *root) Template() string           { return "root.txt" }
func (d *drawCmd) Template() string        { return "draw.txt" }
func (c *replayCmd) Template() string      { return "replay.txt" }
func (i *interactiveCmd) Template() string { return "interactive.txt" }
func (p *promptCmd) Template() string      { return "prompt.txt" }
func (c *cardCmd) Template() string        { return "card.txt" }
func (s *submitCmd) Template() string      { return "submit.txt" }
func (c *toolsCmd) Template() string       { return "tools.txt" }
func (c *colorsCmd) Template() string      { return "colors.txt" }
func (c *widthsCmd) Template() string      { return "widths.txt" }
func (c *configCmd) Template() string      { return "config.txt" }
func (v *versionCmd) Template() string     { return "version.txt" }
