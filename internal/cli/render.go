package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/style"
	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Renderer prints a layout
type Renderer interface {
	Render(layout *types.Layout) error
}

func rendererFor(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "text", "":
		return &textRenderer{w: w, styler: style.Styler{Enabled: isTerminal(w) && !termenv.EnvNoColor()}}, nil
	case "json":
		return &jsonRenderer{w: w}, nil
	case "yaml":
		return &yamlRenderer{w: w}, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q (want text, json or yaml)", format).
		WithDetail("format", format)
}

// isTerminal only styles output going to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type textRenderer struct {
	w      io.Writer
	styler style.Styler
}

func (r *textRenderer) Render(layout *types.Layout) error {
	for _, e := range layout.Entries {
		line := e.Path
		switch {
		case e.IsDir:
			line = r.styler.Render(style.DirStyle, e.Path+"/")
		case e.Moved:
			line = r.styler.Render(style.MovedStyle, e.Path)
		}
		if e.Moved && e.Origin != "" && e.Origin != e.Path {
			line += " " + r.styler.Render(style.OriginStyle, MsgMovedMarker+" "+e.Origin)
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonRenderer struct {
	w io.Writer
}

func (r *jsonRenderer) Render(layout *types.Layout) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(layout)
}

type yamlRenderer struct {
	w io.Writer
}

func (r *yamlRenderer) Render(layout *types.Layout) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(layout); err != nil {
		return err
	}
	return enc.Close()
}
