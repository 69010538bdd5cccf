package panes

import (
	"strings"

	"github.com/ja-he/maskedinput/internal/potatolog"
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/ui"
)

// StatusPane is a status bar that displays the latest log message.
type StatusPane struct {
	ui.LeafPane

	logReader potatolog.LogReader
}

// Draw draws this pane.
func (p *StatusPane) Draw() {
	x, y, w, h := p.Dimensions()

	style := p.Stylesheet.Status
	message := ""
	if entry, ok := p.logReader.Last(); ok {
		var level string
		level, message = potatolog.Summarize(entry)
		if level == "error" || level == "warn" {
			style = p.Stylesheet.StatusError
			message = strings.ToUpper(level) + ": " + message
		}
	}

	p.Renderer.DrawBox(x, y, w, h, style)
	p.Renderer.DrawText(x+1, y, w-2, h, style, message)
}

// NewStatusPane constructs and returns a new StatusPane.
func NewStatusPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	logReader potatolog.LogReader,
) *StatusPane {
	return &StatusPane{
		LeafPane: ui.LeafPane{
			ID:         ui.GeneratePaneID(),
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		logReader: logReader,
	}
}
