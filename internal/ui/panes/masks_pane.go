package panes

import (
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/ui"
)

// MasksPane lists the available masks, marking the active one.
type MasksPane struct {
	ui.LeafPane

	names  func() []string
	active func() int
}

// Draw draws the list of masks.
func (p *MasksPane) Draw() {
	if !p.IsVisible() {
		return
	}

	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	active := p.active()
	for i, name := range p.names() {
		if i >= h {
			return
		}
		if i == active {
			p.Renderer.DrawText(x+1, y+i, w-1, 1, p.Stylesheet.Label.Bolded(), "> "+name)
		} else {
			p.Renderer.DrawText(x+1, y+i, w-1, 1, p.Stylesheet.Normal, "  "+name)
		}
	}
}

// NewMasksPane constructs and returns a new MasksPane.
func NewMasksPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	names func() []string,
	active func() int,
) *MasksPane {
	return &MasksPane{
		LeafPane: ui.LeafPane{
			ID:         ui.GeneratePaneID(),
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		names:  names,
		active: active,
	}
}
