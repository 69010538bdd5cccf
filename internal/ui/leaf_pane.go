package ui

import (
	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/styling"
)

// LeafPane is a simple set of data and implementation of a "leaf pane", i.E. a
// pane that does not have subpanes but instead makes actual draw calls.
//
// Note that constructing this value that you need to assign the ID.
type LeafPane struct {
	ID             PaneID
	InputProcessor input.SimpleInputProcessor
	Visible        func() bool

	Renderer   ConstrainedRenderer
	Dims       func() (x, y, w, h int)
	Stylesheet styling.Stylesheet
}

// Identify returns the panes ID.
func (p *LeafPane) Identify() PaneID {
	if p.ID == NonePaneID {
		// NOTE: generally, the none-value is OK; put this here to catch errors early
		panic("pane has not been assigned an ID")
	}
	return p.ID
}

// IsVisible indicates whether the pane is visible.
func (p *LeafPane) IsVisible() bool { return p.Visible == nil || p.Visible() }

// Dimensions returns the dimensions of the pane.
func (p *LeafPane) Dimensions() (x, y, w, h int) {
	return p.Dims()
}

// Undraw does nothing. Override this, if necessary.
func (p *LeafPane) Undraw() {}

// CapturesInput returns whether this processor "captures" input, i.E. whether
// it ought to take priority in processing over other processors.
func (p *LeafPane) CapturesInput() bool {
	return p.InputProcessor != nil && p.InputProcessor.CapturesInput()
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. the processor performed
// an action based on the input.
// Defers to the panes' input processor.
func (p *LeafPane) ProcessInput(key input.Key) bool {
	return p.InputProcessor != nil && p.InputProcessor.ProcessInput(key)
}

// GetHelp returns the input help map for this pane.
func (p *LeafPane) GetHelp() input.Help {
	if p.InputProcessor == nil {
		return input.Help{}
	}
	return p.InputProcessor.GetHelp()
}
