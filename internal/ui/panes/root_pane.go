package panes

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/ui"
)

// RootPane acts as the root UI pane, wrapping all subpanes, managing the
// render cycle, invoking the subpanes' rendering, etc.
type RootPane struct {
	ID ui.PaneID

	renderer       ui.RenderOrchestratorControl
	cursorWrangler *ui.CursorWrangler

	dimensions func() (x, y, w, h int)

	subpanesMtx sync.Mutex
	subpanes    []ui.Pane

	focussedPane ui.Pane

	log zerolog.Logger
}

// Dimensions gives the dimensions of the root pane.
func (p *RootPane) Dimensions() (x, y, w, h int) { return p.dimensions() }

// IsVisible returns true; the root pane is always visible.
func (p *RootPane) IsVisible() bool { return true }

// Identify returns the pane's ID.
func (p *RootPane) Identify() ui.PaneID { return p.ID }

// Draw draws all visible subpanes and then the text cursor, as requested
// during the subpanes' draws.
func (p *RootPane) Draw() {
	p.subpanesMtx.Lock()
	defer p.subpanesMtx.Unlock()

	p.renderer.Clear()

	for _, pane := range p.subpanes {
		if pane.IsVisible() {
			p.log.Trace().Msgf("drawing %d...", pane.Identify())
			pane.Draw()
		} else {
			pane.Undraw()
		}
	}

	p.cursorWrangler.Enact()

	p.renderer.Show()
}

// Undraw undraws all subpanes.
func (p *RootPane) Undraw() {
	p.subpanesMtx.Lock()
	defer p.subpanesMtx.Unlock()

	p.renderer.Clear()
	for _, pane := range p.subpanes {
		pane.Undraw()
	}
	p.cursorWrangler.Enact()
	p.renderer.Show()
}

// CapturesInput returns whether the focussed pane captures input.
func (p *RootPane) CapturesInput() bool {
	return p.focussedPane.CapturesInput()
}

// ProcessInput defers to the focussed subpane.
func (p *RootPane) ProcessInput(key input.Key) bool {
	applied := p.focussedPane.ProcessInput(key)
	if !applied {
		p.log.Trace().Str("key", key.ToDebugString()).Msg("key not applied")
	}
	return applied
}

// GetHelp returns the input help map of the focussed subpane.
func (p *RootPane) GetHelp() input.Help {
	return p.focussedPane.GetHelp()
}

// NewRootPane constructs and returns a new RootPane drawing the given subpanes
// in order and passing all input to the focussed one.
func NewRootPane(
	renderer ui.RenderOrchestratorControl,
	cursorWrangler *ui.CursorWrangler,
	dimensions func() (x, y, w, h int),
	focussedPane ui.Pane,
	subpanes ...ui.Pane,
) *RootPane {
	rootPane := &RootPane{
		ID:             ui.GeneratePaneID(),
		renderer:       renderer,
		cursorWrangler: cursorWrangler,
		dimensions:     dimensions,
		subpanes:       subpanes,
		focussedPane:   focussedPane,
		log:            log.With().Str("component", "root-pane").Logger(),
	}
	rootPane.log.Trace().Msgf("created root pane with id '%d'", rootPane.Identify())
	return rootPane
}
