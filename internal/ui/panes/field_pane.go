package panes

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/ui"
)

// FieldView is the view of a masked input field needed to draw it.
type FieldView interface {
	GetContent() string
	GetCommitted() string
	GetHint() string
	GetCursorPos() int
	RawText() string
}

// FieldPane draws a masked input field: a label, the committed text followed
// by the hint, and the text cursor.
type FieldPane struct {
	ui.LeafPane

	view  FieldView
	label func() string

	cursorWrangler *ui.CursorWrangler
}

// Draw draws the field.
func (p *FieldPane) Draw() {
	if !p.IsVisible() {
		return
	}

	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	p.Renderer.DrawText(x+1, y, w-2, 1, p.Stylesheet.Label, p.label())

	fieldX, fieldY, fieldW := x+1, y+2, w-2
	p.Renderer.DrawBox(fieldX, fieldY, fieldW, 1, p.Stylesheet.Editor)

	committed := p.view.GetCommitted()
	committedWidth := runewidth.StringWidth(committed)
	p.Renderer.DrawText(fieldX, fieldY, fieldW, 1, p.Stylesheet.Editor, committed)
	p.Renderer.DrawText(fieldX+committedWidth, fieldY, fieldW-committedWidth, 1, p.Stylesheet.Hint, p.view.GetHint())

	beforeCursor := string([]rune(p.view.GetContent())[:p.view.GetCursorPos()])
	p.cursorWrangler.Put(ui.CursorLocation{X: fieldX + runewidth.StringWidth(beforeCursor), Y: fieldY}, p.Identify())

	p.Renderer.DrawText(x+1, y+4, w-2, 1, p.Stylesheet.Normal.LightenedFG(40), fmt.Sprintf("raw: %s", p.view.RawText()))
}

// Undraw withdraws the text cursor.
func (p *FieldPane) Undraw() {
	p.cursorWrangler.Delete(p.Identify())
}

// NewFieldPane constructs and returns a new FieldPane.
func NewFieldPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	inputProcessor input.SimpleInputProcessor,
	view FieldView,
	label func() string,
	cursorWrangler *ui.CursorWrangler,
) *FieldPane {
	return &FieldPane{
		LeafPane: ui.LeafPane{
			ID:             ui.GeneratePaneID(),
			InputProcessor: inputProcessor,
			Renderer:       renderer,
			Dims:           dimensions,
			Stylesheet:     stylesheet,
		},
		view:           view,
		label:          label,
		cursorWrangler: cursorWrangler,
	}
}
