package panes

import (
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/ui"
)

// A HelpPane displays key mappings and their actions, flowing them into as
// many rows as needed.
type HelpPane struct {
	ui.LeafPane

	content func() input.Help
}

// Draw draws the key mappings.
func (p *HelpPane) Draw() {
	if !p.IsVisible() {
		return
	}

	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	help := p.content()
	content := make([]mappingAndAction, 0, len(help))
	for mapping, action := range help {
		content = append(content, mappingAndAction{mapping: mapping, action: action})
	}
	sort.Sort(byAction(content))

	const gap = 2
	col, row := x+1, y
	for _, c := range content {
		keyWidth := runewidth.StringWidth(c.mapping)
		entryWidth := keyWidth + 1 + runewidth.StringWidth(c.action)
		if col > x+1 && col+entryWidth > x+w {
			col, row = x+1, row+1
		}
		if row >= y+h {
			return
		}
		p.Renderer.DrawText(col, row, keyWidth, 1, p.Stylesheet.Label.Bolded(), c.mapping)
		p.Renderer.DrawText(col+keyWidth+1, row, x+w-(col+keyWidth+1), 1, p.Stylesheet.Normal.Italicized(), c.action)
		col += entryWidth + gap
	}
}

type mappingAndAction = struct {
	mapping string
	action  string
}
type byAction []mappingAndAction

func (a byAction) Len() int           { return len(a) }
func (a byAction) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byAction) Less(i, j int) bool { return a[i].action < a[j].action }

// NewHelpPane constructs and returns a new HelpPane.
func NewHelpPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	condition func() bool,
	content func() input.Help,
) *HelpPane {
	return &HelpPane{
		LeafPane: ui.LeafPane{
			ID:         ui.GeneratePaneID(),
			Visible:    condition,
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		content: content,
	}
}
