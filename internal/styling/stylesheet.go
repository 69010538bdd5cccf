package styling

import (
	"fmt"

	"github.com/ja-he/maskedinput/internal/config"
)

// Stylesheet represents all styles used by the application for rendering.
type Stylesheet struct {
	Normal DrawStyling

	// Hint is the style of the uncommitted rest of a mask's template.
	Hint  DrawStyling
	Label DrawStyling

	Editor DrawStyling

	Status      DrawStyling
	StatusError DrawStyling
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet.
func NewStylesheetFromConfig(c config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	for _, s := range []struct {
		name   string
		target *DrawStyling
		source config.Styling
	}{
		{"normal", &stylesheet.Normal, c.Normal},
		{"hint", &stylesheet.Hint, c.Hint},
		{"label", &stylesheet.Label, c.Label},
		{"editor", &stylesheet.Editor, c.Editor},
		{"status", &stylesheet.Status, c.Status},
		{"status-error", &stylesheet.StatusError, c.StatusError},
	} {
		style, err := StyleFromConfig(s.source)
		if err != nil {
			return nil, fmt.Errorf("invalid styling '%s' (%w)", s.name, err)
		}
		*s.target = style
	}

	return &stylesheet, nil
}

// StyleFromConfig constructs a styling from its configuration.
func StyleFromConfig(c config.Styling) (DrawStyling, error) {
	style, err := StyleFromHex(c.Fg, c.Bg)
	if err != nil {
		return nil, err
	}
	if c.Style != nil {
		style.bold = c.Style.Bold
		style.italic = c.Style.Italic
		style.underlined = c.Style.Underlined
	}
	return style, nil
}
