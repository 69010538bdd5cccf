package config

import (
	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/mask"
)

const (
	digits       = "0123456789"
	plateLetters = "ABEKMHOPCTYXАВЕКМНОРСТУХ"
)

// Default returns the default configuration for the given colorscheme type
// (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	return Config{
		Masks:      defaultMasks(),
		Stylesheet: defaultStylesheet(colorschemeType),
		Input:      Input{Field: defaultFieldBindings()},
	}
}

func defaultMasks() []Mask {
	return []Mask{
		{
			Name:     "phone",
			Template: "+7 (000) 000-00-00",
			Symbols: map[string]string{
				"0": digits,
				"+": mask.FurnitureSpec,
				"7": mask.FurnitureSpec,
				"(": mask.FurnitureSpec,
				")": mask.FurnitureSpec,
				"-": mask.FurnitureSpec,
			},
		},
		{
			Name:     "date",
			Template: "00.00.0000",
			Symbols: map[string]string{
				"0": digits,
				".": mask.FurnitureSpec,
			},
		},
		{
			Name:     "plate",
			Template: "A 000 AA 000",
			Symbols: map[string]string{
				"A": plateLetters,
				"0": digits,
			},
		},
	}
}

func defaultFieldBindings() map[input.Keyspec]input.Actionspec {
	return map[input.Keyspec]input.Actionspec{
		"<bs>":    "backspace",
		"<del>":   "delete-rune",
		"<c-u>":   "clear",
		"<cr>":    "write",
		"<esc>":   "quit",
		"<c-r>":   "reset",
		"<c-n>":   "next-mask",
		"<left>":  "move-cursor-rune-left",
		"<right>": "move-cursor-rune-right",
		"<home>":  "move-cursor-to-beginning",
		"<end>":   "move-cursor-to-end",
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Dark {
		return Stylesheet{
			Normal:      Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
			Hint:        Styling{Fg: "#707070", Bg: "#202020", Style: &FontStyle{}},
			Label:       Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{Bold: true}},
			Editor:      Styling{Fg: "#ffffff", Bg: "#202020", Style: &FontStyle{}},
			Status:      Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{}},
			StatusError: Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
		}
	} else {
		return Stylesheet{
			Normal:      Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			Hint:        Styling{Fg: "#a0a0a0", Bg: "#f0f0f0", Style: &FontStyle{}},
			Label:       Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{Bold: true}},
			Editor:      Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			Status:      Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			StatusError: Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
		}
	}
}
