package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/mask"
)

// Config is the configuration data as present in a config file at
// '${MASKEDINPUT_HOME}/config.yaml'.
type Config struct {
	Masks      []Mask     `yaml:"masks"`
	Stylesheet Stylesheet `yaml:"stylesheet"`
	Input      Input      `yaml:"input"`
}

// A Mask as defined in a config file.
//
// Symbols maps each character of the template to either "furniture" or the
// string of characters the positions it marks accept.
// The space character is always furniture and need not be listed.
type Mask struct {
	Name     string            `yaml:"name"`
	Template string            `yaml:"template"`
	Symbols  map[string]string `yaml:"symbols"`
	ShowHint *bool             `yaml:"show-hint,omitempty"`
}

// Compile compiles the mask definition.
func (m Mask) Compile() (*mask.Mask, error) {
	classification, err := mask.ParseClassification(m.Symbols)
	if err != nil {
		return nil, fmt.Errorf("invalid symbols for mask '%s' (%w)", m.Name, err)
	}
	compiled, err := mask.Compile(m.Template, classification)
	if err != nil {
		return nil, fmt.Errorf("could not compile mask '%s' (%w)", m.Name, err)
	}
	return compiled, nil
}

// ShowsHint returns whether the mask should be edited with a hint shown, which
// is the default.
func (m Mask) ShowsHint() bool {
	return m.ShowHint == nil || *m.ShowHint
}

// MaskByName returns the mask definition of the given name.
func (c Config) MaskByName(name string) (Mask, bool) {
	for _, m := range c.Masks {
		if m.Name == name {
			return m, true
		}
	}
	return Mask{}, false
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal      Styling `yaml:"normal"`
	Hint        Styling `yaml:"hint"`
	Label       Styling `yaml:"label"`
	Editor      Styling `yaml:"editor"`
	Status      Styling `yaml:"status"`
	StatusError Styling `yaml:"status-error"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// Input is the input configuration.
type Input = input.InputConfig

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	var defaultConfig Config
	switch defaultTheme {
	case Dark:
		defaultConfig = Default(Dark)
	case Light:
		defaultConfig = Default(Light)
	default:
		return Config{}, fmt.Errorf("unknown colorscheme type %d", defaultTheme)
	}

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	return result, nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)

	// masks of the same name replace the default, others are added
	result.Masks = append([]Mask{}, base.Masks...)
	for _, m := range augment.Masks {
		replaced := false
		for i := range result.Masks {
			if result.Masks[i].Name == m.Name {
				result.Masks[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			result.Masks = append(result.Masks, m)
		}
	}

	result.Input.Field = map[input.Keyspec]input.Actionspec{}
	for k, a := range base.Input.Field {
		result.Input.Field[k] = a
	}
	for k, a := range augment.Input.Field {
		result.Input.Field[k] = a
	}

	return result
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.Hint.overwriteIfDefined(augment.Hint)
	result.Label.overwriteIfDefined(augment.Label)
	result.Editor.overwriteIfDefined(augment.Editor)
	result.Status.overwriteIfDefined(augment.Status)
	result.StatusError.overwriteIfDefined(augment.StatusError)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		s.Style = &FontStyle{
			Bold:       augment.Style.Bold,
			Italic:     augment.Style.Italic,
			Underlined: augment.Style.Underlined,
		}
	}
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)
