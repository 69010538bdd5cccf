// Package cli provides the command-line interface for maskedinput.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/maskedinput/internal/config"
)

// CommandLineOpts are the command line options, for `go-flags` to parse
// command line args into.
type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	TUICommand     TUICommand     `command:"tui" subcommands-optional:"true" description:"Edit a masked field interactively"`
	FormatCommand  FormatCommand  `command:"format" subcommands-optional:"true" description:"Replay key input through a masked field and print the result"`
	MasksCommand   MasksCommand   `command:"masks" subcommands-optional:"true" description:"List the configured masks"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true" description:"Show the program version"`
}

// Opts are the parsed command line options.
var Opts CommandLineOpts

// homeDir returns the directory holding config and state, i.E.
// '${MASKEDINPUT_HOME}' or, if unset, '${HOME}/.config/maskedinput'.
func homeDir() string {
	home := os.Getenv("MASKEDINPUT_HOME")
	if home == "" {
		return filepath.Join(os.Getenv("HOME"), ".config", "maskedinput")
	}
	return strings.TrimRight(home, "/")
}

// themeFromString converts a theme option to a colorscheme type, dark being
// the default.
func themeFromString(theme string) config.ColorschemeType {
	switch theme {
	case "light":
		return config.Light
	default:
		return config.Dark
	}
}

// readConfig reads the config file from the given directory and uses it to
// augment the defaults for the given theme.
// A missing config file is not an error; the defaults are used.
func readConfig(dir string, theme config.ColorschemeType) (config.Config, error) {
	path := filepath.Join(dir, "config.yaml")
	yamlData, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, fmt.Errorf("can't read config file '%s' (%w)", path, err)
		}
		log.Debug().Str("path", path).Msg("no config file, using defaults")
		yamlData = make([]byte, 0)
	}
	configData, err := config.ParseConfigAugmentDefaults(theme, yamlData)
	if err != nil {
		return config.Config{}, fmt.Errorf("can't parse config file '%s' (%w)", path, err)
	}
	return configData, nil
}
