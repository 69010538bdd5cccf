package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/maskedinput/internal/potatolog"
	"github.com/ja-he/maskedinput/internal/storage"
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/tui"
)

// TUICommand is the `tui` command.
type TUICommand struct {
	Mask          string `short:"m" long:"mask" description:"the name of the mask to start with (otherwise the stored state is restored)" value-name:"<name>"`
	Theme         string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme (note: only sets defaults, which are individually overridden by settings in config.yaml"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs dropped)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
	StateFile     string `short:"s" long:"state-file" description:"the file to store the field's state in (default: state.yaml in the config directory)" value-name:"<file>"`
}

// Execute executes the tui command.
func (command *TUICommand) Execute(args []string) error {
	// set up stderr logger until TUI set up
	stderrLogger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// create TUI logger
	var logWriter io.Writer
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stderrLogger.Fatal().Err(err).Str("file", command.LogOutputFile).Msg("could not open file for logging")
		}
		defer file.Close()
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, &potatolog.GlobalMemoryLogReaderWriter)
	} else {
		logWriter = &potatolog.GlobalMemoryLogReaderWriter
	}
	tuiLogger := zerolog.New(logWriter).With().Timestamp().Caller().Logger()

	// temporarily log to both (in case the TUI doesn't get set we want the info
	// on the stderr logger, otherwise the TUI logger is relevant)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, tuiLogger))

	home := homeDir()
	configData, err := readConfig(home, themeFromString(command.Theme))
	if err != nil {
		return err
	}

	stylesheet, err := styling.NewStylesheetFromConfig(configData.Stylesheet)
	if err != nil {
		return err
	}

	statePath := command.StateFile
	if statePath == "" {
		statePath = filepath.Join(home, "state.yaml")
	}

	screen, err := tui.NewTUIScreenHandler()
	if err != nil {
		return err
	}

	controller, err := NewController(
		configData,
		*stylesheet,
		screen,
		storage.NewStateFile(statePath),
		command.Mask,
		&potatolog.GlobalMemoryLogReaderWriter,
	)
	if err != nil {
		screen.Fini()
		return err
	}

	// now that the screen is initialized, we'll always want the TUI logger, so
	// we're making it the global logger
	log.Logger = tuiLogger

	controller.Run()
	return nil
}
