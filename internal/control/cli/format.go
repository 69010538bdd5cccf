package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/maskedinput/internal/config"
	"github.com/ja-he/maskedinput/internal/field"
	"github.com/ja-he/maskedinput/internal/input"
)

// FormatCommand is the `format` command, which feeds key input through a
// masked field without a terminal UI.
type FormatCommand struct {
	Mask   string `short:"m" long:"mask" description:"the name of the mask to use" value-name:"<name>" required:"true"`
	NoHint bool   `long:"no-hint" description:"do not show the hint while editing"`
	Paste  string `long:"paste" description:"text to paste into the field before the keys are replayed" value-name:"<text>"`

	Args struct {
		Keys string `positional-arg-name:"<keys>" description:"the keys to replay, e.g. '9001234567<bs><bs>89'"`
	} `positional-args:"true"`
}

// Execute executes the format command.
func (command *FormatCommand) Execute(args []string) error {
	configData, err := readConfig(homeDir(), config.Dark)
	if err != nil {
		return err
	}
	return replay(os.Stdout, configData, command.Mask, !command.NoHint, command.Paste, input.Keyspec(command.Args.Keys))
}

// replay sets up a field with the named mask, pastes the given text into it
// and then processes the given keys with the configured bindings, writing the
// resulting state of the field to out.
func replay(out io.Writer, configData config.Config, maskName string, showHint bool, paste string, keys input.Keyspec) error {
	maskConfig, ok := configData.MaskByName(maskName)
	if !ok {
		return fmt.Errorf("no mask named '%s'", maskName)
	}
	m, err := maskConfig.Compile()
	if err != nil {
		return err
	}

	f := field.New(maskName, false)
	f.ConfigureMask(m, showHint && maskConfig.ShowsHint())

	processor, err := f.CreateInputProcessor(
		configData.Input.Field,
		map[input.Actionspec]func(){
			"reset":     f.Reset,
			"next-mask": func() { log.Warn().Msg("switching masks is not possible here, ignoring") },
		},
	)
	if err != nil {
		return err
	}

	keySequence, err := input.ConfigKeyspecToKeys(keys)
	if err != nil {
		return fmt.Errorf("invalid keys (%w)", err)
	}

	f.Paste(paste)
	for _, key := range keySequence {
		if !processor.ProcessInput(key) {
			log.Warn().Str("key", input.ToConfigIdentifierString(key)).Msg("key not bound, ignoring")
		}
	}

	_, err = fmt.Fprintf(out, "text:  %s\nraw:   %s\nvalid: %d\n", f.GetContent(), f.RawText(), f.CommittedLen()-1)
	if err != nil {
		return fmt.Errorf("could not write result (%w)", err)
	}
	return nil
}
