package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ja-he/maskedinput/internal/config"
)

// MasksCommand is the `masks` command.
type MasksCommand struct {
	Theme string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme"`
}

// Execute executes the masks command.
func (command *MasksCommand) Execute(args []string) error {
	configData, err := readConfig(homeDir(), themeFromString(command.Theme))
	if err != nil {
		return err
	}
	return listMasks(os.Stdout, configData.Masks)
}

// listMasks writes a table of the given masks, compiling each of them.
// Masks that do not compile are listed with their error, and cause an error
// to be returned after all are listed.
func listMasks(out io.Writer, masks []config.Mask) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTEMPLATE\tSLOTS\tHINT")

	invalid := 0
	for _, m := range masks {
		compiled, err := m.Compile()
		if err != nil {
			invalid++
			fmt.Fprintf(w, "%s\t%s\tinvalid: %s\t\n", m.Name, m.Template, err.Error())
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", m.Name, compiled.Template(), compiled.Slots(), m.ShowsHint())
	}

	err := w.Flush()
	if err != nil {
		return fmt.Errorf("could not write mask list (%w)", err)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d masks are invalid", invalid, len(masks))
	}
	return nil
}
