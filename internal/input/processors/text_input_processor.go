package processors

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/maskedinput/internal/input"
)

// TextInputProcessor is a SimpleInputProcessor specifically for text input.
// It can have a number of defined mappings for single non-rune keys (e.g. BS
// for deleting the rune before the cursor).
// Any runes it is asked to process will be given to its callback function for
// runes, which could, e.g., insert the given rune at the cursor.
type TextInputProcessor struct {
	mappings map[input.Key]input.Action

	runeCallback func(r rune)
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. the processor performed
// an action based on the input.
// Mappings take precedence over the rune callback, so that runes can be bound
// as well.
func (p *TextInputProcessor) ProcessInput(key input.Key) bool {
	if action, mappingExists := p.mappings[key]; mappingExists {
		action.Do()
		return true
	}
	if key.Key == tcell.KeyRune {
		p.runeCallback(key.Ch)
		return true
	}
	return false
}

// CapturesInput returns whether this processor "captures" input.
// A text processor always does, as any rune is valid text input.
func (p *TextInputProcessor) CapturesInput() bool {
	return true
}

// GetHelp returns the input help map for this processor.
func (p *TextInputProcessor) GetHelp() input.Help {
	result := input.Help{}
	for k, a := range p.mappings {
		result[input.ToConfigIdentifierString(k)] = a.Explain()
	}
	return result
}

// NewTextInputProcessor returns a pointer to a new TextInputProcessor.
func NewTextInputProcessor(
	mappings map[input.Keyspec]input.Action,
	runeCallback func(r rune),
) (*TextInputProcessor, error) {
	keyMappings := map[input.Key]input.Action{}
	for keyspec, action := range mappings {
		keys, err := input.ConfigKeyspecToKeys(keyspec)
		if err != nil {
			return nil, fmt.Errorf("could not convert '%s' to keys (%w)", keyspec, err)
		}
		if len(keys) != 1 {
			return nil, fmt.Errorf("keyspec '%s' for text processor has not exactly one key (but %d)", keyspec, len(keys))
		}
		keyMappings[keys[0]] = action
	}
	return &TextInputProcessor{
		mappings:     keyMappings,
		runeCallback: runeCallback,
	}, nil
}
