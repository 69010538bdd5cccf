package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key is a single key press, e.g. as reported by a terminal.
type Key struct {
	Mod tcell.ModMask
	Key tcell.Key
	Ch  rune
}

// KeyFromEvent converts a tcell key event to a Key.
// Modifiers are dropped for runes, as the rune already reflects them (e.g.
// shift).
func KeyFromEvent(e *tcell.EventKey) Key {
	if e.Key() == tcell.KeyRune {
		return Key{Key: tcell.KeyRune, Ch: e.Rune()}
	}
	return Key{Key: e.Key()}
}

// ToDebugString returns a representation of the key for logging.
func (k *Key) ToDebugString() string {
	return fmt.Sprintf(
		"(%s (%d),'%s'(%d))",
		tcell.KeyNames[k.Key],
		int(k.Key),
		string(k.Ch),
		int(k.Ch),
	)
}
