package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// specialKeys maps the identifiers usable in the special context of a keyspec
// (i.E. within '<' and '>') to keys.
var specialKeys = map[string]Key{
	"space": {Key: tcell.KeyRune, Ch: ' '},
	"lt":    {Key: tcell.KeyRune, Ch: '<'},
	"gt":    {Key: tcell.KeyRune, Ch: '>'},
	"cr":    {Key: tcell.KeyEnter},
	"esc":   {Key: tcell.KeyESC},
	"tab":   {Key: tcell.KeyTab},
	"del":   {Key: tcell.KeyDelete},
	"bs":    {Key: tcell.KeyBackspace2},
	"c-bs":  {Key: tcell.KeyBackspace},
	"left":  {Key: tcell.KeyLeft},
	"right": {Key: tcell.KeyRight},
	"home":  {Key: tcell.KeyHome},
	"end":   {Key: tcell.KeyEnd},

	"c-a": {Key: tcell.KeyCtrlA},
	"c-c": {Key: tcell.KeyCtrlC},
	"c-d": {Key: tcell.KeyCtrlD},
	"c-e": {Key: tcell.KeyCtrlE},
	"c-l": {Key: tcell.KeyCtrlL},
	"c-n": {Key: tcell.KeyCtrlN},
	"c-p": {Key: tcell.KeyCtrlP},
	"c-r": {Key: tcell.KeyCtrlR},
	"c-s": {Key: tcell.KeyCtrlS},
	"c-u": {Key: tcell.KeyCtrlU},
	"c-w": {Key: tcell.KeyCtrlW},
}

var specialIdentifiers = func() map[Key]string {
	result := make(map[Key]string, len(specialKeys))
	for identifier, key := range specialKeys {
		result[key] = identifier
	}
	return result
}()

// ConfigKeyspecToKeys converts full key sequence specification strings (e.g.
// "+7<bs><c-u>" meaning the + key, then the 7 key, then BACKSPACE, then CTRL+U)
// to the appropriate sequence of Keys (or an error, if invalid).
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	keys := make([][]rune, 0)
	specialContext := false

	pos := 0
	for _, r := range string(spec) {
		switch {

		case r == '<':
			if specialContext {
				return nil, fmt.Errorf("illegal second opening special context ('<') before previous is closed (pos %d)", pos)
			}
			specialContext = true
			keys = append(keys, []rune{r})

		case r == '>':
			if !specialContext {
				return nil, fmt.Errorf("illegal closing of special context ('>') while none open (pos %d)", pos)
			}
			specialContext = false
			keys[len(keys)-1] = append(keys[len(keys)-1], r)

		case specialContext:
			if !unicode.IsLetter(r) && r != '-' {
				return nil, fmt.Errorf("illegal character '%c' in special context (pos %d)", r, pos)
			}
			keys[len(keys)-1] = append(keys[len(keys)-1], r)

		default:
			keys = append(keys, []rune{r})

		}
		pos++
	}
	if specialContext {
		return nil, fmt.Errorf("special context not closed at end of spec '%s'", spec)
	}

	result := make([]Key, 0, len(keys))
	for _, keyIdentifier := range keys {
		if keyIdentifier[0] == '<' {
			key, err := KeyIdentifierToKey(string(keyIdentifier[1 : len(keyIdentifier)-1]))
			if err != nil {
				return nil, fmt.Errorf("error mapping identifier '%s' to key (%w)", string(keyIdentifier), err)
			}
			result = append(result, key)
		} else {
			result = append(result, Key{Key: tcell.KeyRune, Ch: keyIdentifier[0]})
		}
	}

	return result, nil
}

// KeyIdentifierToKey converts the given special identifier to the appropriate
// key (or an error, if invalid).
func KeyIdentifierToKey(identifier string) (Key, error) {
	key, ok := specialKeys[strings.ToLower(identifier)]
	if !ok {
		return Key{}, fmt.Errorf("no mapping present for identifier '%s'", identifier)
	}
	return key, nil
}

// ToConfigIdentifierString converts the given key to its configuration
// identifier.
func ToConfigIdentifierString(k Key) string {
	identifier, ok := specialIdentifiers[k]
	switch {
	case ok:
		return "<" + identifier + ">"
	case k.Key == tcell.KeyRune:
		return string(k.Ch)
	default:
		return fmt.Sprintf("<%s>", strings.ToLower(tcell.KeyNames[k.Key]))
	}
}
