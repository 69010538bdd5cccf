// Package field implements a single-line text input field whose contents are
// kept formatted according to a mask.
//
// The field behaves like a plain text widget: each edit is first applied to
// its own buffer, after which its text-changed notification hands the buffer
// to a mask.Reconciler and writes the reconciled text back.
package field

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/input/processors"
	"github.com/ja-he/maskedinput/internal/mask"
)

// Field is a masked text input field.
type Field struct {
	Name string

	content   []rune
	cursorPos int

	reconciler *mask.Reconciler

	// correcting is set while the field writes a reconciled text back into its
	// buffer, so that the write is not observed as another user edit.
	correcting bool
	suppressed int

	changeListeners []func(raw string)

	// CommitFn is called with the raw text on Write.
	CommitFn func(raw string)
	// QuitCallback is called on Quit.
	QuitCallback func()
}

// New returns a new unconfigured field, which behaves like a plain text field
// until configured.
func New(name string, showHintByDefault bool) *Field {
	return &Field{
		Name:       name,
		content:    []rune{},
		reconciler: mask.NewReconciler(showHintByDefault),
	}
}

// Configure sets the mask of the field and clears it.
// If the mask can not be compiled, the field is left unchanged.
func (f *Field) Configure(template string, classification mask.Classification, showHintOnEdit bool) error {
	err := f.reconciler.Configure(template, classification, showHintOnEdit)
	if err != nil {
		return err
	}
	f.correct("", 0)
	return nil
}

// ConfigureMask sets an already compiled mask and clears the field.
func (f *Field) ConfigureMask(m *mask.Mask, showHintOnEdit bool) {
	f.reconciler.ConfigureMask(m, showHintOnEdit)
	f.correct("", 0)
}

// Reset removes the mask and clears the field.
func (f *Field) Reset() {
	f.reconciler.Reset()
	f.correct("", 0)
}

// Configured returns whether the field has a mask.
func (f *Field) Configured() bool { return f.reconciler.Configured() }

// Mask returns the mask of the field (nil, if unconfigured).
func (f *Field) Mask() *mask.Mask { return f.reconciler.Mask() }

// OnChange registers a listener, which is called with the raw text after every
// user edit.
func (f *Field) OnChange(listener func(raw string)) {
	f.changeListeners = append(f.changeListeners, listener)
}

// GetContent returns the full displayed text, including any hint suffix.
func (f *Field) GetContent() string { return string(f.content) }

// GetCursorPos returns the cursor position, 0 being before the first rune.
func (f *Field) GetCursorPos() int { return f.cursorPos }

// CommittedLen returns the number of leading runes of the content which are
// committed; the rest is hint.
func (f *Field) CommittedLen() int {
	if !f.reconciler.Configured() {
		return len(f.content)
	}
	return f.reconciler.ValidLength() + 1
}

// GetCommitted returns the committed part of the content.
func (f *Field) GetCommitted() string { return string(f.content[:f.CommittedLen()]) }

// GetHint returns the hint to display after the committed part of the content.
// For an empty field that is the entire template.
func (f *Field) GetHint() string {
	if len(f.content) == 0 {
		return f.reconciler.Hint()
	}
	return string(f.content[f.CommittedLen():])
}

// RawText returns the text as typed by the user, without any furniture.
func (f *Field) RawText() string { return f.reconciler.RawText() }

// ShowsHint returns whether the hint is shown while editing.
func (f *Field) ShowsHint() bool { return f.reconciler.ShowHint() }

// SuppressedNotifications returns how many text-changed notifications were
// caused by the field's own corrective writes (and therefore ignored).
func (f *Field) SuppressedNotifications() int { return f.suppressed }

// AddRune inserts a rune at the cursor position.
func (f *Field) AddRune(newRune rune) {
	if !strconv.IsPrint(newRune) {
		return
	}
	tmp := make([]rune, 0, len(f.content)+1)
	tmp = append(tmp, f.content[:f.cursorPos]...)
	tmp = append(tmp, newRune)
	tmp = append(tmp, f.content[f.cursorPos:]...)
	f.content = tmp
	f.cursorPos++
	f.textChanged(1)
}

// Paste inserts the given text at the cursor position, as a single edit.
func (f *Field) Paste(s string) {
	pasted := []rune(s)
	if len(pasted) == 0 {
		return
	}
	tmp := make([]rune, 0, len(f.content)+len(pasted))
	tmp = append(tmp, f.content[:f.cursorPos]...)
	tmp = append(tmp, pasted...)
	tmp = append(tmp, f.content[f.cursorPos:]...)
	f.content = tmp
	f.cursorPos += len(pasted)
	f.textChanged(len(pasted))
}

// BackspaceRune deletes the rune before the cursor position.
func (f *Field) BackspaceRune() {
	if f.cursorPos == 0 {
		return
	}
	f.content = append(f.content[:f.cursorPos-1], f.content[f.cursorPos:]...)
	f.cursorPos--
	f.textChanged(-1)
}

// DeleteRune deletes the rune at the cursor position.
func (f *Field) DeleteRune() {
	if f.cursorPos >= len(f.content) {
		return
	}
	f.content = append(f.content[:f.cursorPos], f.content[f.cursorPos+1:]...)
	f.textChanged(-1)
}

// Clear deletes all runes in the field.
func (f *Field) Clear() {
	if len(f.content) == 0 {
		return
	}
	delta := -len(f.content)
	f.content = []rune{}
	f.cursorPos = 0
	f.textChanged(delta)
}

// MoveCursor moves the cursor to the given position.
// A masked field keeps its cursor right after the committed text, so for such
// a field this snaps back there.
func (f *Field) MoveCursor(pos int) {
	if f.reconciler.Configured() {
		f.cursorPos = f.CommittedLen()
		return
	}
	switch {
	case pos < 0:
		f.cursorPos = 0
	case pos > len(f.content):
		f.cursorPos = len(f.content)
	default:
		f.cursorPos = pos
	}
}

// MoveCursorLeft moves the cursor one rune to the left.
func (f *Field) MoveCursorLeft() { f.MoveCursor(f.cursorPos - 1) }

// MoveCursorRight moves the cursor one rune to the right.
func (f *Field) MoveCursorRight() { f.MoveCursor(f.cursorPos + 1) }

// MoveCursorToBeginning moves the cursor to the beginning of the text.
func (f *Field) MoveCursorToBeginning() { f.MoveCursor(0) }

// MoveCursorPastEnd moves the cursor past the end of the text.
func (f *Field) MoveCursorPastEnd() { f.MoveCursor(len(f.content)) }

// Write commits the raw text of the field.
func (f *Field) Write() {
	if f.CommitFn != nil {
		f.CommitFn(f.RawText())
	}
}

// Quit the field.
func (f *Field) Quit() {
	if f.QuitCallback != nil {
		f.QuitCallback()
	}
}

// Snapshot returns the persistable state of the field.
func (f *Field) Snapshot() mask.Snapshot {
	s := f.reconciler.Snapshot()
	s.Text = string(f.content)
	return s
}

// Restore reinstates a state previously returned by Snapshot.
func (f *Field) Restore(s mask.Snapshot) error {
	err := f.reconciler.Restore(s)
	if err != nil {
		return fmt.Errorf("could not restore field '%s' (%w)", f.Name, err)
	}
	f.content = []rune(s.Text)
	if f.reconciler.Configured() {
		f.cursorPos = f.CommittedLen()
	} else {
		f.cursorPos = len(f.content)
	}
	return nil
}

// textChanged is the field's text-changed notification, fired after every
// change of the buffer, including the field's own corrective writes.
func (f *Field) textChanged(delta int) {
	if f.correcting {
		f.suppressed++
		log.Trace().Str("field", f.Name).Int("delta", delta).Msg("ignoring notification for corrective write")
		return
	}

	text, caret := f.reconciler.OnEdit(f.cursorPos, delta, string(f.content))
	f.correct(text, caret)

	raw := f.RawText()
	for _, listener := range f.changeListeners {
		listener(raw)
	}
}

// correct writes the given text and caret position into the field.
func (f *Field) correct(text string, caret int) {
	f.correcting = true
	defer func() { f.correcting = false }()

	previousLen := len(f.content)
	f.content = []rune(text)
	f.cursorPos = caret
	f.textChanged(len(f.content) - previousLen)
}

// CreateInputProcessor creates an input processor for the field from the
// given key bindings. The bindings can refer to the field's own actions as
// well as to the given extra actions.
func (f *Field) CreateInputProcessor(
	bindings map[input.Keyspec]input.Actionspec,
	extra map[input.Actionspec]func(),
) (*processors.TextInputProcessor, error) {
	actionspecToFunc := map[input.Actionspec]func(){
		"move-cursor-rune-left":    f.MoveCursorLeft,
		"move-cursor-rune-right":   f.MoveCursorRight,
		"move-cursor-to-beginning": f.MoveCursorToBeginning,
		"move-cursor-to-end":       f.MoveCursorPastEnd,
		"backspace":                f.BackspaceRune,
		"delete-rune":              f.DeleteRune,
		"clear":                    f.Clear,
		"write":                    f.Write,
		"quit":                     f.Quit,
	}
	for spec, fn := range extra {
		actionspecToFunc[spec] = fn
	}

	mappings := map[input.Keyspec]input.Action{}
	for keyspec, actionspec := range bindings {
		fn, ok := actionspecToFunc[actionspec]
		if !ok {
			return nil, fmt.Errorf("unknown action '%s' bound to '%s'", actionspec, keyspec)
		}
		mappings[keyspec] = input.NewSimpleAction(string(actionspec), fn)
	}

	p, err := processors.NewTextInputProcessor(mappings, f.AddRune)
	if err != nil {
		return nil, fmt.Errorf("could not construct input processor for field '%s' (%w)", f.Name, err)
	}
	return p, nil
}
