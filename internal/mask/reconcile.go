package mask

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// EditSession is the state carried from one edit to the next.
type EditSession struct {
	// LastCaret is the template index the caret was at right after the host
	// applied the last edit.
	LastCaret int

	// ValidLength is the index of the last committed template position, -1 if
	// nothing is committed.
	ValidLength int

	// Deletion is set while an edit that shortened the buffer is reconciled.
	Deletion bool

	// LastFilledSlot is the index of the last slot the last render pass
	// reached.
	LastFilledSlot int

	// Text is the text produced by the last reconciliation.
	Text string
}

// NewEditSession returns the session state of an empty field.
func NewEditSession() EditSession {
	return EditSession{
		LastCaret:      0,
		ValidLength:    -1,
		LastFilledSlot: -1,
	}
}

// Edit is a change the host applied to its buffer.
type Edit struct {
	// Caret is the caret position after the host applied the edit.
	Caret int
	// Delta is the change in buffer length caused by the edit.
	Delta int
	// Text is the buffer contents after the edit.
	Text string
}

// Result is the outcome of reconciling an edit.
type Result struct {
	Rendering

	// Caret is where the host has to place its caret.
	Caret int

	// RawBefore is the committed raw content before the edit.
	RawBefore string
	// Raw is the committed raw content after the edit.
	Raw string
}

// Reconcile reconciles an edit made by the host with the session state,
// returning the text (and caret) the host has to replace its buffer with, as
// well as the session state to use for the next edit.
func Reconcile(m *Mask, showHint bool, s EditSession, e Edit) (Result, EditSession) {
	if e.Delta < 0 {
		s.Deletion = true
	}

	runes := []rune(e.Text)
	caret := e.Caret
	if caret < 0 {
		caret = 0
	} else if caret > len(runes) {
		caret = len(runes)
	}
	s.LastCaret = caret

	rawBefore := ExtractRaw(s.Text, m, s.ValidLength+1)

	opts := RenderOptions{ShowHint: showHint, Deletion: s.Deletion}

	// The raw content is recovered from the slots in front of the caret.
	// An insertion is also read as typed, even where it landed on
	// (uncommitted) furniture; whichever reading commits more wins, so that
	// both raw and already formatted pastes are taken.
	raw := ExtractRaw(e.Text, m, caret)
	rendering := Render(raw, m, opts)
	committed := ExtractRaw(rendering.Text, m, rendering.ValidLength+1)
	if insertAt := caret - e.Delta; e.Delta > 0 && insertAt >= 0 {
		typed := ExtractRaw(e.Text, m, insertAt) + string(runes[insertAt:caret])
		typedRendering := Render(typed, m, opts)
		typedCommitted := ExtractRaw(typedRendering.Text, m, typedRendering.ValidLength+1)
		if len([]rune(typedCommitted)) >= len([]rune(committed)) {
			raw, rendering, committed = typed, typedRendering, typedCommitted
		}
	}

	result := Result{
		Rendering: rendering,
		Caret:     rendering.ValidLength + 1,
		RawBefore: rawBefore,
		Raw:       committed,
	}
	if len([]rune(result.Raw)) < len([]rune(raw)) && len([]rune(raw)) <= m.Slots() {
		log.Debug().Str("raw", raw).Str("accepted", result.Raw).Msg("rejected input")
	}

	s.ValidLength = rendering.ValidLength
	s.LastFilledSlot = rendering.LastFilledSlot
	s.Text = rendering.Text
	s.Deletion = false

	return result, s
}

// Reconciler is the stateful edit reconciler used by a host text field.
//
// Until it is configured it passes all edits through unmodified.
// It is not safe for concurrent use; edits have to be reconciled one after
// the other.
type Reconciler struct {
	mask            *Mask
	showHint        bool
	defaultShowHint bool

	session EditSession
}

// NewReconciler returns a new unconfigured reconciler.
// showHintByDefault is the hint setting it falls back to on Reset.
func NewReconciler(showHintByDefault bool) *Reconciler {
	return &Reconciler{
		showHint:        showHintByDefault,
		defaultShowHint: showHintByDefault,
		session:         NewEditSession(),
	}
}

// Configure compiles and installs a new mask, clearing all content.
// If the template can not be compiled the reconciler is left unchanged.
func (r *Reconciler) Configure(template string, classification Classification, showHintOnEdit bool) error {
	m, err := Compile(template, classification)
	if err != nil {
		return fmt.Errorf("could not configure mask '%s' (%w)", template, err)
	}
	r.ConfigureMask(m, showHintOnEdit)
	return nil
}

// ConfigureMask installs an already compiled mask, clearing all content.
func (r *Reconciler) ConfigureMask(m *Mask, showHintOnEdit bool) {
	r.mask = m
	r.showHint = showHintOnEdit
	r.session = NewEditSession()
	log.Debug().Str("template", m.Template()).Int("slots", m.Slots()).Bool("show-hint", showHintOnEdit).Msg("configured mask")
}

// Reset removes the mask, returning to pass-through, and clears all content.
func (r *Reconciler) Reset() {
	r.mask = nil
	r.showHint = r.defaultShowHint
	r.session = NewEditSession()
	log.Debug().Msg("reset mask")
}

// Configured returns whether a mask is installed.
func (r *Reconciler) Configured() bool { return r.mask != nil }

// Mask returns the installed mask (nil, if unconfigured).
func (r *Reconciler) Mask() *Mask { return r.mask }

// ShowHint returns whether the hint suffix is shown while editing.
func (r *Reconciler) ShowHint() bool { return r.showHint }

// Session returns the current session state.
func (r *Reconciler) Session() EditSession { return r.session }

// Hint returns the text a host should display for an empty field, i.E. the
// template (or nothing, if unconfigured).
func (r *Reconciler) Hint() string {
	if r.mask == nil {
		return ""
	}
	return r.mask.Template()
}

// OnEdit reconciles an edit that the host has already applied to its buffer.
// It returns the text the host has to replace its buffer with and the
// position to move its caret to.
func (r *Reconciler) OnEdit(caret, lengthDelta int, text string) (string, int) {
	if r.mask == nil {
		r.session.Text = text
		r.session.LastCaret = caret
		return text, caret
	}

	result, session := Reconcile(r.mask, r.showHint, r.session, Edit{Caret: caret, Delta: lengthDelta, Text: text})
	r.session = session

	log.Trace().
		Str("before", result.RawBefore).
		Str("after", result.Raw).
		Int("valid-length", result.ValidLength).
		Int("caret", result.Caret).
		Msg("reconciled edit")

	return result.Text, result.Caret
}

// ValidLength returns the index of the last committed position (-1 if none).
func (r *Reconciler) ValidLength() int { return r.session.ValidLength }

// Text returns the text as of the last edit.
func (r *Reconciler) Text() string { return r.session.Text }

// RawText returns the committed raw content, or, if unconfigured, the text
// verbatim.
func (r *Reconciler) RawText() string {
	if r.mask == nil {
		return r.session.Text
	}
	return ExtractRaw(r.session.Text, r.mask, r.session.ValidLength+1)
}
