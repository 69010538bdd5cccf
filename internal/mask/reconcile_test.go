package mask_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/maskedinput/internal/mask"
)

// host imitates a text widget: it applies edits to its own buffer first and
// then lets the reconciler correct them.
type host struct {
	r      *mask.Reconciler
	buffer []rune
	caret  int
}

func newPhoneHost(t *testing.T, showHint bool) *host {
	r := mask.NewReconciler(false)
	require.NoError(t, r.Configure(phoneTemplate, phoneClassification(), showHint))
	return &host{r: r}
}

func (h *host) typeText(s string) {
	for _, c := range s {
		h.buffer = append(h.buffer[:h.caret], append([]rune{c}, h.buffer[h.caret:]...)...)
		h.caret++
		h.apply(1)
	}
}

func (h *host) backspace(n int) {
	for i := 0; i < n; i++ {
		if h.caret == 0 {
			return
		}
		h.buffer = append(h.buffer[:h.caret-1], h.buffer[h.caret:]...)
		h.caret--
		h.apply(-1)
	}
}

func (h *host) apply(delta int) {
	text, caret := h.r.OnEdit(h.caret, delta, string(h.buffer))
	h.buffer = []rune(text)
	h.caret = caret
}

func (h *host) text() string { return string(h.buffer) }

func TestReconcilerScenarios(t *testing.T) {

	t.Run("typing a full number", func(t *testing.T) {
		h := newPhoneHost(t, true)

		h.typeText("9")
		assert.Equal(t, "+7 (900) 000-00-00", h.text())
		assert.Equal(t, 5, h.caret)

		h.typeText("00")
		assert.Equal(t, "+7 (900) 000-00-00", h.text())
		assert.Equal(t, 9, h.caret)
		assert.Equal(t, 8, h.r.ValidLength())

		h.typeText("1234567")
		assert.Equal(t, "+7 (900) 123-45-67", h.text())
		assert.Equal(t, "9001234567", h.r.RawText())
		assert.Equal(t, 18, h.caret)
	})

	t.Run("typing past the end", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("90012345678")
		assert.Equal(t, "+7 (900) 123-45-67", h.text())
		assert.Equal(t, "9001234567", h.r.RawText())
	})

	t.Run("backspace and retype", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("9001234567")

		h.backspace(1)
		assert.Equal(t, "+7 (900) 123-45-60", h.text())
		assert.Equal(t, 17, h.caret)

		h.backspace(1)
		assert.Equal(t, "+7 (900) 123-45-00", h.text())
		assert.Equal(t, 15, h.caret)
		assert.Equal(t, "90012345", h.r.RawText())

		h.backspace(1)
		assert.Equal(t, "9001234", h.r.RawText())
		assert.Equal(t, 14, h.caret)

		h.typeText("890")
		assert.Equal(t, "+7 (900) 123-48-90", h.text())
		assert.Equal(t, "9001234890", h.r.RawText())
	})

	t.Run("deleting back over furniture", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("55555")
		assert.Equal(t, "+7 (555) 550-00-00", h.text())

		h.backspace(3)
		assert.Equal(t, "+7 (550) 000-00-00", h.text())
		assert.Equal(t, 6, h.caret)
		assert.Equal(t, "55", h.r.RawText())

		h.typeText("55778890")
		assert.Equal(t, "+7 (555) 577-88-90", h.text())
		assert.Equal(t, "5555778890", h.r.RawText())
	})

	t.Run("typing onto uncommitted furniture", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("555")
		h.backspace(1)
		assert.Equal(t, "+7 (555) 000-00-00", h.text())
		assert.Equal(t, 7, h.caret)

		h.typeText("1")
		assert.Equal(t, "+7 (555) 100-00-00", h.text())
		assert.Equal(t, "5551", h.r.RawText())
		assert.Equal(t, 10, h.caret)
	})

	t.Run("deleting everything", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("9")
		h.backspace(1)
		assert.Equal(t, "", h.text())
		assert.Equal(t, 0, h.caret)
		assert.Equal(t, -1, h.r.ValidLength())
		assert.Equal(t, "", h.r.RawText())
	})

	t.Run("rejected input", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("9a")
		assert.Equal(t, "+7 (900) 000-00-00", h.text())
		assert.Equal(t, "9", h.r.RawText())
		assert.Equal(t, 5, h.caret)

		h.typeText("0")
		assert.Equal(t, "90", h.r.RawText())
	})

	t.Run("without hint", func(t *testing.T) {
		h := newPhoneHost(t, false)
		h.typeText("9")
		assert.Equal(t, "+7 (9", h.text())
		h.typeText("00")
		assert.Equal(t, "+7 (900) ", h.text())
		h.typeText("1234567")
		assert.Equal(t, "+7 (900) 123-45-67", h.text())
		assert.Equal(t, "9001234567", h.r.RawText())
	})

	t.Run("paste into empty field", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.buffer = []rune("9001234567")
		h.caret = 10
		h.apply(10)
		assert.Equal(t, "+7 (900) 123-45-67", h.text())
	})

	t.Run("reset", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("9001234567")
		h.r.Reset()
		assert.Equal(t, "", h.r.RawText())
		assert.Equal(t, "", h.r.Text())
		assert.False(t, h.r.Configured())
	})
}

func TestReconcilerMonotonicBoundary(t *testing.T) {
	h := newPhoneHost(t, true)

	previous := h.r.ValidLength()
	for _, c := range "9001234567" {
		h.typeText(string(c))
		assert.Greater(t, h.r.ValidLength(), previous)
		assert.Less(t, h.r.ValidLength(), len(phoneTemplate))
		previous = h.r.ValidLength()
	}
	for i := 0; i < 10; i++ {
		h.backspace(1)
		assert.Less(t, h.r.ValidLength(), previous)
		previous = h.r.ValidLength()
	}
	assert.Equal(t, -1, previous)
}

func TestReconcilerPassThrough(t *testing.T) {
	r := mask.NewReconciler(true)
	assert.False(t, r.Configured())
	assert.Equal(t, "", r.Hint())

	text, caret := r.OnEdit(3, 3, "abc")
	assert.Equal(t, "abc", text)
	assert.Equal(t, 3, caret)
	assert.Equal(t, "abc", r.RawText())
}

func TestReconcilerConfigure(t *testing.T) {

	t.Run("failure keeps the previous mask", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("9")

		err := h.r.Configure("00x", mask.Classification{'0': mask.OneOf(digits)}, false)
		require.Error(t, err)
		var unclassified *mask.UnclassifiedCharacterError
		assert.True(t, errors.As(err, &unclassified))

		assert.Equal(t, phoneTemplate, h.r.Mask().Template())
		assert.True(t, h.r.ShowHint())
		assert.Equal(t, "9", h.r.RawText())
	})

	t.Run("reconfiguring clears content", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("900")
		require.NoError(t, h.r.Configure("00.00", mask.Classification{'0': mask.OneOf(digits), '.': mask.Furniture}, false))
		assert.Equal(t, "", h.r.RawText())
		assert.Equal(t, -1, h.r.ValidLength())
		assert.Equal(t, "00.00", h.r.Hint())
	})

	t.Run("reset restores default hint setting", func(t *testing.T) {
		r := mask.NewReconciler(false)
		require.NoError(t, r.Configure(phoneTemplate, phoneClassification(), true))
		assert.True(t, r.ShowHint())
		r.Reset()
		assert.False(t, r.ShowHint())
	})
}

func TestReconcile(t *testing.T) {
	m := phoneMask(t)

	session := mask.NewEditSession()
	result, session := mask.Reconcile(m, true, session, mask.Edit{Caret: 1, Delta: 1, Text: "9"})
	assert.Equal(t, "+7 (900) 000-00-00", result.Text)
	assert.Equal(t, 5, result.Caret)
	assert.Equal(t, "", result.RawBefore)
	assert.Equal(t, "9", result.Raw)
	assert.Equal(t, 4, session.ValidLength)
	assert.Equal(t, 1, session.LastFilledSlot)
	assert.False(t, session.Deletion)

	result, session = mask.Reconcile(m, true, session, mask.Edit{Caret: 6, Delta: 1, Text: "+7 (9000) 000-00-00"})
	assert.Equal(t, "9", result.RawBefore)
	assert.Equal(t, "90", result.Raw)
	assert.Equal(t, 6, result.Caret)
	assert.Equal(t, 6, session.LastCaret)
	assert.Equal(t, "+7 (900) 000-00-00", session.Text)

	t.Run("formatted paste", func(t *testing.T) {
		result, session := mask.Reconcile(m, true, mask.NewEditSession(), mask.Edit{Caret: 18, Delta: 18, Text: "+7 (900) 123-45-67"})
		assert.Equal(t, "+7 (900) 123-45-67", result.Text)
		assert.Equal(t, "9001234567", result.Raw)
		assert.Equal(t, 18, result.Caret)
		assert.Equal(t, 17, session.ValidLength)
	})

	t.Run("raw paste", func(t *testing.T) {
		result, _ := mask.Reconcile(m, false, mask.NewEditSession(), mask.Edit{Caret: 3, Delta: 3, Text: "900"})
		assert.Equal(t, "+7 (900) ", result.Text)
		assert.Equal(t, "900", result.Raw)
	})
}

func TestSnapshot(t *testing.T) {

	t.Run("configured", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("900")

		s := h.r.Snapshot()
		assert.True(t, s.Configured)
		assert.Equal(t, phoneTemplate, s.Template)
		assert.Equal(t, 8, s.ValidLength)
		assert.Equal(t, mask.FurnitureSpec, s.Symbols[" "])

		restored := &host{r: mask.NewReconciler(false)}
		require.NoError(t, restored.r.Restore(s))
		assert.Equal(t, "900", restored.r.RawText())
		assert.True(t, restored.r.ShowHint())

		restored.buffer = []rune(restored.r.Text())
		restored.caret = restored.r.ValidLength() + 1
		restored.typeText("1")
		assert.Equal(t, "+7 (900) 100-00-00", restored.text())
	})

	t.Run("unconfigured", func(t *testing.T) {
		r := mask.NewReconciler(false)
		r.OnEdit(2, 2, "hi")
		restored := mask.NewReconciler(false)
		require.NoError(t, restored.Restore(r.Snapshot()))
		assert.False(t, restored.Configured())
		assert.Equal(t, "hi", restored.RawText())
	})

	t.Run("invalid", func(t *testing.T) {
		h := newPhoneHost(t, true)
		h.typeText("9")

		s := h.r.Snapshot()
		s.ValidLength = 40
		r := mask.NewReconciler(false)
		assert.Error(t, r.Restore(s))
		assert.False(t, r.Configured())

		s = h.r.Snapshot()
		s.Symbols = map[string]string{"0": digits}
		assert.Error(t, r.Restore(s))

		s = h.r.Snapshot()
		s.Text = "+7 (900) 123-45-67 and lots more junk"
		s.ValidLength = 30
		assert.Error(t, r.Restore(s))
		assert.False(t, r.Configured())
	})
}
