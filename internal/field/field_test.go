package field_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/maskedinput/internal/field"
	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/mask"
)

const phoneTemplate = "+7 (000) 000-00-00"

func phoneField(t *testing.T, showHint bool) *field.Field {
	f := field.New("phone", false)
	err := f.Configure(
		phoneTemplate,
		mask.Classification{
			'0': mask.OneOf("0123456789"),
			'+': mask.Furniture,
			'7': mask.Furniture,
			'(': mask.Furniture,
			')': mask.Furniture,
			'-': mask.Furniture,
		},
		showHint,
	)
	require.NoError(t, err)
	return f
}

func typeText(f *field.Field, s string) {
	for _, r := range s {
		f.AddRune(r)
	}
}

func TestField(t *testing.T) {

	t.Run("empty field shows template as hint", func(t *testing.T) {
		f := phoneField(t, true)
		assert.Equal(t, "", f.GetContent())
		assert.Equal(t, phoneTemplate, f.GetHint())
		assert.Equal(t, 0, f.CommittedLen())
	})

	t.Run("typing", func(t *testing.T) {
		f := phoneField(t, true)

		typeText(f, "9")
		assert.Equal(t, "+7 (900) 000-00-00", f.GetContent())
		assert.Equal(t, "+7 (9", f.GetCommitted())
		assert.Equal(t, "00) 000-00-00", f.GetHint())
		assert.Equal(t, 5, f.GetCursorPos())

		typeText(f, "001234567")
		assert.Equal(t, "+7 (900) 123-45-67", f.GetContent())
		assert.Equal(t, "9001234567", f.RawText())
		assert.Equal(t, "", f.GetHint())
	})

	t.Run("typing without hint", func(t *testing.T) {
		f := phoneField(t, false)
		typeText(f, "900")
		assert.Equal(t, "+7 (900) ", f.GetContent())
		assert.Equal(t, "", f.GetHint())
	})

	t.Run("non-printable runes are ignored", func(t *testing.T) {
		f := phoneField(t, true)
		f.AddRune('\x07')
		assert.Equal(t, "", f.GetContent())
	})

	t.Run("backspace", func(t *testing.T) {
		f := phoneField(t, true)
		typeText(f, "9001234567")
		f.BackspaceRune()
		f.BackspaceRune()
		f.BackspaceRune()
		assert.Equal(t, "9001234", f.RawText())
		typeText(f, "890")
		assert.Equal(t, "+7 (900) 123-48-90", f.GetContent())
	})

	t.Run("backspace on empty field", func(t *testing.T) {
		f := phoneField(t, true)
		f.BackspaceRune()
		assert.Equal(t, "", f.GetContent())
		assert.Equal(t, 0, f.GetCursorPos())
	})

	t.Run("delete drops trailing furniture", func(t *testing.T) {
		f := phoneField(t, true)
		typeText(f, "900")
		assert.Equal(t, 9, f.GetCursorPos())
		f.DeleteRune()
		assert.Equal(t, "+7 (900) 000-00-00", f.GetContent())
		assert.Equal(t, 7, f.GetCursorPos())
		assert.Equal(t, "900", f.RawText())
	})

	t.Run("clear", func(t *testing.T) {
		f := phoneField(t, true)
		typeText(f, "900")
		f.Clear()
		assert.Equal(t, "", f.GetContent())
		assert.Equal(t, "", f.RawText())
		assert.Equal(t, phoneTemplate, f.GetHint())
	})

	t.Run("paste", func(t *testing.T) {
		f := phoneField(t, true)
		f.Paste("9001234567")
		assert.Equal(t, "+7 (900) 123-45-67", f.GetContent())
		assert.Equal(t, "9001234567", f.RawText())
	})

	t.Run("paste formatted", func(t *testing.T) {
		f := phoneField(t, true)
		f.Paste("+7 (900) 123-45-67")
		assert.Equal(t, "+7 (900) 123-45-67", f.GetContent())
		assert.Equal(t, "9001234567", f.RawText())
		assert.Equal(t, 18, f.GetCursorPos())
	})

	t.Run("cursor snaps to committed end", func(t *testing.T) {
		f := phoneField(t, true)
		typeText(f, "900")
		f.MoveCursorToBeginning()
		assert.Equal(t, 9, f.GetCursorPos())
		f.MoveCursorPastEnd()
		assert.Equal(t, 9, f.GetCursorPos())
	})

	t.Run("corrective writes do not count as edits", func(t *testing.T) {
		f := phoneField(t, true)
		raws := []string{}
		f.OnChange(func(raw string) { raws = append(raws, raw) })

		before := f.SuppressedNotifications()
		typeText(f, "900")
		assert.Equal(t, 3, f.SuppressedNotifications()-before)
		assert.Equal(t, []string{"9", "90", "900"}, raws)
	})

	t.Run("failed configuration keeps field", func(t *testing.T) {
		f := phoneField(t, true)
		typeText(f, "9")
		err := f.Configure("00x", mask.Classification{'0': mask.OneOf("0123456789")}, true)
		assert.Error(t, err)
		assert.Equal(t, "+7 (900) 000-00-00", f.GetContent())
		assert.Equal(t, "9", f.RawText())
	})

	t.Run("reset", func(t *testing.T) {
		f := phoneField(t, true)
		typeText(f, "9")
		f.Reset()
		assert.False(t, f.Configured())
		assert.Equal(t, "", f.GetContent())
		assert.Equal(t, "", f.GetHint())
	})
}

func TestUnconfiguredField(t *testing.T) {
	f := field.New("plain", true)
	typeText(f, "abc")
	assert.Equal(t, "abc", f.GetContent())
	assert.Equal(t, "abc", f.RawText())
	assert.Equal(t, 3, f.CommittedLen())

	f.MoveCursorLeft()
	f.AddRune('x')
	assert.Equal(t, "abxc", f.GetContent())
	assert.Equal(t, 3, f.GetCursorPos())

	f.MoveCursorToBeginning()
	f.DeleteRune()
	assert.Equal(t, "bxc", f.GetContent())
	assert.Equal(t, "bxc", f.RawText())
}

func TestFieldSnapshot(t *testing.T) {
	f := phoneField(t, true)
	typeText(f, "900")

	restored := field.New("phone", false)
	require.NoError(t, restored.Restore(f.Snapshot()))
	assert.Equal(t, f.GetContent(), restored.GetContent())
	assert.Equal(t, 9, restored.GetCursorPos())

	typeText(restored, "1")
	assert.Equal(t, "+7 (900) 100-00-00", restored.GetContent())
	assert.Equal(t, "9001", restored.RawText())

	s := f.Snapshot()
	s.ValidLength = 100
	assert.Error(t, restored.Restore(s))
	assert.Equal(t, "9001", restored.RawText())
}

func TestFieldInputProcessor(t *testing.T) {
	f := phoneField(t, true)
	committed := ""
	f.CommitFn = func(raw string) { committed = raw }
	nexted := false

	p, err := f.CreateInputProcessor(
		map[input.Keyspec]input.Actionspec{
			"<bs>":  "backspace",
			"<c-u>": "clear",
			"<cr>":  "write",
			"<c-n>": "next-mask",
		},
		map[input.Actionspec]func(){
			"next-mask": func() { nexted = true },
		},
	)
	require.NoError(t, err)

	for _, r := range "9001" {
		assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: r}))
	}
	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyBackspace2}))
	assert.Equal(t, "900", f.RawText())

	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyEnter}))
	assert.Equal(t, "900", committed)

	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyCtrlN}))
	assert.True(t, nexted)

	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyCtrlU}))
	assert.Equal(t, "", f.GetContent())

	_, err = f.CreateInputProcessor(map[input.Keyspec]input.Actionspec{"<bs>": "explode"}, nil)
	assert.Error(t, err)
}
