package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/maskedinput/internal/config"
	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/mask"
	"github.com/ja-he/maskedinput/internal/potatolog"
	"github.com/ja-he/maskedinput/internal/storage"
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/tui"
)

func TestReplay(t *testing.T) {
	configData := config.Default(config.Dark)

	for _, tc := range []struct {
		name     string
		mask     string
		showHint bool
		paste    string
		keys     string
		expected string
	}{
		{
			name:     "typing and backspacing",
			mask:     "phone",
			showHint: true,
			keys:     "9001234567<bs><bs><bs>890",
			expected: "text:  +7 (900) 123-48-90\nraw:   9001234890\nvalid: 17\n",
		},
		{
			name:     "without hint",
			mask:     "phone",
			showHint: false,
			keys:     "900",
			expected: "text:  +7 (900) \nraw:   900\nvalid: 8\n",
		},
		{
			name:     "rejected rune",
			mask:     "date",
			showHint: true,
			keys:     "01x",
			expected: "text:  01.00.0000\nraw:   01\nvalid: 2\n",
		},
		{
			name:     "paste",
			mask:     "plate",
			showHint: true,
			paste:    "А123ВС777",
			expected: "text:  А 123 ВС 777\nraw:   А123ВС777\nvalid: 11\n",
		},
		{
			name:     "formatted paste",
			mask:     "phone",
			showHint: true,
			paste:    "+7 (900) 123-45-67",
			expected: "text:  +7 (900) 123-45-67\nraw:   9001234567\nvalid: 17\n",
		},
		{
			name:     "clear",
			mask:     "date",
			showHint: true,
			keys:     "0112<c-u>",
			expected: "text:  \nraw:   \nvalid: -1\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			err := replay(out, configData, tc.mask, tc.showHint, tc.paste, input.Keyspec(tc.keys))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
		})
	}

	t.Run("unknown mask", func(t *testing.T) {
		assert.Error(t, replay(&bytes.Buffer{}, configData, "zip", true, "", ""))
	})
	t.Run("invalid keys", func(t *testing.T) {
		assert.Error(t, replay(&bytes.Buffer{}, configData, "phone", true, "", "<bs"))
	})
}

func TestListMasks(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, listMasks(out, config.Default(config.Light).Masks))
	assert.Contains(t, out.String(), "phone")
	assert.Contains(t, out.String(), "+7 (000) 000-00-00")
	assert.Contains(t, out.String(), "10")

	out.Reset()
	masks := append(config.Default(config.Light).Masks, config.Mask{Name: "broken", Template: "0x", Symbols: map[string]string{"0": "0123456789"}})
	err := listMasks(out, masks)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "broken")
	assert.Contains(t, out.String(), "invalid")
	assert.Contains(t, out.String(), "date")
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MASKEDINPUT_HOME", dir+"/")
	assert.Equal(t, dir, homeDir())

	configData, err := readConfig(homeDir(), config.Light)
	require.NoError(t, err)
	assert.Equal(t, config.Default(config.Light), configData)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("masks:\n  - name: pin\n    template: \"0000\"\n    symbols:\n      \"0\": \"0123456789\"\n"), 0644))
	configData, err = readConfig(homeDir(), config.Light)
	require.NoError(t, err)
	_, ok := configData.MaskByName("pin")
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("masks: [}"), 0644))
	_, err = readConfig(homeDir(), config.Light)
	assert.Error(t, err)
}

func newTestController(t *testing.T, statePath string, initialMask string) (*Controller, tcell.SimulationScreen) {
	screen := tcell.NewSimulationScreen("UTF-8")
	handler, err := tui.NewScreenHandler(screen)
	require.NoError(t, err)
	screen.SetSize(60, 20)

	stylesheet, err := styling.NewStylesheetFromConfig(config.Default(config.Dark).Stylesheet)
	require.NoError(t, err)

	c, err := NewController(
		config.Default(config.Dark),
		*stylesheet,
		handler,
		storage.NewStateFile(statePath),
		initialMask,
		&potatolog.MemoryLogReaderWriter{},
	)
	require.NoError(t, err)
	return c, screen
}

func runWithEvents(t *testing.T, c *Controller, screen tcell.SimulationScreen, events ...tcell.Event) {
	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()
	for _, ev := range events {
		screen.PostEventWait(ev)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("TUI did not quit")
	}
}

func runes(s string) []tcell.Event {
	events := []tcell.Event{}
	for _, r := range s {
		events = append(events, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return events
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestController(t *testing.T) {

	t.Run("typing and quitting saves state", func(t *testing.T) {
		statePath := filepath.Join(t.TempDir(), "state.yaml")
		c, screen := newTestController(t, statePath, "date")

		runWithEvents(t, c, screen, append(runes("0112"), key(tcell.KeyESC))...)
		assert.Equal(t, "0112", c.RawText())

		state, err := storage.NewStateFile(statePath).Load()
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "date", state.MaskName)
		assert.Equal(t, "01.12.0000", state.Field.Text)
		assert.Equal(t, 5, state.Field.ValidLength)

		restored, _ := newTestController(t, statePath, "")
		assert.Equal(t, "0112", restored.RawText())
		assert.Equal(t, "date", restored.maskNames()[restored.activeMask()])
	})

	t.Run("named mask overrides state", func(t *testing.T) {
		statePath := filepath.Join(t.TempDir(), "state.yaml")
		require.NoError(t, storage.NewStateFile(statePath).Save(storage.State{MaskName: "x", Field: mask.Snapshot{Text: "junk"}}))

		c, _ := newTestController(t, statePath, "plate")
		assert.Equal(t, "", c.RawText())
		assert.Equal(t, "plate  A 000 AA 000", c.label())
	})

	t.Run("paste", func(t *testing.T) {
		statePath := filepath.Join(t.TempDir(), "state.yaml")
		c, screen := newTestController(t, statePath, "date")

		events := []tcell.Event{tcell.NewEventPaste(true)}
		events = append(events, runes("01122023")...)
		events = append(events, tcell.NewEventPaste(false), key(tcell.KeyESC))
		runWithEvents(t, c, screen, events...)

		assert.Equal(t, "01122023", c.RawText())
	})

	t.Run("switching masks and resetting", func(t *testing.T) {
		statePath := filepath.Join(t.TempDir(), "state.yaml")
		c, screen := newTestController(t, statePath, "phone")

		events := append([]tcell.Event{key(tcell.KeyCtrlN)}, runes("01")...)
		events = append(events, key(tcell.KeyCR))
		runWithEvents(t, c, screen, append(events, key(tcell.KeyESC))...)
		assert.Equal(t, "01", c.RawText())
		assert.Equal(t, "date", c.maskNames()[c.activeMask()])

		c, screen = newTestController(t, statePath, "phone")
		events = append([]tcell.Event{key(tcell.KeyCtrlR)}, runes("ab")...)
		runWithEvents(t, c, screen, append(events, key(tcell.KeyESC))...)
		assert.Equal(t, "ab", c.RawText())
		assert.Equal(t, -1, c.activeMask())
		assert.Equal(t, "(no mask)", c.label())

		state, err := storage.NewStateFile(statePath).Load()
		require.NoError(t, err)
		assert.False(t, state.Field.Configured)
		assert.Equal(t, "", state.MaskName)
	})

	t.Run("unknown mask", func(t *testing.T) {
		screen := tcell.NewSimulationScreen("UTF-8")
		handler, err := tui.NewScreenHandler(screen)
		require.NoError(t, err)
		defer handler.Fini()
		stylesheet, err := styling.NewStylesheetFromConfig(config.Default(config.Dark).Stylesheet)
		require.NoError(t, err)

		_, err = NewController(config.Default(config.Dark), *stylesheet, handler, storage.NewStateFile(filepath.Join(t.TempDir(), "s.yaml")), "zip", &potatolog.MemoryLogReaderWriter{})
		assert.Error(t, err)
	})
}
