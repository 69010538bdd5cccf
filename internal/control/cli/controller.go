package cli

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/maskedinput/internal/config"
	"github.com/ja-he/maskedinput/internal/field"
	"github.com/ja-he/maskedinput/internal/input"
	"github.com/ja-he/maskedinput/internal/mask"
	"github.com/ja-he/maskedinput/internal/potatolog"
	"github.com/ja-he/maskedinput/internal/storage"
	"github.com/ja-he/maskedinput/internal/styling"
	"github.com/ja-he/maskedinput/internal/tui"
	"github.com/ja-he/maskedinput/internal/ui"
	"github.com/ja-he/maskedinput/internal/ui/panes"
)

// Controller runs the TUI: it owns the field and the panes and translates
// screen events into input for them.
type Controller struct {
	// mtx guards the field (and active mask) against concurrent input
	// processing and drawing.
	mtx sync.Mutex

	field *field.Field

	masks    []config.Mask
	compiled []*mask.Mask
	// active is the index of the active mask, -1 if the field is unmasked.
	active int

	rootPane *panes.RootPane

	screen           *tui.ScreenHandler
	stateProvider    storage.StateProvider
	controllerEvents chan controllerEvent

	pasting     bool
	pasteBuffer []rune
}

// NewController creates a new Controller.
//
// Configured masks that do not compile are skipped.
// The field starts out with the named mask if given; otherwise the stored
// state is restored, if any, falling back to the first mask.
func NewController(
	configData config.Config,
	stylesheet styling.Stylesheet,
	screen *tui.ScreenHandler,
	stateProvider storage.StateProvider,
	initialMask string,
	logReader potatolog.LogReader,
) (*Controller, error) {
	c := &Controller{
		field:            field.New("field", true),
		active:           -1,
		screen:           screen,
		stateProvider:    stateProvider,
		controllerEvents: make(chan controllerEvent, 32),
	}

	for _, m := range configData.Masks {
		compiled, err := m.Compile()
		if err != nil {
			log.Warn().Err(err).Str("mask", m.Name).Msg("skipping invalid mask")
			continue
		}
		c.masks = append(c.masks, m)
		c.compiled = append(c.compiled, compiled)
	}
	if initialMask != "" && c.maskIndex(initialMask) == -1 {
		return nil, fmt.Errorf("no (valid) mask named '%s'", initialMask)
	}

	c.field.CommitFn = func(raw string) {
		log.Info().Str("raw", raw).Msg("committed")
		c.saveState()
	}
	c.field.QuitCallback = func() {
		c.saveState()
		c.controllerEvents <- controllerEventExit
	}
	c.field.OnChange(func(raw string) {
		log.Debug().Str("raw", raw).Msg("field changed")
	})

	c.initField(initialMask)

	processor, err := c.field.CreateInputProcessor(
		configData.Input.Field,
		map[input.Actionspec]func(){
			"reset":     c.reset,
			"next-mask": c.nextMask,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not set up input for field (%w)", err)
	}

	screenDimensions := screen.Dimensions
	fieldDimensions := func() (x, y, w, h int) {
		_, _, w, _ = screenDimensions()
		return 0, 0, w, 5
	}
	masksDimensions := func() (x, y, w, h int) {
		_, _, w, _ = screenDimensions()
		return 0, 6, w, len(c.masks)
	}
	helpDimensions := func() (x, y, w, h int) {
		_, _, w, h = screenDimensions()
		return 0, h - 4, w, 3
	}
	statusDimensions := func() (x, y, w, h int) {
		_, _, w, h = screenDimensions()
		return 0, h - 1, w, 1
	}

	cursorWrangler := ui.NewCursorWrangler(screen)
	fieldPane := panes.NewFieldPane(
		ui.NewConstrainedRenderer(screen, fieldDimensions),
		fieldDimensions,
		stylesheet,
		processor,
		c.field,
		c.label,
		cursorWrangler,
	)
	c.rootPane = panes.NewRootPane(
		screen,
		cursorWrangler,
		screenDimensions,
		fieldPane,
		fieldPane,
		panes.NewMasksPane(ui.NewConstrainedRenderer(screen, masksDimensions), masksDimensions, stylesheet, c.maskNames, c.activeMask),
		panes.NewHelpPane(ui.NewConstrainedRenderer(screen, helpDimensions), helpDimensions, stylesheet, nil, processor.GetHelp),
		panes.NewStatusPane(ui.NewConstrainedRenderer(screen, statusDimensions), statusDimensions, stylesheet, logReader),
	)

	return c, nil
}

// initField sets up the field with the named mask, or, if none is named, from
// the stored state.
func (c *Controller) initField(initialMask string) {
	if initialMask != "" {
		c.activate(c.maskIndex(initialMask))
		return
	}

	state, err := c.stateProvider.Load()
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("could not load state, starting fresh")
	case state != nil:
		err = c.field.Restore(state.Field)
		if err != nil {
			log.Warn().Err(err).Msg("could not restore state, starting fresh")
			break
		}
		c.active = c.maskIndex(state.MaskName)
		log.Info().Str("mask", state.MaskName).Str("raw", c.field.RawText()).Msg("restored state")
		return
	}

	if len(c.masks) > 0 {
		c.activate(0)
	}
}

func (c *Controller) maskIndex(name string) int {
	for i, m := range c.masks {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func (c *Controller) activate(i int) {
	c.active = i
	c.field.ConfigureMask(c.compiled[i], c.masks[i].ShowsHint())
	log.Info().Str("mask", c.masks[i].Name).Msg("using mask")
}

func (c *Controller) nextMask() {
	if len(c.masks) == 0 {
		return
	}
	c.activate((c.active + 1) % len(c.masks))
}

func (c *Controller) reset() {
	c.active = -1
	c.field.Reset()
	log.Info().Msg("removed mask")
}

func (c *Controller) label() string {
	if c.active < 0 {
		if c.field.Configured() {
			return fmt.Sprintf("(restored)  %s", c.field.Mask().Template())
		}
		return "(no mask)"
	}
	return fmt.Sprintf("%s  %s", c.masks[c.active].Name, c.masks[c.active].Template)
}

func (c *Controller) maskNames() []string {
	names := make([]string, len(c.masks))
	for i, m := range c.masks {
		names[i] = m.Name
	}
	return names
}

func (c *Controller) activeMask() int { return c.active }

func (c *Controller) saveState() {
	state := storage.State{Field: c.field.Snapshot()}
	if c.active >= 0 {
		state.MaskName = c.masks[c.active].Name
	}
	err := c.stateProvider.Save(state)
	if err != nil {
		log.Error().Err(err).Msg("could not save state")
	}
}

// RawText returns the raw text of the field.
func (c *Controller) RawText() string {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.field.RawText()
}

type controllerEvent int

const (
	controllerEventExit controllerEvent = iota
	controllerEventRender
)

// Empties all render events from the channel.
// Returns true, if an exit event was encountered so the caller
// knows to exit.
func emptyRenderEvents(c chan controllerEvent) bool {
	for {
		select {
		case bufferedEvent := <-c:
			if bufferedEvent == controllerEventExit {
				return true
			}
		default:
			return false
		}
	}
}

// Run runs the TUI until the field is quit.
func (c *Controller) Run() {
	log.Info().Msg("maskedinput TUI started")

	var wg sync.WaitGroup

	// Run the main render loop, that renders or exits when prompted accordingly
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer c.screen.Fini()
		for controllerEvent := range c.controllerEvents {
			switch controllerEvent {
			case controllerEventRender:
				if emptyRenderEvents(c.controllerEvents) {
					return
				}
				c.mtx.Lock()
				c.rootPane.Draw()
				c.mtx.Unlock()

			case controllerEventExit:
				return
			}
		}
	}()

	// Run the event loop, that waits for and processes events and pings for a
	// redraw after each event.
	go func() {
		for {
			ev := c.screen.GetEventPollable().PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			c.mtx.Lock()
			c.handleEvent(ev)
			c.mtx.Unlock()
			c.controllerEvents <- controllerEventRender
		}
	}()

	c.controllerEvents <- controllerEventRender
	wg.Wait()
}

func (c *Controller) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			c.pasting = true
			c.pasteBuffer = c.pasteBuffer[:0]
		} else {
			c.pasting = false
			c.field.Paste(string(c.pasteBuffer))
		}

	case *tcell.EventKey:
		key := input.KeyFromEvent(e)
		if c.pasting {
			if key.Key == tcell.KeyRune {
				c.pasteBuffer = append(c.pasteBuffer, key.Ch)
			}
			return
		}
		if !c.rootPane.ProcessInput(key) {
			log.Warn().Str("key", key.ToDebugString()).Msg("could not apply key input")
		}

	case *tcell.EventResize:
		c.screen.NeedsSync()
	}
}
