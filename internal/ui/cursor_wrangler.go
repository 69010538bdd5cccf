package ui

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// CursorWrangler collects the panes' requests to place the text cursor during
// a draw and enacts the result once drawing is done.
type CursorWrangler struct {
	mtx sync.RWMutex

	cc TextCursorController

	desiredLocation *CursorLocation
	requester       PaneID
}

// NewCursorWrangler creates a new CursorWrangler.
func NewCursorWrangler(controller TextCursorController) *CursorWrangler {
	return &CursorWrangler{cc: controller}
}

// Put requests the cursor at the given location.
func (w *CursorWrangler) Put(l CursorLocation, requester PaneID) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.desiredLocation != nil && w.requester != requester {
		log.Warn().Msgf("pane %d puts cursor at %s, overriding pane %d (at %s)", requester, l.String(), w.requester, w.desiredLocation.String())
	}

	w.desiredLocation = &l
	w.requester = requester
}

// Delete withdraws the given pane's cursor request.
// Requests of other panes are unaffected.
func (w *CursorWrangler) Delete(requester PaneID) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.desiredLocation == nil || w.requester != requester {
		return
	}

	w.desiredLocation = nil
	w.requester = NonePaneID
}

// Enact enacts the current cursor location request via the underlying
// cursor controller.
func (w *CursorWrangler) Enact() {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	if w.desiredLocation != nil {
		w.cc.ShowCursor(*w.desiredLocation)
	} else {
		w.cc.HideCursor()
	}
}
