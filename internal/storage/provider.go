// Package storage persists the state of a masked input field between runs.
package storage

import (
	"github.com/ja-he/maskedinput/internal/mask"
)

// State is the persisted state of the TUI's field.
type State struct {
	// MaskName is the name of the configured mask the field was using, empty
	// if it had none.
	MaskName string        `yaml:"mask,omitempty"`
	Field    mask.Snapshot `yaml:"field"`
}

// StateProvider loads and saves a State.
type StateProvider interface {
	// Load returns the stored state, or nil if none has been stored yet.
	Load() (*State, error)
	Save(State) error
}
