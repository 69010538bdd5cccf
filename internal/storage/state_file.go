package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// StateFile is a StateProvider backed by a YAML file.
type StateFile struct {
	mutex sync.Mutex

	path string
}

// NewStateFile returns a StateFile for the given path.
// The file need not exist yet.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Path returns the path of the file.
func (f *StateFile) Path() string { return f.path }

// Load reads the state from the file.
// A missing file is not an error; there simply is no state yet.
func (f *StateFile) Load() (*State, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", f.path).Msg("no state file, starting fresh")
			return nil, nil
		}
		return nil, fmt.Errorf("could not read state file '%s' (%w)", f.path, err)
	}

	state := State{}
	err = yaml.Unmarshal(data, &state)
	if err != nil {
		return nil, fmt.Errorf("could not parse state file '%s' (%w)", f.path, err)
	}
	return &state, nil
}

// Save writes the state to the file, creating its directory if needed.
func (f *StateFile) Save(state State) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal state (%w)", err)
	}

	err = os.MkdirAll(filepath.Dir(f.path), 0755)
	if err != nil {
		return fmt.Errorf("could not create directory for state file '%s' (%w)", f.path, err)
	}

	tmpPath := f.path + ".tmp"
	err = os.WriteFile(tmpPath, data, 0644)
	if err != nil {
		return fmt.Errorf("could not write state file '%s' (%w)", tmpPath, err)
	}
	err = os.Rename(tmpPath, f.path)
	if err != nil {
		return fmt.Errorf("could not move state file into place at '%s' (%w)", f.path, err)
	}

	log.Debug().Str("path", f.path).Msg("saved state")
	return nil
}
