// Package state persists display state across restarts as a small JSON
// file, written atomically so a crash mid-write cannot corrupt it.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/pkg/models"
)

// Manager owns the display state. All reads and mutations go through it;
// every mutation is saved before the call returns.
type Manager struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	state models.DisplayState
}

// NewManager loads persisted state from path. A missing or unreadable
// file yields the default state rather than an error; the display should
// come up even if its state file was lost.
func NewManager(path string, logger *zap.Logger) *Manager {
	m := &Manager{path: path, logger: logger, state: models.DefaultDisplayState()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read state file, using defaults",
				zap.String("path", path), zap.Error(err))
		}
		return m
	}

	var loaded models.DisplayState
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("Corrupt state file, using defaults",
			zap.String("path", path), zap.Error(err))
		return m
	}
	if !models.ValidMode(loaded.Mode) {
		loaded.Mode = models.ModeManual
	}
	m.state = loaded
	return m
}

// Get returns a copy of the current state.
func (m *Manager) Get() models.DisplayState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Update applies fn to the state and persists the result. fn runs under
// the manager lock and must not call back into the manager.
func (m *Manager) Update(fn func(*models.DisplayState)) (models.DisplayState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(&m.state)
	if err := m.save(); err != nil {
		return m.state, err
	}
	return m.state, nil
}

// save writes the state to a temp file and renames it into place.
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
