// Package autostart registers the application to run when the user logs in.
package autostart

import (
	"fmt"
	"os"
)

// Manager toggles the login item for one executable.
type Manager struct {
	appName string
	exe     func() (string, error)

	// dir overrides the per-user directory holding file based entries.
	dir string
}

// New creates a manager for appName pointing at the running executable.
func New(appName string) *Manager {
	return &Manager{appName: appName, exe: os.Executable}
}

// Enabled reports whether the login item is registered.
func (m *Manager) Enabled() (bool, error) {
	return m.enabled()
}

// SetEnabled registers or removes the login item.
func (m *Manager) SetEnabled(enable bool) error {
	if !enable {
		return m.disable()
	}
	exe, err := m.exe()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return m.enable(exe)
}
