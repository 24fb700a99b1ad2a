// Package state holds the selection record shared between the animation
// engine and the event controller.
package state

import (
	"sync"
	"sync/atomic"

	"github.com/cpucat/cpucat/internal/models"
)

// Snapshot is a copy of the selection taken under the lock.
type Snapshot struct {
	Icon  string
	Theme models.Theme
}

// Selection is the concurrently read and written record of the active icon
// family, theme and exit flag.
//
// Critical sections only copy values; callers must never perform platform
// calls while holding the lock, so none of the methods take callbacks.
type Selection struct {
	mu    sync.RWMutex
	icon  string
	theme models.Theme

	exit atomic.Bool
}

// New creates a selection with the given initial values.
func New(icon string, theme models.Theme) *Selection {
	return &Selection{icon: icon, theme: theme}
}

// Snapshot returns the current icon and theme.
func (s *Selection) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Icon: s.icon, Theme: s.theme}
}

// Icon returns the active icon family.
func (s *Selection) Icon() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.icon
}

// Theme returns the active theme.
func (s *Selection) Theme() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetIcon replaces the active icon family.
func (s *Selection) SetIcon(icon string) {
	s.mu.Lock()
	s.icon = icon
	s.mu.Unlock()
}

// SetTheme replaces the active theme.
func (s *Selection) SetTheme(theme models.Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

// RequestExit sets the exit flag. The flag is never cleared. It reports
// whether this call was the one that set it.
func (s *Selection) RequestExit() bool {
	return s.exit.CompareAndSwap(false, true)
}

// ExitRequested reports whether shutdown has been requested.
func (s *Selection) ExitRequested() bool {
	return s.exit.Load()
}
