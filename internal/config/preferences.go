package config

import (
	"fmt"
	"log/slog"

	"github.com/cpucat/cpucat/internal/models"
)

// Autostart is the OS login item registration.
type Autostart interface {
	Enabled() (bool, error)
	SetEnabled(enable bool) error
}

// ThemeSource supplies the theme used when none is stored.
type ThemeSource interface {
	Default() models.Theme
}

// Preferences exposes the user's choices on top of a Store. Run on start
// is read from and written to the OS registration, never the file.
type Preferences struct {
	store       *Store
	autostart   Autostart
	system      ThemeSource
	defaultIcon string
}

// NewPreferences creates preferences backed by store. defaultIcon is
// returned while no icon has been chosen.
func NewPreferences(store *Store, autostart Autostart, system ThemeSource, defaultIcon string) *Preferences {
	return &Preferences{
		store:       store,
		autostart:   autostart,
		system:      system,
		defaultIcon: defaultIcon,
	}
}

// Store returns the underlying settings store.
func (p *Preferences) Store() *Store {
	return p.store
}

// Icon returns the chosen icon family.
func (p *Preferences) Icon() string {
	if v, ok := p.store.GetString(KeyIcon); ok && v != "" {
		return v
	}
	return p.defaultIcon
}

// SetIcon persists the chosen icon family.
func (p *Preferences) SetIcon(name string) error {
	if err := Validate(KeyIcon, name); err != nil {
		return err
	}
	return p.store.SetString(KeyIcon, name)
}

// Theme returns the stored theme, or the system default when none is
// stored or the stored value is invalid.
func (p *Preferences) Theme() models.Theme {
	if v, ok := p.store.GetString(KeyTheme); ok {
		theme, err := models.ParseTheme(v)
		if err == nil {
			return theme
		}
		slog.Warn("Ignoring invalid stored theme", "component", "config", "value", v)
	}
	return p.system.Default()
}

// StoredTheme returns the theme explicitly chosen by the user, if any.
func (p *Preferences) StoredTheme() (models.Theme, bool) {
	v, ok := p.store.GetString(KeyTheme)
	if !ok {
		return 0, false
	}
	theme, err := models.ParseTheme(v)
	if err != nil {
		return 0, false
	}
	return theme, true
}

// SetTheme persists theme. nil clears the choice so the system default
// applies again.
func (p *Preferences) SetTheme(theme *models.Theme) error {
	if theme == nil {
		return p.store.Unset(KeyTheme)
	}
	if !theme.Valid() {
		return fmt.Errorf("%w: %d", models.ErrInvalidTheme, int(*theme))
	}
	return p.store.SetString(KeyTheme, theme.String())
}

// RunOnStart reports whether the login item is registered.
func (p *Preferences) RunOnStart() (bool, error) {
	return p.autostart.Enabled()
}

// SetRunOnStart registers or removes the login item.
func (p *Preferences) SetRunOnStart(enable bool) error {
	return p.autostart.SetEnabled(enable)
}

// Reload re-reads the settings file and reports whether it changed.
func (p *Preferences) Reload() (bool, error) {
	return p.store.Reload()
}
