package sysinfo

import (
	"context"
	"sync"
	"time"

	"github.com/cpucat/cpucat/internal/models"
)

const (
	// themeCacheTTL bounds how often the desktop appearance is queried.
	themeCacheTTL = 30 * time.Second
	// themeQueryTimeout bounds a single platform query.
	themeQueryTimeout = 2 * time.Second
)

// ThemeDetector reports the desktop appearance. Lookups never wait on the
// platform: an expired answer is served while a refresh runs in the
// background, so Auto themes can be resolved from the animation tick.
type ThemeDetector struct {
	isDark func(ctx context.Context) bool
	now    func() time.Time

	mu         sync.Mutex
	dark       bool
	expires    time.Time
	refreshing bool
}

// NewThemeDetector creates a detector backed by the platform query. Call
// Refresh once before the first lookup to seed the answer.
func NewThemeDetector() *ThemeDetector {
	return &ThemeDetector{isDark: darkModeEnabled, now: time.Now}
}

// Refresh queries the platform synchronously, bounded by a short timeout,
// and caches the answer.
func (d *ThemeDetector) Refresh(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, themeQueryTimeout)
	defer cancel()
	dark := d.isDark(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.dark = dark
	d.expires = d.now().Add(themeCacheTTL)
	return dark
}

// Dark reports whether the desktop uses a dark appearance.
func (d *ThemeDetector) Dark() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.refreshing && !d.now().Before(d.expires) {
		d.refreshing = true
		go d.refreshAsync()
	}
	return d.dark
}

func (d *ThemeDetector) refreshAsync() {
	d.Refresh(context.Background())

	d.mu.Lock()
	d.refreshing = false
	d.mu.Unlock()
}

// Resolved returns Dark or Light for the current desktop appearance.
func (d *ThemeDetector) Resolved() models.Theme {
	if d.Dark() {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// Default returns the theme used when the user has not chosen one.
func (d *ThemeDetector) Default() models.Theme {
	if templateIcons {
		return models.ThemeAuto
	}
	return d.Resolved()
}
