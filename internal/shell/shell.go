// Package shell abstracts the platform tray: icon, tooltip, context menu
// and the native UI loop.
package shell

import (
	"errors"

	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/events"
)

// ErrUnsupported is returned by operations a shell cannot perform.
var ErrUnsupported = errors.New("not supported by this shell")

// Capabilities describes optional shell behaviour.
type Capabilities struct {
	// ShowMenu is set when the context menu must be opened explicitly.
	ShowMenu bool
	// TemplateIcons is set when the tray tints template icons itself.
	TemplateIcons bool
}

// Shell is the tray the rest of the application draws into. Mutators may be
// called from any goroutine once onReady has run; each failure is
// independent and non-fatal.
type Shell interface {
	// Run blocks on the native UI loop. It must be called from the main
	// goroutine. onReady runs once the tray exists, onExit after Quit.
	Run(onReady, onExit func())
	Quit()

	SetIcon(frame catalog.Frame) error
	SetTooltip(text string) error
	SetMenu(menu Menu) error
	ShowMenu() error

	Capabilities() Capabilities
}

// Publisher receives the events of clicked menu items.
type Publisher interface {
	Publish(ev events.Event) bool
}
