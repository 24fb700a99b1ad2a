// Package events defines the user actions emitted by the tray shell and the
// ordered queue the event controller consumes them from.
package events

import (
	"fmt"

	"github.com/cpucat/cpucat/internal/models"
)

// Kind identifies a user action.
type Kind int

// Action kinds.
const (
	// None is the zero Kind; menu entries carrying it publish nothing.
	None Kind = iota
	Exit
	SetTheme
	SetIcon
	ToggleRunOnStart
	ShowAbout
	OpenSystemMonitor
	ShowMenu
	ReloadSettings // settings file changed on disk
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Exit:
		return "exit"
	case SetTheme:
		return "set-theme"
	case SetIcon:
		return "set-icon"
	case ToggleRunOnStart:
		return "toggle-run-on-start"
	case ShowAbout:
		return "show-about"
	case OpenSystemMonitor:
		return "open-system-monitor"
	case ShowMenu:
		return "show-menu"
	case ReloadSettings:
		return "reload-settings"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single user action. Theme is set for SetTheme, Icon for SetIcon.
type Event struct {
	Kind  Kind
	Theme models.Theme
	Icon  string
}

// String formats the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case SetTheme:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Theme)
	case SetIcon:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Icon)
	default:
		return e.Kind.String()
	}
}

// Of returns an event of a kind that carries no payload.
func Of(kind Kind) Event {
	return Event{Kind: kind}
}

// Theme returns a SetTheme event.
func Theme(theme models.Theme) Event {
	return Event{Kind: SetTheme, Theme: theme}
}

// Icon returns a SetIcon event.
func Icon(name string) Event {
	return Event{Kind: SetIcon, Icon: name}
}
