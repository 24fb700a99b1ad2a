// Package controller consumes user actions one at a time and applies them
// to the shared selection, the persisted preferences and the tray menu.
package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/events"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/shell"
	"github.com/cpucat/cpucat/internal/state"
)

// Icons is the catalog as seen by the controller.
type Icons interface {
	MenuSource
	Has(name string) bool
}

// Preferences persists the user's choices.
type Preferences interface {
	Icon() string
	SetIcon(name string) error
	Theme() models.Theme
	SetTheme(theme *models.Theme) error
	RunOnStart() (bool, error)
	SetRunOnStart(enable bool) error
	Reload() (bool, error)
}

// Tray is the part of the shell the controller drives.
type Tray interface {
	SetMenu(menu shell.Menu) error
	ShowMenu() error
	Quit()
	Capabilities() shell.Capabilities
}

// Dialogs shows modal messages.
type Dialogs interface {
	ShowDialog(message, title string) error
}

// Launcher opens the OS system monitor.
type Launcher interface {
	OpenSystemMonitor() error
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Queue      *events.Queue
	State      *state.Selection
	Icons      Icons
	Prefs      Preferences
	Tray       Tray
	Dialogs    Dialogs
	Launcher   Launcher
	Dispatcher shell.Dispatcher
}

// Controller is the single consumer of the event queue.
type Controller struct {
	deps   Deps
	logger *slog.Logger
}

// New creates a controller. A nil dispatcher runs UI calls inline.
func New(deps Deps) *Controller {
	if deps.Dispatcher == nil {
		deps.Dispatcher = shell.Immediate{}
	}
	return &Controller{
		deps:   deps,
		logger: slog.With("component", "controller"),
	}
}

// AboutText is the body of the About dialog.
func AboutText() string {
	return fmt.Sprintf("%s version %s (Git: %s)\nProject Page: %s",
		buildinfo.AppName, buildinfo.Version, buildinfo.CommitHash, buildinfo.ProjectPage)
}

// Run draws the initial menu and handles events in arrival order. It
// returns after handling Exit, once the queue is stopped, or when ctx ends.
func (c *Controller) Run(ctx context.Context) error {
	c.rebuildMenu()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.deps.Queue.Done():
			return nil
		case ev := <-c.deps.Queue.C():
			if c.handle(ev) {
				return nil
			}
		}
	}
}

// handle applies ev and reports whether the controller must stop.
func (c *Controller) handle(ev events.Event) bool {
	if c.deps.State.ExitRequested() {
		c.logger.Debug("Ignoring event after exit", "event", ev)
		return true
	}

	c.logger.Debug("Handling event", "event", ev)

	switch ev.Kind {
	case events.Exit:
		c.exit()
		return true
	case events.SetTheme:
		c.setTheme(ev.Theme)
	case events.SetIcon:
		c.setIcon(ev.Icon)
	case events.ToggleRunOnStart:
		c.toggleRunOnStart()
	case events.ShowAbout:
		c.showDialog(AboutText(), "About "+buildinfo.AppName)
	case events.OpenSystemMonitor:
		c.openSystemMonitor()
	case events.ShowMenu:
		c.showMenu()
	case events.ReloadSettings:
		c.reloadSettings()
	default:
		c.logger.Warn("Unknown event", "event", ev)
	}
	return false
}

func (c *Controller) exit() {
	if c.deps.State.RequestExit() {
		c.logger.Info("Exit requested")
	}
	c.deps.Queue.Stop()
	c.deps.Tray.Quit()
}

func (c *Controller) setTheme(theme models.Theme) {
	if !theme.Valid() {
		c.logger.Warn("Ignoring invalid theme", "theme", theme)
		return
	}
	if err := c.deps.Prefs.SetTheme(&theme); err != nil {
		c.logger.Warn("Failed to persist theme", "theme", theme, "error", err)
	}
	c.deps.State.SetTheme(theme)
	c.rebuildMenu()
}

func (c *Controller) setIcon(name string) {
	if !c.selectable(name) {
		c.logger.Warn("Ignoring unknown icon", "icon", name)
		return
	}
	if err := c.deps.Prefs.SetIcon(name); err != nil {
		c.logger.Warn("Failed to persist icon", "icon", name, "error", err)
	}
	c.deps.State.SetIcon(name)
	c.rebuildMenu()
}

func (c *Controller) selectable(name string) bool {
	return name != catalog.SleepIcon && c.deps.Icons.Has(name)
}

func (c *Controller) toggleRunOnStart() {
	enabled, err := c.deps.Prefs.RunOnStart()
	if err != nil {
		c.logger.Warn("Failed to read run on start", "error", err)
		return
	}
	if err := c.deps.Prefs.SetRunOnStart(!enabled); err != nil {
		c.logger.Warn("Failed to change run on start", "enable", !enabled, "error", err)
		c.showDialog(fmt.Sprintf("Could not change Run on Start: %v", err), buildinfo.AppName)
	}
	c.rebuildMenu()
}

func (c *Controller) openSystemMonitor() {
	if err := c.deps.Launcher.OpenSystemMonitor(); err != nil {
		c.logger.Warn("Failed to open system monitor", "error", err)
		c.showDialog(fmt.Sprintf("Failed to open system monitor: %v", err), buildinfo.AppName)
	}
}

func (c *Controller) showMenu() {
	if !c.deps.Tray.Capabilities().ShowMenu {
		c.logger.Debug("Tray opens its menu by itself")
		return
	}
	tray := c.deps.Tray
	c.deps.Dispatcher.Dispatch(func() {
		if err := tray.ShowMenu(); err != nil {
			c.logger.Warn("Failed to show menu", "error", err)
		}
	})
}

// reloadSettings applies preferences changed on disk.
func (c *Controller) reloadSettings() {
	changed, err := c.deps.Prefs.Reload()
	if err != nil {
		c.logger.Warn("Failed to reload settings", "error", err)
		return
	}
	if !changed {
		return
	}

	if icon := c.deps.Prefs.Icon(); c.selectable(icon) {
		c.deps.State.SetIcon(icon)
	} else {
		c.logger.Warn("Ignoring unknown icon from settings", "icon", icon)
	}
	c.deps.State.SetTheme(c.deps.Prefs.Theme())

	c.logger.Info("Settings reloaded", "icon", c.deps.State.Icon(), "theme", c.deps.State.Theme())
	c.rebuildMenu()
}

func (c *Controller) showDialog(message, title string) {
	if err := c.deps.Dialogs.ShowDialog(message, title); err != nil {
		c.logger.Warn("Failed to show dialog", "title", title, "error", err)
	}
}

// rebuildMenu requeries every input so the menu never shows stale data.
func (c *Controller) rebuildMenu() {
	runOnStart, err := c.deps.Prefs.RunOnStart()
	if err != nil {
		c.logger.Warn("Failed to read run on start", "error", err)
	}
	menu := BuildMenu(c.deps.State.Snapshot(), c.deps.Icons, runOnStart)

	tray := c.deps.Tray
	ok := c.deps.Dispatcher.Dispatch(func() {
		if err := tray.SetMenu(menu); err != nil {
			c.logger.Warn("Failed to set menu", "error", err)
		}
	})
	if !ok {
		c.logger.Warn("UI busy, dropped menu update")
	}
}
