package controller

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cpucat/cpucat/internal/events"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/shell"
	"github.com/cpucat/cpucat/internal/state"
)

// Menu titles.
const (
	MenuTheme         = "Theme"
	MenuIcon          = "Icon"
	MenuRunOnStart    = "Run on Start"
	MenuSystemMonitor = "System Monitor"
	MenuAbout         = "About"
	MenuExit          = "Exit"
)

// MenuSource is the catalog data the menu lists.
type MenuSource interface {
	AvailableIcons() []string
	AvailableThemes(name string) []models.Theme
	SupportsThemes(name string) bool
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the menu label of an icon family.
func DisplayName(icon string) string {
	return titleCaser.String(icon)
}

// BuildMenu describes the context menu for the current selection. The
// Theme and Icon submenus are always present. Theme is hidden unless the
// icon is themed; Icon is hidden unless there is more than one icon.
func BuildMenu(snap state.Snapshot, src MenuSource, runOnStart bool) shell.Menu {
	themes := src.AvailableThemes(snap.Icon)
	themeItems := make([]shell.Item, 0, len(themes))
	for _, t := range themes {
		themeItems = append(themeItems, shell.Item{
			Title:     t.Title(),
			Checkable: true,
			Checked:   t == snap.Theme,
			Event:     events.Theme(t),
		})
	}

	icons := src.AvailableIcons()
	iconItems := make([]shell.Item, 0, len(icons))
	for _, name := range icons {
		iconItems = append(iconItems, shell.Item{
			Title:     DisplayName(name),
			Checkable: true,
			Checked:   name == snap.Icon,
			Event:     events.Icon(name),
		})
	}

	return shell.Menu{Items: []shell.Item{
		{
			Title:    MenuTheme,
			Hidden:   !src.SupportsThemes(snap.Icon) || len(themeItems) == 0,
			Children: themeItems,
		},
		{
			Title:    MenuIcon,
			Hidden:   len(iconItems) < 2,
			Children: iconItems,
		},
		shell.Separator(),
		{
			Title:     MenuRunOnStart,
			Checkable: true,
			Checked:   runOnStart,
			Event:     events.Of(events.ToggleRunOnStart),
		},
		shell.Separator(),
		{Title: MenuSystemMonitor, Event: events.Of(events.OpenSystemMonitor)},
		{Title: MenuAbout, Event: events.Of(events.ShowAbout)},
		shell.Separator(),
		{Title: MenuExit, Event: events.Of(events.Exit)},
	}}
}
