package shell

import (
	"fmt"
	"strings"

	"github.com/cpucat/cpucat/internal/events"
)

// Menu is a declarative description of the tray context menu.
type Menu struct {
	Items []Item
}

// Item is one menu entry. An item with children is a submenu; its own
// Event is ignored.
type Item struct {
	Title     string
	Tooltip   string
	Event     events.Event
	Checkable bool
	Checked   bool
	Disabled  bool
	// Hidden entries keep their position so the menu shape stays stable
	// across rebuilds.
	Hidden    bool
	Separator bool
	Children  []Item
}

// Separator returns a separator entry.
func Separator() Item {
	return Item{Separator: true}
}

// Find returns the first visible item with title, searching submenus.
func (m Menu) Find(title string) (Item, bool) {
	return find(m.Items, title)
}

func find(items []Item, title string) (Item, bool) {
	for _, it := range items {
		if it.Hidden || it.Separator {
			continue
		}
		if it.Title == title {
			return it, true
		}
		if found, ok := find(it.Children, title); ok {
			return found, true
		}
	}
	return Item{}, false
}

// String renders the visible menu as an indented outline.
func (m Menu) String() string {
	var b strings.Builder
	writeItems(&b, m.Items, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeItems(b *strings.Builder, items []Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		if it.Hidden {
			continue
		}
		if it.Separator {
			fmt.Fprintf(b, "%s---\n", indent)
			continue
		}
		mark := ""
		if it.Checkable {
			mark = "[ ] "
			if it.Checked {
				mark = "[x] "
			}
		}
		fmt.Fprintf(b, "%s%s%s\n", indent, mark, it.Title)
		writeItems(b, it.Children, depth+1)
	}
}
