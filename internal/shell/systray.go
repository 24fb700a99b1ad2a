package shell

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/getlantern/systray"

	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/events"
)

// Systray draws into the OS notification area. The native loop only
// supports appending menu entries, so menu items are allocated once per
// position and later updated, hidden or shown in place.
type Systray struct {
	publisher Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	ready   bool
	pending *Menu
	root    []*slot
}

// slot is one allocated native menu entry.
type slot struct {
	item      *systray.MenuItem // nil for separators
	separator bool
	checkable bool
	children  []*slot

	mu    sync.Mutex
	event events.Event
	leaf  bool
}

// NewSystray creates a tray shell that publishes menu clicks to publisher.
func NewSystray(publisher Publisher) *Systray {
	return &Systray{
		publisher: publisher,
		logger:    slog.With("component", "shell"),
	}
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
func (s *Systray) Run(onReady, onExit func()) {
	systray.Run(func() {
		s.mu.Lock()
		s.ready = true
		pending := s.pending
		s.pending = nil
		if pending != nil {
			s.applyLocked(*pending)
		}
		s.mu.Unlock()

		if onReady != nil {
			onReady()
		}
	}, func() {
		if onExit != nil {
			onExit()
		}
	})
}

// Quit signals the tray to exit.
func (s *Systray) Quit() {
	systray.Quit()
}

// SetIcon draws frame. Template frames are handed to the OS for tinting.
func (s *Systray) SetIcon(frame catalog.Frame) error {
	if frame.Template {
		systray.SetTemplateIcon(frame.Data, frame.Data)
		return nil
	}
	systray.SetIcon(frame.Data)
	return nil
}

func (s *Systray) SetTooltip(text string) error {
	systray.SetTooltip(text)
	return nil
}

// SetMenu updates the context menu. Menus set before the tray is ready are
// applied once it is.
func (s *Systray) SetMenu(menu Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		s.pending = &menu
		return nil
	}
	s.applyLocked(menu)
	return nil
}

// ShowMenu is not available: the tray opens its menu on click by itself.
func (s *Systray) ShowMenu() error {
	return ErrUnsupported
}

func (s *Systray) Capabilities() Capabilities {
	return Capabilities{TemplateIcons: runtime.GOOS == "darwin"}
}

func (s *Systray) applyLocked(menu Menu) {
	s.root = s.reconcile(nil, s.root, menu.Items)
}

// reconcile updates slots to show items, allocating missing entries under
// parent (nil for the top level) and hiding leftovers.
func (s *Systray) reconcile(parent *slot, slots []*slot, items []Item) []*slot {
	for i, it := range items {
		if i >= len(slots) {
			slots = append(slots, s.allocate(parent, it))
		}
		sl := slots[i]
		if sl.separator != it.Separator {
			s.logger.Warn("Menu shape changed, skipping entry", "position", i, "title", it.Title)
			continue
		}
		if sl.separator {
			continue
		}
		s.update(sl, it)
	}

	for _, sl := range slots[min(len(items), len(slots)):] {
		if sl.item != nil {
			sl.item.Hide()
		}
	}
	return slots
}

func (s *Systray) allocate(parent *slot, it Item) *slot {
	sl := &slot{separator: it.Separator, checkable: it.Checkable}

	switch {
	case it.Separator && parent == nil:
		systray.AddSeparator()
		return sl
	case it.Separator:
		// Submenus have no native separator; use an inert entry.
		sl.separator = true
		sl.item = parent.item.AddSubMenuItem("", "")
		sl.item.Disable()
		return sl
	case parent == nil && it.Checkable:
		sl.item = systray.AddMenuItemCheckbox(it.Title, it.Tooltip, it.Checked)
	case parent == nil:
		sl.item = systray.AddMenuItem(it.Title, it.Tooltip)
	case it.Checkable:
		sl.item = parent.item.AddSubMenuItemCheckbox(it.Title, it.Tooltip, it.Checked)
	default:
		sl.item = parent.item.AddSubMenuItem(it.Title, it.Tooltip)
	}

	go s.forwardClicks(sl)
	return sl
}

func (s *Systray) update(sl *slot, it Item) {
	sl.mu.Lock()
	sl.event = it.Event
	sl.leaf = len(it.Children) == 0
	sl.mu.Unlock()

	sl.item.SetTitle(it.Title)
	sl.item.SetTooltip(it.Tooltip)
	if sl.checkable {
		if it.Checked {
			sl.item.Check()
		} else {
			sl.item.Uncheck()
		}
	}
	if it.Disabled {
		sl.item.Disable()
	} else {
		sl.item.Enable()
	}
	if it.Hidden {
		sl.item.Hide()
	} else {
		sl.item.Show()
	}

	sl.children = s.reconcile(sl, sl.children, it.Children)
}

func (s *Systray) forwardClicks(sl *slot) {
	for range sl.item.ClickedCh {
		sl.mu.Lock()
		ev, leaf := sl.event, sl.leaf
		sl.mu.Unlock()

		if !leaf || ev.Kind == events.None {
			continue
		}
		if !s.publisher.Publish(ev) {
			s.logger.Debug("Dropped menu click after shutdown", "event", ev)
		}
	}
}
