package shell

import (
	"log/slog"
	"sync"

	"github.com/cpucat/cpucat/internal/catalog"
)

// Headless is a shell without a tray. It logs what would be drawn and keeps
// the latest state for inspection. Run blocks until Quit.
type Headless struct {
	logger *slog.Logger

	mu      sync.Mutex
	icon    catalog.Frame
	frames  int
	tooltip string
	menu    Menu

	quit     chan struct{}
	quitOnce sync.Once
}

// NewHeadless creates a headless shell.
func NewHeadless() *Headless {
	return &Headless{
		logger: slog.With("component", "shell"),
		quit:   make(chan struct{}),
	}
}

// Run calls onReady, waits for Quit and calls onExit.
func (h *Headless) Run(onReady, onExit func()) {
	h.logger.Info("Running without a tray")
	if onReady != nil {
		onReady()
	}
	<-h.quit
	if onExit != nil {
		onExit()
	}
}

// Quit makes Run return.
func (h *Headless) Quit() {
	h.quitOnce.Do(func() { close(h.quit) })
}

func (h *Headless) SetIcon(frame catalog.Frame) error {
	h.mu.Lock()
	h.icon = frame
	h.frames++
	h.mu.Unlock()
	return nil
}

func (h *Headless) SetTooltip(text string) error {
	h.mu.Lock()
	changed := h.tooltip != text
	h.tooltip = text
	h.mu.Unlock()

	if changed {
		h.logger.Info("Tooltip", "text", text)
	}
	return nil
}

func (h *Headless) SetMenu(menu Menu) error {
	h.mu.Lock()
	h.menu = menu
	h.mu.Unlock()

	h.logger.Debug("Menu updated", "items", len(menu.Items))
	return nil
}

// ShowMenu logs the current menu outline.
func (h *Headless) ShowMenu() error {
	h.mu.Lock()
	menu := h.menu
	h.mu.Unlock()

	h.logger.Info("Menu\n" + menu.String())
	return nil
}

func (h *Headless) Capabilities() Capabilities {
	return Capabilities{ShowMenu: true}
}

// Tooltip returns the last tooltip.
func (h *Headless) Tooltip() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tooltip
}

// Menu returns the last menu.
func (h *Headless) Menu() Menu {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.menu
}

// Frames returns how many icon frames were drawn.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}
