package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/events"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/shell"
	"github.com/cpucat/cpucat/internal/state"
)

type fakePrefs struct {
	mu         sync.Mutex
	icon       string
	theme      *models.Theme
	system     models.Theme
	runOnStart bool
	setErr     error
	autoErr    error
	changed    bool
}

func (p *fakePrefs) Icon() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.icon == "" {
		return catalog.DefaultIcon
	}
	return p.icon
}

func (p *fakePrefs) SetIcon(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.icon = name
	return nil
}

func (p *fakePrefs) Theme() models.Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.theme == nil {
		return p.system
	}
	return *p.theme
}

func (p *fakePrefs) SetTheme(theme *models.Theme) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.theme = theme
	return nil
}

func (p *fakePrefs) RunOnStart() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runOnStart, p.autoErr
}

func (p *fakePrefs) SetRunOnStart(enable bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.autoErr != nil {
		return p.autoErr
	}
	p.runOnStart = enable
	return nil
}

func (p *fakePrefs) Reload() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.changed, nil
}

type fakeTray struct {
	mu      sync.Mutex
	menus   []shell.Menu
	shown   int
	quit    int
	caps    shell.Capabilities
	menuErr error
}

func (f *fakeTray) SetMenu(m shell.Menu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menus = append(f.menus, m)
	return f.menuErr
}

func (f *fakeTray) ShowMenu() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown++
	return nil
}

func (f *fakeTray) Quit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quit++
}

func (f *fakeTray) Capabilities() shell.Capabilities { return f.caps }

func (f *fakeTray) lastMenu() shell.Menu {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.menus[len(f.menus)-1]
}

func (f *fakeTray) menuCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.menus)
}

type dialog struct{ message, title string }

type fakeDialogs struct {
	shown []dialog
	err   error
}

func (d *fakeDialogs) ShowDialog(message, title string) error {
	d.shown = append(d.shown, dialog{message, title})
	return d.err
}

type fakeLauncher struct {
	calls int
	err   error
}

func (l *fakeLauncher) OpenSystemMonitor() error {
	l.calls++
	return l.err
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	f := []catalog.Frame{{Data: []byte{1}}}
	c, err := catalog.FromSets(map[string]catalog.Set{
		"cat": {Themed: true, Frames: map[models.Theme][]catalog.Frame{
			models.ThemeDark:  f,
			models.ThemeLight: f,
		}},
		"sleep":  {Themed: true, Frames: map[models.Theme][]catalog.Frame{models.ThemeDark: f}},
		"parrot": {Frames: map[models.Theme][]catalog.Frame{models.ThemeDark: f}},
	}, catalog.Options{})
	require.NoError(t, err)
	return c
}

type harness struct {
	ctrl     *Controller
	queue    *events.Queue
	state    *state.Selection
	prefs    *fakePrefs
	tray     *fakeTray
	dialogs  *fakeDialogs
	launcher *fakeLauncher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		queue:    events.NewQueue(events.DefaultQueueSize),
		state:    state.New("cat", models.ThemeLight),
		prefs:    &fakePrefs{system: models.ThemeLight},
		tray:     &fakeTray{},
		dialogs:  &fakeDialogs{},
		launcher: &fakeLauncher{},
	}
	h.ctrl = New(Deps{
		Queue:    h.queue,
		State:    h.state,
		Icons:    testCatalog(t),
		Prefs:    h.prefs,
		Tray:     h.tray,
		Dialogs:  h.dialogs,
		Launcher: h.launcher,
	})
	return h
}

func (h *harness) run(t *testing.T, evs ...events.Event) {
	t.Helper()
	for _, ev := range evs {
		require.True(t, h.queue.Publish(ev))
	}
	require.True(t, h.queue.Publish(events.Of(events.Exit)))

	done := make(chan error, 1)
	go func() { done <- h.ctrl.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not stop")
	}
}

func TestController_FIFO(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(t, events.Icon("parrot"), events.Theme(models.ThemeDark))

	assert.Equal(t, state.Snapshot{Icon: "parrot", Theme: models.ThemeDark}, h.state.Snapshot())
	assert.Equal(t, "parrot", h.prefs.Icon())
	assert.Equal(t, models.ThemeDark, h.prefs.Theme())

	// initial menu plus one rebuild per change
	assert.Equal(t, 3, h.tray.menuCount())
	item, ok := h.tray.lastMenu().Find("Parrot")
	require.True(t, ok)
	assert.True(t, item.Checked)
}

func TestController_ExitIsTerminal(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	assert.True(t, h.ctrl.handle(events.Of(events.Exit)))
	assert.True(t, h.state.ExitRequested())
	assert.Equal(t, 1, h.tray.quit)

	assert.True(t, h.ctrl.handle(events.Icon("parrot")))
	assert.True(t, h.ctrl.handle(events.Theme(models.ThemeDark)))
	assert.True(t, h.ctrl.handle(events.Of(events.Exit)))

	assert.Equal(t, state.Snapshot{Icon: "cat", Theme: models.ThemeLight}, h.state.Snapshot())
	assert.Equal(t, 1, h.tray.quit)
	assert.False(t, h.queue.Publish(events.Of(events.ShowAbout)), "queue rejects events after exit")
}

func TestController_EventsAfterExitAreNotApplied(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	require.True(t, h.queue.Publish(events.Of(events.Exit)))
	require.True(t, h.queue.Publish(events.Icon("parrot")))

	require.NoError(t, h.ctrl.Run(context.Background()))
	assert.Equal(t, "cat", h.state.Icon())
}

func TestController_SetIconRejectsUnknown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"dog", catalog.SleepIcon, ""} {
		h := newHarness(t)
		assert.False(t, h.ctrl.handle(events.Icon(name)))
		assert.Equal(t, "cat", h.state.Icon(), name)
		assert.Zero(t, h.tray.menuCount())
	}
}

func TestController_PersistFailureStillApplies(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.prefs.setErr = errors.New("read-only file system")

	h.ctrl.handle(events.Theme(models.ThemeDark))
	assert.Equal(t, models.ThemeDark, h.state.Theme())
	assert.Equal(t, 1, h.tray.menuCount())
}

func TestController_ToggleRunOnStart(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.handle(events.Of(events.ToggleRunOnStart))
	assert.True(t, h.prefs.runOnStart)
	item, ok := h.tray.lastMenu().Find(MenuRunOnStart)
	require.True(t, ok)
	assert.True(t, item.Checked)

	h.ctrl.handle(events.Of(events.ToggleRunOnStart))
	assert.False(t, h.prefs.runOnStart)
	item, _ = h.tray.lastMenu().Find(MenuRunOnStart)
	assert.False(t, item.Checked)
}

func TestController_ToggleRunOnStartFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.prefs.autoErr = errors.New("registry denied")

	h.ctrl.handle(events.Of(events.ToggleRunOnStart))
	assert.False(t, h.prefs.runOnStart)
	assert.Zero(t, h.tray.menuCount())
}

func TestController_About(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.handle(events.Of(events.ShowAbout))

	require.Len(t, h.dialogs.shown, 1)
	assert.Equal(t, "About CPUCat", h.dialogs.shown[0].title)
	assert.Equal(t, AboutText(), h.dialogs.shown[0].message)
	assert.Contains(t, AboutText(), "Project Page: ")
}

func TestController_SystemMonitor(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.ctrl.handle(events.Of(events.OpenSystemMonitor))
		assert.Equal(t, 1, h.launcher.calls)
		assert.Empty(t, h.dialogs.shown)
	})

	t.Run("failure is shown", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.launcher.err = errors.New("no monitor installed")
		h.dialogs.err = errors.New("no notification daemon")

		assert.False(t, h.ctrl.handle(events.Of(events.OpenSystemMonitor)))
		require.Len(t, h.dialogs.shown, 1)
		assert.Contains(t, h.dialogs.shown[0].message, "no monitor installed")
	})
}

func TestController_ShowMenuCapability(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.ctrl.handle(events.Of(events.ShowMenu))
	assert.Zero(t, h.tray.shown)

	h.tray.caps.ShowMenu = true
	h.ctrl.handle(events.Of(events.ShowMenu))
	assert.Equal(t, 1, h.tray.shown)
}

func TestController_ReloadSettings(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	dark := models.ThemeDark
	h.prefs.icon = "parrot"
	h.prefs.theme = &dark

	h.ctrl.handle(events.Of(events.ReloadSettings))
	assert.Equal(t, "cat", h.state.Icon(), "unchanged file is ignored")

	h.prefs.changed = true
	h.ctrl.handle(events.Of(events.ReloadSettings))
	assert.Equal(t, state.Snapshot{Icon: "parrot", Theme: models.ThemeDark}, h.state.Snapshot())
	assert.Equal(t, 1, h.tray.menuCount())
}

func TestController_ReloadIgnoresUnknownIcon(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.prefs.icon = "dog"
	h.prefs.changed = true
	h.prefs.system = models.ThemeDark

	h.ctrl.handle(events.Of(events.ReloadSettings))
	assert.Equal(t, state.Snapshot{Icon: "cat", Theme: models.ThemeDark}, h.state.Snapshot())
}

func TestController_StopsWithQueue(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.queue.Stop()
	require.NoError(t, h.ctrl.Run(context.Background()))
	assert.False(t, h.state.ExitRequested())
}

func TestController_StopsOnCancel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.ctrl.Run(ctx))
}
