// Package app wires the tray, the animation engine and the event
// controller together and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cpucat/cpucat/internal/assets"
	"github.com/cpucat/cpucat/internal/autostart"
	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/config"
	"github.com/cpucat/cpucat/internal/controller"
	"github.com/cpucat/cpucat/internal/engine"
	"github.com/cpucat/cpucat/internal/events"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/shell"
	"github.com/cpucat/cpucat/internal/state"
	"github.com/cpucat/cpucat/internal/sysinfo"
	"github.com/cpucat/cpucat/internal/watcher"
)

// DefaultShutdownTimeout bounds how long Shutdown waits for the workers.
const DefaultShutdownTimeout = 5 * time.Second

// ErrAlreadyRunning is returned when another live instance owns the
// instance file.
var ErrAlreadyRunning = errors.New("already running")

// Options configures an App. Zero values select the platform defaults.
type Options struct {
	// Headless runs without a tray icon.
	Headless bool
	// HandleSignals turns SIGINT and SIGTERM into an exit request.
	HandleSignals bool
	// SettingsPath overrides ~/.cpucat/settings.yaml.
	SettingsPath string

	Engine    *engine.Config
	Shell     shell.Shell
	Icons     io.Reader
	Sampler   engine.Sampler
	Clock     engine.Clock
	Dialogs   controller.Dialogs
	Launcher  controller.Launcher
	Autostart config.Autostart
	Legacy    []config.LegacySource
}

// App is one running tray instance.
type App struct {
	opts   Options
	logger *slog.Logger

	queue      *events.Queue
	state      *state.Selection
	catalog    *catalog.Catalog
	prefs      *config.Preferences
	shell      shell.Shell
	dispatcher *shell.SerialDispatcher
	engine     *engine.Engine
	controller *controller.Controller
	watcher    *watcher.Watcher
	dialogs    controller.Dialogs
	instance   *models.InstanceInfo

	cancel context.CancelFunc
	done   chan struct{}
	err    error

	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownErr  error
}

// New loads settings and icons and builds every component. Nothing runs
// until Start.
func New(opts Options) (*App, error) {
	id := uuid.New().String()
	logger := slog.With("component", "app", "instance", id)

	store, err := openStore(opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	legacy := opts.Legacy
	if legacy == nil {
		legacy = config.PlatformLegacySources(buildinfo.AppName)
	}
	if _, err := config.MigrateLegacy(store, legacy...); err != nil {
		logger.Warn("Legacy settings migration failed", "error", err)
	}

	queue := events.NewQueue(events.DefaultQueueSize)

	tray := opts.Shell
	if tray == nil {
		if opts.Headless {
			tray = shell.NewHeadless()
		} else {
			tray = shell.NewSystray(queue)
		}
	}

	detector := sysinfo.NewThemeDetector()
	detector.Refresh(context.Background())
	icons := opts.Icons
	if icons == nil {
		icons = assets.Icons()
	}
	cat, err := catalog.Load(icons, catalog.Options{
		FrameSize:    frameSize,
		Format:       frameFormat,
		TemplateAuto: tray.Capabilities().TemplateIcons,
		SystemTheme:  detector.Resolved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load icons: %w", err)
	}

	auto := opts.Autostart
	if auto == nil {
		auto = autostart.New(buildinfo.AppName)
	}
	prefs := config.NewPreferences(store, auto, detector, catalog.DefaultIcon)

	icon := prefs.Icon()
	if icon == catalog.SleepIcon || !cat.Has(icon) {
		logger.Warn("Stored icon is unavailable, using default", "icon", icon, "default", catalog.DefaultIcon)
		icon = catalog.DefaultIcon
	}
	selection := state.New(icon, prefs.Theme())

	a := &App{
		opts:       opts,
		logger:     logger,
		queue:      queue,
		state:      selection,
		catalog:    cat,
		prefs:      prefs,
		shell:      tray,
		dispatcher: shell.NewSerialDispatcher(shell.DefaultDispatchQueueSize),
		dialogs:    withDefault[controller.Dialogs](opts.Dialogs, sysinfo.Dialogs{}),
		instance:   models.NewInstanceInfo(id, os.Getpid(), opts.Headless),
		done:       make(chan struct{}),
	}

	cfg := engine.DefaultConfig()
	if opts.Engine != nil {
		cfg = *opts.Engine
	}
	a.engine = engine.New(cfg, engine.Deps{
		State:      selection,
		Icons:      cat,
		Sampler:    withDefault[engine.Sampler](opts.Sampler, sysinfo.NewCPUSampler()),
		Clock:      withDefault[engine.Clock](opts.Clock, sysinfo.LocalClock{}),
		Renderer:   tray,
		Dispatcher: a.dispatcher,
	})
	a.controller = controller.New(controller.Deps{
		Queue:      queue,
		State:      selection,
		Icons:      cat,
		Prefs:      prefs,
		Tray:       tray,
		Dialogs:    a.dialogs,
		Launcher:   withDefault[controller.Launcher](opts.Launcher, sysinfo.NewLauncher()),
		Dispatcher: a.dispatcher,
	})

	w, err := watcher.New(store.Path(), queue)
	if err != nil {
		logger.Warn("Settings will not be reloaded on change", "error", err)
	} else {
		if stopPath, err := config.GlobalStopFile(); err == nil {
			w.OnStopRequest(stopPath, func() bool {
				ok, err := config.TakeStopRequest(id)
				if err != nil {
					logger.Warn("Failed to read stop request", "error", err)
				}
				return ok
			})
		}
		a.watcher = w
	}

	logger.Info("Initialized", "icon", icon, "theme", selection.Theme(),
		"icons", cat.AvailableIcons(), "settings", store.Path())
	return a, nil
}

func openStore(path string) (*config.Store, error) {
	if path == "" {
		if err := config.EnsureGlobalDir(); err != nil {
			return nil, fmt.Errorf("failed to create global directory: %w", err)
		}
		return config.OpenDefault()
	}
	return config.Open(path)
}

func withDefault[T any](v, def T) T {
	if any(v) == nil {
		return def
	}
	return v
}

// Run starts the application on the native UI loop and blocks until it
// exits. It must be called from the main goroutine.
func (a *App) Run(ctx context.Context) error {
	var startErr error
	a.shell.Run(func() {
		if startErr = a.Start(ctx); startErr != nil {
			a.logger.Error("Failed to start", "error", startErr)
			a.shell.Quit()
		}
	}, func() {
		_ = a.Shutdown(DefaultShutdownTimeout)
	})

	if startErr != nil {
		return startErr
	}
	return a.Shutdown(DefaultShutdownTimeout)
}

// Start claims the instance file and launches the workers.
func (a *App) Start(ctx context.Context) error {
	err := errors.New("already started")
	a.startOnce.Do(func() { err = a.start(ctx) })
	return err
}

func (a *App) start(ctx context.Context) error {
	running, other, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check instance status: %w", err)
	}
	if running {
		return fmt.Errorf("%s %w (PID %d)", buildinfo.AppName, ErrAlreadyRunning, other.PID)
	}
	if err := config.SaveInstanceInfo(a.instance); err != nil {
		return fmt.Errorf("failed to write instance info: %w", err)
	}

	ctx, a.cancel = context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.guard("dispatcher", func() error { return a.dispatcher.Run(gctx) }))
	g.Go(a.guard("engine", func() error { return a.engine.Run(gctx) }))
	g.Go(a.guard("controller", func() error { return a.controller.Run(gctx) }))

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.logger.Warn("Settings will not be reloaded on change", "error", err)
		}
	}
	if a.opts.HandleSignals {
		go a.handleSignals(gctx)
	}

	go func() {
		a.err = g.Wait()
		close(a.done)
	}()

	a.logger.Info("Started", "pid", a.instance.PID, "headless", a.opts.Headless)
	return nil
}

// guard runs fn, turning a panic into an error, a best-effort dialog and
// an exit request.
func (a *App) guard(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err = fmt.Errorf("%s panicked: %v", name, r)
			a.logger.Error("Worker panicked", "worker", name, "panic", r, "stack", string(debug.Stack()))
			if dErr := a.dialogs.ShowDialog(err.Error(), buildinfo.AppName+" crashed"); dErr != nil {
				a.logger.Warn("Failed to show crash dialog", "error", dErr)
			}
			a.RequestExit()
		}()
		return fn()
	}
}

func (a *App) handleSignals(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		a.logger.Info("Received signal, shutting down", "signal", sig.String())
		a.Publish(events.Of(events.Exit))
	}
}

// Publish hands ev to the controller.
func (a *App) Publish(ev events.Event) bool {
	return a.queue.Publish(ev)
}

// RequestExit stops the application without going through the queue.
func (a *App) RequestExit() {
	a.state.RequestExit()
	a.queue.Stop()
	a.shell.Quit()
}

// Done is closed once every worker has returned.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// State returns the shared selection.
func (a *App) State() *state.Selection {
	return a.state
}

// Shutdown requests exit and waits up to timeout for the workers. A
// timeout is logged and does not block further. The instance file is
// removed either way.
func (a *App) Shutdown(timeout time.Duration) error {
	a.shutdownOnce.Do(func() {
		a.shutdownErr = a.shutdown(timeout)
	})
	return a.shutdownErr
}

func (a *App) shutdown(timeout time.Duration) error {
	a.state.RequestExit()
	a.queue.Stop()
	if a.watcher != nil {
		a.watcher.Stop()
	}

	if a.cancel == nil {
		return nil
	}

	a.dispatcher.Close()

	select {
	case <-a.done:
	case <-time.After(timeout):
		a.logger.Warn("Workers did not stop in time", "timeout", timeout)
	}
	a.cancel()

	if err := config.RemoveInstanceInfo(a.instance.InstanceID); err != nil {
		a.logger.Warn("Failed to remove instance info", "error", err)
	}
	a.logger.Info("Stopped")

	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}
