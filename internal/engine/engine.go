// Package engine drives the tray animation. On every tick it advances the
// icon at a pace proportional to CPU load, and once per poll interval it
// samples usage, refreshes the tooltip and decides whether the cat sleeps.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/shell"
	"github.com/cpucat/cpucat/internal/state"
)

// Tooltips.
var (
	WelcomeTooltip  = fmt.Sprintf("~Nyan~ %s - CPU Usage Monitor", buildinfo.AppName)
	SleepingTooltip = "Shhhh, your CPU is sleeping... 💤"
)

// UsageTooltip formats the tooltip for a usage percentage.
func UsageTooltip(usage float64) string {
	return fmt.Sprintf("CPU Usage: %.2f%%", usage)
}

// Sampler measures CPU utilisation as a percentage in [0,100].
type Sampler interface {
	Sample(ctx context.Context) (float64, error)
}

// Clock reports the local hour.
type Clock interface {
	Hour() int
}

// Icons resolves an icon family and theme to its frames.
type Icons interface {
	IconSet(name string, theme models.Theme) ([]catalog.Frame, error)
}

// Renderer is the part of the tray the engine draws into.
type Renderer interface {
	SetIcon(frame catalog.Frame) error
	SetTooltip(text string) error
}

// Deps are the collaborators of an Engine.
type Deps struct {
	State      *state.Selection
	Icons      Icons
	Sampler    Sampler
	Clock      Clock
	Renderer   Renderer
	Dispatcher shell.Dispatcher
}

// Engine owns the animation timer state. It is not safe for concurrent use;
// Run is its only entry point.
type Engine struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger
	now    func() time.Time

	phase    time.Duration
	poll     time.Duration
	idle     time.Duration
	interval time.Duration
	frame    int
	sleeping bool

	lastMiss string
}

// New creates an engine. A nil dispatcher runs UI calls inline.
func New(cfg Config, deps Deps) *Engine {
	if deps.Dispatcher == nil {
		deps.Dispatcher = shell.Immediate{}
	}
	return &Engine{
		cfg:      cfg,
		deps:     deps,
		logger:   slog.With("component", "engine"),
		now:      time.Now,
		interval: cfg.InitialInterval,
	}
}

// Run ticks until exit is requested or ctx ends.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("Animation started", "tick", e.cfg.Tick, "poll", e.cfg.PollInterval)
	defer e.logger.Info("Animation stopped")

	e.start()

	ticker := time.NewTicker(e.cfg.Tick)
	defer ticker.Stop()

	last := e.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := e.now()
			elapsed := max(now.Sub(last), 0)
			last = now
			if !e.tick(ctx, elapsed) {
				return nil
			}
		}
	}
}

// start draws the first frame and the welcome tooltip.
func (e *Engine) start() {
	snap := e.deps.State.Snapshot()
	if frames := e.resolve(snap); len(frames) > 0 {
		e.render(frames[0])
	}
	e.tooltip(WelcomeTooltip)
}

// tick advances the timer state by elapsed. It reports false once exit has
// been requested.
func (e *Engine) tick(ctx context.Context, elapsed time.Duration) bool {
	if e.deps.State.ExitRequested() {
		return false
	}

	snap := e.deps.State.Snapshot()
	if e.sleeping && snap.Icon != catalog.DefaultIcon {
		e.wake("icon changed")
	}

	frames := e.resolve(snap)

	e.phase += elapsed
	if e.phase >= e.interval {
		e.phase = 0
		if len(frames) > 0 {
			e.frame = (e.frame + 1) % len(frames)
			e.render(frames[e.frame])
		}
	}

	e.poll += elapsed
	if e.poll >= e.cfg.PollInterval {
		e.poll = 0
		e.sample(ctx, snap.Icon)
	}
	return true
}

// resolve returns the frames to animate, or nil when the selection cannot
// be resolved.
func (e *Engine) resolve(snap state.Snapshot) []catalog.Frame {
	name := snap.Icon
	if e.sleeping && name == catalog.DefaultIcon {
		name = catalog.SleepIcon
	}

	frames, err := e.deps.Icons.IconSet(name, snap.Theme)
	key := name + "/" + snap.Theme.String()
	if err != nil {
		if e.lastMiss != key {
			e.logger.Warn("Cannot resolve icon, skipping render", "icon", name, "theme", snap.Theme, "error", err)
			e.lastMiss = key
		}
		return nil
	}
	e.lastMiss = ""
	return frames
}

func (e *Engine) sample(ctx context.Context, icon string) {
	usage, err := e.deps.Sampler.Sample(ctx)
	if err != nil {
		e.logger.Warn("Failed to sample CPU usage", "error", err)
		return
	}

	e.interval = FrameInterval(usage)
	e.updateSleep(usage, icon)

	if e.sleeping {
		e.tooltip(SleepingTooltip)
		return
	}
	e.logger.Debug("CPU usage", "usage", usage, "interval", e.interval)
	e.tooltip(UsageTooltip(usage))
}

// updateSleep runs the idle state machine. Only the cat sleeps.
func (e *Engine) updateSleep(usage float64, icon string) {
	if icon != catalog.DefaultIcon {
		e.idle = 0
		return
	}

	idle := usage < e.cfg.IdleUsage && !e.cfg.awakeHour(e.deps.Clock.Hour())

	if e.sleeping {
		if !idle {
			e.wake("activity")
		}
		return
	}

	if !idle {
		e.idle = 0
		return
	}
	e.idle += e.cfg.PollInterval
	if e.idle >= e.cfg.IdleThreshold {
		e.sleeping = true
		e.frame = 0
		e.logger.Info("Falling asleep", "idle", e.idle)
	}
}

func (e *Engine) wake(reason string) {
	e.sleeping = false
	e.frame = 0
	e.idle = 0
	e.logger.Info("Waking up", "reason", reason)
}

func (e *Engine) render(frame catalog.Frame) {
	r := e.deps.Renderer
	ok := e.deps.Dispatcher.Dispatch(func() {
		if err := r.SetIcon(frame); err != nil {
			e.logger.Warn("Failed to set icon", "error", err)
		}
	})
	if !ok {
		e.logger.Debug("UI busy, dropped frame")
	}
}

func (e *Engine) tooltip(text string) {
	r := e.deps.Renderer
	ok := e.deps.Dispatcher.Dispatch(func() {
		if err := r.SetTooltip(text); err != nil {
			e.logger.Warn("Failed to set tooltip", "error", err)
		}
	})
	if !ok {
		e.logger.Debug("UI busy, dropped tooltip", "text", text)
	}
}
