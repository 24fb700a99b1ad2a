package sysinfo

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// ErrNoSystemMonitor is returned when no known system monitor is installed.
var ErrNoSystemMonitor = errors.New("no system monitor found")

// Launcher starts external programs without waiting for them.
type Launcher struct {
	// commands are tried in order; the first one found on PATH is started.
	commands [][]string
	lookPath func(string) (string, error)
}

// NewLauncher creates a launcher for the platform system monitor.
func NewLauncher() *Launcher {
	return &Launcher{commands: monitorCommands, lookPath: exec.LookPath}
}

// OpenSystemMonitor starts the platform task manager.
func (l *Launcher) OpenSystemMonitor() error {
	for _, argv := range l.commands {
		bin, err := l.lookPath(argv[0])
		if err != nil {
			continue
		}
		return start(bin, argv[1:]...)
	}
	return ErrNoSystemMonitor
}

func start(bin string, args ...string) error {
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", bin, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("External process exited", "component", "sysinfo", "command", bin, "error", err)
		}
	}()
	return nil
}
