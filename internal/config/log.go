package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// LogRotation bounds the size of the application log.
type LogRotation struct {
	// MaxSize is the size in bytes past which the log is rotated. Zero
	// disables rotation.
	MaxSize int64
	// MaxBackups is how many rotated logs are kept as cpucat.log.1 .. .N.
	MaxBackups int
}

// DefaultLogRotation keeps three 10MiB backups.
func DefaultLogRotation() LogRotation {
	return LogRotation{MaxSize: 10 << 20, MaxBackups: 3}
}

// LogFile is the application log. It appends to a single file and shifts it
// into numbered backups once it grows past the rotation limit.
type LogFile struct {
	path     string
	rotation LogRotation

	mu      sync.Mutex
	f       *os.File
	written int64
}

// OpenLog opens the log at path for appending, creating its directory.
func OpenLog(path string, rotation LogRotation) (*LogFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	l := &LogFile{path: path, rotation: rotation}
	if err := l.reopen(); err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return l, nil
}

func (l *LogFile) reopen() error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	l.f, l.written = f, info.Size()
	return nil
}

// Write appends p. A non-empty log is rotated first when p would take it
// past MaxSize, so a single oversized record still lands in one file.
func (l *LogFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return 0, os.ErrClosed
	}
	if l.rotation.MaxSize > 0 && l.written > 0 && l.written+int64(len(p)) > l.rotation.MaxSize {
		if err := l.rotateLocked(); err != nil {
			return 0, fmt.Errorf("failed to rotate log: %w", err)
		}
	}

	n, err := l.f.Write(p)
	l.written += int64(n)
	return n, err
}

// Close closes the log. Further writes fail with os.ErrClosed.
func (l *LogFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

func (l *LogFile) rotateLocked() error {
	err := l.f.Close()
	l.f = nil
	if err != nil {
		return err
	}
	if err := shiftBackups(l.path, l.rotation.MaxBackups); err != nil {
		return err
	}
	return l.reopen()
}

// backupPath names the n-th rotated log; 0 is the live file.
func backupPath(path string, n int) string {
	if n == 0 {
		return path
	}
	return path + "." + strconv.Itoa(n)
}

// shiftBackups moves path to path.1, path.1 to path.2 and so on. Whatever
// would land past keep is removed.
func shiftBackups(path string, keep int) error {
	for n := keep; n >= 0; n-- {
		var err error
		if n == keep {
			err = os.Remove(backupPath(path, n))
		} else {
			err = os.Rename(backupPath(path, n), backupPath(path, n+1))
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// NewLogger builds the process logger. Records go to every non-nil writer
// as text; debug enables the debug level.
func NewLogger(debug bool, writers ...io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var out []io.Writer
	for _, w := range writers {
		if w != nil {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(io.MultiWriter(out...), &slog.HandlerOptions{Level: level}))
}
