//go:build !windows

package autostart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

func (m *Manager) entryPath() (string, error) {
	dir := m.dir
	if dir == "" {
		var err error
		if dir, err = entryDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, entryName(m.appName)), nil
}

func (m *Manager) enabled() (bool, error) {
	path, err := m.entryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Manager) enable(exe string) error {
	path, err := m.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(entryContent(m.appName, exe))); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (m *Manager) disable() error {
	path, err := m.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
