package config

import (
	"os"

	"github.com/cpucat/cpucat/internal/models"
)

// LoadInstanceInfo loads the running instance info from ~/.cpucat/instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo saves the instance info to ~/.cpucat/instance.yaml.
func SaveInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file, but only if it still
// belongs to instanceID. An empty id removes it unconditionally.
func RemoveInstanceInfo(instanceID string) error {
	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}

	if instanceID != "" {
		var info models.InstanceInfo
		if err := LoadYAML(path, &info); err == nil && info.InstanceID != instanceID {
			return nil
		}
	}
	return os.Remove(path)
}

// IsInstanceRunning checks if another tray process is still running.
// Returns true if instance.yaml exists and the PID is alive. A stale file
// is removed.
func IsInstanceRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if !processAlive(info.PID) {
		_ = RemoveInstanceInfo(info.InstanceID)
		return false, info, nil
	}

	return true, info, nil
}
