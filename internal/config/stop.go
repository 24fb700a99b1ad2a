package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// stopRequest is written by `cpucat stop` where the running instance
// cannot be signalled.
type stopRequest struct {
	InstanceID  string    `yaml:"instance_id"`
	RequestedAt time.Time `yaml:"requested_at"`
}

// RequestStop asks the instance identified by instanceID to exit.
func RequestStop(instanceID string) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := GlobalStopFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, &stopRequest{InstanceID: instanceID, RequestedAt: time.Now()})
}

// TakeStopRequest reports whether a stop was requested for instanceID and
// consumes the request if so. Requests addressed to other instances are
// left alone.
func TakeStopRequest(instanceID string) (bool, error) {
	path, err := GlobalStopFile()
	if err != nil {
		return false, err
	}

	var req stopRequest
	if err := LoadYAML(path, &req); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read stop request: %w", err)
	}
	if req.InstanceID != instanceID {
		return false, nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	return true, nil
}
