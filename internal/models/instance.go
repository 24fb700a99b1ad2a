package models

import "time"

// InstanceInfo describes the running tray process.
// This corresponds to ~/.cpucat/instance.yaml.
type InstanceInfo struct {
	Version    int       `yaml:"version"`
	InstanceID string    `yaml:"instance_id"`
	PID        int       `yaml:"pid"`
	StartedAt  time.Time `yaml:"started_at"`
	Headless   bool      `yaml:"headless,omitempty"`
}

// NewInstanceInfo creates instance info with current values.
func NewInstanceInfo(instanceID string, pid int, headless bool) *InstanceInfo {
	return &InstanceInfo{
		Version:    1,
		InstanceID: instanceID,
		PID:        pid,
		StartedAt:  time.Now().UTC(),
		Headless:   headless,
	}
}
