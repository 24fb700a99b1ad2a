package engine

import "time"

// Config holds the engine tunables.
type Config struct {
	// Tick is the loop period.
	Tick time.Duration
	// PollInterval is how often CPU usage is sampled.
	PollInterval time.Duration
	// InitialInterval is the frame interval before the first sample.
	InitialInterval time.Duration

	// IdleUsage is the usage percentage below which the machine is idle.
	IdleUsage float64
	// IdleThreshold is how long the machine must stay idle before the cat
	// falls asleep.
	IdleThreshold time.Duration
	// AwakeFrom and AwakeUntil bound the local hours [from, until) during
	// which the cat never sleeps.
	AwakeFrom  int
	AwakeUntil int
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		Tick:            10 * time.Millisecond,
		PollInterval:    time.Second,
		InitialInterval: BaseInterval,
		IdleUsage:       5.0,
		IdleThreshold:   time.Minute,
		AwakeFrom:       6,
		AwakeUntil:      22,
	}
}

// awakeHour reports whether hour falls in the always-awake window.
func (c Config) awakeHour(hour int) bool {
	return hour >= c.AwakeFrom && hour < c.AwakeUntil
}
