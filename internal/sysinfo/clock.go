package sysinfo

import "time"

// LocalClock reports wall-clock time in the local time zone.
type LocalClock struct{}

// Hour returns the current local hour in [0,23].
func (LocalClock) Hour() int {
	return time.Now().Hour()
}
