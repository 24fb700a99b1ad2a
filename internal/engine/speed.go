package engine

import (
	"math"
	"time"
)

// BaseInterval is the frame interval at or below usageStep percent usage.
const BaseInterval = 200 * time.Millisecond

const (
	usageStep = 5.0
	minSpeed  = 1.0
	maxSpeed  = 20.0
)

// FrameInterval returns the delay between animation frames for a CPU usage
// percentage. It shrinks from 200ms at 5% or less to 10ms at 100%.
func FrameInterval(usage float64) time.Duration {
	if math.IsNaN(usage) || usage < 0 {
		usage = 0
	}
	speed := min(max(usage/usageStep, minSpeed), maxSpeed)
	ms := math.Round(float64(BaseInterval/time.Millisecond) / speed)
	return time.Duration(ms) * time.Millisecond
}
