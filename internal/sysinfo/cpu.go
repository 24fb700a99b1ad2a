// Package sysinfo adapts operating system facilities used by the tray core:
// CPU counters, the local clock, appearance detection, dialogs and the
// system monitor.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
)

// ErrNoCPUData is returned when the platform reports no CPU counters.
var ErrNoCPUData = errors.New("no cpu data")

// CPUSampler measures aggregate CPU utilisation through gopsutil.
//
// Each sample covers the time since the previous call, so callers should
// poll at a steady cadence.
type CPUSampler struct {
	percent func(ctx context.Context) ([]float64, error)
}

// NewCPUSampler creates a sampler reading the host counters.
func NewCPUSampler() *CPUSampler {
	return &CPUSampler{
		percent: func(ctx context.Context) ([]float64, error) {
			// interval=0 compares against the counters of the previous call.
			return cpu.PercentWithContext(ctx, 0, false)
		},
	}
}

// Sample returns the CPU usage percentage in [0,100].
func (s *CPUSampler) Sample(ctx context.Context) (float64, error) {
	pct, err := s.percent(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(pct) == 0 {
		return 0, ErrNoCPUData
	}
	usage := pct[0]
	if math.IsNaN(usage) {
		return 0, nil
	}
	return math.Min(math.Max(usage, 0), 100), nil
}
