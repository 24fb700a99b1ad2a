//go:build !windows && !darwin

package app

import "github.com/cpucat/cpucat/internal/catalog"

const (
	frameSize   = 0
	frameFormat = catalog.FormatPNG
)
