package app

import "github.com/cpucat/cpucat/internal/catalog"

// The menu bar is 22pt high; 16px frames leave room for padding.
const (
	frameSize   = 16
	frameFormat = catalog.FormatPNG
)
