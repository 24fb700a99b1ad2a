package app

import "github.com/cpucat/cpucat/internal/catalog"

const (
	frameSize   = 32
	frameFormat = catalog.FormatICO
)
