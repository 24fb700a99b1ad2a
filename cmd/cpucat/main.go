// Package main is the entry point for the cpucat tray.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/cli"
	"github.com/cpucat/cpucat/internal/sysinfo"
)

func init() {
	// The tray's native loop must own the main OS thread on macOS.
	runtime.LockOSThread()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Fatal error", "panic", r, "stack", string(debug.Stack()))
			_ = sysinfo.Dialogs{}.ShowDialog(fmt.Sprintf("%v", r), buildinfo.AppName+" crashed")
			os.Exit(2)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
