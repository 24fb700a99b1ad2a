//go:build !windows

package cli

import (
	"os"
	"syscall"

	"github.com/cpucat/cpucat/internal/models"
)

// requestStop asks the running instance to exit via SIGTERM, which it
// handles like the Exit menu item.
func requestStop(info *models.InstanceInfo) error {
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return err
	}
	return process.Signal(syscall.SIGTERM)
}
