package cli

import (
	"github.com/cpucat/cpucat/internal/config"
	"github.com/cpucat/cpucat/internal/models"
)

// requestStop leaves a stop request for the running instance to pick up.
// Windows processes cannot be sent SIGTERM.
func requestStop(info *models.InstanceInfo) error {
	return config.RequestStop(info.InstanceID)
}
