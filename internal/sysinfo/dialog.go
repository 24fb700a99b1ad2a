package sysinfo

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Dialogs shows user-facing messages as desktop alerts.
type Dialogs struct{}

// ShowDialog displays message with title.
func (Dialogs) ShowDialog(message, title string) error {
	if err := beeep.Alert(title, message, ""); err != nil {
		return fmt.Errorf("failed to show dialog: %w", err)
	}
	return nil
}
