//go:build !darwin && !windows

package sysinfo

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

const templateIcons = false

func darkModeEnabled(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err == nil {
		return strings.Contains(string(out), "dark")
	}
	// Fall back to the GTK theme name, e.g. "Adwaita:dark".
	return strings.Contains(strings.ToLower(os.Getenv("GTK_THEME")), "dark")
}
