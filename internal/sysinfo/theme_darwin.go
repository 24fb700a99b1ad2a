package sysinfo

import (
	"context"
	"os/exec"
	"strings"
)

// templateIcons is true where the menu bar tints template images itself.
const templateIcons = true

func darkModeEnabled(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		// The key is absent in light mode.
		return false
	}
	return strings.TrimSpace(string(out)) == "Dark"
}
