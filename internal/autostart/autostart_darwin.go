package autostart

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

func entryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

func label(appName string) string {
	return "io." + strings.ToLower(appName)
}

func entryName(appName string) string {
	return label(appName) + ".plist"
}

func entryContent(appName, exe string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>%s</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
    <key>LSUIElement</key>
    <true/>
</dict>
</plist>
`, label(appName), html.EscapeString(exe)))
}
