//go:build !darwin && !windows

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func entryDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart"), nil
}

func entryName(appName string) string {
	return strings.ToLower(appName) + ".desktop"
}

func entryContent(appName, exe string) []byte {
	return []byte(fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=CPU usage monitor
Exec=%s
Terminal=false
X-GNOME-Autostart-enabled=true
`, appName, execQuote(exe)))
}

// execReserved are the characters that force quoting of an Exec argument.
const execReserved = " \t\n\"'\\><~|&;$*?#()`"

// execQuote quotes one Exec argument per the Desktop Entry specification.
// Inside double quotes, '"', '`', '$' and '\' are backslash-escaped; the
// value is then escaped once more as a desktop entry string.
func execQuote(arg string) string {
	arg = strings.ReplaceAll(arg, "%", "%%")
	if !strings.ContainsAny(arg, execReserved) {
		return arg
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')

	quoted := strings.ReplaceAll(b.String(), `\`, `\\`)
	return strings.ReplaceAll(quoted, "\n", `\n`)
}
