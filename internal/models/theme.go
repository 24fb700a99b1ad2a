package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTheme is returned when a theme name cannot be parsed.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme is the rendering variant of an icon family.
type Theme int

// Themes in menu order.
const (
	ThemeDark Theme = iota
	ThemeLight
	// ThemeAuto follows the desktop appearance. On macOS it maps to template
	// icons tinted by the menu bar; elsewhere it resolves to Dark or Light.
	ThemeAuto
)

// AllThemes lists every theme in menu order.
var AllThemes = []Theme{ThemeDark, ThemeLight, ThemeAuto}

// String returns the persisted name of the theme.
func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	case ThemeAuto:
		return "auto"
	default:
		return fmt.Sprintf("theme(%d)", int(t))
	}
}

// Title returns the menu label of the theme.
func (t Theme) Title() string {
	switch t {
	case ThemeDark:
		return "Dark"
	case ThemeLight:
		return "Light"
	case ThemeAuto:
		return "Auto"
	default:
		return t.String()
	}
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t >= ThemeDark && t <= ThemeAuto
}

// ParseTheme parses a persisted theme name. Matching is case-insensitive.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	case "auto":
		return ThemeAuto, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}
