//go:build !windows

package config

// PlatformLegacySources returns the legacy preference stores of this OS.
// Only Windows releases kept preferences outside the settings file.
func PlatformLegacySources(string) []LegacySource {
	return nil
}
