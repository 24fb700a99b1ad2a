package models

// SettingsVersion is the current settings file format.
//
// Version 1 files (and files with no version) may carry the legacy packed
// IconID field, which is translated into named keys by config.MigrateLegacy.
const SettingsVersion = 2

// Settings represents persisted user preferences.
// This corresponds to ~/.cpucat/settings.yaml.
type Settings struct {
	Version int               `yaml:"version"`
	Values  map[string]string `yaml:"values,omitempty"`

	// IconID is the legacy compact encoding: bit 0 clear = dark theme,
	// bit 1 clear = cat icon family.
	IconID *uint32 `yaml:"icon_id,omitempty"`
}

// NewSettings creates settings with no stored preferences.
func NewSettings() *Settings {
	return &Settings{
		Version: SettingsVersion,
		Values:  map[string]string{},
	}
}
