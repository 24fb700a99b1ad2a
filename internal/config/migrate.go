package config

import (
	"fmt"
	"log/slog"
)

// LegacySource supplies a packed icon preference written by older releases.
type LegacySource interface {
	LegacyIconID() (uint32, bool, error)
	ClearLegacyIconID() error
}

// Legacy icon id bits.
const (
	legacyLightBit  = 1 << 0
	legacyParrotBit = 1 << 1
)

// TranslateLegacyIconID expands the packed legacy id into named settings.
func TranslateLegacyIconID(id uint32) map[string]string {
	icon := "cat"
	if id&legacyParrotBit != 0 {
		icon = "parrot"
	}
	theme := "dark"
	if id&legacyLightBit != 0 {
		theme = "light"
	}
	return map[string]string{KeyIcon: icon, KeyTheme: theme}
}

// MigrateLegacy translates a packed legacy preference into named keys. The
// settings file itself is checked first, then each source in order; the
// first id found is used and every legacy copy is cleared. It reports
// whether a migration happened and is a no-op once nothing legacy remains.
func MigrateLegacy(store *Store, sources ...LegacySource) (bool, error) {
	id, found := store.legacyIconID()
	from := store.Path()

	for _, src := range sources {
		srcID, ok, err := src.LegacyIconID()
		if err != nil {
			slog.Warn("Failed to read legacy settings", "component", "config", "error", err)
			continue
		}
		if ok && !found {
			id, found = srcID, true
			from = fmt.Sprintf("%T", src)
		}
	}

	if !found {
		return false, nil
	}

	values := TranslateLegacyIconID(id)
	if err := store.completeMigration(values); err != nil {
		return false, fmt.Errorf("failed to save migrated settings: %w", err)
	}

	for _, src := range sources {
		if err := src.ClearLegacyIconID(); err != nil {
			slog.Warn("Failed to clear legacy settings", "component", "config", "error", err)
		}
	}

	slog.Info("Migrated legacy settings", "component", "config", "from", from,
		"icon_id", id, "icon", values[KeyIcon], "theme", values[KeyTheme])
	return true, nil
}
