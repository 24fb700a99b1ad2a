package config

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

// registryLegacy reads the IconId DWORD older releases kept in
// HKCU\Software\<AppName>.
type registryLegacy struct {
	keyPath string
}

// PlatformLegacySources returns the legacy preference stores of this OS.
func PlatformLegacySources(appName string) []LegacySource {
	return []LegacySource{registryLegacy{keyPath: `Software\` + appName}}
}

func (r registryLegacy) LegacyIconID() (uint32, bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, r.keyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("IconId")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint32(v), true, nil
}

func (r registryLegacy) ClearLegacyIconID() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, r.keyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return err
	}
	defer k.Close()

	if err := k.DeleteValue("IconId"); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return err
	}
	return nil
}
