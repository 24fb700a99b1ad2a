package sysinfo

import (
	"context"

	"golang.org/x/sys/windows/registry"
)

const templateIcons = false

const personalizeKey = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

func darkModeEnabled(context.Context) bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return false
	}
	return v == 0
}
