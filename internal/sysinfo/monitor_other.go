//go:build !darwin && !windows

package sysinfo

var monitorCommands = [][]string{
	{"gnome-system-monitor"},
	{"plasma-systemmonitor"},
	{"ksysguard"},
	{"xfce4-taskmanager"},
	{"mate-system-monitor"},
}
