package sysinfo

var monitorCommands = [][]string{
	{"open", "-a", "Activity Monitor"},
}
