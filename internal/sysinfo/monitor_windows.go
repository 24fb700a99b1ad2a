package sysinfo

var monitorCommands = [][]string{
	{"taskmgr"},
}
