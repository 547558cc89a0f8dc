//go:build !windows

package ui

func consoleUTF8() bool { return true }
