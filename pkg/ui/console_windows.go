//go:build windows

package ui

import "golang.org/x/sys/windows"

const cpUTF8 = 65001

func init() {
	// UTF-8 for the status glyphs and box borders, VT processing for
	// lipgloss colors.
	_ = windows.SetConsoleOutputCP(cpUTF8)
	_ = windows.SetConsoleCP(cpUTF8)
	for _, std := range []uint32{windows.STD_ERROR_HANDLE, windows.STD_OUTPUT_HANDLE} {
		if h, err := windows.GetStdHandle(std); err == nil {
			var mode uint32
			if windows.GetConsoleMode(h, &mode) == nil {
				_ = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
			}
		}
	}
}

// consoleUTF8 checks the code page actually stuck; some hosts ignore
// SetConsoleOutputCP.
func consoleUTF8() bool {
	cp, err := windows.GetConsoleOutputCP()
	return err == nil && cp == cpUTF8
}
