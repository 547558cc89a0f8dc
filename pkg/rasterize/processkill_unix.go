//go:build !windows

package rasterize

import (
	"os"

	"golang.org/x/sys/unix"
)

// killProcessTree kills Chrome and its helpers. Chrome's GPU and renderer
// processes survive a plain proc.Kill and keep the parent's pipes open;
// chromedp starts Chrome in its own process group, so the group ID equals
// the parent PID.
func killProcessTree(proc *os.Process) {
	if proc == nil {
		return
	}
	if err := unix.Kill(-proc.Pid, unix.SIGKILL); err != nil {
		_ = proc.Kill()
	}
}
