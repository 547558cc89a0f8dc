//go:build windows

package rasterize

import (
	"os"
	"os/exec"
	"strconv"
)

// killProcessTree kills Chrome and every child it spawned.
func killProcessTree(proc *os.Process) {
	if proc == nil {
		return
	}
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(proc.Pid)).Run(); err != nil {
		_ = proc.Kill()
	}
}
