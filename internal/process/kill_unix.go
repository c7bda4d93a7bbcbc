//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Isolate places cmd in its own process group so that helper processes it
// spawns (soffice forks oosplash and soffice.bin) can be killed together.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; error ignored as exec.Cmd.Wait reaps the leader
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
