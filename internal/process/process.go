// Package process manages external tool processes started by inkcost.
package process

import (
	"context"
	"os/exec"
)

// CommandContext builds a command that runs in its own process group and
// whose whole group is killed when ctx is canceled.
func CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- tool binaries come from config
	Isolate(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	return cmd
}
