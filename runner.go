package inkcost

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-inkcost/internal/process"
)

// commandRunner abstracts command execution to enable testing without real subprocesses.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// execRunner implements commandRunner using os/exec. The command runs in its
// own process group, which is killed when ctx is canceled.
type execRunner struct{}

var _ commandRunner = (*execRunner)(nil)

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	cmd := process.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), ctxErr
	}
	return stdout.String(), stderr.String(), err
}

// toolError formats a failed external tool run, keeping the first line of
// its stderr when there is one.
func toolError(sentinel error, tool string, stderr string, err error) error {
	msg := strings.TrimSpace(stderr)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if msg == "" {
		return fmt.Errorf("%w: %s: %v", sentinel, tool, err)
	}
	return fmt.Errorf("%w: %s: %s: %v", sentinel, tool, msg, err)
}
