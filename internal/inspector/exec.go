package inspector

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const (
	maxStderrLen = 512

	// Grace period for pipes held open by grandchildren after the tool is killed
	waitDelay = 2 * time.Second
)

// ExecInvoker runs the inspection tool as a child process:
//
//	<Command> [Args...] <IDFlag> <clusterID>
//
// Only stdout is consumed. A non-zero exit, a missing executable or a timeout
// is reported as an *InvocationError.
type ExecInvoker struct {
	Command string
	Args    []string
	IDFlag  string
	Timeout time.Duration
}

// ExecOption configures an ExecInvoker.
type ExecOption func(*ExecInvoker)

// WithArgs sets arguments placed before the cluster id flag.
func WithArgs(args ...string) ExecOption {
	return func(e *ExecInvoker) { e.Args = args }
}

// WithIDFlag overrides the flag that precedes the cluster id.
func WithIDFlag(flag string) ExecOption {
	return func(e *ExecInvoker) { e.IDFlag = flag }
}

// WithTimeout bounds a single invocation. Zero disables the timeout.
func WithTimeout(d time.Duration) ExecOption {
	return func(e *ExecInvoker) { e.Timeout = d }
}

// NewExecInvoker creates an invoker for the given executable.
func NewExecInvoker(command string, opts ...ExecOption) *ExecInvoker {
	e := &ExecInvoker{
		Command: command,
		IDFlag:  "--id",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inspect runs the tool for clusterID and returns its stdout.
func (e *ExecInvoker) Inspect(ctx context.Context, clusterID string) (string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := append([]string{}, e.Args...)
	if e.IDFlag != "" {
		args = append(args, e.IDFlag)
	}
	args = append(args, clusterID)

	cmd := exec.CommandContext(ctx, e.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		invErr := &InvocationError{
			ClusterID: clusterID,
			ExitCode:  -1,
			Stderr:    truncate(strings.TrimSpace(stderr.String()), maxStderrLen),
			Err:       err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			invErr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			invErr.Err = ctxErr
		}
		return "", invErr
	}

	return stdout.String(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
