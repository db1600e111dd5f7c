package exec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

type executor struct{}

// New returns a new Executor that uses os/exec.
func New() Executor {
	return &executor{}
}

func (e *executor) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Apply the per-call budget unless the caller's context already
	// carries a deadline. CommandContext kills the child on expiry, so no
	// orphaned processes are left behind.
	if _, ok := ctx.Deadline(); !ok {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// G204: This is intentional - we're an executor that runs caller-specified
	// commands. The caller is responsible for validating the arguments.
	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...) //nolint:gosec // Intentional subprocess execution

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()

	result := &Result{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	} else {
		result.ExitCode = -1
	}

	if runErr == nil {
		return result, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return result, &CommandError{
			Name:   opts.Name,
			Args:   opts.Args,
			Stdout: stdoutBuf.String(),
			Stderr: stderrBuf.String(),
			Err:    ErrTimeout,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && opts.exitOK(exitErr.ExitCode()) {
		return result, nil
	}

	return result, &CommandError{
		Name:   opts.Name,
		Args:   opts.Args,
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
		Err:    runErr,
	}
}

func (e *executor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
