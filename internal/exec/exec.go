// Package exec provides an abstraction over executing external commands.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultTimeout is applied to commands whose context carries no deadline
// and whose options set no per-call budget.
const DefaultTimeout = 2 * time.Minute

// ErrTimeout is returned (wrapped in a CommandError) when a command exceeds
// its execution budget. The child process is terminated before the error
// surfaces.
var ErrTimeout = errors.New("command timed out")

// Result holds the output from a completed command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Lines splits the captured stdout into lines, dropping the empty trailing
// line a final newline produces. Empty stdout yields no lines.
func (r *Result) Lines() []string {
	out := strings.TrimRight(string(r.Stdout), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// StderrText returns the captured stderr as trimmed text.
func (r *Result) StderrText() string {
	return strings.TrimSpace(string(r.Stderr))
}

// RunOptions configures command execution.
type RunOptions struct {
	Name    string        // Command name or path (required)
	Args    []string      // Command arguments, passed as a discrete vector
	Dir     string        // Working directory (empty = current)
	Env     []string      // Additional environment variables (KEY=VALUE format)
	Stdin   io.Reader     // Stdin source (nil = no input)
	Timeout time.Duration // Per-call budget; DefaultTimeout when zero and the context has no deadline

	// OKExitCodes lists non-zero exit codes the caller treats as success.
	// Zero is always success. Some commands legitimately exit non-zero for
	// "no results", which must not surface as an error.
	OKExitCodes []int
}

func (o *RunOptions) exitOK(code int) bool {
	if code == 0 {
		return true
	}
	for _, ok := range o.OKExitCodes {
		if code == ok {
			return true
		}
	}
	return false
}

// Executor runs external commands.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/executor.go . Executor
type Executor interface {
	// Run executes a command, drains its output, and returns the result.
	// A nil error means the exit code was zero or listed in OKExitCodes.
	// On failure the Result is returned alongside a *CommandError so
	// callers can inspect stderr when classifying the failure.
	Run(ctx context.Context, opts RunOptions) (*Result, error)

	// LookPath searches for an executable in PATH.
	// Returns the full path if found, or an error if not.
	LookPath(name string) (string, error)
}

// CommandError represents a failed command execution: unexpected exit code,
// missing executable, or timeout. It carries the full invocation and both
// output streams so failures can be diagnosed without re-running.
type CommandError struct {
	Name   string
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Name)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
