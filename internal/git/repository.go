package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmgilman/gitobj/internal/exec"
	"github.com/jmgilman/gitobj/internal/slogger"
)

// Repository is a working-tree path plus an execution context. It holds no
// repository state of its own: every read re-derives state by running a
// command, so a Repository can be reconstructed at any time.
type Repository struct {
	root    string
	exec    exec.Executor
	binary  string
	timeout time.Duration
}

// Option configures a Repository.
type Option func(*Repository)

// WithBinary overrides the git binary name or path (default "git").
func WithBinary(binary string) Option {
	return func(r *Repository) {
		if binary != "" {
			r.binary = binary
		}
	}
}

// WithTimeout sets the per-command execution budget.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Repository) {
		r.timeout = timeout
	}
}

func newRepository(root string, e exec.Executor, opts []Option) *Repository {
	r := &Repository{
		root:   root,
		exec:   e,
		binary: "git",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open opens the repository containing path. Returns ErrNotRepository when
// path is not inside a working tree.
func Open(ctx context.Context, e exec.Executor, path string, opts ...Option) (*Repository, error) {
	probe := newRepository(path, e, opts)

	result, err := probe.run(ctx, revParseTopLevelCmd())
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	root := strings.TrimSpace(string(result.Stdout))
	if root == "" {
		return nil, fmt.Errorf("open repository: rev-parse returned empty root")
	}

	return newRepository(root, e, opts), nil
}

// Init initializes a new repository at path and returns it.
func Init(ctx context.Context, e exec.Executor, path string, opts ...Option) (*Repository, error) {
	probe := newRepository(path, e, opts)
	if _, err := probe.runRaw(ctx, initCmd()); err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}
	return Open(ctx, e, path, opts...)
}

// Root returns the absolute path to the repository root.
func (r *Repository) Root() string {
	return r.root
}

// Stage stages the given paths, or all changes when none are given.
func (r *Repository) Stage(ctx context.Context, paths ...string) error {
	if _, err := r.run(ctx, stageCmd(paths)); err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	return nil
}

// Commit records the staged changes with the given message and returns the
// resulting Commit, re-read from the log rather than trusted from command
// echo.
func (r *Repository) Commit(ctx context.Context, message string) (Commit, error) {
	if strings.TrimSpace(message) == "" {
		return Commit{}, fmt.Errorf("commit: %w", ErrEmptyMessage)
	}

	if _, err := r.run(ctx, commitCmd(message)); err != nil {
		return Commit{}, classifyCommitError(err)
	}

	return r.LookupCommit(ctx, "HEAD")
}

// StatusEntry is one porcelain status record. Index and Worktree are the
// two status columns; Path is relative to the repository root. For renames
// From holds the pre-rename path.
type StatusEntry struct {
	Index    byte
	Worktree byte
	Path     string
	From     string
}

// Status returns the porcelain status, one entry per changed path. An empty
// result means a clean working tree.
func (r *Repository) Status(ctx context.Context) ([]StatusEntry, error) {
	result, err := r.run(ctx, statusCmd())
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	lines := result.Lines()
	entries := make([]StatusEntry, 0, len(lines))
	for _, line := range lines {
		entry, err := parseStatusLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseStatusLine parses one `git status --porcelain` line: "XY path", with
// "orig -> dest" for renames and copies.
func parseStatusLine(line string) (StatusEntry, error) {
	if len(line) < 4 || line[2] != ' ' {
		return StatusEntry{}, &ParseError{Line: line, Reason: "status line is shorter than XY-and-path"}
	}

	entry := StatusEntry{
		Index:    line[0],
		Worktree: line[1],
		Path:     line[3:],
	}

	if from, to, ok := strings.Cut(entry.Path, " -> "); ok {
		entry.From = from
		entry.Path = to
	}
	return entry, nil
}

// run executes one git command in the repository and classifies the
// failures shared by every family: absence of a repository is reported
// here, never silently tolerated.
func (r *Repository) run(ctx context.Context, cmd command) (*exec.Result, error) {
	result, err := r.runRaw(ctx, cmd)
	if err != nil {
		if strings.Contains(stderrOf(err), "not a git repository") {
			return nil, fmt.Errorf("%s: %w", r.root, ErrNotRepository)
		}
		return nil, err
	}
	return result, nil
}

// runRaw executes one git command without the shared classification.
func (r *Repository) runRaw(ctx context.Context, cmd command) (*exec.Result, error) {
	log := slogger.L(ctx)
	log.Debug("running git command", "args", cmd.args, "dir", r.root)

	result, err := r.exec.Run(ctx, exec.RunOptions{
		Name:        r.binary,
		Args:        cmd.args,
		Dir:         r.root,
		Timeout:     r.timeout,
		OKExitCodes: cmd.okExit,
	})
	if err != nil {
		log.Debug("git command failed", "args", cmd.args, "err", err)
		return nil, err
	}
	return result, nil
}

// classifyCommitError maps commit-family stderr/stdout text to sentinel
// errors. git reports "nothing to commit" on stdout, not stderr.
func classifyCommitError(err error) error {
	var cmdErr *exec.CommandError
	if errors.As(err, &cmdErr) {
		combined := cmdErr.Stdout + cmdErr.Stderr
		if strings.Contains(combined, "nothing to commit") ||
			strings.Contains(combined, "no changes added to commit") {
			return fmt.Errorf("commit: %w", ErrNothingToCommit)
		}
	}
	return err
}

// stderrOf extracts the captured stderr from a CommandError, or empty when
// the error carries none.
func stderrOf(err error) string {
	var cmdErr *exec.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Stderr
	}
	return ""
}
