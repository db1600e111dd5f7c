// Package git provides a typed object model over the git command line tool.
// It builds argument vectors per operation, executes them through an
// exec.Executor, classifies failures by exit code and stderr text, and
// parses porcelain output into Branch, Tag, Commit and Tree values.
package git

import (
	"errors"
	"strings"
)

// shaHexLength is the object identifier length for this version of the
// contract. Every parser enforces it through this single constant.
const shaHexLength = 40

// Sentinel errors for git operations.
var (
	ErrNotRepository   = errors.New("not a git repository")
	ErrBranchExists    = errors.New("branch already exists")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrTagExists       = errors.New("tag already exists")
	ErrTagNotFound     = errors.New("tag not found")
	ErrObjectNotFound  = errors.New("object not found")
	ErrInvalidName     = errors.New("invalid reference name")
	ErrEmptyMessage    = errors.New("empty commit message")
	ErrNothingToCommit = errors.New("nothing to commit")
)

// Treeish is anything resolvable to a commit: a branch, tag or commit.
// It is a capability, not a concrete type.
type Treeish interface {
	// SHA returns the 40-hex object identifier.
	SHA() string

	// FullRef returns an expression git resolves to the object: a
	// namespaced ref for branches and tags, the sha itself for commits.
	FullRef() string
}

// ValidateRefName rejects names git would refuse before any command runs.
// The full ref-format rules live in git itself; this catches the malformed
// inputs that would otherwise be misread as flags or produce confusing
// errors.
func ValidateRefName(name string) error {
	switch {
	case name == "",
		strings.ContainsAny(name, " \t\n~^:?*[\\"),
		strings.HasPrefix(name, "-"),
		strings.HasPrefix(name, "/"),
		strings.HasSuffix(name, "/"),
		strings.HasSuffix(name, "."),
		strings.HasSuffix(name, ".lock"),
		strings.Contains(name, ".."),
		strings.Contains(name, "@{"),
		name == "@":
		return ErrInvalidName
	}
	return nil
}
