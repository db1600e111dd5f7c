package git

import (
	"context"
	"fmt"
	"strings"
)

// Branch is a local branch at one point in time. Attributes are set once
// from a parsed listing line; a fresh listing produces a fresh value rather
// than mutating an existing one.
type Branch struct {
	name    string
	sha     string
	comment string
	current bool
}

// Name returns the branch name.
func (b Branch) Name() string { return b.name }

// SHA returns the 40-hex sha of the branch tip.
func (b Branch) SHA() string { return b.sha }

// Comment returns the subject of the tip commit.
func (b Branch) Comment() string { return b.comment }

// Current reports whether this was the checked-out branch when listed.
func (b Branch) Current() bool { return b.current }

// FullRef returns the namespaced ref, refs/heads/<name>.
func (b Branch) FullRef() string { return "refs/heads/" + b.name }

// Head is the checkout state of the repository: either a named branch or a
// detached commit.
type Head struct {
	branch  string
	sha     string
	comment string
}

// Detached reports whether the checkout points directly at a commit.
func (h Head) Detached() bool { return h.branch == "" }

// Branch returns the checked-out branch name, empty when detached.
func (h Head) Branch() string { return h.branch }

// SHA returns the 40-hex sha the checkout points at.
func (h Head) SHA() string { return h.sha }

// Comment returns the subject of the checked-out commit.
func (h Head) Comment() string { return h.comment }

// Branches lists local branches in the order git emits them.
func (r *Repository) Branches(ctx context.Context) ([]Branch, error) {
	records, err := r.branchRecords(ctx)
	if err != nil {
		return nil, err
	}

	branches := make([]Branch, 0, len(records))
	for _, rec := range records {
		if rec.detached {
			continue
		}
		branches = append(branches, Branch{
			name:    rec.name,
			sha:     rec.sha,
			comment: rec.comment,
			current: rec.current,
		})
	}
	return branches, nil
}

// LookupBranch scans the listing in emitted order and returns the first
// branch with the given name. Returns ErrBranchNotFound when the full
// listing is exhausted without a match.
func (r *Repository) LookupBranch(ctx context.Context, name string) (Branch, error) {
	if err := ValidateRefName(name); err != nil {
		return Branch{}, fmt.Errorf("lookup branch %q: %w", name, err)
	}

	records, err := r.branchRecords(ctx)
	if err != nil {
		return Branch{}, err
	}

	for _, rec := range records {
		if rec.detached || rec.name != name {
			continue
		}
		return Branch{
			name:    rec.name,
			sha:     rec.sha,
			comment: rec.comment,
			current: rec.current,
		}, nil
	}
	return Branch{}, fmt.Errorf("branch %q: %w", name, ErrBranchNotFound)
}

// CreateBranch creates a branch at startPoint (HEAD when empty), then
// constructs the Branch by re-reading the listing. Creation never trusts its
// own echoed input; the listing is the canonical post-creation truth.
func (r *Repository) CreateBranch(ctx context.Context, name, startPoint string) (Branch, error) {
	if err := ValidateRefName(name); err != nil {
		return Branch{}, fmt.Errorf("create branch %q: %w", name, err)
	}

	if _, err := r.run(ctx, branchCreateCmd(name, startPoint)); err != nil {
		return Branch{}, classifyBranchError(name, err)
	}

	return r.LookupBranch(ctx, name)
}

// Checkout checks out the named branch, creating it first when create is
// set, and returns the resulting Branch from a fresh listing.
func (r *Repository) Checkout(ctx context.Context, name string, create bool) (Branch, error) {
	if err := ValidateRefName(name); err != nil {
		return Branch{}, fmt.Errorf("checkout %q: %w", name, err)
	}

	if _, err := r.run(ctx, checkoutCmd(name, create)); err != nil {
		return Branch{}, classifyBranchError(name, err)
	}

	return r.LookupBranch(ctx, name)
}

// Head returns the current checkout state: the current branch, or the
// detached commit when HEAD points at a commit directly.
func (r *Repository) Head(ctx context.Context) (Head, error) {
	records, err := r.branchRecords(ctx)
	if err != nil {
		return Head{}, err
	}

	for _, rec := range records {
		if !rec.current {
			continue
		}
		return Head{branch: rec.name, sha: rec.sha, comment: rec.comment}, nil
	}
	return Head{}, fmt.Errorf("current branch: %w", ErrBranchNotFound)
}

// branchRecords runs the branch listing and parses every line. Parse
// failures are never swallowed: one malformed line fails the whole read.
func (r *Repository) branchRecords(ctx context.Context) ([]branchRecord, error) {
	result, err := r.run(ctx, branchListCmd())
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	lines := result.Lines()
	records := make([]branchRecord, 0, len(lines))
	for _, line := range lines {
		rec, err := parseBranchLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// classifyBranchError maps branch-family stderr text to sentinel errors.
// The distinguishing text is version-sensitive and maintained only here.
func classifyBranchError(name string, err error) error {
	stderr := stderrOf(err)
	switch {
	case strings.Contains(stderr, "already exists"):
		return fmt.Errorf("branch %q: %w", name, ErrBranchExists)
	case strings.Contains(stderr, "not a valid object name"),
		strings.Contains(stderr, "did not match any file"),
		strings.Contains(stderr, "unknown revision"):
		return fmt.Errorf("branch %q: %w", name, ErrBranchNotFound)
	}
	return err
}
