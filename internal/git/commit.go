package git

import (
	"context"
	"fmt"
	"strings"
)

// Commit is an immutable snapshot of one log entry. Parents and the root
// tree are referenced by sha only and resolved on demand, never eagerly
// materialized.
type Commit struct {
	sha       string
	tree      string
	parents   []string
	author    string
	committer string
	message   string
}

// SHA returns the 40-hex commit identifier.
func (c Commit) SHA() string { return c.sha }

// Tree returns the sha of the commit's root tree.
func (c Commit) Tree() string { return c.tree }

// Parents returns the ordered parent shas: none for root commits, two or
// more for merges.
func (c Commit) Parents() []string {
	out := make([]string, len(c.parents))
	copy(out, c.parents)
	return out
}

// Author returns the author in "Name <email>" form.
func (c Commit) Author() string { return c.author }

// Committer returns the committer in "Name <email>" form.
func (c Commit) Committer() string { return c.committer }

// Message returns the full commit message.
func (c Commit) Message() string { return c.message }

// FullRef returns the sha itself; a commit has no namespaced ref but the
// sha is directly resolvable.
func (c Commit) FullRef() string { return c.sha }

// Log returns commits reachable from rangeSpec (HEAD when empty), newest
// first, capped at limit when limit > 0. An empty repository yields an
// empty result, not an error.
func (r *Repository) Log(ctx context.Context, rangeSpec string, limit int) ([]Commit, error) {
	result, err := r.run(ctx, logCmd(rangeSpec, limit))
	if err != nil {
		if isEmptyHistoryError(err) {
			return nil, nil
		}
		return nil, classifyLogError(rangeSpec, err)
	}

	records := splitLogRecords(string(result.Stdout))
	commits := make([]Commit, 0, len(records))
	for _, rec := range records {
		commit, err := parseLogEntry(rec)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// LookupCommit resolves a sha or ref expression to a single Commit.
func (r *Repository) LookupCommit(ctx context.Context, rev string) (Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}

	commits, err := r.Log(ctx, rev, 1)
	if err != nil {
		return Commit{}, err
	}
	if len(commits) == 0 {
		return Commit{}, fmt.Errorf("commit %q: %w", rev, ErrObjectNotFound)
	}
	return commits[0], nil
}

// isEmptyHistoryError recognizes the benign "no commits yet" failure the
// log family conflates with fatal errors under exit code 128.
func isEmptyHistoryError(err error) bool {
	stderr := stderrOf(err)
	return strings.Contains(stderr, "does not have any commits yet") ||
		strings.Contains(stderr, "bad default revision")
}

// classifyLogError maps log-family stderr text to sentinel errors.
func classifyLogError(rangeSpec string, err error) error {
	stderr := stderrOf(err)
	if strings.Contains(stderr, "unknown revision") ||
		strings.Contains(stderr, "bad revision") {
		return fmt.Errorf("revision %q: %w", rangeSpec, ErrObjectNotFound)
	}
	return err
}
