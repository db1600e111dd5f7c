package git

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseError is returned when a line of command output matches no recognized
// pattern. It always carries the raw offending text.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable git output: %s: %q", e.Reason, e.Line)
}

var (
	// Detached-HEAD descriptor from `git branch --verbose --no-abbrev`,
	// e.g. "(HEAD detached at 0123…) 0123… initial commit". Checked before
	// the general pattern: the general pattern would otherwise capture
	// "(HEAD" as a branch name.
	detachedLineRe = regexp.MustCompile(`^\(HEAD detached (?:at|from) [^)]+\)\s+([0-9a-f]{40})\s*(.*)$`)

	// General branch listing line: name, full sha, tip subject.
	branchLineRe = regexp.MustCompile(`^(\S+)\s+([0-9a-f]{40})\s*(.*)$`)

	// "(no branch)" style placeholders some git versions emit; same
	// precedence as the detached descriptor.
	noBranchRe = regexp.MustCompile(`^\(no branch[^)]*\)\s+([0-9a-f]{40})\s*(.*)$`)
)

// branchRecord is the parsed form of one branch listing line.
type branchRecord struct {
	name     string
	sha      string
	comment  string
	current  bool
	detached bool
}

// parseBranchLine parses one line of `git branch --list --verbose
// --no-abbrev` output. The detached descriptor is matched explicitly before
// the general pattern; relying on try-and-fallback ordering would mis-read a
// detached line as a branch named "(HEAD".
func parseBranchLine(line string) (branchRecord, error) {
	rest := strings.TrimSpace(line)

	// "* " marks the current branch. "+ " marks a branch checked out in a
	// linked worktree and "- " a locked one; both are ordinary non-current
	// branches to this layer.
	var rec branchRecord
	switch {
	case strings.HasPrefix(rest, "* "):
		rec.current = true
		rest = strings.TrimSpace(rest[2:])
	case strings.HasPrefix(rest, "+ "), strings.HasPrefix(rest, "- "):
		rest = strings.TrimSpace(rest[2:])
	}

	if m := detachedLineRe.FindStringSubmatch(rest); m != nil {
		rec.detached = true
		rec.sha = m[1]
		rec.comment = strings.TrimSpace(m[2])
		return rec, nil
	}
	if m := noBranchRe.FindStringSubmatch(rest); m != nil {
		rec.detached = true
		rec.sha = m[1]
		rec.comment = strings.TrimSpace(m[2])
		return rec, nil
	}

	if m := branchLineRe.FindStringSubmatch(rest); m != nil {
		rec.name = strings.TrimSpace(m[1])
		rec.sha = m[2]
		rec.comment = strings.TrimSpace(m[3])
		return rec, nil
	}

	return branchRecord{}, &ParseError{Line: line, Reason: "branch line matched no pattern"}
}

// parseRefLine parses one `<name> <sha> <subject>` line as emitted by the
// tag listing's for-each-ref format.
func parseRefLine(line string) (name, sha, comment string, err error) {
	m := branchLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", "", &ParseError{Line: line, Reason: "ref line matched no pattern"}
	}
	return strings.TrimSpace(m[1]), m[2], strings.TrimSpace(m[3]), nil
}

// parseTreeLine parses one `git ls-tree` record:
// "<mode> SP <type> SP <sha> TAB <path>".
func parseTreeLine(line string) (TreeNode, error) {
	meta, path, ok := strings.Cut(line, "\t")
	if !ok {
		return TreeNode{}, &ParseError{Line: line, Reason: "tree line has no tab separator"}
	}

	fields := strings.Fields(meta)
	if len(fields) != 3 {
		return TreeNode{}, &ParseError{Line: line, Reason: "tree line does not have mode, type and sha"}
	}

	nodeType, err := parseNodeType(fields[1])
	if err != nil {
		return TreeNode{}, &ParseError{Line: line, Reason: fmt.Sprintf("unknown tree entry type %q", fields[1])}
	}

	sha := fields[2]
	if !isSHA(sha) {
		return TreeNode{}, &ParseError{Line: line, Reason: "tree entry sha is not 40 hex characters"}
	}

	return TreeNode{
		Mode: fields[0],
		Type: nodeType,
		SHA:  sha,
		Path: path,
	}, nil
}

// parseLogEntry parses one log record produced by logFormat: six fields
// joined by the unit separator.
func parseLogEntry(record string) (Commit, error) {
	fields := strings.Split(record, "\x1f")
	if len(fields) != 6 {
		return Commit{}, &ParseError{Line: record, Reason: fmt.Sprintf("log record has %d fields, want 6", len(fields))}
	}

	sha := strings.TrimSpace(fields[0])
	if !isSHA(sha) {
		return Commit{}, &ParseError{Line: record, Reason: "commit sha is not 40 hex characters"}
	}

	tree := strings.TrimSpace(fields[1])
	if !isSHA(tree) {
		return Commit{}, &ParseError{Line: record, Reason: "tree sha is not 40 hex characters"}
	}

	var parents []string
	if p := strings.TrimSpace(fields[2]); p != "" {
		parents = strings.Fields(p)
		for _, parent := range parents {
			if !isSHA(parent) {
				return Commit{}, &ParseError{Line: record, Reason: "parent sha is not 40 hex characters"}
			}
		}
	}

	return Commit{
		sha:       sha,
		tree:      tree,
		parents:   parents,
		author:    strings.TrimSpace(fields[3]),
		committer: strings.TrimSpace(fields[4]),
		message:   strings.TrimSpace(fields[5]),
	}, nil
}

// splitLogRecords splits raw log output on the record separator, dropping
// the whitespace git emits between records.
func splitLogRecords(raw string) []string {
	var records []string
	for _, rec := range strings.Split(raw, "\x1e") {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		records = append(records, strings.TrimPrefix(rec, "\n"))
	}
	return records
}

// isSHA reports whether s is exactly shaHexLength lowercase hex characters.
// Shorter hashes are never truncated or accepted.
func isSHA(s string) bool {
	if len(s) != shaHexLength {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
