package git

import "strconv"

// command pairs an argument vector with the non-zero exit codes that count
// as success for that operation. Builders are pure: the same parameters
// always produce the same vector, and the flags they pin are part of the
// matching parser's contract.
type command struct {
	args   []string
	okExit []int
}

// logFormat produces one record per commit, fields joined by the unit
// separator (0x1f) and records terminated by the record separator (0x1e):
// sha, root tree sha, parent shas, author, committer, full message.
// Explicit separators keep parsing stable against messages containing
// newlines or whitespace.
const logFormat = "%H%x1f%T%x1f%P%x1f%an <%ae>%x1f%cn <%ce>%x1f%B%x1e"

// branchListCmd lists local branches. --verbose --no-abbrev pins the line
// shape parseBranchLine expects: marker, name (or detached descriptor),
// full 40-hex sha, tip subject.
func branchListCmd() command {
	return command{args: []string{"branch", "--list", "--verbose", "--no-abbrev"}}
}

func branchCreateCmd(name, startPoint string) command {
	args := []string{"branch", "--", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	return command{args: args}
}

// tagListCmd lists tags in the same <name> <sha> <subject> line shape as the
// branch listing, via an explicit for-each-ref format. Annotated tags are
// dereferenced so sha and subject always describe the tagged commit, the
// same pointer a Branch reports; %(*objectname) is empty for lightweight
// tags, where the tag and the commit are the same object.
func tagListCmd() command {
	return command{args: []string{
		"for-each-ref", "refs/tags",
		"--format=%(refname:short) %(if)%(*objectname)%(then)%(*objectname) %(*subject)%(else)%(objectname) %(subject)%(end)",
	}}
}

func tagCreateCmd(name, target string) command {
	args := []string{"tag", "--", name}
	if target != "" {
		args = append(args, target)
	}
	return command{args: args}
}

func checkoutCmd(target string, create bool) command {
	args := []string{"checkout"}
	if create {
		args = append(args, "-b")
	}
	args = append(args, target)
	return command{args: args}
}

func initCmd() command {
	return command{args: []string{"init"}}
}

// stageCmd stages the given paths, or everything when none are given.
func stageCmd(paths []string) command {
	if len(paths) == 0 {
		return command{args: []string{"add", "--all"}}
	}
	args := []string{"add", "--"}
	args = append(args, paths...)
	return command{args: args}
}

func commitCmd(message string) command {
	return command{args: []string{"commit", "-m", message}}
}

func statusCmd() command {
	return command{args: []string{"status", "--porcelain"}}
}

// treeListCmd lists one tree level. No -r: recursion is caller-driven by
// re-listing a node's sha, so large trees are never eagerly expanded.
func treeListCmd(treeish string) command {
	if treeish == "" {
		treeish = "HEAD"
	}
	return command{args: []string{"ls-tree", treeish}}
}

// logCmd lists commits in logFormat. rangeSpec may be a ref, a sha or a
// range expression; empty means HEAD. limit <= 0 means unbounded.
func logCmd(rangeSpec string, limit int) command {
	args := []string{"log", "--format=" + logFormat}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if rangeSpec != "" {
		args = append(args, rangeSpec)
	}
	args = append(args, "--")
	return command{args: args}
}

func revParseTopLevelCmd() command {
	return command{args: []string{"rev-parse", "--show-toplevel"}}
}
