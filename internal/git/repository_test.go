package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/gitobj/internal/exec"
)

// resolvePath resolves symlinks in a path (handles macOS /var -> /private/var).
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// testRepo creates a git repository with one initial commit in a temp
// directory and returns it opened.
func testRepo(t *testing.T) *Repository {
	t.Helper()

	repo := emptyRepo(t)
	writeFile(t, repo, "README.md", "# Test Repo\n")
	commitAll(t, repo, "initial commit")
	return repo
}

// emptyRepo creates an initialized repository with no commits.
func emptyRepo(t *testing.T) *Repository {
	t.Helper()

	dir := resolvePath(t, t.TempDir())
	e := exec.New()
	ctx := context.Background()

	_, err := e.Run(ctx, exec.RunOptions{
		Name: "git",
		Args: []string{"init", "-b", "main"},
		Dir:  dir,
	})
	require.NoError(t, err, "git init")

	for _, kv := range [][2]string{
		{"user.email", "test@test.com"},
		{"user.name", "Test User"},
		{"commit.gpgsign", "false"},
	} {
		_, err = e.Run(ctx, exec.RunOptions{
			Name: "git",
			Args: []string{"config", kv[0], kv[1]},
			Dir:  dir,
		})
		require.NoError(t, err, "git config %s", kv[0])
	}

	repo, err := Open(ctx, e, dir)
	require.NoError(t, err, "open repo")
	return repo
}

func writeFile(t *testing.T, repo *Repository, name, content string) {
	t.Helper()
	path := filepath.Join(repo.Root(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func commitAll(t *testing.T, repo *Repository, message string) Commit {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Stage(ctx))
	commit, err := repo.Commit(ctx, message)
	require.NoError(t, err)
	return commit
}

func TestOpen(t *testing.T) {
	t.Run("opens from a subdirectory", func(t *testing.T) {
		repo := testRepo(t)
		sub := filepath.Join(repo.Root(), "sub", "dir")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		opened, err := Open(context.Background(), exec.New(), sub)
		require.NoError(t, err)
		assert.Equal(t, repo.Root(), opened.Root())
	})

	t.Run("non-repository returns ErrNotRepository", func(t *testing.T) {
		dir := t.TempDir()

		_, err := Open(context.Background(), exec.New(), dir)
		require.ErrorIs(t, err, ErrNotRepository)
	})
}

func TestInit(t *testing.T) {
	t.Run("initializes and opens", func(t *testing.T) {
		dir := resolvePath(t, t.TempDir())

		repo, err := Init(context.Background(), exec.New(), dir)
		require.NoError(t, err)
		assert.Equal(t, dir, repo.Root())

		// A fresh repository is a valid repository with empty history.
		commits, err := repo.Log(context.Background(), "", 0)
		require.NoError(t, err)
		assert.Empty(t, commits)
	})
}

func TestRepository_Branches(t *testing.T) {
	ctx := context.Background()

	t.Run("lists the initial branch as current", func(t *testing.T) {
		repo := testRepo(t)

		branches, err := repo.Branches(ctx)
		require.NoError(t, err)
		require.Len(t, branches, 1)
		assert.Equal(t, "main", branches[0].Name())
		assert.True(t, branches[0].Current())
		assert.Len(t, branches[0].SHA(), 40)
		assert.Equal(t, "initial commit", branches[0].Comment())
		assert.Equal(t, "refs/heads/main", branches[0].FullRef())
	})

	t.Run("create is a pure ref copy", func(t *testing.T) {
		repo := testRepo(t)

		main, err := repo.LookupBranch(ctx, "main")
		require.NoError(t, err)

		created, err := repo.CreateBranch(ctx, "feature", "main")
		require.NoError(t, err)
		assert.Equal(t, "feature", created.Name())
		assert.Equal(t, main.SHA(), created.SHA(), "branch creation must not create a new commit")

		// The round trip holds through an independent lookup.
		looked, err := repo.LookupBranch(ctx, "feature")
		require.NoError(t, err)
		assert.Equal(t, main.SHA(), looked.SHA())
	})

	t.Run("create without start point uses HEAD", func(t *testing.T) {
		repo := testRepo(t)

		head, err := repo.Head(ctx)
		require.NoError(t, err)

		created, err := repo.CreateBranch(ctx, "feature", "")
		require.NoError(t, err)
		assert.Equal(t, head.SHA(), created.SHA())
	})

	t.Run("duplicate create returns ErrBranchExists", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.CreateBranch(ctx, "feature", "")
		require.NoError(t, err)

		_, err = repo.CreateBranch(ctx, "feature", "")
		require.ErrorIs(t, err, ErrBranchExists)
	})

	t.Run("lookup of missing branch is NotFound, never ParseError", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.LookupBranch(ctx, "does-not-exist")
		require.ErrorIs(t, err, ErrBranchNotFound)

		var parseErr *ParseError
		require.False(t, errors.As(err, &parseErr))
	})

	t.Run("invalid name fails before execution", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.CreateBranch(ctx, "has space", "")
		require.ErrorIs(t, err, ErrInvalidName)

		_, err = repo.LookupBranch(ctx, "-flag")
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("checkout switches the current branch", func(t *testing.T) {
		repo := testRepo(t)

		created, err := repo.Checkout(ctx, "feature", true)
		require.NoError(t, err)
		assert.True(t, created.Current())

		back, err := repo.Checkout(ctx, "main", false)
		require.NoError(t, err)
		assert.True(t, back.Current())

		branches, err := repo.Branches(ctx)
		require.NoError(t, err)
		assert.Len(t, branches, 2)
	})

	t.Run("branch checked out in a linked worktree still lists", func(t *testing.T) {
		repo := testRepo(t)

		created, err := repo.CreateBranch(ctx, "feature", "")
		require.NoError(t, err)

		wt := filepath.Join(t.TempDir(), "wt")
		_, err = repo.runRaw(ctx, command{args: []string{"worktree", "add", wt, "feature"}})
		require.NoError(t, err)

		branches, err := repo.Branches(ctx)
		require.NoError(t, err)
		require.Len(t, branches, 2)

		feature, err := repo.LookupBranch(ctx, "feature")
		require.NoError(t, err)
		assert.Equal(t, created.SHA(), feature.SHA())
		assert.False(t, feature.Current())
	})

	t.Run("checkout of missing branch without create fails", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.Checkout(ctx, "missing", false)
		require.ErrorIs(t, err, ErrBranchNotFound)
	})
}

func TestRepository_Head(t *testing.T) {
	ctx := context.Background()

	t.Run("on a branch", func(t *testing.T) {
		repo := testRepo(t)

		head, err := repo.Head(ctx)
		require.NoError(t, err)
		assert.False(t, head.Detached())
		assert.Equal(t, "main", head.Branch())
		assert.Len(t, head.SHA(), 40)
	})

	t.Run("detached checkout", func(t *testing.T) {
		repo := testRepo(t)
		commit := commitAllFile(t, repo, "second.txt", "x", "second commit")

		_, err := repo.runRaw(ctx, command{args: []string{"checkout", "--detach", commit.Parents()[0]}})
		require.NoError(t, err)

		head, err := repo.Head(ctx)
		require.NoError(t, err)
		assert.True(t, head.Detached())
		assert.Empty(t, head.Branch())
		assert.Len(t, head.SHA(), 40)
	})
}

// commitAllFile writes one file and commits it.
func commitAllFile(t *testing.T, repo *Repository, name, content, message string) Commit {
	t.Helper()
	writeFile(t, repo, name, content)
	return commitAll(t, repo, message)
}

func TestRepository_Tags(t *testing.T) {
	ctx := context.Background()

	t.Run("create and list round trip", func(t *testing.T) {
		repo := testRepo(t)

		head, err := repo.Head(ctx)
		require.NoError(t, err)

		tag, err := repo.CreateTag(ctx, "v1.0.0", "")
		require.NoError(t, err)
		assert.Equal(t, "v1.0.0", tag.Name())
		assert.Equal(t, head.SHA(), tag.SHA())
		assert.Equal(t, "refs/tags/v1.0.0", tag.FullRef())

		tags, err := repo.Tags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, tag, tags[0])
	})

	t.Run("duplicate create returns ErrTagExists", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.CreateTag(ctx, "v1", "")
		require.NoError(t, err)

		_, err = repo.CreateTag(ctx, "v1", "")
		require.ErrorIs(t, err, ErrTagExists)
	})

	t.Run("annotated tag resolves to the tagged commit", func(t *testing.T) {
		repo := testRepo(t)

		head, err := repo.Head(ctx)
		require.NoError(t, err)

		_, err = repo.runRaw(ctx, command{args: []string{"tag", "-a", "-m", "release one", "v1.0.0"}})
		require.NoError(t, err)

		tag, err := repo.LookupTag(ctx, "v1.0.0")
		require.NoError(t, err)
		assert.Equal(t, head.SHA(), tag.SHA(), "annotated tag must point at the commit, not the tag object")
		assert.Equal(t, "initial commit", tag.Comment())
	})

	t.Run("unknown target returns ErrObjectNotFound", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.CreateTag(ctx, "v2.0.0", "deadbeef")
		require.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("missing tag lookup returns ErrTagNotFound", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.LookupTag(ctx, "v9.9.9")
		require.ErrorIs(t, err, ErrTagNotFound)
	})

	t.Run("empty listing", func(t *testing.T) {
		repo := testRepo(t)

		tags, err := repo.Tags(ctx)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestRepository_Tree(t *testing.T) {
	ctx := context.Background()

	t.Run("walks one level at a time in emission order", func(t *testing.T) {
		repo := emptyRepo(t)
		writeFile(t, repo, "test", "content")
		writeFile(t, repo, filepath.Join("test-folder", "test2"), "content2")
		commitAll(t, repo, "add files")

		root, err := repo.Tree(ctx, "")
		require.NoError(t, err)
		require.Len(t, root, 2)

		assert.Equal(t, "test", root[0].Path)
		assert.Equal(t, NodeBlob, root[0].Type)
		assert.Equal(t, "test-folder", root[1].Path)
		assert.Equal(t, NodeTree, root[1].Type)

		sub, err := repo.Tree(ctx, root[1].SHA)
		require.NoError(t, err)
		require.Len(t, sub, 1)
		assert.Equal(t, "test2", sub[0].Path)
		assert.Equal(t, NodeBlob, sub[0].Type)
	})

	t.Run("tree of a Treeish", func(t *testing.T) {
		repo := testRepo(t)

		branch, err := repo.LookupBranch(ctx, "main")
		require.NoError(t, err)

		tree, err := repo.TreeOf(ctx, branch)
		require.NoError(t, err)
		require.Len(t, tree, 1)
		assert.Equal(t, "README.md", tree[0].Path)
	})

	t.Run("unknown treeish returns ErrObjectNotFound", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.Tree(ctx, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
		require.ErrorIs(t, err, ErrObjectNotFound)
	})
}

func TestRepository_Log(t *testing.T) {
	ctx := context.Background()

	t.Run("returns commits newest first with parent links", func(t *testing.T) {
		repo := testRepo(t)
		second := commitAllFile(t, repo, "a.txt", "a", "second commit")

		commits, err := repo.Log(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, commits, 2)

		assert.Equal(t, second.SHA(), commits[0].SHA())
		assert.Equal(t, "second commit", commits[0].Message())
		require.Len(t, commits[0].Parents(), 1)
		assert.Equal(t, commits[1].SHA(), commits[0].Parents()[0])
		assert.Empty(t, commits[1].Parents(), "root commit has no parents")
		assert.Contains(t, commits[0].Author(), "Test User")
	})

	t.Run("limit caps the result", func(t *testing.T) {
		repo := testRepo(t)
		commitAllFile(t, repo, "a.txt", "a", "second commit")

		commits, err := repo.Log(ctx, "", 1)
		require.NoError(t, err)
		assert.Len(t, commits, 1)
	})

	t.Run("empty history is benign", func(t *testing.T) {
		repo := emptyRepo(t)

		commits, err := repo.Log(ctx, "", 0)
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("unknown revision returns ErrObjectNotFound", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.Log(ctx, "no-such-ref", 0)
		require.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("lookup commit resolves refs and shas", func(t *testing.T) {
		repo := testRepo(t)

		byRef, err := repo.LookupCommit(ctx, "main")
		require.NoError(t, err)

		bySHA, err := repo.LookupCommit(ctx, byRef.SHA())
		require.NoError(t, err)
		assert.Equal(t, byRef.SHA(), bySHA.SHA())
		assert.Len(t, bySHA.Tree(), 40)
	})
}

func TestRepository_StageCommitStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("stage specific paths", func(t *testing.T) {
		repo := testRepo(t)
		writeFile(t, repo, "staged.txt", "s")
		writeFile(t, repo, "unstaged.txt", "u")

		require.NoError(t, repo.Stage(ctx, "staged.txt"))

		entries, err := repo.Status(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		byPath := map[string]StatusEntry{}
		for _, e := range entries {
			byPath[e.Path] = e
		}
		assert.Equal(t, byte('A'), byPath["staged.txt"].Index)
		assert.Equal(t, byte('?'), byPath["unstaged.txt"].Index)
	})

	t.Run("commit re-reads canonical state", func(t *testing.T) {
		repo := testRepo(t)
		writeFile(t, repo, "a.txt", "a")
		require.NoError(t, repo.Stage(ctx))

		commit, err := repo.Commit(ctx, "add a")
		require.NoError(t, err)
		assert.Len(t, commit.SHA(), 40)
		assert.Equal(t, "add a", commit.Message())

		head, err := repo.Head(ctx)
		require.NoError(t, err)
		assert.Equal(t, head.SHA(), commit.SHA())
	})

	t.Run("empty message fails before execution", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.Commit(ctx, "  ")
		require.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("nothing to commit is classified", func(t *testing.T) {
		repo := testRepo(t)

		_, err := repo.Commit(ctx, "no changes")
		require.ErrorIs(t, err, ErrNothingToCommit)
	})

	t.Run("clean tree has empty status", func(t *testing.T) {
		repo := testRepo(t)

		entries, err := repo.Status(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
