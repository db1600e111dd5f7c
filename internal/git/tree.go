package git

import (
	"context"
	"fmt"
	"strings"
)

// NodeType classifies a tree entry.
type NodeType string

const (
	NodeBlob      NodeType = "blob"
	NodeTree      NodeType = "tree"
	NodeSubmodule NodeType = "submodule"
)

// parseNodeType maps the ls-tree type token to a NodeType. Submodules are
// emitted as "commit" entries.
func parseNodeType(token string) (NodeType, error) {
	switch token {
	case "blob":
		return NodeBlob, nil
	case "tree":
		return NodeTree, nil
	case "commit":
		return NodeSubmodule, nil
	}
	return "", fmt.Errorf("unknown node type %q", token)
}

// TreeNode is one entry of a tree listing.
type TreeNode struct {
	Mode string
	Type NodeType
	SHA  string
	Path string
}

// Tree is one level of a tree, in the exact order git emitted it. No
// re-sorting is performed by this layer.
type Tree []TreeNode

// Tree lists one level of the tree identified by treeish, or the current
// root tree when treeish is empty. Recursing into a NodeTree entry means
// calling Tree again with that entry's sha; traversal is caller-driven so
// large trees are never expanded eagerly.
func (r *Repository) Tree(ctx context.Context, treeish string) (Tree, error) {
	result, err := r.run(ctx, treeListCmd(treeish))
	if err != nil {
		return nil, classifyTreeError(treeish, err)
	}

	lines := result.Lines()
	tree := make(Tree, 0, len(lines))
	for _, line := range lines {
		node, err := parseTreeLine(line)
		if err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}
	return tree, nil
}

// TreeOf lists the root tree of any Treeish (branch, tag or commit).
func (r *Repository) TreeOf(ctx context.Context, t Treeish) (Tree, error) {
	return r.Tree(ctx, t.FullRef())
}

// classifyTreeError maps tree-family stderr text to sentinel errors.
func classifyTreeError(treeish string, err error) error {
	stderr := stderrOf(err)
	if strings.Contains(stderr, "Not a valid object name") ||
		strings.Contains(stderr, "not a valid object name") ||
		strings.Contains(stderr, "not a tree object") {
		return fmt.Errorf("tree %q: %w", treeish, ErrObjectNotFound)
	}
	return err
}
