package git

import (
	"context"
	"fmt"
	"strings"
)

// Tag is a lightweight or annotated tag, structurally identical to a Branch
// minus the current-checkout marker.
type Tag struct {
	name    string
	sha     string
	comment string
}

// Name returns the tag name.
func (t Tag) Name() string { return t.name }

// SHA returns the 40-hex sha the tag points at.
func (t Tag) SHA() string { return t.sha }

// Comment returns the subject of the tagged commit.
func (t Tag) Comment() string { return t.comment }

// FullRef returns the namespaced ref, refs/tags/<name>.
func (t Tag) FullRef() string { return "refs/tags/" + t.name }

// Tags lists tags in the order git emits them.
func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	result, err := r.run(ctx, tagListCmd())
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	lines := result.Lines()
	tags := make([]Tag, 0, len(lines))
	for _, line := range lines {
		name, sha, comment, err := parseRefLine(line)
		if err != nil {
			return nil, err
		}
		tags = append(tags, Tag{name: name, sha: sha, comment: comment})
	}
	return tags, nil
}

// LookupTag scans the listing in emitted order and returns the first tag
// with the given name. Returns ErrTagNotFound when the full listing is
// exhausted without a match.
func (r *Repository) LookupTag(ctx context.Context, name string) (Tag, error) {
	if err := ValidateRefName(name); err != nil {
		return Tag{}, fmt.Errorf("lookup tag %q: %w", name, err)
	}

	tags, err := r.Tags(ctx)
	if err != nil {
		return Tag{}, err
	}

	for _, tag := range tags {
		if tag.name == name {
			return tag, nil
		}
	}
	return Tag{}, fmt.Errorf("tag %q: %w", name, ErrTagNotFound)
}

// CreateTag creates a tag at target (HEAD when empty), then constructs the
// Tag by re-reading the listing.
func (r *Repository) CreateTag(ctx context.Context, name, target string) (Tag, error) {
	if err := ValidateRefName(name); err != nil {
		return Tag{}, fmt.Errorf("create tag %q: %w", name, err)
	}

	if _, err := r.run(ctx, tagCreateCmd(name, target)); err != nil {
		return Tag{}, classifyTagError(name, err)
	}

	return r.LookupTag(ctx, name)
}

// classifyTagError maps tag-family stderr text to sentinel errors.
func classifyTagError(name string, err error) error {
	stderr := stderrOf(err)
	switch {
	case strings.Contains(stderr, "already exists"):
		return fmt.Errorf("tag %q: %w", name, ErrTagExists)
	case strings.Contains(stderr, "not a valid object name"),
		strings.Contains(stderr, "Failed to resolve"),
		strings.Contains(stderr, "unknown revision"):
		return fmt.Errorf("tag %q: %w", name, ErrObjectNotFound)
	}
	return err
}
