// Package walker builds an in-memory directory tree by walking a filesystem
// capability depth-first, applying visibility filters, a deterministic sort,
// and an optional depth limit. A directory that cannot be listed becomes a
// childless node annotated with the failure message; the rest of the walk is
// unaffected.
package walker

import (
	"context"
	"sort"

	"github.com/mattjmcnaughton/rtree/internal/fsys"
	"github.com/mattjmcnaughton/rtree/internal/models"
	"github.com/mattjmcnaughton/rtree/internal/pattern"
)

// Options configure a walk. The zero value shows nothing hidden and recurses
// without bound; DefaultOptions matches the CLI defaults.
type Options struct {
	// MaxDepth limits recursion; 0 means unbounded. A value of 1 lists the
	// root's immediate children without descending into any of them.
	MaxDepth int

	// IgnorePattern is a pipe-separated list of names to drop, compiled once
	// before traversal starts. Empty means ignore nothing.
	IgnorePattern string

	// ShowHidden keeps entries whose names start with "."
	ShowHidden bool

	// DirsOnly drops every non-directory entry
	DirsOnly bool

	// DirsFirst sorts directories before all other entries
	DirsFirst bool
}

// DefaultOptions returns the options the CLI applies when no flags are set:
// unbounded depth, no ignore pattern, hidden files shown.
func DefaultOptions() Options {
	return Options{ShowHidden: true}
}

// Walk lists root and its descendants through fs and returns the assembled
// tree. The only error it can return is an ignore-pattern compile failure,
// raised before any directory is read; listing failures are recorded on the
// affected nodes instead of propagating.
func Walk(ctx context.Context, fs fsys.FileSystem, root string, opts Options) (*models.DirTree, error) {
	var compiled *pattern.CompiledPatterns
	if opts.IgnorePattern != "" {
		var err error
		compiled, err = pattern.Compile(opts.IgnorePattern)
		if err != nil {
			return nil, err
		}
	}

	tree := walkDir(ctx, fs, root, opts, compiled, 0)
	return &tree, nil
}

// walkDir is the recursive step. depth is 0 for the root directory, so the
// root's children sit at tree-depth 0.
func walkDir(ctx context.Context, fs fsys.FileSystem, dir string, opts Options, compiled *pattern.CompiledPatterns, depth int) models.DirTree {
	entries, err := fs.ReadDir(ctx, dir)
	if err != nil {
		return models.DirTree{Error: err.Error()}
	}

	// Filters compose by AND: an entry must survive all of them.
	kept := entries[:0]
	for _, entry := range entries {
		if !opts.ShowHidden && len(entry.Name) > 0 && entry.Name[0] == '.' {
			continue
		}
		if compiled != nil && compiled.Matches(entry.Name) {
			continue
		}
		if opts.DirsOnly && entry.Kind != models.KindDirectory {
			continue
		}
		kept = append(kept, entry)
	}

	// The trailing "/" on directories is part of the sort key, so a file
	// named "a" orders before a directory rendered "a/".
	type renderedEntry struct {
		name  string
		entry models.Entry
	}
	rendered := make([]renderedEntry, len(kept))
	for i, entry := range kept {
		rendered[i] = renderedEntry{name: renderedName(entry), entry: entry}
	}

	sort.Slice(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if opts.DirsFirst {
			aDir := a.entry.Kind == models.KindDirectory
			bDir := b.entry.Kind == models.KindDirectory
			if aDir != bDir {
				return aDir
			}
		}
		return a.name < b.name
	})

	children := make([]models.TreeNode, 0, len(rendered))
	for _, re := range rendered {
		node := models.TreeNode{Name: re.name, Kind: re.entry.Kind}

		// Only directories are ever listed into; symlinks stay leaves even
		// when they point at directories.
		if re.entry.Kind == models.KindDirectory && recursionPermitted(opts.MaxDepth, depth) {
			subtree := walkDir(ctx, fs, re.entry.Path, opts, compiled, depth+1)
			node.Error = subtree.Error
			node.Children = subtree.Children
		}

		children = append(children, node)
	}

	return models.DirTree{Children: children}
}

// recursionPermitted reports whether a directory at the given depth may be
// listed. With maxDepth 1 the root (depth 0) lists its children but none of
// them are descended into.
func recursionPermitted(maxDepth, depth int) bool {
	return maxDepth == 0 || depth+1 < maxDepth
}

// renderedName appends the directory suffix; every other kind renders as the
// bare base name.
func renderedName(entry models.Entry) string {
	if entry.Kind == models.KindDirectory {
		return entry.Name + "/"
	}
	return entry.Name
}
