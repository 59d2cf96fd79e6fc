package models

// EntryKind classifies a directory entry. Symlinks are never resolved to
// their target's kind; a symlink is always KindSymlink.
type EntryKind int

const (
	// KindDirectory is a directory entry
	KindDirectory EntryKind = iota
	// KindFile is a regular file
	KindFile
	// KindSymlink is a symbolic link (target unresolved)
	KindSymlink
	// KindOther covers everything else (sockets, devices, pipes, ...)
	KindOther
)

// String returns a human-readable name for the kind
func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is one item returned by a directory listing
type Entry struct {
	// Path locates the entry so a directory can be listed in turn
	Path string

	// Name is the base name, without any trailing separator
	Name string

	// Kind is the entry's classification
	Kind EntryKind
}

// TreeNode is an entry after filtering, sorting, and (for directories)
// expansion. A node with a non-empty Error always has nil Children: an
// unreadable directory is recorded as a leaf, never partially expanded.
type TreeNode struct {
	// Name is the rendered name: base name plus a trailing "/" for directories
	Name string

	// Kind is the underlying entry's classification
	Kind EntryKind

	// Error holds the listing failure message, verbatim, if this directory
	// could not be read
	Error string

	// Children are the node's sorted children, in render order
	Children []TreeNode
}

// DirTree is the result of walking a root directory. If the root itself
// could not be listed, Error is set and Children is nil.
type DirTree struct {
	// Error holds the root listing failure message, if any
	Error string

	// Children are the root's sorted children
	Children []TreeNode
}
