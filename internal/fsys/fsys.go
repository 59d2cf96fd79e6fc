// Package fsys abstracts the single filesystem operation the walker needs:
// listing a directory. The one-method interface keeps traversal testable
// against deterministic in-memory doubles.
package fsys

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattjmcnaughton/rtree/internal/models"
)

// FileSystem lists the entries of a single directory. Implementations must
// classify each entry without following symlinks and surface failures
// (permission denied, not found, I/O errors) as ordinary errors; callers
// record the message verbatim and do not inspect the error further.
type FileSystem interface {
	ReadDir(ctx context.Context, dir string) ([]models.Entry, error)
}

// OS implements FileSystem over the local filesystem
type OS struct{}

// ReadDir lists dir via os.ReadDir. Entry kinds come from the directory
// entry's type bits, so symlinks stay symlinks regardless of their target.
func (OS) ReadDir(ctx context.Context, dir string) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(dirents))
	for _, dirent := range dirents {
		entries = append(entries, models.Entry{
			Path: filepath.Join(dir, dirent.Name()),
			Name: dirent.Name(),
			Kind: kindOf(dirent.Type()),
		})
	}

	return entries, nil
}

// kindOf maps file mode type bits to an entry kind. The symlink check runs
// first: a link to a directory must not classify as a directory.
func kindOf(mode fs.FileMode) models.EntryKind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return models.KindSymlink
	case mode.IsDir():
		return models.KindDirectory
	case mode.IsRegular():
		return models.KindFile
	default:
		return models.KindOther
	}
}
