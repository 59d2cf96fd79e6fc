// Package render turns a walked directory tree into line-drawing output.
// Rendering is a pure function of the tree: no filesystem access, no clock,
// no environment.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mattjmcnaughton/rtree/internal/models"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	columnMore    = "│   "
	columnBlank   = "    "
)

// Renderer writes tree nodes with connectors and optional per-kind colors
type Renderer struct {
	dirColor     *color.Color
	symlinkColor *color.Color
}

// New returns a plain renderer whose output contains no escape sequences
func New() *Renderer {
	return &Renderer{}
}

// NewColorized returns a renderer that colors directory names cyan bold and
// symlink names magenta. Color is forced on so the escapes survive writes to
// non-terminal destinations such as pipes when the user asked for them.
func NewColorized() *Renderer {
	dir := color.New(color.FgCyan, color.Bold)
	dir.EnableColor()
	symlink := color.New(color.FgMagenta)
	symlink.EnableColor()
	return &Renderer{dirColor: dir, symlinkColor: symlink}
}

// WriteChildren renders the given nodes and their descendants to w. The
// caller is expected to have written the root's own line already.
func (r *Renderer) WriteChildren(w io.Writer, children []models.TreeNode) error {
	return r.writeLevel(w, children, nil)
}

// writeLevel renders one sibling group. ancestorHasMore records, for every
// ancestor level, whether that ancestor still has a later sibling pending,
// which decides between the "│   " column and blank padding.
func (r *Renderer) writeLevel(w io.Writer, children []models.TreeNode, ancestorHasMore []bool) error {
	for i, node := range children {
		isLast := i+1 == len(children)

		for _, hasMore := range ancestorHasMore {
			column := columnBlank
			if hasMore {
				column = columnMore
			}
			if _, err := io.WriteString(w, column); err != nil {
				return err
			}
		}

		connector := connectorMid
		if isLast {
			connector = connectorLast
		}
		if _, err := io.WriteString(w, connector); err != nil {
			return err
		}

		if _, err := io.WriteString(w, r.paint(node)); err != nil {
			return err
		}

		if node.Error != "" {
			if _, err := fmt.Fprintf(w, " [error: %s]", node.Error); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}

		if len(node.Children) > 0 {
			if err := r.writeLevel(w, node.Children, append(ancestorHasMore, !isLast)); err != nil {
				return err
			}
		}
	}

	return nil
}

// paint applies the kind's color to the rendered name, if any
func (r *Renderer) paint(node models.TreeNode) string {
	switch node.Kind {
	case models.KindDirectory:
		if r.dirColor != nil {
			return r.dirColor.Sprint(node.Name)
		}
	case models.KindSymlink:
		if r.symlinkColor != nil {
			return r.symlinkColor.Sprint(node.Name)
		}
	}
	return node.Name
}

// Summary counts the tree's nodes and formats the classic closing report,
// e.g. "3 directories, 7 files". Directories are nodes of directory kind;
// everything else counts as a file. The root itself is not counted.
func Summary(children []models.TreeNode) string {
	dirs, files := count(children)
	return fmt.Sprintf("%s, %s", pluralize(dirs, "directory", "directories"), pluralize(files, "file", "files"))
}

func count(children []models.TreeNode) (dirs, files int) {
	for _, node := range children {
		if node.Kind == models.KindDirectory {
			dirs++
		} else {
			files++
		}
		subDirs, subFiles := count(node.Children)
		dirs += subDirs
		files += subFiles
	}
	return dirs, files
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
