package walker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjmcnaughton/rtree/internal/fsys"
	"github.com/mattjmcnaughton/rtree/internal/models"
)

func entry(path, name string, kind models.EntryKind) models.Entry {
	return models.Entry{Path: path, Name: name, Kind: kind}
}

func childNames(children []models.TreeNode) []string {
	names := make([]string, 0, len(children))
	for _, node := range children {
		names = append(names, node.Name)
	}
	return names
}

func TestSortByRenderedNameIncludingDirectorySuffix(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/a-dir", "a", models.KindDirectory),
		entry("/root/a-file", "a", models.KindFile),
		entry("/root/b", "b", models.KindFile),
	})
	mock.SetEntries("/root/a-dir", nil)

	tree, err := Walk(context.Background(), mock, "/root", DefaultOptions())
	require.NoError(t, err)

	// The file "a" sorts before the directory rendered "a/".
	assert.Equal(t, []string{"a", "a/", "b"}, childNames(tree.Children))
}

func TestUnreadableDirectoryRecordedAndNotDescended(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/ok", "ok", models.KindFile),
		entry("/root/secret", "secret", models.KindDirectory),
	})
	mock.SetError("/root/secret", "Permission denied")

	tree, err := Walk(context.Background(), mock, "/root", DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, tree.Error)
	require.Len(t, tree.Children, 2)

	assert.Equal(t, "ok", tree.Children[0].Name)
	assert.Empty(t, tree.Children[0].Error)

	secret := tree.Children[1]
	assert.Equal(t, "secret/", secret.Name)
	assert.Equal(t, "Permission denied", secret.Error)
	assert.Empty(t, secret.Children)
}

func TestRootListingFailureProducesErrorTree(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetError("/root", "Input/output error")

	tree, err := Walk(context.Background(), mock, "/root", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Input/output error", tree.Error)
	assert.Empty(t, tree.Children)
}

func TestSymlinksAreLeafNodes(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/link", "link", models.KindSymlink),
	})
	// Scripted on purpose: a listing here must never happen.
	mock.SetEntries("/root/link", []models.Entry{
		entry("/root/link/child", "child", models.KindFile),
	})

	tree, err := Walk(context.Background(), mock, "/root", DefaultOptions())
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, "link", tree.Children[0].Name)
	assert.Empty(t, tree.Children[0].Children)

	assert.Equal(t, []string{"/root"}, mock.Calls())
}

func TestDepthLimitStopsAtSpecifiedLevel(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/level1", "level1", models.KindDirectory),
	})
	mock.SetEntries("/root/level1", []models.Entry{
		entry("/root/level1/level2", "level2", models.KindDirectory),
	})
	mock.SetEntries("/root/level1/level2", []models.Entry{
		entry("/root/level1/level2/level3", "level3", models.KindDirectory),
	})

	// MaxDepth 1 lists the root's children without descending.
	opts := DefaultOptions()
	opts.MaxDepth = 1
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "level1/", tree.Children[0].Name)
	assert.Empty(t, tree.Children[0].Children)

	// MaxDepth 2 descends exactly one further level.
	opts.MaxDepth = 2
	tree, err = Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "level2/", tree.Children[0].Children[0].Name)
	assert.Empty(t, tree.Children[0].Children[0].Children)
}

func TestUnboundedDepthTraversesAll(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/a", "a", models.KindDirectory),
	})
	mock.SetEntries("/root/a", []models.Entry{
		entry("/root/a/b", "b", models.KindDirectory),
	})
	mock.SetEntries("/root/a/b", []models.Entry{
		entry("/root/a/b/c", "c", models.KindFile),
	})

	tree, err := Walk(context.Background(), mock, "/root", DefaultOptions())
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	require.Len(t, tree.Children[0].Children, 1)
	require.Len(t, tree.Children[0].Children[0].Children, 1)
	assert.Equal(t, "c", tree.Children[0].Children[0].Children[0].Name)
}

func TestIgnorePattern(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/node_modules", "node_modules", models.KindDirectory),
		entry("/root/debug.log", "debug.log", models.KindFile),
		entry("/root/main.rs", "main.rs", models.KindFile),
	})

	opts := DefaultOptions()
	opts.IgnorePattern = "node_modules|*.log"
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.rs"}, childNames(tree.Children))
	// The ignored directory is never listed.
	assert.Equal(t, []string{"/root"}, mock.Calls())
}

func TestIgnorePatternAppliesAtEveryDepth(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/sub", "sub", models.KindDirectory),
	})
	mock.SetEntries("/root/sub", []models.Entry{
		entry("/root/sub/dist", "dist", models.KindDirectory),
		entry("/root/sub/keep", "keep", models.KindFile),
	})

	opts := DefaultOptions()
	opts.IgnorePattern = "dist"
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, []string{"keep"}, childNames(tree.Children[0].Children))
}

func TestDirsOnlyExcludesFilesAndSymlinks(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/dir", "dir", models.KindDirectory),
		entry("/root/file.txt", "file.txt", models.KindFile),
		entry("/root/link", "link", models.KindSymlink),
		entry("/root/sock", "sock", models.KindOther),
	})
	mock.SetEntries("/root/dir", nil)

	opts := DefaultOptions()
	opts.DirsOnly = true
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"dir/"}, childNames(tree.Children))
}

func TestDirsFirstSortsDirectoriesBeforeFiles(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/zebra.txt", "zebra.txt", models.KindFile),
		entry("/root/alpha", "alpha", models.KindDirectory),
		entry("/root/beta.txt", "beta.txt", models.KindFile),
	})
	mock.SetEntries("/root/alpha", nil)

	opts := DefaultOptions()
	opts.DirsFirst = true
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha/", "beta.txt", "zebra.txt"}, childNames(tree.Children))
}

func TestDirsFirstKeepsAlphabeticalWithinGroups(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/b.txt", "b.txt", models.KindFile),
		entry("/root/z", "z", models.KindDirectory),
		entry("/root/a.txt", "a.txt", models.KindFile),
		entry("/root/m", "m", models.KindDirectory),
	})
	mock.SetEntries("/root/z", nil)
	mock.SetEntries("/root/m", nil)

	opts := DefaultOptions()
	opts.DirsFirst = true
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"m/", "z/", "a.txt", "b.txt"}, childNames(tree.Children))
}

func TestHiddenFilesShownByDefault(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/.hidden", ".hidden", models.KindFile),
		entry("/root/visible", "visible", models.KindFile),
	})

	tree, err := Walk(context.Background(), mock, "/root", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{".hidden", "visible"}, childNames(tree.Children))
}

func TestHiddenFilesExcludedWhenShowHiddenFalse(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/.hidden_dir", ".hidden_dir", models.KindDirectory),
		entry("/root/.hidden", ".hidden", models.KindFile),
		entry("/root/visible", "visible", models.KindFile),
	})

	opts := DefaultOptions()
	opts.ShowHidden = false
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"visible"}, childNames(tree.Children))
	// The filtered hidden directory must not be listed either.
	assert.Equal(t, []string{"/root"}, mock.Calls())
}

func TestFiltersComposeByAnd(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/.git", ".git", models.KindDirectory),
		entry("/root/build", "build", models.KindDirectory),
		entry("/root/src", "src", models.KindDirectory),
		entry("/root/readme.md", "readme.md", models.KindFile),
	})
	mock.SetEntries("/root/src", nil)

	opts := Options{
		ShowHidden:    false,
		DirsOnly:      true,
		IgnorePattern: "build",
	}
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/"}, childNames(tree.Children))
}

func TestBlankIgnorePatternIgnoresNothing(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/keep", "keep", models.KindFile),
	})

	opts := DefaultOptions()
	opts.IgnorePattern = " | "
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep"}, childNames(tree.Children))
}

func TestCombinedDepthLimitAndDirsOnly(t *testing.T) {
	mock := fsys.NewMock()
	mock.SetEntries("/root", []models.Entry{
		entry("/root/a", "a", models.KindDirectory),
		entry("/root/f.txt", "f.txt", models.KindFile),
	})
	mock.SetEntries("/root/a", []models.Entry{
		entry("/root/a/b", "b", models.KindDirectory),
	})

	opts := DefaultOptions()
	opts.MaxDepth = 2
	opts.DirsOnly = true
	tree, err := Walk(context.Background(), mock, "/root", opts)
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, "a/", tree.Children[0].Name)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "b/", tree.Children[0].Children[0].Name)
	assert.Empty(t, tree.Children[0].Children[0].Children)
}
