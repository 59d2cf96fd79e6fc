package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattjmcnaughton/rtree/internal/config"
	"github.com/mattjmcnaughton/rtree/internal/fsys"
	"github.com/mattjmcnaughton/rtree/internal/render"
	"github.com/mattjmcnaughton/rtree/internal/walker"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rtree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtree [path]",
		Short: "Print a deterministic ASCII directory tree",
		Long: `rtree recurses a directory and prints its contents as a tree with
line-drawing connectors, sorted deterministically.

Hidden files are shown by default. Entries can be filtered by depth,
by a pipe-separated ignore pattern with * and ? wildcards, or down to
directories only. Unreadable directories are annotated inline and do
not abort the rest of the tree.

Defaults can be stored in .rtree.yaml in the working directory;
command-line flags override the config file.

Examples:
  rtree                          # tree of the current directory
  rtree src -L 2                 # descend at most two levels
  rtree -I "node_modules|*.log"  # hide node_modules and log files
  rtree -d --dirsfirst           # directories only, grouped first
  rtree -C                       # force colored output`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, fsys.OS{})
		},
	}

	cmd.Flags().IntP("level", "L", 0, "Descend only the given number of directory levels")
	cmd.Flags().StringP("ignore", "I", "", "Ignore entries matching pattern (pipe-separated, e.g. \"node_modules|*.log\")")
	cmd.Flags().BoolP("all", "a", false, "Show hidden files (already the default behavior)")
	cmd.Flags().BoolP("dirs-only", "d", false, "List directories only")
	cmd.Flags().Bool("dirsfirst", false, "List directories before files")
	cmd.Flags().BoolP("colorize", "C", false, "Force colored output (same as --color=always)")
	cmd.Flags().String("color", "", "Color mode: auto, always, or never")
	cmd.Flags().Bool("noreport", false, "Omit the file and directory count at the end")
	cmd.Flags().String("config", "", "Path to config file (default: .rtree.yaml)")

	return cmd
}

// runTree implements the root command logic; fs is injected so tests can
// substitute a scripted filesystem
func runTree(cmd *cobra.Command, args []string, fs fsys.FileSystem) error {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	// The root is stat'ed without following symlinks: a symlink root is
	// treated as a non-directory and printed as a bare name.
	info, err := os.Lstat(root)
	if err != nil {
		// Strip the syscall name so the message reads "<path>: <reason>".
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return fmt.Errorf("%s: %v", root, pathErr.Err)
		}
		return err
	}

	out := cmd.OutOrStdout()

	if !info.IsDir() {
		fmt.Fprintln(out, filepath.Base(root))
		return nil
	}

	opts, err := walkOptions(cmd, cfg)
	if err != nil {
		return err
	}

	tree, err := walker.Walk(cmd.Context(), fs, root, opts)
	if err != nil {
		return err
	}

	colorize, err := resolveColorize(cmd, cfg)
	if err != nil {
		return err
	}
	renderer := render.New()
	if colorize {
		renderer = render.NewColorized()
	}

	fmt.Fprint(out, rootDisplayName(root))
	if tree.Error != "" {
		fmt.Fprintf(out, " [error: %s]", tree.Error)
	}
	fmt.Fprintln(out)

	if err := renderer.WriteChildren(out, tree.Children); err != nil {
		return fmt.Errorf("stdout: %w", err)
	}

	noReport := cfg.NoReport
	if flags.Changed("noreport") {
		noReport, _ = flags.GetBool("noreport")
	}
	if !noReport {
		fmt.Fprintf(out, "\n%s\n", render.Summary(tree.Children))
	}

	return nil
}

// walkOptions merges config file defaults with flags; a flag that was set
// explicitly wins over the config value.
func walkOptions(cmd *cobra.Command, cfg *config.Config) (walker.Options, error) {
	flags := cmd.Flags()
	opts := walker.DefaultOptions()

	level, _ := flags.GetInt("level")
	if flags.Changed("level") {
		if level < 1 {
			return opts, fmt.Errorf("invalid level %d, must be greater than 0", level)
		}
		opts.MaxDepth = level
	}

	opts.IgnorePattern = cfg.IgnorePattern
	if flags.Changed("ignore") {
		opts.IgnorePattern, _ = flags.GetString("ignore")
	}

	opts.DirsOnly, _ = flags.GetBool("dirs-only")

	opts.DirsFirst = cfg.DirsFirst
	if flags.Changed("dirsfirst") {
		opts.DirsFirst, _ = flags.GetBool("dirsfirst")
	}

	return opts, nil
}

// resolveColorize decides whether output gets ANSI colors. Precedence is
// -C, then --color, then the config file; "auto" colors only when stdout
// is a terminal.
func resolveColorize(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	flags := cmd.Flags()

	if forced, _ := flags.GetBool("colorize"); forced {
		return true, nil
	}

	mode := cfg.Color
	if flags.Changed("color") {
		mode, _ = flags.GetString("color")
		if err := config.ValidateColorMode(mode); err != nil {
			return false, err
		}
	}

	switch mode {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	default:
		return isatty.IsTerminal(os.Stdout.Fd()), nil
	}
}

// rootDisplayName returns the line printed for the root itself: "." for the
// current directory, otherwise the path's base name.
func rootDisplayName(root string) string {
	if root == "." {
		return "."
	}
	return filepath.Base(root)
}
