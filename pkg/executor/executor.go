// Package executor applies a reconciliation plan to the filesystem. It is
// the only package that mutates workspace trees; everything it does is one
// of three primitives on symlinks (create, relink, remove) plus directory
// housekeeping. Failures are collected, not fatal: a partially applied plan
// is recovered by reconciling again.
package executor

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/arthur-debert/gro/pkg/paths"
	"github.com/arthur-debert/gro/pkg/types"
)

// Options controls plan execution.
type Options struct {
	// DryRun reports what would happen without touching the filesystem.
	DryRun bool

	// CleanupEmptyDirs removes category directories left empty after the
	// plan ran. The workspace root itself is never removed.
	CleanupEmptyDirs bool
}

// Result summarizes an execution. The label slices hold the symlink display
// paths touched by each primitive, in execution order.
type Result struct {
	Created  []string
	Relinked []string
	Removed  []string
	Errors   []string
}

// Changed reports whether any mutation happened (or would have, in dry-run).
func (r Result) Changed() bool {
	return len(r.Created)+len(r.Relinked)+len(r.Removed) > 0
}

// Apply executes the plan's actions against the workspace in plan order.
// New and relinked symlinks are created with targets relative to the link's
// parent directory, so a moved home directory does not break the tree.
// Remove only ever unlinks symlinks; if the path turns out to be anything
// else the action fails and is recorded in Errors.
func Apply(fsys types.FS, ws *types.Workspace, storePath string, plan *types.Plan, opts Options) Result {
	logger := logging.GetLogger("executor")
	var result Result

	for _, action := range plan.Actions {
		link := paths.SymlinkPath(ws.Path, action.CategoryPath, action.SymlinkName)
		label := displayPath(ws, action)

		switch action.Type {
		case types.ActionCreate:
			if err := createLink(fsys, link, action.NewTarget, opts.DryRun); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			result.Created = append(result.Created, label)

		case types.ActionRelink:
			if err := removeLink(fsys, link, opts.DryRun); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			if err := createLink(fsys, link, action.NewTarget, opts.DryRun); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			result.Relinked = append(result.Relinked, label)

		case types.ActionRemove:
			if err := removeLink(fsys, link, opts.DryRun); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			result.Removed = append(result.Removed, label)
		}
	}

	if opts.CleanupEmptyDirs && !opts.DryRun {
		if err := cleanupEmptyDirs(fsys, ws.Path); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("cleanup: %v", err))
		}
	}

	logger.Info().
		Str("workspace", ws.Name()).
		Bool("dry_run", opts.DryRun).
		Int("created", len(result.Created)).
		Int("relinked", len(result.Relinked)).
		Int("removed", len(result.Removed)).
		Int("errors", len(result.Errors)).
		Msg("plan applied")
	return result
}

func displayPath(ws *types.Workspace, a types.Action) string {
	if a.CategoryPath == types.RootCategory {
		return ws.Name() + "/" + a.SymlinkName
	}
	return ws.Name() + "/" + a.CategoryPath + "/" + a.SymlinkName
}

// createLink makes a symlink at link pointing to target, creating parent
// directories as needed. The stored target is relative to the link's parent.
func createLink(fsys types.FS, link, target string, dryRun bool) error {
	dir := filepath.Dir(link)
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		// Different volumes etc: fall back to the absolute target.
		rel = target
	}
	if dryRun {
		return nil
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if err := fsys.Symlink(rel, link); err != nil {
		return fmt.Errorf("cannot create symlink: %w", err)
	}
	return nil
}

// removeLink unlinks a symlink. Anything that is not a symlink is refused.
func removeLink(fsys types.FS, link string, dryRun bool) error {
	info, err := fsys.Lstat(link)
	if err != nil {
		return fmt.Errorf("cannot stat: %w", err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return fmt.Errorf("refusing to remove non-symlink %s", link)
	}
	if dryRun {
		return nil
	}
	if err := fsys.Remove(link); err != nil {
		return fmt.Errorf("cannot remove symlink: %w", err)
	}
	return nil
}

// cleanupEmptyDirs removes directories under root that contain nothing,
// deepest first so a chain of empty category dirs collapses in one pass.
// The root itself stays.
func cleanupEmptyDirs(fsys types.FS, root string) error {
	var dirs []string
	work := []string{root}
	for len(work) > 0 {
		dir := work[len(work)-1]
		work = work[:len(work)-1]

		entries, err := fsys.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && entry.Type()&fs.ModeSymlink == 0 {
				sub := filepath.Join(dir, entry.Name())
				dirs = append(dirs, sub)
				work = append(work, sub)
			}
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		entries, err := fsys.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := fsys.Remove(dir); err != nil {
			return fmt.Errorf("cannot remove empty directory %s: %w", dir, err)
		}
	}
	return nil
}
