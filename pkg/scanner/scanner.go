// Package scanner enumerates filesystem truth: repositories in the store
// and symlinks (with resolved targets) inside workspace trees. Scans are
// recomputed from scratch on every run; nothing here is cached or mutated.
package scanner

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/arthur-debert/gro/pkg/types"
)

// GitMarker is the entry that identifies a directory as a repository. It
// may be a directory or a file (worktrees and submodules use a file).
const GitMarker = ".git"

// ScanStore returns the sorted names of direct child directories of the
// store that contain a git marker. A missing store path yields an empty
// result rather than an error, so reconciling against a not-yet-created
// store still works.
func ScanStore(fsys types.FS, storePath string) ([]string, error) {
	logger := logging.GetLogger("scanner")

	entries, err := fsys.ReadDir(storePath)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrScan, "cannot read store directory %s", storePath)
	}

	var repos []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		marker := filepath.Join(storePath, entry.Name(), GitMarker)
		if _, err := fsys.Lstat(marker); err == nil {
			repos = append(repos, entry.Name())
		}
	}
	sort.Strings(repos)

	logger.Debug().Str("store", storePath).Int("repos", len(repos)).Msg("store scanned")
	return repos, nil
}

// ScanNonRepos returns the sorted names of direct child directories of the
// store that do NOT contain a git marker. Not every directory is a
// repository; these are surfaced so the user can clean up or ignore them.
func ScanNonRepos(fsys types.FS, storePath string) ([]string, error) {
	entries, err := fsys.ReadDir(storePath)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrScan, "cannot read store directory %s", storePath)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		marker := filepath.Join(storePath, entry.Name(), GitMarker)
		if _, err := fsys.Lstat(marker); err != nil {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// workItem is one directory pending a scan visit, with the category path
// accumulated so far.
type workItem struct {
	dir          string
	categoryPath string
}

// ScanWorkspaceSymlinks walks the workspace tree and records every symlink
// with its category path and resolved absolute target. Symlinks are leaves:
// the walk never descends through them. Plain directories become nested
// category paths. A dangling symlink is recorded with Broken set rather
// than skipped, so callers can warn about it.
//
// The walk uses an explicit worklist instead of recursion; deep workspace
// trees must not be able to exhaust the stack.
func ScanWorkspaceSymlinks(fsys types.FS, ws *types.Workspace) ([]types.ObservedSymlink, error) {
	logger := logging.GetLogger("scanner")

	var observed []types.ObservedSymlink
	work := []workItem{{dir: ws.Path, categoryPath: types.RootCategory}}

	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]

		entries, err := fsys.ReadDir(item.dir)
		if err != nil {
			if isNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrScan, "cannot read directory %s", item.dir)
		}

		for _, entry := range entries {
			full := filepath.Join(item.dir, entry.Name())
			if entry.Type()&fs.ModeSymlink != 0 {
				target, broken := resolveLink(fsys, full)
				observed = append(observed, types.ObservedSymlink{
					Workspace:    ws.Name(),
					CategoryPath: item.categoryPath,
					Name:         entry.Name(),
					Target:       target,
					Broken:       broken,
				})
				continue
			}
			if entry.IsDir() {
				work = append(work, workItem{
					dir:          full,
					categoryPath: childCategory(item.categoryPath, entry.Name()),
				})
			}
		}
	}

	sort.Slice(observed, func(i, j int) bool {
		if observed[i].CategoryPath != observed[j].CategoryPath {
			return observed[i].CategoryPath < observed[j].CategoryPath
		}
		return observed[i].Name < observed[j].Name
	})

	logger.Debug().Str("workspace", ws.Name()).Int("symlinks", len(observed)).Msg("workspace scanned")
	return observed, nil
}

// DirectClone is a non-symlink repository directory found inside a
// workspace: content that should live in the store but was cloned in place.
type DirectClone struct {
	CategoryPath string
	Name         string
}

// ScanWorkspaceNonSymlinks finds direct clones: non-symlink directories
// carrying a git marker inside the workspace tree. Directories without a
// marker are treated as category folders and descended into.
func ScanWorkspaceNonSymlinks(fsys types.FS, ws *types.Workspace) ([]DirectClone, error) {
	var clones []DirectClone
	work := []workItem{{dir: ws.Path, categoryPath: types.RootCategory}}

	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]

		entries, err := fsys.ReadDir(item.dir)
		if err != nil {
			if isNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrScan, "cannot read directory %s", item.dir)
		}

		for _, entry := range entries {
			if entry.Type()&fs.ModeSymlink != 0 || !entry.IsDir() {
				continue
			}
			full := filepath.Join(item.dir, entry.Name())
			if _, err := fsys.Lstat(filepath.Join(full, GitMarker)); err == nil {
				clones = append(clones, DirectClone{
					CategoryPath: item.categoryPath,
					Name:         entry.Name(),
				})
				continue
			}
			work = append(work, workItem{
				dir:          full,
				categoryPath: childCategory(item.categoryPath, entry.Name()),
			})
		}
	}

	sort.Slice(clones, func(i, j int) bool {
		if clones[i].CategoryPath != clones[j].CategoryPath {
			return clones[i].CategoryPath < clones[j].CategoryPath
		}
		return clones[i].Name < clones[j].Name
	})
	return clones, nil
}

// NewPathStater returns a PathStateFunc over the workspace root for the
// reconciler's obstruction checks.
func NewPathStater(fsys types.FS, workspacePath string) types.PathStateFunc {
	return func(relPath string) types.PathState {
		full := filepath.Join(workspacePath, filepath.FromSlash(relPath))
		info, err := fsys.Lstat(full)
		if err != nil {
			return types.PathMissing
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return types.PathSymlink
		}
		if info.IsDir() {
			return types.PathDir
		}
		return types.PathFile
	}
}

// resolveLink resolves a symlink to an absolute, cleaned target. The second
// return value marks targets that cannot be resolved or do not exist.
func resolveLink(fsys types.FS, linkPath string) (string, bool) {
	target, err := fsys.Readlink(linkPath)
	if err != nil {
		return "", true
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}
	target = filepath.Clean(target)
	if _, err := fsys.Stat(target); err != nil {
		return target, true
	}
	return target, false
}

func childCategory(parent, name string) string {
	if parent == types.RootCategory {
		return name
	}
	return parent + "/" + name
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
