// Package testutil provides shared helpers for building real temporary
// stores and workspace trees in tests. Symlink behavior differs enough
// across in-memory filesystems that symlink-heavy tests always run against
// the real filesystem under t.TempDir.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gro/pkg/types"
)

// MakeStore creates a store directory under root containing one fake git
// repository per name, and returns the store path.
func MakeStore(t *testing.T, root string, repos ...string) string {
	t.Helper()
	store := filepath.Join(root, "code")
	for _, name := range repos {
		MakeRepo(t, store, name)
	}
	return store
}

// MakeRepo creates a fake git repository (a directory with a .git marker
// directory) and returns its path.
func MakeRepo(t *testing.T, storePath, name string) string {
	t.Helper()
	repo := filepath.Join(storePath, name)
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
	return repo
}

// MakeWorkspace creates an empty workspace directory under root and returns
// the model for it.
func MakeWorkspace(t *testing.T, root, name string) *types.Workspace {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(path, 0755))
	return types.NewWorkspace(path)
}

// Link creates a symlink inside a workspace at categoryPath/name pointing
// at target, creating category directories as needed.
func Link(t *testing.T, ws *types.Workspace, categoryPath, name, target string) {
	t.Helper()
	dir := ws.Path
	if categoryPath != types.RootCategory {
		dir = filepath.Join(ws.Path, filepath.FromSlash(categoryPath))
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, name)))
}
