package reconcile_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/gro/pkg/reconcile"
	"github.com/arthur-debert/gro/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const store = "/code"

func workspace(t *testing.T) *types.Workspace {
	t.Helper()
	return types.NewWorkspace("/home/user/ws")
}

func TestReconcileCreatesMissingLinks(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}}
	ws.EnsureCategory("tools").Entries = []types.RepoEntry{{RepoName: "beta"}}

	plan := reconcile.Reconcile(ws, store, []string{"alpha", "beta"}, nil, reconcile.Options{})

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, types.Action{
		Type:         types.ActionCreate,
		CategoryPath: ".",
		SymlinkName:  "alpha",
		RepoName:     "alpha",
		NewTarget:    "/code/alpha",
	}, plan.Actions[0])
	assert.Equal(t, types.ActionCreate, plan.Actions[1].Type)
	assert.Equal(t, "tools", plan.Actions[1].CategoryPath)
	assert.Empty(t, plan.Conflicts)
	assert.Empty(t, plan.Warnings)
}

func TestReconcileIdempotentWhenSatisfied(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}}

	observed := []types.ObservedSymlink{
		{Workspace: "ws", CategoryPath: ".", Name: "alpha", Target: "/code/alpha"},
	}

	plan := reconcile.Reconcile(ws, store, []string{"alpha"}, observed, reconcile.Options{})
	assert.Empty(t, plan.Actions)
	assert.Empty(t, plan.Conflicts)
	assert.Empty(t, plan.Warnings)
}

func TestReconcileRelinksWrongTarget(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}}

	observed := []types.ObservedSymlink{
		{Workspace: "ws", CategoryPath: ".", Name: "alpha", Target: "/old/alpha"},
	}

	plan := reconcile.Reconcile(ws, store, []string{"alpha"}, observed, reconcile.Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.Action{
		Type:         types.ActionRelink,
		CategoryPath: ".",
		SymlinkName:  "alpha",
		RepoName:     "alpha",
		OldTarget:    "/old/alpha",
		NewTarget:    "/code/alpha",
	}, plan.Actions[0])
}

func TestReconcileAliasProducesAliasedLink(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "acme-code", Alias: "git"}}

	plan := reconcile.Reconcile(ws, store, []string{"acme-code"}, nil, reconcile.Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.Action{
		Type:         types.ActionCreate,
		CategoryPath: ".",
		SymlinkName:  "git",
		RepoName:     "acme-code",
		NewTarget:    "/code/acme-code",
	}, plan.Actions[0])
}

func TestReconcileMissingRepoStillCreatesWithWarning(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "ghost"}}

	plan := reconcile.Reconcile(ws, store, nil, nil, reconcile.Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.ActionCreate, plan.Actions[0].Type)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "repository not found in store: ghost")
}

func TestReconcileOrphanNonDestructiveByDefault(t *testing.T) {
	ws := workspace(t)

	observed := []types.ObservedSymlink{
		{Workspace: "ws", CategoryPath: ".", Name: "stray", Target: "/code/stray"},
	}

	plan := reconcile.Reconcile(ws, store, []string{"stray"}, observed, reconcile.Options{})

	assert.Empty(t, plan.ActionsOfType(types.ActionRemove))
	require.Len(t, plan.Orphans, 1)
	assert.Equal(t, "stray", plan.Orphans[0].Name)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "orphaned symlink")
}

func TestReconcileOrphanRemovedWithPrune(t *testing.T) {
	ws := workspace(t)

	observed := []types.ObservedSymlink{
		{Workspace: "ws", CategoryPath: ".", Name: "stray", Target: "/code/stray"},
	}

	plan := reconcile.Reconcile(ws, store, []string{"stray"}, observed, reconcile.Options{Prune: true})

	removes := plan.ActionsOfType(types.ActionRemove)
	require.Len(t, removes, 1)
	assert.Equal(t, "stray", removes[0].SymlinkName)
	require.Len(t, plan.Orphans, 1)
}

func TestReconcileNameCollisionBlocksBothEntries(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{
		{RepoName: "alpha", Alias: "same"},
		{RepoName: "beta", Alias: "same"},
	}

	plan := reconcile.Reconcile(ws, store, []string{"alpha", "beta"}, nil, reconcile.Options{})

	// Never first-wins: no action for the colliding name at all.
	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Conflicts, 1)
	assert.Equal(t, types.ConflictNameCollision, plan.Conflicts[0].Type)
	assert.Equal(t, "same", plan.Conflicts[0].SymlinkName)
}

func TestReconcileDuplicateIdenticalEntriesCollapse(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{
		{RepoName: "alpha"},
		{RepoName: "alpha"},
	}

	plan := reconcile.Reconcile(ws, store, []string{"alpha"}, nil, reconcile.Options{})

	assert.Len(t, plan.Actions, 1)
	assert.Empty(t, plan.Conflicts)
}

func TestReconcileCategoryRepoCollision(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "foo"}}
	ws.EnsureCategory("foo/bar").Entries = []types.RepoEntry{{RepoName: "beta"}}

	plan := reconcile.Reconcile(ws, store, []string{"foo", "beta"}, nil, reconcile.Options{})

	// No Create for either conflicting path.
	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Conflicts, 1)
	assert.Equal(t, types.ConflictCategoryRepo, plan.Conflicts[0].Type)
	assert.Equal(t, "foo/bar", plan.Conflicts[0].CategoryPath)
	assert.Equal(t, "foo", plan.Conflicts[0].SymlinkName)
}

func TestReconcileCategoryRepoCollisionLeavesOthersAlone(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{
		{RepoName: "foo"},
		{RepoName: "ok"},
	}
	ws.EnsureCategory("foo/bar").Entries = []types.RepoEntry{{RepoName: "beta"}}

	plan := reconcile.Reconcile(ws, store, []string{"foo", "ok", "beta"}, nil, reconcile.Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "ok", plan.Actions[0].SymlinkName)
}

func TestReconcilePathObstructionDropsAction(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{
		{RepoName: "blocked"},
		{RepoName: "free"},
	}

	state := func(rel string) types.PathState {
		if rel == "blocked" {
			return types.PathFile
		}
		return types.PathMissing
	}

	plan := reconcile.Reconcile(ws, store, []string{"blocked", "free"}, nil,
		reconcile.Options{PathState: state})

	// No-overwrite guarantee: the obstructed path gets no action.
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "free", plan.Actions[0].SymlinkName)
	require.Len(t, plan.Conflicts, 1)
	assert.Equal(t, types.ConflictPathObstruction, plan.Conflicts[0].Type)
	assert.Equal(t, "blocked", plan.Conflicts[0].SymlinkName)
}

func TestReconcileCategoryDirIsNotObstruction(t *testing.T) {
	ws := workspace(t)
	// "tools" is both a declared category and would-be directory.
	ws.EnsureCategory("tools").Entries = []types.RepoEntry{{RepoName: "beta"}}
	ws.EnsureCategory(".").Entries = nil

	state := func(rel string) types.PathState {
		if rel == "tools" {
			return types.PathDir
		}
		return types.PathMissing
	}

	plan := reconcile.Reconcile(ws, store, []string{"beta"}, nil,
		reconcile.Options{PathState: state})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "tools", plan.Actions[0].CategoryPath)
	assert.Empty(t, plan.Conflicts)
}

func TestReconcileUndeclaredDirObstructs(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "clone"}}

	state := func(rel string) types.PathState {
		if rel == "clone" {
			return types.PathDir
		}
		return types.PathMissing
	}

	plan := reconcile.Reconcile(ws, store, []string{"clone"}, nil,
		reconcile.Options{PathState: state})

	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Conflicts, 1)
	assert.Equal(t, types.ConflictPathObstruction, plan.Conflicts[0].Type)
}

func TestReconcileDanglingDeclaredLinkWarnsAndRelinks(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}}

	observed := []types.ObservedSymlink{
		{Workspace: "ws", CategoryPath: ".", Name: "alpha", Target: "/gone/alpha", Broken: true},
	}

	plan := reconcile.Reconcile(ws, store, []string{"alpha"}, observed, reconcile.Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.ActionRelink, plan.Actions[0].Type)
	found := false
	for _, w := range plan.Warnings {
		if strings.Contains(w, "dangling symlink") {
			found = true
		}
	}
	assert.True(t, found, "expected a dangling symlink warning, got %v", plan.Warnings)
}

func TestReconcileDeterministicOrdering(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory("zeta").Entries = []types.RepoEntry{{RepoName: "z2"}, {RepoName: "z1"}}
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "root2"}, {RepoName: "root1"}}

	repos := []string{"z1", "z2", "root1", "root2"}
	first := reconcile.Reconcile(ws, store, repos, nil, reconcile.Options{})
	second := reconcile.Reconcile(ws, store, repos, nil, reconcile.Options{})

	assert.Equal(t, first, second)

	var order []string
	for _, a := range first.Actions {
		order = append(order, a.CategoryPath+"/"+a.SymlinkName)
	}
	assert.Equal(t, []string{"./root1", "./root2", "zeta/z1", "zeta/z2"}, order)
}

func TestReconcileSameRepoInManyCategories(t *testing.T) {
	ws := workspace(t)
	ws.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}}
	ws.EnsureCategory("tools").Entries = []types.RepoEntry{{RepoName: "alpha"}}

	plan := reconcile.Reconcile(ws, store, []string{"alpha"}, nil, reconcile.Options{})

	// Each occurrence is an independent projection of the same store repo.
	assert.Len(t, plan.Actions, 2)
	assert.Empty(t, plan.Conflicts)
}
