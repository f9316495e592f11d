package types_test

import (
	"testing"

	"github.com/arthur-debert/gro/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestPlanSortOrdersByCategoryThenName(t *testing.T) {
	plan := &types.Plan{
		Actions: []types.Action{
			{Type: types.ActionCreate, CategoryPath: "tools", SymlinkName: "zeta"},
			{Type: types.ActionCreate, CategoryPath: ".", SymlinkName: "beta"},
			{Type: types.ActionRelink, CategoryPath: "tools", SymlinkName: "alpha"},
			{Type: types.ActionCreate, CategoryPath: ".", SymlinkName: "alpha"},
		},
	}

	plan.Sort()

	var got []string
	for _, a := range plan.Actions {
		got = append(got, a.CategoryPath+"/"+a.SymlinkName)
	}
	assert.Equal(t, []string{"./alpha", "./beta", "tools/alpha", "tools/zeta"}, got)
}

func TestPlanHasChanges(t *testing.T) {
	plan := &types.Plan{}
	assert.False(t, plan.HasChanges())
	assert.False(t, plan.HasConflicts())

	plan.Actions = append(plan.Actions, types.Action{Type: types.ActionCreate})
	assert.True(t, plan.HasChanges())

	plan.Conflicts = append(plan.Conflicts, types.Conflict{Type: types.ConflictNameCollision})
	assert.True(t, plan.HasConflicts())
}

func TestPlanActionsOfType(t *testing.T) {
	plan := &types.Plan{
		Actions: []types.Action{
			{Type: types.ActionCreate, SymlinkName: "a"},
			{Type: types.ActionRemove, SymlinkName: "b"},
			{Type: types.ActionCreate, SymlinkName: "c"},
		},
	}

	creates := plan.ActionsOfType(types.ActionCreate)
	assert.Len(t, creates, 2)
	assert.Equal(t, "a", creates[0].SymlinkName)
	assert.Equal(t, "c", creates[1].SymlinkName)

	assert.Len(t, plan.ActionsOfType(types.ActionRemove), 1)
	assert.Empty(t, plan.ActionsOfType(types.ActionRelink))
}

func TestActionDescription(t *testing.T) {
	create := types.Action{
		Type:         types.ActionCreate,
		CategoryPath: ".",
		SymlinkName:  "git",
		RepoName:     "acme-code",
		NewTarget:    "/code/acme-code",
	}
	assert.Equal(t, "create git -> /code/acme-code", create.Description())

	relink := types.Action{
		Type:         types.ActionRelink,
		CategoryPath: "tools",
		SymlinkName:  "gro",
		OldTarget:    "/old/gro",
		NewTarget:    "/code/gro",
	}
	assert.Equal(t, "relink tools/gro: /old/gro -> /code/gro", relink.Description())

	remove := types.Action{Type: types.ActionRemove, CategoryPath: "tools", SymlinkName: "dead"}
	assert.Equal(t, "remove tools/dead", remove.Description())
}

func TestConflictDescription(t *testing.T) {
	c := types.Conflict{
		Type:         types.ConflictPathObstruction,
		CategoryPath: "tools",
		SymlinkName:  "gro",
		Detail:       "a directory occupies this path",
	}
	assert.Equal(t, "path_obstruction at tools/gro: a directory occupies this path", c.Description())
}
