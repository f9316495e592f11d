package types

import (
	"fmt"
	"sort"
)

// ActionType identifies the kind of filesystem mutation an Action requests.
type ActionType string

const (
	// ActionCreate creates a new symlink.
	ActionCreate ActionType = "create"
	// ActionRelink repoints an existing symlink at a new target.
	ActionRelink ActionType = "relink"
	// ActionRemove deletes an orphaned symlink.
	ActionRemove ActionType = "remove"
)

// Action is a single symlink mutation. Every anomaly the reconciler finds is
// returned as data alongside the plan rather than raised, so callers can
// render everything at once.
type Action struct {
	Type         ActionType
	CategoryPath string
	SymlinkName  string

	// RepoName is set for create and relink actions.
	RepoName string

	// OldTarget and NewTarget are set for relink actions; NewTarget is also
	// set for creates.
	OldTarget string
	NewTarget string
}

// Description renders a one-line human-readable summary of the action.
func (a Action) Description() string {
	loc := a.SymlinkName
	if a.CategoryPath != RootCategory {
		loc = a.CategoryPath + "/" + a.SymlinkName
	}
	switch a.Type {
	case ActionCreate:
		return fmt.Sprintf("create %s -> %s", loc, a.NewTarget)
	case ActionRelink:
		return fmt.Sprintf("relink %s: %s -> %s", loc, a.OldTarget, a.NewTarget)
	case ActionRemove:
		return fmt.Sprintf("remove %s", loc)
	}
	return fmt.Sprintf("%s %s", a.Type, loc)
}

// ConflictType identifies the kind of structural conflict blocking part of
// a plan.
type ConflictType string

const (
	// ConflictNameCollision marks two entries resolving to the same symlink
	// name within one category.
	ConflictNameCollision ConflictType = "name_collision"
	// ConflictPathObstruction marks a non-symlink filesystem entry occupying
	// a location a symlink must occupy.
	ConflictPathObstruction ConflictType = "path_obstruction"
	// ConflictCategoryRepo marks a category path and a symlink name colliding
	// at the same filesystem location.
	ConflictCategoryRepo ConflictType = "category_repo_collision"
)

// Conflict is a structural problem that blocks plan execution for the
// affected path. Conflicts are always surfaced, never silently resolved.
type Conflict struct {
	Type         ConflictType
	CategoryPath string
	SymlinkName  string
	Detail       string
}

// Description renders a one-line human-readable summary of the conflict.
func (c Conflict) Description() string {
	loc := c.SymlinkName
	if c.CategoryPath != RootCategory && c.CategoryPath != "" {
		loc = c.CategoryPath + "/" + c.SymlinkName
	}
	return fmt.Sprintf("%s at %s: %s", c.Type, loc, c.Detail)
}

// Plan is the reconciler's full output for one workspace: the actions to
// apply, the conflicts blocking parts of the plan, advisory warnings, and
// orphaned symlinks that were observed but not declared.
type Plan struct {
	Workspace string
	Actions   []Action
	Conflicts []Conflict
	Warnings  []string
	Orphans   []ObservedSymlink
}

// HasChanges reports whether the plan contains any actions.
func (p *Plan) HasChanges() bool {
	return len(p.Actions) > 0
}

// HasConflicts reports whether any part of the plan is blocked.
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// ActionsOfType returns the plan's actions of the given type, in plan order.
func (p *Plan) ActionsOfType(t ActionType) []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// Sort orders actions and conflicts by (category path, symlink name) and
// orphans by their location, making plan output deterministic across runs.
func (p *Plan) Sort() {
	sort.SliceStable(p.Actions, func(i, j int) bool {
		if p.Actions[i].CategoryPath != p.Actions[j].CategoryPath {
			return p.Actions[i].CategoryPath < p.Actions[j].CategoryPath
		}
		return p.Actions[i].SymlinkName < p.Actions[j].SymlinkName
	})
	sort.SliceStable(p.Conflicts, func(i, j int) bool {
		if p.Conflicts[i].CategoryPath != p.Conflicts[j].CategoryPath {
			return p.Conflicts[i].CategoryPath < p.Conflicts[j].CategoryPath
		}
		return p.Conflicts[i].SymlinkName < p.Conflicts[j].SymlinkName
	})
	sort.SliceStable(p.Orphans, func(i, j int) bool {
		if p.Orphans[i].CategoryPath != p.Orphans[j].CategoryPath {
			return p.Orphans[i].CategoryPath < p.Orphans[j].CategoryPath
		}
		return p.Orphans[i].Name < p.Orphans[j].Name
	})
	sort.Strings(p.Warnings)
}
