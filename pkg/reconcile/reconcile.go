// Package reconcile computes the minimal action plan that makes a
// workspace's observed symlink set match its declared category tree. The
// reconciler is pure: it never touches the filesystem and never applies
// partial fixes. Every anomaly comes back as data — actions, conflicts,
// warnings — for the caller to render or act on.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/arthur-debert/gro/pkg/paths"
	"github.com/arthur-debert/gro/pkg/types"
)

// Options controls reconciliation behavior.
type Options struct {
	// Prune turns orphaned symlinks into Remove actions. Without it
	// orphans are reported but left alone.
	Prune bool

	// PathState supplies obstruction facts about prospective link
	// locations. When nil, obstruction checking is skipped (useful for
	// planning against a workspace that does not exist yet).
	PathState types.PathStateFunc
}

// target is one flattened declared tuple.
type target struct {
	categoryPath string
	symlinkName  string
	repoName     string
}

type linkKey struct {
	categoryPath string
	symlinkName  string
}

// Reconcile diffs the declared category tree of ws against the observed
// symlink set and returns the plan. storeRepos is the scanned content of
// the store; observed is the scanned workspace state. The function is
// deterministic: identical inputs yield identical output, with actions
// ordered by (category path, symlink name).
func Reconcile(ws *types.Workspace, storePath string, storeRepos []string, observed []types.ObservedSymlink, opts Options) *types.Plan {
	logger := logging.GetLogger("reconcile")
	plan := &types.Plan{Workspace: ws.Name()}

	inStore := make(map[string]bool, len(storeRepos))
	for _, r := range storeRepos {
		inStore[r] = true
	}

	targets, collisions := flatten(ws)
	plan.Conflicts = append(plan.Conflicts, collisions...)

	suppressed := categoryRepoConflicts(ws, plan)

	observedByKey := make(map[linkKey]types.ObservedSymlink, len(observed))
	for _, o := range observed {
		observedByKey[linkKey{o.CategoryPath, o.Name}] = o
	}

	warnedMissing := make(map[string]bool)
	declaredKeys := make(map[linkKey]bool, len(targets))

	for _, tgt := range targets {
		key := linkKey{tgt.categoryPath, tgt.symlinkName}
		declaredKeys[key] = true
		if suppressed[key] || suppressedCategory(suppressed, tgt.categoryPath) {
			continue
		}

		want := paths.TargetPath(storePath, tgt.repoName)
		if !inStore[tgt.repoName] && !warnedMissing[tgt.repoName] {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("repository not found in store: %s", tgt.repoName))
			warnedMissing[tgt.repoName] = true
		}

		o, exists := observedByKey[key]
		switch {
		case !exists:
			plan.Actions = append(plan.Actions, types.Action{
				Type:         types.ActionCreate,
				CategoryPath: tgt.categoryPath,
				SymlinkName:  tgt.symlinkName,
				RepoName:     tgt.repoName,
				NewTarget:    want,
			})
		case o.Target != want:
			if o.Broken {
				plan.Warnings = append(plan.Warnings,
					fmt.Sprintf("dangling symlink: %s", o.DisplayPath()))
			}
			plan.Actions = append(plan.Actions, types.Action{
				Type:         types.ActionRelink,
				CategoryPath: tgt.categoryPath,
				SymlinkName:  tgt.symlinkName,
				RepoName:     tgt.repoName,
				OldTarget:    o.Target,
				NewTarget:    want,
			})
		default:
			// Already satisfied. A correct link onto a missing repo is
			// covered by the missing-repository warning above.
		}
	}

	// Observed links with no declared tuple are orphans. Removal is opt-in;
	// the default run never destroys anything.
	for _, o := range observed {
		if declaredKeys[linkKey{o.CategoryPath, o.Name}] {
			continue
		}
		plan.Orphans = append(plan.Orphans, o)
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("orphaned symlink (not in config): %s", o.DisplayPath()))
		if opts.Prune {
			plan.Actions = append(plan.Actions, types.Action{
				Type:         types.ActionRemove,
				CategoryPath: o.CategoryPath,
				SymlinkName:  o.Name,
				OldTarget:    o.Target,
			})
		}
	}

	checkObstructions(ws, plan, opts.PathState)

	plan.Sort()
	logger.Debug().
		Str("workspace", ws.Name()).
		Int("actions", len(plan.Actions)).
		Int("conflicts", len(plan.Conflicts)).
		Int("orphans", len(plan.Orphans)).
		Msg("plan computed")
	return plan
}

// flatten turns the category tree into target tuples and detects name
// collisions. A (category, name) claimed by two different repos aborts
// planning for that link name entirely rather than picking one.
func flatten(ws *types.Workspace) ([]target, []types.Conflict) {
	var targets []target
	var conflicts []types.Conflict

	claims := make(map[linkKey]map[string]bool)
	for _, catPath := range ws.CategoryPaths() {
		for _, e := range ws.Categories[catPath].Entries {
			key := linkKey{catPath, e.SymlinkName()}
			if claims[key] == nil {
				claims[key] = make(map[string]bool)
			}
			claims[key][e.RepoName] = true
		}
	}

	collided := make(map[linkKey]bool)
	for _, catPath := range ws.CategoryPaths() {
		for _, e := range ws.Categories[catPath].Entries {
			key := linkKey{catPath, e.SymlinkName()}
			if len(claims[key]) > 1 {
				if !collided[key] {
					collided[key] = true
					conflicts = append(conflicts, types.Conflict{
						Type:         types.ConflictNameCollision,
						CategoryPath: catPath,
						SymlinkName:  e.SymlinkName(),
						Detail: fmt.Sprintf("%d entries resolve to the same symlink name",
							len(claims[key])),
					})
				}
				continue
			}
			if collided[key] {
				continue
			}
			// Duplicate declarations of the identical entry collapse to one
			// target; they are harmless and validate already warns.
			if containsTarget(targets, key) {
				continue
			}
			targets = append(targets, target{
				categoryPath: catPath,
				symlinkName:  e.SymlinkName(),
				repoName:     e.RepoName,
			})
		}
	}
	return targets, conflicts
}

func containsTarget(targets []target, key linkKey) bool {
	for _, t := range targets {
		if t.categoryPath == key.categoryPath && t.symlinkName == key.symlinkName {
			return true
		}
	}
	return false
}

// categoryRepoConflicts finds category paths whose segments collide with a
// symlink name declared in the corresponding parent category. A path cannot
// be a symlink and a directory at once, so both sides are suppressed from
// planning. Returns the set of suppressed link keys; suppressed category
// prefixes are encoded as keys with an empty symlink name.
func categoryRepoConflicts(ws *types.Workspace, plan *types.Plan) map[linkKey]bool {
	suppressed := make(map[linkKey]bool)

	for _, catPath := range ws.CategoryPaths() {
		if catPath == types.RootCategory {
			continue
		}
		segments := strings.Split(catPath, "/")
		for i, segment := range segments {
			parent := types.RootCategory
			if i > 0 {
				parent = strings.Join(segments[:i], "/")
			}
			parentCat := ws.Categories[parent]
			if parentCat == nil || !parentCat.SymlinkNames()[segment] {
				continue
			}
			plan.Conflicts = append(plan.Conflicts, types.Conflict{
				Type:         types.ConflictCategoryRepo,
				CategoryPath: catPath,
				SymlinkName:  segment,
				Detail: fmt.Sprintf(
					"category path %q conflicts with repo symlink %q in category %q",
					catPath, segment, parent),
			})
			// Suppress the symlink in the parent category and everything
			// under the colliding directory prefix.
			suppressed[linkKey{parent, segment}] = true
			prefix := segment
			if parent != types.RootCategory {
				prefix = parent + "/" + segment
			}
			suppressed[linkKey{prefix, ""}] = true
			break
		}
	}
	return suppressed
}

// suppressedCategory reports whether the category path falls under a
// suppressed directory prefix.
func suppressedCategory(suppressed map[linkKey]bool, categoryPath string) bool {
	if categoryPath == types.RootCategory {
		return false
	}
	segments := strings.Split(categoryPath, "/")
	for i := range segments {
		prefix := strings.Join(segments[:i+1], "/")
		if suppressed[linkKey{prefix, ""}] {
			return true
		}
	}
	return false
}

// checkObstructions drops Create/Relink actions whose destination is
// occupied by non-symlink content, emitting a PathObstruction conflict for
// each. A real directory is only an obstruction when no declared category
// needs it as a subdirectory.
func checkObstructions(ws *types.Workspace, plan *types.Plan, state types.PathStateFunc) {
	if state == nil {
		return
	}

	kept := plan.Actions[:0]
	for _, a := range plan.Actions {
		if a.Type == types.ActionRemove {
			kept = append(kept, a)
			continue
		}
		rel := a.SymlinkName
		if a.CategoryPath != types.RootCategory {
			rel = a.CategoryPath + "/" + a.SymlinkName
		}
		switch state(rel) {
		case types.PathFile:
			plan.Conflicts = append(plan.Conflicts, types.Conflict{
				Type:         types.ConflictPathObstruction,
				CategoryPath: a.CategoryPath,
				SymlinkName:  a.SymlinkName,
				Detail:       "a file occupies this path",
			})
		case types.PathDir:
			if servesAsCategoryDir(ws, rel) {
				kept = append(kept, a)
				continue
			}
			plan.Conflicts = append(plan.Conflicts, types.Conflict{
				Type:         types.ConflictPathObstruction,
				CategoryPath: a.CategoryPath,
				SymlinkName:  a.SymlinkName,
				Detail:       "a directory occupies this path",
			})
		default:
			kept = append(kept, a)
		}
	}
	plan.Actions = kept
}

// servesAsCategoryDir reports whether rel is needed as a directory by some
// declared category.
func servesAsCategoryDir(ws *types.Workspace, rel string) bool {
	for catPath := range ws.Categories {
		if catPath == rel || strings.HasPrefix(catPath, rel+"/") {
			return true
		}
	}
	return false
}
