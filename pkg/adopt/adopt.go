// Package adopt infers declarative entries from an existing workspace
// symlink tree. It is the inverse of reconciliation: instead of making the
// filesystem match the model, it reads a hand-built tree and reports the
// model that would produce it. Adoption never mutates anything; merging the
// result into a config is the caller's decision.
package adopt

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/arthur-debert/gro/pkg/scanner"
	"github.com/arthur-debert/gro/pkg/types"
)

// Adopted is one entry inferred from a workspace symlink.
type Adopted struct {
	CategoryPath string
	Entry        types.RepoEntry
}

// Adopt scans the workspace tree and converts every symlink pointing into
// the store to an (category, entry) tuple. The link name becomes the alias
// when it differs from the repository name. Links that cannot be converted
// come back as warnings rather than errors: a broken link or a link pointing
// outside the store is skipped, never guessed at.
//
// The same repository linked from two different categories yields two
// tuples; the adopter reports filesystem truth and leaves deduplication to
// the caller's merge policy.
func Adopt(fsys types.FS, ws *types.Workspace, storePath string) ([]Adopted, []string, error) {
	logger := logging.GetLogger("adopt")

	observed, err := scanner.ScanWorkspaceSymlinks(fsys, ws)
	if err != nil {
		return nil, nil, err
	}

	store := filepath.Clean(storePath)
	var adopted []Adopted
	var warnings []string

	for _, o := range observed {
		if o.Broken {
			warnings = append(warnings,
				fmt.Sprintf("skipping %s: broken symlink", o.DisplayPath()))
			continue
		}
		if filepath.Dir(o.Target) != store {
			warnings = append(warnings,
				fmt.Sprintf("skipping %s: target not in store directory (%s)", o.DisplayPath(), o.Target))
			continue
		}

		entry := types.RepoEntry{RepoName: filepath.Base(o.Target)}
		if o.Name != entry.RepoName {
			entry.Alias = o.Name
		}
		adopted = append(adopted, Adopted{
			CategoryPath: o.CategoryPath,
			Entry:        entry,
		})
	}

	logger.Debug().
		Str("workspace", ws.Name()).
		Int("adopted", len(adopted)).
		Int("skipped", len(warnings)).
		Msg("workspace adopted")
	return adopted, warnings, nil
}

// Merge folds adopted tuples into the workspace model. Tuples whose
// (category, symlink name) is already declared are skipped, so re-running
// adopt over an already-adopted tree is a no-op. Returns the number of
// entries added.
func Merge(ws *types.Workspace, adopted []Adopted) int {
	added := 0
	for _, a := range adopted {
		cat := ws.EnsureCategory(a.CategoryPath)
		if cat.SymlinkNames()[a.Entry.SymlinkName()] {
			continue
		}
		cat.Entries = append(cat.Entries, a.Entry)
		added++
	}
	return added
}
