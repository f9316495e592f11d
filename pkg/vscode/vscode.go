// Package vscode generates VS Code .code-workspace files from the declared
// model. Folder paths are written relative to the output directory so the
// generated files survive a moved home directory.
package vscode

import (
	"encoding/json"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/types"
)

// Folder is one workspace folder entry in a .code-workspace file.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// WorkspaceFile is the serializable .code-workspace document.
type WorkspaceFile struct {
	Folders  []Folder       `json:"folders"`
	Settings map[string]any `json:"settings"`
}

// FileName derives the .code-workspace file name. With no category the file
// is named after the workspace; the root category gets a "-root" suffix to
// stay distinct; other categories use the category path with slashes turned
// into dashes.
func FileName(wsName, categoryPath string) string {
	switch categoryPath {
	case "":
		return wsName + ".code-workspace"
	case types.RootCategory:
		return wsName + "-root.code-workspace"
	default:
		return strings.ReplaceAll(categoryPath, "/", "-") + ".code-workspace"
	}
}

// Generate builds the workspace document for one workspace, optionally
// restricted to a single category (empty categoryPath means all). Folders
// are deduplicated by symlink name and sorted; paths are relative to
// outputDir.
func Generate(cfg *types.Config, wsName, categoryPath, outputDir string) (*WorkspaceFile, error) {
	ws := cfg.Workspace(wsName)
	if ws == nil {
		return nil, errors.Newf(errors.ErrWorkspaceNotFound,
			"workspace %q not found (available: %s)",
			wsName, strings.Join(cfg.WorkspaceNames(), ", "))
	}

	categoryPaths := ws.CategoryPaths()
	if categoryPath != "" {
		categoryPath = types.NormalizeCategoryPath(categoryPath)
		if ws.Category(categoryPath) == nil {
			return nil, errors.Newf(errors.ErrCategoryNotFound,
				"category %q not found in workspace %q (available: %s)",
				categoryPath, wsName, strings.Join(ws.CategoryPaths(), ", "))
		}
		categoryPaths = []string{categoryPath}
	}

	prefix, err := filepath.Rel(outputDir, ws.Path)
	if err != nil {
		prefix = ws.Path
	}
	prefix = filepath.ToSlash(prefix)

	seen := make(map[string]bool)
	var folders []Folder
	for _, catPath := range categoryPaths {
		for _, e := range ws.Categories[catPath].Entries {
			name := e.SymlinkName()
			if seen[name] {
				continue
			}
			seen[name] = true

			folderPath := path.Join(prefix, name)
			if catPath != types.RootCategory {
				folderPath = path.Join(prefix, catPath, name)
			}
			folders = append(folders, Folder{Name: name, Path: folderPath})
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })

	return &WorkspaceFile{Folders: folders, Settings: map[string]any{}}, nil
}

// Write serializes the document to outputPath as indented JSON, creating
// parent directories as needed.
func Write(fsys types.FS, doc *WorkspaceFile, outputPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot serialize workspace file")
	}
	if err := fsys.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", filepath.Dir(outputPath))
	}
	if err := fsys.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", outputPath)
	}
	return nil
}
