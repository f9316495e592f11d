package types

import (
	"path/filepath"
	"sort"
	"strings"
)

// RootCategory is the category path that denotes the workspace root itself.
const RootCategory = "."

// RepoEntry declares that a repository from the store should appear under a
// category, optionally with an alias as the symlink name.
type RepoEntry struct {
	RepoName string
	Alias    string
}

// SymlinkName returns the name the symlink for this entry will have: the
// alias when present, the repository name otherwise.
func (e RepoEntry) SymlinkName() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.RepoName
}

// ParseRepoEntry parses a "repo" or "repo:alias" declaration string.
// The split happens on the LAST colon, so repository names containing a
// colon are not supported.
func ParseRepoEntry(s string) RepoEntry {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return RepoEntry{RepoName: s}
	}
	return RepoEntry{RepoName: s[:idx], Alias: s[idx+1:]}
}

// String renders the entry back to its declaration form.
func (e RepoEntry) String() string {
	if e.Alias == "" {
		return e.RepoName
	}
	return e.RepoName + ":" + e.Alias
}

// NormalizeCategoryPath canonicalizes a category path: leading and trailing
// slashes are stripped and the empty / "." cases collapse to RootCategory.
func NormalizeCategoryPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" || p == RootCategory {
		return RootCategory
	}
	return p
}

// Category is an ordered list of repo entries declared to live under one
// category path within a workspace.
type Category struct {
	Path    string
	Entries []RepoEntry
}

// IsRoot reports whether this category is the workspace root.
func (c *Category) IsRoot() bool {
	return c.Path == RootCategory
}

// SymlinkNames returns the set of symlink names this category declares.
func (c *Category) SymlinkNames() map[string]bool {
	names := make(map[string]bool, len(c.Entries))
	for _, e := range c.Entries {
		names[e.SymlinkName()] = true
	}
	return names
}

// HasRepo reports whether the category declares an entry for the repo.
func (c *Category) HasRepo(repoName string) bool {
	for _, e := range c.Entries {
		if e.RepoName == repoName {
			return true
		}
	}
	return false
}

// Workspace is a directory tree of symlinks providing an organized view
// onto the store. Its name is the basename of its path.
type Workspace struct {
	Path       string
	Categories map[string]*Category
}

// NewWorkspace creates an empty workspace rooted at path.
func NewWorkspace(path string) *Workspace {
	return &Workspace{
		Path:       path,
		Categories: make(map[string]*Category),
	}
}

// Name returns the workspace name, the basename of its path.
func (w *Workspace) Name() string {
	return filepath.Base(w.Path)
}

// Category returns the category at path, or nil.
func (w *Workspace) Category(categoryPath string) *Category {
	return w.Categories[NormalizeCategoryPath(categoryPath)]
}

// EnsureCategory returns the category at path, creating it if needed.
func (w *Workspace) EnsureCategory(categoryPath string) *Category {
	categoryPath = NormalizeCategoryPath(categoryPath)
	if w.Categories == nil {
		w.Categories = make(map[string]*Category)
	}
	cat, ok := w.Categories[categoryPath]
	if !ok {
		cat = &Category{Path: categoryPath}
		w.Categories[categoryPath] = cat
	}
	return cat
}

// CategoryPaths returns all category paths in lexical order.
func (w *Workspace) CategoryPaths() []string {
	paths := make([]string, 0, len(w.Categories))
	for p := range w.Categories {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// AllRepos returns the set of repository names declared anywhere in the
// workspace.
func (w *Workspace) AllRepos() map[string]bool {
	repos := make(map[string]bool)
	for _, cat := range w.Categories {
		for _, e := range cat.Entries {
			repos[e.RepoName] = true
		}
	}
	return repos
}

// FindRepoCategories returns the category paths declaring the repo, in
// lexical order.
func (w *Workspace) FindRepoCategories(repoName string) []string {
	var paths []string
	for p, cat := range w.Categories {
		if cat.HasRepo(repoName) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// RepoLocation identifies one declared occurrence of a repository.
type RepoLocation struct {
	Workspace    string
	CategoryPath string
}

// Config is the full declared model: the store path plus all workspaces,
// keyed by workspace name.
type Config struct {
	StorePath            string
	Workspaces           map[string]*Workspace
	VSCodeWorkspacesPath string
}

// NewConfig creates an empty config with the given store path.
func NewConfig(storePath string) *Config {
	return &Config{
		StorePath:  storePath,
		Workspaces: make(map[string]*Workspace),
	}
}

// Workspace returns the workspace with the given name, or nil.
func (c *Config) Workspace(name string) *Workspace {
	return c.Workspaces[name]
}

// WorkspaceByPath returns the workspace rooted at path, or nil.
func (c *Config) WorkspaceByPath(path string) *Workspace {
	for _, w := range c.Workspaces {
		if w.Path == path {
			return w
		}
	}
	return nil
}

// WorkspaceNames returns all workspace names in lexical order.
func (c *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(c.Workspaces))
	for n := range c.Workspaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AllRepos returns the set of repository names declared in any workspace.
func (c *Config) AllRepos() map[string]bool {
	repos := make(map[string]bool)
	for _, w := range c.Workspaces {
		for r := range w.AllRepos() {
			repos[r] = true
		}
	}
	return repos
}

// FindRepoLocations returns every declared location of the repo, ordered by
// workspace name then category path.
func (c *Config) FindRepoLocations(repoName string) []RepoLocation {
	var locations []RepoLocation
	for _, name := range c.WorkspaceNames() {
		for _, cat := range c.Workspaces[name].FindRepoCategories(repoName) {
			locations = append(locations, RepoLocation{Workspace: name, CategoryPath: cat})
		}
	}
	return locations
}

// ObservedSymlink is one symlink found while scanning a workspace tree.
// Target is the resolved absolute target; Broken marks links whose target
// could not be resolved or does not exist. Observed state is never
// persisted, it is recomputed on every scan.
type ObservedSymlink struct {
	Workspace    string
	CategoryPath string
	Name         string
	Target       string
	Broken       bool
}

// DisplayPath renders the link location as workspace/category/name,
// omitting the "." segment for root-category links.
func (o ObservedSymlink) DisplayPath() string {
	if o.CategoryPath == RootCategory {
		return o.Workspace + "/" + o.Name
	}
	return o.Workspace + "/" + o.CategoryPath + "/" + o.Name
}
