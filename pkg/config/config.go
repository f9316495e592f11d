package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/arthur-debert/gro/pkg/paths"
	"github.com/arthur-debert/gro/pkg/types"
)

// Reserved top-level keys that are not workspace definitions.
const (
	keyStore            = "code"
	keyVSCodeWorkspaces = "vscode_workspaces"
)

// DefaultStorePath is used when the config omits the code key.
const DefaultStorePath = "~/code"

// Load reads and parses the model config file at path.
func Load(filesystem types.FS, path string) (*types.Config, error) {
	logger := logging.GetLogger("config")

	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not found: %s", path)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid YAML in config file")
	}
	if raw == nil {
		return nil, errors.New(errors.ErrConfigParse, "config file is empty")
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Int("workspaces", len(cfg.Workspaces)).Msg("config loaded")
	return cfg, nil
}

// Parse builds the model from raw config data. Any top-level key except the
// reserved ones is a workspace: simple names like "Projects" become
// ~/Projects, keys starting with ~ or / are used as-is.
func Parse(raw map[string]interface{}) (*types.Config, error) {
	// Reject the obsolete list-based format outright.
	if _, ok := raw["workspaces"]; ok {
		return nil, errors.New(errors.ErrConfigParse,
			"the 'workspaces' list is no longer supported; use top-level keys for workspaces instead")
	}

	storeRaw := DefaultStorePath
	if v, ok := raw[keyStore]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "'%s' must be a string", keyStore)
		}
		storeRaw = s
	}
	storePath, err := paths.ExpandHome(storeRaw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid store path %q", storeRaw)
	}

	cfg := types.NewConfig(storePath)

	if v, ok := raw[keyVSCodeWorkspaces]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "'%s' must be a string", keyVSCodeWorkspaces)
		}
		p, err := paths.ExpandHome(s)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid vscode_workspaces path %q", s)
		}
		cfg.VSCodeWorkspacesPath = p
	}

	// Collect workspace keys deterministically so collision errors are
	// stable.
	var wsKeys []string
	for key := range raw {
		if key == keyStore || key == keyVSCodeWorkspaces {
			continue
		}
		wsKeys = append(wsKeys, key)
	}
	sort.Strings(wsKeys)

	// Workspace names (path basenames) must be unique across the config.
	seen := make(map[string]string)
	for _, key := range wsKeys {
		wsPath, err := paths.WorkspaceKeyToPath(key)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid workspace key %q", key)
		}
		name := filepath.Base(wsPath)
		if prev, ok := seen[name]; ok {
			return nil, errors.Newf(errors.ErrConfigValid,
				"workspace basename collision: %q used by both %q and %q", name, prev, key)
		}
		seen[name] = key

		ws, err := parseWorkspace(key, wsPath, raw[key])
		if err != nil {
			return nil, err
		}
		cfg.Workspaces[name] = ws
	}

	return cfg, nil
}

func parseWorkspace(key, wsPath string, data interface{}) (*types.Workspace, error) {
	ws := types.NewWorkspace(wsPath)
	if data == nil {
		return ws, nil
	}

	mapping, ok := data.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrConfigParse, "workspace %q config must be a mapping", key)
	}

	for catPath, reposRaw := range mapping {
		catPath = types.NormalizeCategoryPath(catPath)
		cat := ws.EnsureCategory(catPath)
		if reposRaw == nil {
			continue
		}
		list, ok := reposRaw.([]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse,
				"category %q in workspace %q must be a list", catPath, key)
		}
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf(errors.ErrConfigParse,
					"repo names must be strings, got %T in %q/%q", item, key, catPath)
			}
			cat.Entries = append(cat.Entries, types.ParseRepoEntry(s))
		}
	}

	return ws, nil
}

// Serialize renders the model into a YAML document node. The store key
// comes first, then workspaces by key, categories and entries sorted.
func Serialize(cfg *types.Config) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	appendKV := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}
	scalar := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	}

	appendKV(keyStore, scalar(paths.ContractHome(cfg.StorePath)))
	if cfg.VSCodeWorkspacesPath != "" {
		appendKV(keyVSCodeWorkspaces, scalar(paths.ContractHome(cfg.VSCodeWorkspacesPath)))
	}

	for _, name := range cfg.WorkspaceNames() {
		ws := cfg.Workspaces[name]
		wsNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, catPath := range ws.CategoryPaths() {
			cat := ws.Categories[catPath]
			entries := make([]string, 0, len(cat.Entries))
			for _, e := range cat.Entries {
				entries = append(entries, e.String())
			}
			sort.Strings(entries)
			listNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, e := range entries {
				listNode.Content = append(listNode.Content, scalar(e))
			}
			wsNode.Content = append(wsNode.Content, scalar(catPath), listNode)
		}
		appendKV(paths.WorkspacePathToKey(ws.Path), wsNode)
	}

	return doc
}

// Save writes the model back to disk atomically: the document is written to
// a temp file next to the destination and renamed into place.
func Save(filesystem types.FS, cfg *types.Config, path string) error {
	logger := logging.GetLogger("config")

	node := Serialize(cfg)
	data, err := yaml.Marshal(node)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "cannot serialize config")
	}

	dir := filepath.Dir(path)
	if err := filesystem.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create config directory %s", dir)
	}

	tmp := path + ".tmp"
	if err := filesystem.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write config to %s", tmp)
	}
	if err := filesystem.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "cannot move config into place at %s", path)
	}

	logger.Debug().Str("path", path).Msg("config saved")
	return nil
}

// Default creates a config with the given store path and workspace paths,
// falling back to ~/code and ~/workspace.
func Default(storePath string, workspacePaths []string) (*types.Config, error) {
	if storePath == "" {
		storePath = DefaultStorePath
	}
	store, err := paths.ExpandHome(storePath)
	if err != nil {
		return nil, err
	}

	if len(workspacePaths) == 0 {
		workspacePaths = []string{"~/workspace"}
	}

	cfg := types.NewConfig(store)
	for _, wp := range workspacePaths {
		p, err := paths.ExpandHome(wp)
		if err != nil {
			return nil, err
		}
		ws := types.NewWorkspace(p)
		cfg.Workspaces[ws.Name()] = ws
	}
	return cfg, nil
}

// Validate checks the model and returns advisory warnings. Structural
// errors (basename collisions, bad shapes) are caught at parse time; these
// are the softer problems worth telling the user about.
func Validate(filesystem types.FS, cfg *types.Config) []string {
	var warnings []string

	if !exists(filesystem, cfg.StorePath) {
		warnings = append(warnings, fmt.Sprintf("code directory does not exist: %s", cfg.StorePath))
	}
	for _, name := range cfg.WorkspaceNames() {
		if !exists(filesystem, cfg.Workspaces[name].Path) {
			warnings = append(warnings, fmt.Sprintf("workspace directory does not exist: %s", cfg.Workspaces[name].Path))
		}
	}

	for _, name := range cfg.WorkspaceNames() {
		ws := cfg.Workspaces[name]

		// A repo in multiple categories is legal, just worth knowing about.
		for repo := range ws.AllRepos() {
			if cats := ws.FindRepoCategories(repo); len(cats) > 1 {
				warnings = append(warnings, fmt.Sprintf(
					"repo %q appears in multiple categories in %q: %v", repo, name, cats))
			}
		}

		// Duplicate symlink names within one category are a real conflict;
		// the reconciler refuses to plan them, so flag them here too.
		for _, catPath := range ws.CategoryPaths() {
			cat := ws.Categories[catPath]
			byName := make(map[string][]string)
			for _, e := range cat.Entries {
				byName[e.SymlinkName()] = append(byName[e.SymlinkName()], e.RepoName)
			}
			var names []string
			for n, repos := range byName {
				if len(repos) > 1 {
					names = append(names, n)
				}
			}
			sort.Strings(names)
			for _, n := range names {
				warnings = append(warnings, fmt.Sprintf(
					"duplicate symlink name %q in %q/%q: repos %v", n, name, catPath, byName[n]))
			}
		}

		// Category paths that collide with a repo symlink name in a parent
		// category cannot coexist on disk.
		warnings = append(warnings, categoryRepoWarnings(name, ws)...)
	}

	return warnings
}

func categoryRepoWarnings(wsName string, ws *types.Workspace) []string {
	var warnings []string
	for _, catPath := range ws.CategoryPaths() {
		if catPath == types.RootCategory {
			continue
		}
		segments := splitCategory(catPath)
		for i, segment := range segments {
			parent := types.RootCategory
			if i > 0 {
				parent = joinCategory(segments[:i])
			}
			parentCat := ws.Categories[parent]
			if parentCat != nil && parentCat.SymlinkNames()[segment] {
				warnings = append(warnings, fmt.Sprintf(
					"category path %q in workspace %q conflicts with repo %q in category %q",
					catPath, wsName, segment, parent))
				break
			}
		}
	}
	return warnings
}

func splitCategory(p string) []string {
	return strings.Split(p, "/")
}

func joinCategory(segments []string) string {
	return strings.Join(segments, "/")
}

func exists(filesystem types.FS, path string) bool {
	_, err := filesystem.Stat(path)
	return err == nil
}
