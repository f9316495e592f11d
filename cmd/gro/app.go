package gro

import (
	"os"
	"sort"

	"github.com/arthur-debert/gro/pkg/config"
	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/filesystem"
	"github.com/arthur-debert/gro/pkg/paths"
	"github.com/arthur-debert/gro/pkg/style"
	"github.com/arthur-debert/gro/pkg/types"
)

// app bundles everything a command invocation needs: the filesystem, the
// loaded model and settings, and the resolved output format.
type app struct {
	fs         types.FS
	cfg        *types.Config
	settings   *config.Settings
	format     style.Format
	configPath string
}

// resolveConfigPath returns the config file location: the --config flag when
// set, otherwise the standard XDG location (honoring GRO_CONFIG).
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return paths.ExpandHome(configPath)
	}
	return paths.ConfigFilePath(), nil
}

// loadApp loads settings and the model config for a command run.
func loadApp() (*app, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()
	cfg, err := config.Load(fsys, path)
	if err != nil {
		return nil, err
	}

	format, err := style.ParseFormat(settings.Output.Color)
	if err != nil {
		format = style.FormatAuto
	}

	return &app{
		fs:         fsys,
		cfg:        cfg,
		settings:   settings,
		format:     style.DetectFormat(format, os.Stdout),
		configPath: path,
	}, nil
}

// saveConfig persists the in-memory model back to the config file.
func (a *app) saveConfig() error {
	return config.Save(a.fs, a.cfg, a.configPath)
}

// selectWorkspaces returns the workspaces a command should act on, ordered
// by name. An empty filter means all of them.
func (a *app) selectWorkspaces(filter string) ([]*types.Workspace, error) {
	if filter != "" {
		ws := a.cfg.Workspace(filter)
		if ws == nil {
			return nil, errors.Newf(errors.ErrWorkspaceNotFound,
				"workspace %q not found in config", filter)
		}
		return []*types.Workspace{ws}, nil
	}

	names := a.cfg.WorkspaceNames()
	workspaces := make([]*types.Workspace, 0, len(names))
	for _, name := range names {
		workspaces = append(workspaces, a.cfg.Workspaces[name])
	}
	sort.Slice(workspaces, func(i, j int) bool { return workspaces[i].Name() < workspaces[j].Name() })
	return workspaces, nil
}

// firstWorkspace returns the named workspace, or the alphabetically first
// one when name is empty. Used by non-interactive flows that need a single
// destination.
func (a *app) firstWorkspace(name string) (*types.Workspace, error) {
	if name != "" {
		ws := a.cfg.Workspace(name)
		if ws == nil {
			return nil, errors.Newf(errors.ErrWorkspaceNotFound,
				"workspace %q not found in config", name)
		}
		return ws, nil
	}
	names := a.cfg.WorkspaceNames()
	if len(names) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "config declares no workspaces")
	}
	return a.cfg.Workspaces[names[0]], nil
}
