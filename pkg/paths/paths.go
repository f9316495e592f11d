// Package paths provides centralized path handling for gro: the config file
// location (XDG Base Directory compliant), home directory expansion and
// contraction, the mapping between config workspace keys and workspace
// paths, and symlink location helpers.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/types"
)

// Environment variable names
const (
	// EnvConfigPath overrides the model config file location
	EnvConfigPath = "GRO_CONFIG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for gro files under XDG directories
	AppDirName = "gro"

	// ConfigFileName is the name of the model config file
	ConfigFileName = "config.yaml"

	// SettingsFileName is the name of the app settings file
	SettingsFileName = "gro.toml"
)

// ConfigFilePath returns the model config file path: GRO_CONFIG when set,
// otherwise $XDG_CONFIG_HOME/gro/config.yaml.
func ConfigFilePath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		expanded, err := ExpandHome(p)
		if err == nil {
			return expanded
		}
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// SettingsFilePath returns the app settings file path,
// $XDG_CONFIG_HOME/gro/gro.toml.
func SettingsFilePath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, SettingsFileName)
}

// ExpandHome expands a leading ~ to the user's home directory and returns
// an absolute, cleaned path.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve path %q", path)
	}
	return filepath.Clean(abs), nil
}

// ContractHome replaces the home directory prefix of an absolute path with
// ~ for readable serialization. Paths outside home come back unchanged.
func ContractHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~/" + filepath.ToSlash(path[len(home)+1:])
	}
	return path
}

// WorkspaceKeyToPath maps a config workspace key to its path. Simple names
// like "Projects" become ~/Projects; keys starting with ~ or / are used
// as-is.
func WorkspaceKeyToPath(key string) (string, error) {
	if strings.HasPrefix(key, "~") || strings.HasPrefix(key, "/") {
		return ExpandHome(key)
	}
	return ExpandHome("~/" + key)
}

// WorkspacePathToKey maps a workspace path back to its config key: the bare
// name for paths directly under home, a ~-contracted path for deeper paths
// under home, the absolute path otherwise.
func WorkspacePathToKey(path string) string {
	contracted := ContractHome(path)
	if strings.HasPrefix(contracted, "~/") {
		rest := contracted[2:]
		if !strings.Contains(rest, "/") {
			return rest
		}
	}
	return contracted
}

// SymlinkPath returns the absolute location of a symlink within a
// workspace.
func SymlinkPath(workspacePath, categoryPath, symlinkName string) string {
	if categoryPath == types.RootCategory {
		return filepath.Join(workspacePath, symlinkName)
	}
	return filepath.Join(workspacePath, filepath.FromSlash(categoryPath), symlinkName)
}

// TargetPath returns the absolute store location a symlink should point at.
func TargetPath(storePath, repoName string) string {
	return filepath.Join(storePath, repoName)
}
