package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gro/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde only", "~", home},
		{"tilde prefix", "~/code", filepath.Join(home, "code")},
		{"absolute", "/tmp/code", "/tmp/code"},
		{"cleans path", "/tmp//code/", "/tmp/code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.ExpandHome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandHomeEmptyPath(t *testing.T) {
	_, err := paths.ExpandHome("")
	assert.Error(t, err)
}

func TestContractHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "~", paths.ContractHome(home))
	assert.Equal(t, "~/code", paths.ContractHome(filepath.Join(home, "code")))
	assert.Equal(t, "~/work/projects", paths.ContractHome(filepath.Join(home, "work", "projects")))
	assert.Equal(t, "/tmp/code", paths.ContractHome("/tmp/code"))
}

func TestWorkspaceKeyToPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		key  string
		want string
	}{
		{"Projects", filepath.Join(home, "Projects")},
		{"~/work/projects", filepath.Join(home, "work", "projects")},
		{"/tmp/ws", "/tmp/ws"},
	}

	for _, tt := range tests {
		got, err := paths.WorkspaceKeyToPath(tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "key %q", tt.key)
	}
}

func TestWorkspacePathToKey(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	// Directly under home: bare name.
	assert.Equal(t, "Projects", paths.WorkspacePathToKey(filepath.Join(home, "Projects")))
	// Nested under home: tilde path.
	assert.Equal(t, "~/work/projects", paths.WorkspacePathToKey(filepath.Join(home, "work", "projects")))
	// Outside home: absolute path.
	assert.Equal(t, "/tmp/ws", paths.WorkspacePathToKey("/tmp/ws"))
}

func TestWorkspaceKeyRoundTrip(t *testing.T) {
	for _, key := range []string{"Projects", "~/work/projects", "/tmp/ws"} {
		path, err := paths.WorkspaceKeyToPath(key)
		require.NoError(t, err)
		assert.Equal(t, key, paths.WorkspacePathToKey(path), "key %q", key)
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv(paths.EnvConfigPath, "/etc/gro/config.yaml")
	assert.Equal(t, "/etc/gro/config.yaml", paths.ConfigFilePath())

	t.Setenv(paths.EnvConfigPath, "")
	p := paths.ConfigFilePath()
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "config.yaml", filepath.Base(p))
	assert.Equal(t, "gro", filepath.Base(filepath.Dir(p)))
}

func TestSymlinkPath(t *testing.T) {
	assert.Equal(t, "/ws/gro", paths.SymlinkPath("/ws", ".", "gro"))
	assert.Equal(t, "/ws/tools/cli/gro", paths.SymlinkPath("/ws", "tools/cli", "gro"))
}

func TestTargetPath(t *testing.T) {
	assert.Equal(t, "/code/gro", paths.TargetPath("/code", "gro"))
}
