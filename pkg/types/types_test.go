package types_test

import (
	"testing"

	"github.com/arthur-debert/gro/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestParseRepoEntry(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRepo string
		wantAlias string
	}{
		{
			name:     "plain repo name",
			input:    "acme-code",
			wantRepo: "acme-code",
		},
		{
			name:      "repo with alias",
			input:     "acme-code:git",
			wantRepo:  "acme-code",
			wantAlias: "git",
		},
		{
			name:      "splits on last colon",
			input:     "weird:name:alias",
			wantRepo:  "weird:name",
			wantAlias: "alias",
		},
		{
			name:      "trailing colon yields empty alias",
			input:     "repo:",
			wantRepo:  "repo",
			wantAlias: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := types.ParseRepoEntry(tt.input)
			assert.Equal(t, tt.wantRepo, entry.RepoName)
			assert.Equal(t, tt.wantAlias, entry.Alias)
		})
	}
}

func TestRepoEntrySymlinkName(t *testing.T) {
	assert.Equal(t, "gro", types.RepoEntry{RepoName: "gro"}.SymlinkName())
	assert.Equal(t, "git", types.RepoEntry{RepoName: "acme-code", Alias: "git"}.SymlinkName())
}

func TestRepoEntryString(t *testing.T) {
	assert.Equal(t, "gro", types.RepoEntry{RepoName: "gro"}.String())
	assert.Equal(t, "acme-code:git", types.RepoEntry{RepoName: "acme-code", Alias: "git"}.String())
}

func TestNormalizeCategoryPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{".", "."},
		{"/", "."},
		{"tools", "tools"},
		{"/tools/", "tools"},
		{"vmware/vsphere", "vmware/vsphere"},
		{"/vmware/vsphere/", "vmware/vsphere"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, types.NormalizeCategoryPath(tt.input), "input %q", tt.input)
	}
}

func TestWorkspaceName(t *testing.T) {
	ws := types.NewWorkspace("/home/user/workspace")
	assert.Equal(t, "workspace", ws.Name())
}

func TestWorkspaceEnsureCategory(t *testing.T) {
	ws := types.NewWorkspace("/tmp/ws")

	cat := ws.EnsureCategory("tools")
	assert.Equal(t, "tools", cat.Path)

	// Same category comes back on repeated calls.
	again := ws.EnsureCategory("tools/")
	assert.Same(t, cat, again)

	root := ws.EnsureCategory("")
	assert.Equal(t, types.RootCategory, root.Path)
	assert.True(t, root.IsRoot())
}

func TestWorkspaceAllRepos(t *testing.T) {
	ws := types.NewWorkspace("/tmp/ws")
	ws.EnsureCategory(".").Entries = []types.RepoEntry{
		{RepoName: "alpha"},
		{RepoName: "beta", Alias: "b"},
	}
	ws.EnsureCategory("tools").Entries = []types.RepoEntry{
		{RepoName: "alpha"},
	}

	repos := ws.AllRepos()
	assert.Len(t, repos, 2)
	assert.True(t, repos["alpha"])
	assert.True(t, repos["beta"])

	assert.Equal(t, []string{".", "tools"}, ws.FindRepoCategories("alpha"))
	assert.Equal(t, []string{"."}, ws.FindRepoCategories("beta"))
	assert.Empty(t, ws.FindRepoCategories("gamma"))
}

func TestCategorySymlinkNames(t *testing.T) {
	cat := &types.Category{
		Path: ".",
		Entries: []types.RepoEntry{
			{RepoName: "alpha"},
			{RepoName: "beta", Alias: "b"},
		},
	}
	names := cat.SymlinkNames()
	assert.True(t, names["alpha"])
	assert.True(t, names["b"])
	assert.False(t, names["beta"])
}

func TestConfigFindRepoLocations(t *testing.T) {
	cfg := types.NewConfig("/home/user/code")

	ws1 := types.NewWorkspace("/home/user/workspace")
	ws1.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}}
	ws1.EnsureCategory("tools").Entries = []types.RepoEntry{{RepoName: "alpha"}}
	cfg.Workspaces[ws1.Name()] = ws1

	ws2 := types.NewWorkspace("/home/user/play")
	ws2.EnsureCategory(".").Entries = []types.RepoEntry{{RepoName: "alpha"}, {RepoName: "beta"}}
	cfg.Workspaces[ws2.Name()] = ws2

	locations := cfg.FindRepoLocations("alpha")
	assert.Equal(t, []types.RepoLocation{
		{Workspace: "play", CategoryPath: "."},
		{Workspace: "workspace", CategoryPath: "."},
		{Workspace: "workspace", CategoryPath: "tools"},
	}, locations)

	assert.Len(t, cfg.AllRepos(), 2)
	assert.Equal(t, []string{"play", "workspace"}, cfg.WorkspaceNames())
	assert.Same(t, ws2, cfg.WorkspaceByPath("/home/user/play"))
	assert.Nil(t, cfg.WorkspaceByPath("/nope"))
}

func TestObservedSymlinkDisplayPath(t *testing.T) {
	root := types.ObservedSymlink{Workspace: "ws", CategoryPath: ".", Name: "gro"}
	assert.Equal(t, "ws/gro", root.DisplayPath())

	nested := types.ObservedSymlink{Workspace: "ws", CategoryPath: "tools/cli", Name: "gro"}
	assert.Equal(t, "ws/tools/cli/gro", nested.DisplayPath())
}
