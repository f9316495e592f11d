// Package gitrepo provides light read-only introspection of git
// repositories in the store: listing remotes and parsing remote URLs into
// (domain, org, repo) parts. No history operation ever happens here; the
// git binary is only consulted for `git remote -v`.
package gitrepo

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/arthur-debert/gro/pkg/types"
)

// Remote is one parsed remote URL.
type Remote struct {
	Domain string
	Org    string
	Repo   string
}

var (
	// user@domain:org/repo — the common scp-like SSH form.
	sshColonRe = regexp.MustCompile(`^[^@]+@([^:]+):(.+)/([^/]+)$`)
	// user@domain/org/repo — SSH without the colon separator.
	sshSlashRe = regexp.MustCompile(`^[^@]+@([^/]+)/(.+)/([^/]+)$`)
	// ssh://user@domain/org/repo with the user part optional.
	sshProtoRe = regexp.MustCompile(`^ssh://(?:[^@]+@)?([^/]+)/(.+)/([^/]+)$`)
	// http(s)://domain/org/repo, org may contain subgroups.
	httpsRe = regexp.MustCompile(`^https?://([^/]+)/(.+)/([^/]+)$`)
)

// ParseRemoteURL extracts (domain, org, repo) from a git remote URL. Org
// keeps any subgroup path ("scm/team"). The second return value is false
// when the URL matches no known form.
func ParseRemoteURL(url string) (Remote, bool) {
	if url == "" {
		return Remote{}, false
	}
	url = strings.TrimRight(url, "/")
	url = strings.TrimSuffix(url, ".git")

	for _, re := range []*regexp.Regexp{sshColonRe, sshSlashRe, sshProtoRe, httpsRe} {
		if m := re.FindStringSubmatch(url); m != nil {
			return Remote{Domain: m[1], Org: m[2], Repo: m[3]}, true
		}
	}
	return Remote{}, false
}

// Remotes returns the fetch remotes of the repository at repoPath, keyed by
// remote name. A directory without a git marker, or any git failure, yields
// an empty map; remote listing is best-effort decoration.
func Remotes(ctx context.Context, fsys types.FS, repoPath string) map[string]string {
	logger := logging.GetLogger("gitrepo")

	if _, err := fsys.Lstat(filepath.Join(repoPath, ".git")); err != nil {
		return map[string]string{}
	}

	cmd := exec.CommandContext(ctx, "git", "remote", "-v")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		logger.Debug().Str("repo", repoPath).Err(err).Msg("git remote -v failed")
		return map[string]string{}
	}

	remotes := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		// Format: "origin\tgit@github.com:user/repo.git (fetch)"
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.Contains(line, "(fetch)") {
			remotes[fields[0]] = fields[1]
		}
	}
	return remotes
}
