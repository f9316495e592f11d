package types

// PathState describes what occupies a prospective symlink location.
type PathState int

const (
	// PathMissing means nothing exists at the location.
	PathMissing PathState = iota
	// PathSymlink means a symlink occupies the location.
	PathSymlink
	// PathDir means a real directory occupies the location.
	PathDir
	// PathFile means a regular file (or anything else) occupies the location.
	PathFile
)

// PathStateFunc reports the state of a workspace-relative path. The
// reconciler uses it to detect obstructions without touching the filesystem
// itself.
type PathStateFunc func(relPath string) PathState
