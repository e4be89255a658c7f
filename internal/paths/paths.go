// Package paths centralizes the on-disk layout of the iza runtime: where
// images, download caches, and per-container overlay workspaces live.
package paths

import "path/filepath"

// DefaultRoot is the default base directory for all persistent and
// ephemeral runtime state.
const DefaultRoot = "/var/lib/iza"

// DefaultDirMode is the permission mode used for directories created by
// the runtime.
const DefaultDirMode = 0o755

// Layout resolves the on-disk paths rooted at a single base directory. The
// zero value is not usable; construct with New.
type Layout struct {
	root string
}

// New returns a Layout rooted at root. An empty root falls back to
// DefaultRoot.
func New(root string) Layout {
	if root == "" {
		root = DefaultRoot
	}
	return Layout{root: root}
}

// Root returns the base directory this layout is rooted at.
func (l Layout) Root() string {
	return l.root
}

// Images returns the directory under which every image record is stored,
// one subdirectory per "name:tag".
func (l Layout) Images() string {
	return filepath.Join(l.root, "images")
}

// Image returns the record directory for a single "name:tag".
func (l Layout) Image(nameTag string) string {
	return filepath.Join(l.Images(), nameTag)
}

// ImageRootfs returns the extracted rootfs directory for a single image
// record.
func (l Layout) ImageRootfs(nameTag string) string {
	return filepath.Join(l.Image(nameTag), "rootfs")
}

// Cache returns the directory under which downloaded archives are kept.
func (l Layout) Cache() string {
	return filepath.Join(l.root, "cache")
}

// CacheArchive returns the path of the cached archive for a given
// "name:tag".
func (l Layout) CacheArchive(nameTag string) string {
	return filepath.Join(l.Cache(), nameTag+".tar.gz")
}

// Overlay returns the directory under which every container's writable
// workspace is kept.
func (l Layout) Overlay() string {
	return filepath.Join(l.root, "overlay")
}

// ContainerWorkspace returns the workspace directory for one container.
func (l Layout) ContainerWorkspace(containerID string) string {
	return filepath.Join(l.Overlay(), containerID)
}

// CgroupRoot is the unified cgroup-v2 hierarchy mountpoint. It is not
// relative to Layout.root because cgroups are a kernel-global resource,
// not part of the runtime's own storage tree.
const CgroupRoot = "/sys/fs/cgroup"
