// Package rootfs implements the Rootfs Assembler component: producing a
// per-container writable root filesystem by layering a writable upper
// directory over an immutable image directory via overlayfs, falling back
// to a deep copy when overlay is unavailable.
package rootfs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	sysmount "github.com/moby/sys/mount"
	"github.com/moby/sys/mountinfo"
	"github.com/sirupsen/logrus"

	"github.com/Priya00300/iza-container/internal/paths"
)

// Workspace is the assembled root filesystem for one container, plus its
// teardown handle. A Workspace's Teardown is safe to call exactly once
// and safe to call even if Assemble only partially succeeded.
type Workspace struct {
	Rootfs string

	merged    string // non-empty when overlay was used; the mountpoint to unmount
	container string // the per-container directory to remove entirely
	torndown  bool
}

// Assemble produces a writable rootfs for containerID derived from
// imageRootfs. It inspects /proc/filesystems for overlay support; on any
// failure to mount it falls back to a deep copy. The caller cannot tell
// which strategy was used except by inspecting the final element of
// Workspace.Rootfs ("merged" for overlay, "rootfs" for a deep copy).
func Assemble(layout paths.Layout, imageRootfs, containerID string) (*Workspace, error) {
	containerDir := layout.ContainerWorkspace(containerID)

	if overlaySupported() {
		ws, err := assembleOverlay(containerDir, imageRootfs)
		if err == nil {
			return ws, nil
		}
		logrus.WithError(err).Warn("rootfs: overlay mount failed, falling back to deep copy")
		os.RemoveAll(containerDir)
	}

	return assembleCopy(containerDir, imageRootfs)
}

// overlaySupported inspects /proc/filesystems for a line containing the
// token "overlay".
func overlaySupported() bool {
	f, err := os.Open("/proc/filesystems")
	if err != nil {
		return false
	}
	defer f.Close()

	return hasOverlayToken(f)
}

// hasOverlayToken scans r line by line for a line containing the token
// "overlay", the shape /proc/filesystems takes when the overlay driver is
// registered. Factored out so it can be exercised against a fabricated
// reader in tests.
func hasOverlayToken(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "overlay") {
			return true
		}
	}
	return false
}

func assembleOverlay(containerDir, imageRootfs string) (*Workspace, error) {
	upper := filepath.Join(containerDir, "upper")
	work := filepath.Join(containerDir, "work")
	merged := filepath.Join(containerDir, "merged")

	for _, dir := range []string{upper, work, merged} {
		if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
			return nil, fmt.Errorf("rootfs: creating overlay dir %s: %w", dir, err)
		}
	}

	opts := fmt.Sprintf("lowerdir=%s,upperdir=%s,workdir=%s", imageRootfs, upper, work)
	if err := sysmount.Mount("overlay", merged, "overlay", opts); err != nil {
		return nil, fmt.Errorf("rootfs: mounting overlay: %w", err)
	}

	return &Workspace{
		Rootfs:    merged,
		merged:    merged,
		container: containerDir,
	}, nil
}

func assembleCopy(containerDir, imageRootfs string) (*Workspace, error) {
	dest := filepath.Join(containerDir, "rootfs")
	if err := os.MkdirAll(dest, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("rootfs: creating copy dir: %w", err)
	}

	if err := copyTree(imageRootfs, dest); err != nil {
		os.RemoveAll(containerDir)
		return nil, fmt.Errorf("rootfs: deep copy: %w", err)
	}

	return &Workspace{
		Rootfs:    dest,
		container: containerDir,
	}, nil
}

// Teardown unmounts merged/ (if it is a mount point, ignoring
// already-unmounted errors) then recursively removes the per-container
// directory. It is idempotent.
func (w *Workspace) Teardown() error {
	if w == nil || w.torndown {
		return nil
	}
	w.torndown = true

	if w.merged != "" {
		if mounted, err := mountinfo.Mounted(w.merged); err == nil && mounted {
			if err := sysmount.Unmount(w.merged); err != nil {
				logrus.WithError(err).Warn("rootfs: unmount failed")
			}
		}
	}

	if err := os.RemoveAll(w.container); err != nil {
		logrus.WithError(err).Warn("rootfs: removing workspace failed")
		return err
	}
	return nil
}
