//go:build linux

package container

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// defaultMountFlags matches the teacher's nsinit mount flags for
// filesystems mounted inside the container: no execution of binaries,
// no setuid/setgid effect, no device nodes.
const defaultMountFlags = unix.MS_NOEXEC | unix.MS_NOSUID | unix.MS_NODEV

// setupMountNamespace performs the bind-mount, mount-move, chroot
// sequence from the teacher's nsinit/mount.go, adapted to mount only proc
// and a tmpfs at /tmp rather than the teacher's full sysfs/devpts/dev
// node population — per spec, proc and tmpfs are the two required
// mounts, and failure to mount either is non-fatal rather than aborting
// the container.
func setupMountNamespace(rootfs string) error {
	if rootfs == "" {
		return fmt.Errorf("no rootfs provided")
	}

	// Mark / private so none of what follows propagates back to the host
	// mount namespace.
	if err := unix.Mount("", "/", "", unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return fmt.Errorf("marking / private: %w", err)
	}

	if err := unix.Mount(rootfs, rootfs, "bind", unix.MS_BIND|unix.MS_REC, ""); err != nil {
		return fmt.Errorf("bind-mounting rootfs onto itself: %w", err)
	}

	if err := mountProc(rootfs); err != nil {
		// Non-fatal per spec: some environments (nested containers,
		// restricted namespaces) cannot mount a fresh procfs.
		fmt.Fprintf(os.Stderr, "iza-init: warning: mount proc: %v\n", err)
	}

	if err := mountTmp(rootfs); err != nil {
		// Non-fatal, same policy as /proc.
		fmt.Fprintf(os.Stderr, "iza-init: warning: mount /tmp: %v\n", err)
	}

	if err := unix.Chdir(rootfs); err != nil {
		return fmt.Errorf("chdir into rootfs: %w", err)
	}
	if err := unix.Mount(rootfs, "/", "", unix.MS_MOVE, ""); err != nil {
		return fmt.Errorf("moving rootfs onto /: %w", err)
	}
	if err := unix.Chroot("."); err != nil {
		return fmt.Errorf("chroot: %w", err)
	}
	if err := unix.Chdir("/"); err != nil {
		return fmt.Errorf("chdir /: %w", err)
	}

	unix.Umask(0o022)
	return nil
}

func mountProc(rootfs string) error {
	target := filepath.Join(rootfs, "proc")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	return unix.Mount("proc", target, "proc", uintptr(defaultMountFlags), "")
}

func mountTmp(rootfs string) error {
	target := filepath.Join(rootfs, "tmp")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	return unix.Mount("tmpfs", target, "tmpfs", uintptr(defaultMountFlags), "mode=1777,size=65536k")
}
