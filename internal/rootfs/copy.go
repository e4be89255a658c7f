package rootfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// copyTree recursively copies src onto dst, preserving file mode,
// modification time, symlink targets, and device nodes. It does not
// preserve hard-link identity: a file linked twice in src is copied
// twice into dst. This mirrors the teacher's chrootarchive deep-copy
// idiom used when a kernel lacks overlay support.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if rel == "." {
			target = dst
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.Type()&os.ModeSymlink != 0:
			return copySymlink(path, target)
		case d.IsDir():
			return copyDir(target, info)
		case info.Mode()&os.ModeDevice != 0, info.Mode()&os.ModeNamedPipe != 0:
			return copySpecial(path, target, info)
		default:
			return copyFile(path, target, info)
		}
	})
}

func copyDir(target string, info fs.FileInfo) error {
	if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chmod(target, info.Mode()); err != nil {
		return err
	}
	return os.Chtimes(target, info.ModTime(), info.ModTime())
}

func copySymlink(src, target string) error {
	linkTarget, err := os.Readlink(src)
	if err != nil {
		return err
	}
	os.Remove(target)
	return os.Symlink(linkTarget, target)
}

func copyFile(src, target string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(target, info.Mode()); err != nil {
		return err
	}
	return os.Chtimes(target, info.ModTime(), info.ModTime())
}

// copySpecial recreates device nodes and named pipes via mknod. Lack of
// privilege (EPERM) is tolerated: the node is simply skipped, matching
// the tar extractor's behavior for the same condition.
func copySpecial(src, target string, info fs.FileInfo) error {
	stat, ok := info.Sys().(*unix.Stat_t)
	if !ok {
		return nil
	}

	os.Remove(target)
	if err := unix.Mknod(target, uint32(stat.Mode), int(stat.Rdev)); err != nil {
		if err == unix.EPERM {
			return nil
		}
		return fmt.Errorf("mknod %s: %w", target, err)
	}
	return nil
}
