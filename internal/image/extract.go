package image

import (
	"archive/tar"
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
	"golang.org/x/sys/unix"
)

func logExtractWarning(target, xattr string, err error) {
	logrus.WithFields(logrus.Fields{"path": target, "xattr": xattr}).Warnf("failed to restore xattr: %v", err)
}

// decompress wraps r with the appropriate decompressor based on the first
// few magic bytes, transparently supporting gzip, bzip2, and xz — the
// superset of formats a general-purpose archive reader offers, per spec.
// An unrecognized magic is treated as an uncompressed tar stream.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		return gzip.NewReader(br)
	case len(magic) >= 3 && magic[0] == 'B' && magic[1] == 'Z' && magic[2] == 'h':
		return bzip2.NewReader(br), nil
	case len(magic) >= 6 && string(magic[:6]) == "\xfd7zXZ\x00":
		return xz.NewReader(br)
	default:
		return br, nil
	}
}

// extract streams the archive at srcPath into destRoot, rewriting every
// entry path by prefixing "rootfs/" is the caller's responsibility
// (destRoot is already that rootfs directory); this function restores
// entries directly under destRoot. Mode bits, timestamps, symlink
// targets, hard links, and device nodes are preserved; extended
// attributes are restored best-effort when the process has privilege.
func extract(srcPath, destRoot string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	dr, err := decompress(f)
	if err != nil {
		return err
	}

	tr := tar.NewReader(dr)

	// Hard links may reference an entry that appears earlier in the
	// stream but whose target path we need to resolve against destRoot.
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(destRoot, filepath.Clean("/"+hdr.Name))
		if !strings.HasPrefix(target, destRoot) {
			return fmt.Errorf("extract: entry %q escapes rootfs", hdr.Name)
		}

		if err := restoreEntry(tr, hdr, target, destRoot); err != nil {
			return fmt.Errorf("extract: %s: %w", hdr.Name, err)
		}
	}
}

func restoreEntry(tr *tar.Reader, hdr *tar.Header, target, destRoot string) error {
	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, os.FileMode(hdr.Mode)&os.ModePerm); err != nil {
			return err
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode)&os.ModePerm)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		os.Remove(target)
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return err
		}
		return nil // symlinks have no mode/time to restore on most platforms
	case tar.TypeLink:
		linkTarget := filepath.Join(destRoot, filepath.Clean("/"+hdr.Linkname))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		os.Remove(target)
		if err := os.Link(linkTarget, target); err != nil {
			return err
		}
	case tar.TypeChar, tar.TypeBlock, tar.TypeFifo:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		mode := uint32(hdr.Mode) & 0o7777
		switch hdr.Typeflag {
		case tar.TypeChar:
			mode |= unix.S_IFCHR
		case tar.TypeBlock:
			mode |= unix.S_IFBLK
		case tar.TypeFifo:
			mode |= unix.S_IFIFO
		}
		dev := unix.Mkdev(uint32(hdr.Devmajor), uint32(hdr.Devminor))
		os.Remove(target)
		if err := unix.Mknod(target, mode, int(dev)); err != nil {
			if err == unix.EPERM {
				return nil // no privilege to create device nodes; skip
			}
			return err
		}
	default:
		return nil
	}

	// MkdirAll/OpenFile apply the umask and drop setuid/setgid/sticky, and
	// leave an already-existing directory's mode untouched.
	if hdr.Typeflag == tar.TypeDir || hdr.Typeflag == tar.TypeReg {
		if err := os.Chmod(target, hdr.FileInfo().Mode()); err != nil {
			return err
		}
	}

	restoreXattrs(target, hdr)
	restoreTimes(target, hdr)
	return nil
}

// restoreXattrs writes any SCHILY.xattr.* PAX records back onto the
// restored file. Missing privilege (EPERM) is tolerated silently.
func restoreXattrs(target string, hdr *tar.Header) {
	const prefix = "SCHILY.xattr."
	for k, v := range hdr.PAXRecords {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		name := strings.TrimPrefix(k, prefix)
		if err := unix.Lsetxattr(target, name, []byte(v), 0); err != nil && err != unix.EPERM && err != unix.ENOTSUP {
			logExtractWarning(target, name, err)
		}
	}
}

func restoreTimes(target string, hdr *tar.Header) {
	if hdr.Typeflag == tar.TypeSymlink {
		return
	}
	_ = os.Chtimes(target, hdr.AccessTime, hdr.ModTime)
}
