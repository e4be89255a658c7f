// Package image implements the Image Store component: downloading a
// rootfs tarball for an allow-listed image name, extracting it into a
// per-reference on-disk record, and cataloguing/resolving those records.
package image

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Priya00300/iza-container/internal/paths"
)

// Store manages the on-disk image catalog rooted at a Layout.
type Store struct {
	layout paths.Layout
}

// NewStore returns a Store rooted at the given layout.
func NewStore(layout paths.Layout) *Store {
	return &Store{layout: layout}
}

// Record describes one catalogued image, as reported by List.
type Record struct {
	Repository string
	Tag        string
	Size       int64 // advisory; 0 if the tree could not be walked
}

// Pull downloads and registers ref, per the five-step algorithm in the
// spec: resolve the allow-listed URL, download to the cache, wipe any
// stale record, extract with rootfs/ prefixing, and remove partial state
// on failure.
func (s *Store) Pull(ref Ref) error {
	cachePath := s.layout.CacheArchive(ref.String())
	if err := download(ref, cachePath); err != nil {
		return err
	}

	imageDir := s.layout.Image(ref.String())
	rootfsDir := s.layout.ImageRootfs(ref.String())

	if err := os.RemoveAll(imageDir); err != nil {
		return fmt.Errorf("image: removing stale record: %w", err)
	}
	if err := os.MkdirAll(rootfsDir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("image: creating rootfs dir: %w", err)
	}

	if err := extract(cachePath, rootfsDir); err != nil {
		os.RemoveAll(imageDir)
		return fmt.Errorf("image: extracting %s: %w", ref, err)
	}

	logrus.WithField("image", ref).Info("pulled")
	return nil
}

// Resolve returns the rootfs directory for ref, and whether it exists.
func (s *Store) Resolve(ref Ref) (string, bool) {
	rootfs := s.layout.ImageRootfs(ref.String())
	if info, err := os.Stat(rootfs); err != nil || !info.IsDir() {
		return "", false
	}
	return rootfs, true
}

// List enumerates every directory directly under the images root that
// contains a rootfs/ subdirectory. Size is the recursive sum of regular
// file sizes under rootfs/; a walk error yields a size of zero rather
// than failing the listing, per spec.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.layout.Images())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("image: listing images: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		nameTag := e.Name()
		rootfs := s.layout.ImageRootfs(nameTag)
		if info, err := os.Stat(rootfs); err != nil || !info.IsDir() {
			continue
		}

		ref := ParseRef(nameTag)
		records = append(records, Record{
			Repository: ref.Name,
			Tag:        ref.Tag,
			Size:       dirSize(rootfs),
		})
	}
	return records, nil
}

// dirSize walks root and sums regular-file sizes, returning 0 if the walk
// fails partway through.
func dirSize(root string) int64 {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	if err != nil {
		return 0
	}
	return total
}
