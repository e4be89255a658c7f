package paths

import (
	"path/filepath"
	"testing"
)

func TestNewDefaultsEmptyRoot(t *testing.T) {
	l := New("")
	if l.Root() != DefaultRoot {
		t.Errorf("Root() = %q, want %q", l.Root(), DefaultRoot)
	}
}

func TestLayoutPaths(t *testing.T) {
	l := New("/tmp/izatest")

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"Images", l.Images(), "/tmp/izatest/images"},
		{"Image", l.Image("alpine:3.18"), "/tmp/izatest/images/alpine:3.18"},
		{"ImageRootfs", l.ImageRootfs("alpine:3.18"), "/tmp/izatest/images/alpine:3.18/rootfs"},
		{"Cache", l.Cache(), "/tmp/izatest/cache"},
		{"CacheArchive", l.CacheArchive("alpine:3.18"), "/tmp/izatest/cache/alpine:3.18.tar.gz"},
		{"Overlay", l.Overlay(), "/tmp/izatest/overlay"},
		{"ContainerWorkspace", l.ContainerWorkspace("abc123"), "/tmp/izatest/overlay/abc123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if filepath.Clean(tc.got) != filepath.Clean(tc.want) {
				t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
			}
		})
	}
}
