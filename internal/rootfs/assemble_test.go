package rootfs

import (
	"strings"
	"testing"
)

// fakeFilesystems* reproduce the shape of /proc/filesystems as the kernel
// presents it: a "nodev" column for pseudo-filesystems, tab-separated from
// the name.
const fakeFilesystemsWithOverlay = "nodev\tsysfs\n" +
	"nodev\ttmpfs\n" +
	"\text4\n" +
	"nodev\toverlay\n"

const fakeFilesystemsWithoutOverlay = "nodev\tsysfs\n" +
	"nodev\ttmpfs\n" +
	"\text4\n"

func TestHasOverlayToken(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{"present", fakeFilesystemsWithOverlay, true},
		{"absent", fakeFilesystemsWithoutOverlay, false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := hasOverlayToken(strings.NewReader(tc.data))
			if got != tc.want {
				t.Errorf("hasOverlayToken(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}
