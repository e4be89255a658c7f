package image

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Priya00300/iza-container/internal/paths"
)

func archiveServer(t *testing.T, entries map[string]string) *httptest.Server {
	t.Helper()
	data := buildTarGz(t, entries)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
}

func TestStorePullResolveList(t *testing.T) {
	server := archiveServer(t, map[string]string{"bin/sh": "#!/bin/sh"})
	defer server.Close()

	restore := setAllowListForTest(t, "fake-os", server.URL)
	defer restore()

	layout := paths.New(t.TempDir())
	store := NewStore(layout)
	ref := Ref{Name: "fake-os", Tag: "1.0"}

	if err := store.Pull(ref); err != nil {
		t.Fatalf("Pull: %v", err)
	}

	rootfs, ok := store.Resolve(ref)
	if !ok {
		t.Fatal("Resolve() = false after successful Pull")
	}
	if _, err := os.Stat(filepath.Join(rootfs, "bin", "sh")); err != nil {
		t.Errorf("expected extracted file: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Repository != "fake-os" || records[0].Tag != "1.0" {
		t.Errorf("record = %+v, want Repository=fake-os Tag=1.0", records[0])
	}
	if records[0].Size == 0 {
		t.Error("expected a nonzero size")
	}
}

func TestStorePullReplacesExistingRecord(t *testing.T) {
	server := archiveServer(t, map[string]string{"v1.txt": "one"})
	defer server.Close()
	restore := setAllowListForTest(t, "fake-os", server.URL)
	defer restore()

	layout := paths.New(t.TempDir())
	store := NewStore(layout)
	ref := Ref{Name: "fake-os", Tag: "1.0"}

	if err := store.Pull(ref); err != nil {
		t.Fatalf("first Pull: %v", err)
	}
	if err := store.Pull(ref); err != nil {
		t.Fatalf("second Pull: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 after pulling the same ref twice", len(records))
	}
}

func TestStoreResolveAbsentAfterFailedPull(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := NewStore(layout)
	ref := Ref{Name: "does-not-exist", Tag: "latest"}

	if err := store.Pull(ref); err == nil {
		t.Fatal("Pull() of an unknown image succeeded, want error")
	}

	if _, ok := store.Resolve(ref); ok {
		t.Error("Resolve() = true after a failed Pull")
	}
}

func TestStoreListOnMissingImagesDir(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := NewStore(layout)

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
