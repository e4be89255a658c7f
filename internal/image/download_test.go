package image

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadUnknownImage(t *testing.T) {
	err := download(Ref{Name: "not-a-real-image", Tag: "latest"}, filepath.Join(t.TempDir(), "out.tar.gz"))
	if !errors.Is(err, ErrUnknownImage) {
		t.Fatalf("download() error = %v, want ErrUnknownImage", err)
	}
}

func TestDownloadNonOKStatusRemovesPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	restore := setAllowListForTest(t, "test-image", server.URL)
	defer restore()

	dest := filepath.Join(t.TempDir(), "out.tar.gz")
	err := download(Ref{Name: "test-image", Tag: "latest"}, dest)
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("download() error = %v, want ErrDownloadFailed", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("partial file %s should not exist after a failed download", dest)
	}
}

func TestDownloadSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	restore := setAllowListForTest(t, "test-image", server.URL)
	defer restore()

	dest := filepath.Join(t.TempDir(), "out.tar.gz")
	if err := download(Ref{Name: "test-image", Tag: "latest"}, dest); err != nil {
		t.Fatalf("download() error: %v", err)
	}
	if gotUA == "" {
		t.Error("expected a non-empty User-Agent header")
	}
}

// setAllowListForTest temporarily points the named image at url, returning
// a restore function. The package-level allow-list is not designed for
// concurrent mutation, so tests using this helper must not run in
// parallel with each other.
func setAllowListForTest(t *testing.T, name, url string) func() {
	t.Helper()
	orig, had := allowList[name]
	allowList[name] = url
	return func() {
		if had {
			allowList[name] = orig
		} else {
			delete(allowList, name)
		}
	}
}
