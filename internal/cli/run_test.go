package cli

import (
	"os"
	"reflect"
	"testing"

	"github.com/Priya00300/iza-container/internal/image"
	"github.com/Priya00300/iza-container/internal/paths"
)

func TestDisambiguateColonImplesImage(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := image.NewStore(layout)

	ref, cmd := disambiguate(store, []string{"alpine:3.18", "/bin/sh", "-c", "echo hi"})
	if ref.String() != "alpine:3.18" {
		t.Errorf("ref = %q, want %q", ref, "alpine:3.18")
	}
	want := []string{"/bin/sh", "-c", "echo hi"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestDisambiguateImageOnlyUsesDefaultCommand(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := image.NewStore(layout)

	_, cmd := disambiguate(store, []string{"alpine:3.18"})
	if !reflect.DeepEqual(cmd, defaultCommand) {
		t.Errorf("cmd = %v, want %v", cmd, defaultCommand)
	}
}

func TestDisambiguateNoColonNoLocalImageIsCommand(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := image.NewStore(layout)

	ref, cmd := disambiguate(store, []string{"echo", "hi"})
	if ref != (image.Ref{}) {
		t.Errorf("ref = %+v, want zero value", ref)
	}
	want := []string{"echo", "hi"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestDisambiguateNoColonButLocallyResolvableIsImage(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := image.NewStore(layout)

	ref := image.Ref{Name: "alpine", Tag: image.DefaultTag}
	if err := os.MkdirAll(layout.ImageRootfs(ref.String()), paths.DefaultDirMode); err != nil {
		t.Fatalf("seed resolvable image: %v", err)
	}

	gotRef, cmd := disambiguate(store, []string{"alpine", "/bin/sh"})
	if gotRef != ref {
		t.Errorf("ref = %+v, want %+v", gotRef, ref)
	}
	if !reflect.DeepEqual(cmd, []string{"/bin/sh"}) {
		t.Errorf("cmd = %v, want [/bin/sh]", cmd)
	}
}

func TestDisambiguateEmptyArgs(t *testing.T) {
	layout := paths.New(t.TempDir())
	store := image.NewStore(layout)

	ref, cmd := disambiguate(store, nil)
	if ref != (image.Ref{}) || cmd != nil {
		t.Errorf("disambiguate(nil) = (%+v, %v), want zero values", ref, cmd)
	}
}
