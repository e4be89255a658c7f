//go:build linux

package container

import (
	"os/exec"
	"testing"
)

func TestTranslateExitNil(t *testing.T) {
	result, err := translateExit(nil)
	if err != nil {
		t.Fatalf("translateExit(nil) error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestTranslateExitNormal(t *testing.T) {
	cmd := exec.Command("/bin/false")
	waitErr := cmd.Run()
	if waitErr == nil {
		t.Skip("expected /bin/false to exit nonzero; environment lacks it")
	}

	result, err := translateExit(waitErr)
	if err != nil {
		t.Fatalf("translateExit: %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
}

func TestTranslateExitNonExitError(t *testing.T) {
	_, err := exec.LookPath("definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Skip("unexpectedly found the binary")
	}

	cmd := exec.Command("definitely-not-a-real-binary-xyz")
	waitErr := cmd.Run()

	_, translateErr := translateExit(waitErr)
	if translateErr == nil {
		t.Fatalf("translateExit(%v) = nil error, want non-nil for a start failure", waitErr)
	}
}
