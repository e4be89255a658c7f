//go:build linux

package container

import (
	"fmt"
	"os"

	"github.com/moby/sys/reexec"
	"golang.org/x/sys/unix"
)

// reexecName is the argv[0] sentinel reexec.Init dispatches on, the same
// idiom the teacher used when it re-exec'd itself as "/.nsinit" — except
// here the binary reinvokes itself under its own path via
// github.com/moby/sys/reexec rather than a hardcoded absolute path.
const reexecName = "iza-init"

// Environment variable names used to hand configuration across the
// re-exec boundary. Flags and positional args are not reused for this
// because the child's os.Args[1:] are reserved for the user's command.
const envRootfs = "IZA_ROOTFS"

// containerHostname is the fixed hostname every container's UTS namespace
// gets, per spec. It is not derived from the container ID: only the
// overlay/cgroup directory names are per-run.
const containerHostname = "iza-container"

// syncFD is the file descriptor number of the read end of the
// parent/child sync pipe, always inherited as the first extra file.
const syncFD = 3

func init() {
	reexec.Register(reexecName, initChild)
}

// initChild runs inside the new namespaces, before the target command is
// exec'd. It blocks on the sync pipe until the parent has attached this
// process to its cgroup scope (if any), then performs the mount/chroot
// sequence and execs the user's command. Any failure is written to stderr
// and the process exits non-zero; per spec, child setup errors are
// reported by the child itself, and the parent surfaces its exit status.
func initChild() {
	waitForParent()

	rootfs := os.Getenv(envRootfs)
	args := os.Args[1:]

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "iza-init: no command specified")
		os.Exit(1)
	}

	if err := unix.Prctl(unix.PR_SET_PDEATHSIG, uintptr(unix.SIGKILL), 0, 0, 0); err != nil {
		fmt.Fprintf(os.Stderr, "iza-init: set parent death signal: %v\n", err)
		os.Exit(1)
	}

	if err := unix.Sethostname([]byte(containerHostname)); err != nil {
		fmt.Fprintf(os.Stderr, "iza-init: sethostname: %v\n", err)
		os.Exit(1)
	}

	if err := setupMountNamespace(rootfs); err != nil {
		fmt.Fprintf(os.Stderr, "iza-init: %v\n", err)
		os.Exit(1)
	}

	path, err := lookPath(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "iza-init: %v\n", err)
		os.Exit(127)
	}

	if err := unix.Exec(path, args, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "iza-init: exec %s: %v\n", path, err)
		os.Exit(126)
	}
}

// waitForParent blocks until the parent closes (or writes to) the sync
// pipe, signalling that cgroup attachment has completed. Any read error,
// including EOF from an early parent exit, is treated as a release: the
// child cannot distinguish "released" from "parent died", and blocking
// forever would leak a process.
func waitForParent() {
	f := os.NewFile(uintptr(syncFD), "sync")
	defer f.Close()
	buf := make([]byte, 1)
	f.Read(buf)
}
