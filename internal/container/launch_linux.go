//go:build linux

package container

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/moby/sys/reexec"
	"github.com/sirupsen/logrus"

	"github.com/Priya00300/iza-container/internal/cgroup"
)

// Config describes one container launch request.
type Config struct {
	ID      string
	Rootfs  string
	Command []string

	MemoryLimit string // empty means unset
	CPULimit    string // empty means unset

	Epoch int64 // used to name the cgroup scope; caller-supplied for testability
}

// Result reports how a container's child process exited.
type Result struct {
	ExitCode int
}

// Launch spawns Config.Command inside a freshly namespaced child rooted
// at Config.Rootfs, optionally confined by a cgroup-v2 scope, and blocks
// until the child exits. It implements the parent half of the launch
// sequence in the spec: clone with namespace flags, attach the cgroup,
// release the child, wait, translate the exit status.
func Launch(cfg Config) (Result, error) {
	if len(cfg.Command) == 0 {
		return Result{}, ErrNoCommand
	}

	syncRead, syncWrite, err := os.Pipe()
	if err != nil {
		return Result{}, fmt.Errorf("container: creating sync pipe: %w", err)
	}

	cmd := reexec.Command(append([]string{reexecName}, cfg.Command...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		envRootfs+"="+cfg.Rootfs,
	)
	cmd.ExtraFiles = []*os.File{syncRead}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Cloneflags: uintptr(namespaceFlags) | uintptr(syscall.SIGCHLD),
	}

	if err := cmd.Start(); err != nil {
		syncRead.Close()
		syncWrite.Close()
		return Result{}, fmt.Errorf("container: starting child: %w", err)
	}
	syncRead.Close()

	scope, err := attachCgroup(cfg, cmd)
	if err != nil {
		killChild(cmd)
		syncWrite.Close()
		cmd.Wait()
		return Result{}, err
	}
	releaseChild(syncWrite)

	waitErr := cmd.Wait()

	if scope != nil {
		if destroyErr := scope.Destroy(); destroyErr != nil {
			logrus.WithError(destroyErr).Warn("container: cgroup cleanup failed")
		}
	}

	return translateExit(waitErr)
}

// attachCgroup creates a cgroup scope for cfg, if any limit was
// requested, and attaches the already-started child to it.
func attachCgroup(cfg Config, cmd *exec.Cmd) (*cgroup.Scope, error) {
	if cfg.MemoryLimit == "" && cfg.CPULimit == "" {
		return nil, nil
	}

	scope, err := cgroup.Create(cmd.Process.Pid, cfg.Epoch)
	if err != nil {
		return nil, fmt.Errorf("container: creating cgroup scope: %w", err)
	}

	if cfg.MemoryLimit != "" {
		if err := scope.SetMemory(cfg.MemoryLimit); err != nil {
			scope.Destroy()
			return nil, err
		}
	}
	if cfg.CPULimit != "" {
		if err := scope.SetCPU(cfg.CPULimit); err != nil {
			scope.Destroy()
			return nil, err
		}
	}
	if err := scope.Attach(cmd.Process.Pid); err != nil {
		scope.Destroy()
		return nil, fmt.Errorf("container: attaching to cgroup: %w", err)
	}

	return scope, nil
}

// releaseChild unblocks the child's wait on the sync pipe. Any error is
// inherent to the pipe already being closed by a dead child and is
// ignored.
func releaseChild(w *os.File) {
	w.Write([]byte{0})
	w.Close()
}

func killChild(cmd *exec.Cmd) {
	if cmd.Process != nil {
		cmd.Process.Kill()
	}
}

// translateExit converts a Wait error into an exit code: the child's own
// code when it exited normally, or 128+signal when it died by signal,
// per spec.
func translateExit(waitErr error) (Result, error) {
	if waitErr == nil {
		return Result{ExitCode: 0}, nil
	}

	exitErr, ok := waitErr.(*exec.ExitError)
	if !ok {
		return Result{}, fmt.Errorf("container: waiting for child: %w", waitErr)
	}

	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}

	if status.Signaled() {
		return Result{ExitCode: 128 + int(status.Signal())}, nil
	}
	return Result{ExitCode: status.ExitStatus()}, nil
}
