//go:build linux

// Package container implements the Container Launcher component: spawning
// the user's command inside new PID, mount, UTS, IPC, and network
// namespaces rooted at an assembled rootfs, optionally confined by a
// cgroup-v2 scope. Grounded on the teacher's nsinit package, which
// re-executes the docker binary itself as the namespace's init process
// (github.com/dotcloud/docker/pkg/libcontainer/nsinit/command.go) rather
// than hand-rolling clone(2); this runtime uses the modern equivalent,
// github.com/moby/sys/reexec, which formalizes the same "re-exec
// /proc/self/exe under a sentinel argv[0]" trick.
package container

import (
	"syscall"
)

// namespaceFlags is the set of namespaces every container gets, per spec:
// PID, mount, UTS, IPC, and network isolation.
const namespaceFlags = syscall.CLONE_NEWPID |
	syscall.CLONE_NEWNS |
	syscall.CLONE_NEWUTS |
	syscall.CLONE_NEWIPC |
	syscall.CLONE_NEWNET
