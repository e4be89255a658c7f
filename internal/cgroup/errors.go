package cgroup

import "errors"

var (
	// ErrUnified is returned when the kernel's cgroup hierarchy is not
	// mounted in unified (v2) mode.
	ErrUnified = errors.New("cgroup: unified hierarchy not available")

	// ErrInvalidMemory is returned when a memory limit string does not
	// parse per the runtime's grammar.
	ErrInvalidMemory = errors.New("cgroup: invalid memory limit")

	// ErrInvalidCPU is returned when a CPU limit string does not parse
	// per the runtime's grammar.
	ErrInvalidCPU = errors.New("cgroup: invalid cpu limit")
)
