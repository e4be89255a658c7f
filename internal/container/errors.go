package container

import "errors"

var (
	// ErrNoCommand is returned when a container is launched with an empty
	// command.
	ErrNoCommand = errors.New("container: no command specified")
)
