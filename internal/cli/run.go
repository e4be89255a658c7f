package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Priya00300/iza-container/internal/cgroup"
	"github.com/Priya00300/iza-container/internal/container"
	"github.com/Priya00300/iza-container/internal/image"
	"github.com/Priya00300/iza-container/internal/rootfs"
)

// defaultCommand is exec'd when the caller supplies only an image
// reference, per spec.
var defaultCommand = []string{"/bin/bash"}

// ExitError carries a child's exit code so main can translate it to a
// process exit status without cobra printing a stack-shaped error for a
// plain nonzero exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

func newRunCommand(flags *globalFlags) *cobra.Command {
	var memoryLimit, cpuLimit string

	cmd := &cobra.Command{
		Use:                "run [--memory LIMIT] [--cpus LIMIT] [IMAGE] [COMMAND ARGS...]",
		Short:              "Run a command inside a new container",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContainer(cmd, flags, memoryLimit, cpuLimit, args)
		},
	}

	cmd.Flags().StringVar(&memoryLimit, "memory", "", "memory limit, e.g. 100m, 1g")
	cmd.Flags().StringVar(&cpuLimit, "cpus", "", "cpu limit in cores, e.g. 0.5")
	// Flags are only recognised before the first positional argument, so
	// the command's own arguments (e.g. "sh -c ...") pass through untouched.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runContainer(cmd *cobra.Command, flags *globalFlags, memoryLimit, cpuLimit string, args []string) error {
	// Validate limits before any side effect (rootfs assembly, cloning the
	// child): an unparseable --memory/--cpus is a Configuration error and
	// must be caught up front, not discovered mid-launch.
	if memoryLimit != "" {
		if _, err := cgroup.ParseMemoryLimit(memoryLimit); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	if cpuLimit != "" {
		if _, _, err := cgroup.ParseCPULimit(cpuLimit); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	layout := flags.layout()
	store := image.NewStore(layout)

	ref, command := disambiguate(store, args)

	imageRootfs, ok := store.Resolve(ref)
	if !ok {
		return fmt.Errorf("run: image %s is not pulled locally", ref)
	}

	containerID := newContainerID()

	ws, err := rootfs.Assemble(layout, imageRootfs, containerID)
	if err != nil {
		return fmt.Errorf("run: assembling rootfs: %w", err)
	}
	defer func() {
		if err := ws.Teardown(); err != nil {
			logrus.WithError(err).Warn("run: rootfs teardown failed")
		}
	}()

	cfg := container.Config{
		ID:          containerID,
		Rootfs:      ws.Rootfs,
		Command:     command,
		MemoryLimit: memoryLimit,
		CPULimit:    cpuLimit,
		Epoch:       epochNow(),
	}

	result, err := container.Launch(cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}

// disambiguate applies the spec's positional-argument rule: the first
// token is an image reference if it contains a colon or names a
// locally-resolvable image; otherwise every token is the command and the
// image must have been established some other way (not supported by this
// CLI shape, so an all-command invocation without a resolvable image is
// an error surfaced later by Resolve). If only an image is given, the
// default command is used.
func disambiguate(store *image.Store, args []string) (image.Ref, []string) {
	if len(args) == 0 {
		return image.Ref{}, nil
	}

	first := args[0]
	looksLikeImage := strings.Contains(first, ":")
	if !looksLikeImage {
		if _, ok := store.Resolve(image.ParseRef(first)); ok {
			looksLikeImage = true
		}
	}

	if !looksLikeImage {
		// The first token is the command itself; there is no image
		// argument, which Resolve will reject downstream.
		return image.Ref{}, args
	}

	ref := image.ParseRef(first)
	rest := args[1:]
	if len(rest) == 0 {
		return ref, defaultCommand
	}
	return ref, rest
}
