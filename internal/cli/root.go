// Package cli wires the iza subcommands onto a cobra root command, in the
// shape of the teacher's cmd/docker/docker.go: a root command carrying
// global flags, with pull/images/run attached as children.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Priya00300/iza-container/internal/buildinfo"
	"github.com/Priya00300/iza-container/internal/paths"
)

// globalFlags holds the root-level flags shared by every subcommand.
type globalFlags struct {
	root  string
	debug bool
}

// NewRootCommand builds the "iza" root command with pull, images, and run
// attached.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "iza",
		Short:         "A minimal Linux container runtime",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.root, "root", paths.DefaultRoot, "root directory of iza's persistent state")
	root.PersistentFlags().BoolVarP(&flags.debug, "debug", "D", false, "enable debug logging")

	root.AddCommand(
		newPullCommand(flags),
		newImagesCommand(flags),
		newRunCommand(flags),
	)

	return root
}

func (f *globalFlags) layout() paths.Layout {
	return paths.New(f.root)
}
