package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Priya00300/iza-container/internal/image"
)

func newPullCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pull IMAGE",
		Short: "Download and register an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := image.ParseRef(args[0])
			store := image.NewStore(flags.layout())
			if err := store.Pull(ref); err != nil {
				return fmt.Errorf("pull %s: %w", ref, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref.String())
			return nil
		},
	}
}
