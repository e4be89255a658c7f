package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/Priya00300/iza-container/internal/image"
)

func newImagesCommand(flags *globalFlags) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List locally registered images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := image.NewStore(flags.layout())
			records, err := store.List()
			if err != nil {
				return fmt.Errorf("images: %w", err)
			}

			if quiet {
				for _, r := range records {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", r.Repository, r.Tag)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 3, ' ', 0)
			fmt.Fprintln(w, "REPOSITORY\tTAG\tSIZE")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Repository, r.Tag, units.HumanSize(float64(r.Size)))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print image references")
	return cmd
}
