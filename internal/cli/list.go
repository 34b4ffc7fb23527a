package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simpleupdown/updown/pkg/listing"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

func newListCommand(a *app) *cobra.Command {
	var (
		soonHours int
		asJSON    bool
		buckets   []string
		watch     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files with their remaining lifetime",
		Long: `List every file on the backend, soonest to expire first. Files without
an expiry are listed last.`,
		Example: `  updown list
  updown list --bucket expiring_soon --soon-hours 6
  updown list --watch 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected, err := parseBuckets(buckets)
			if err != nil {
				return err
			}
			clock, err := a.clock(soonHours)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer := listing.NewRenderer(a.tr, a.lang)
			live := watch > 0 && isTerminal(out)

			return listing.Watch(cmd.Context(), watch, func(ctx context.Context) error {
				files, err := client.ListFiles(ctx)
				if err != nil {
					return err
				}
				rows := listing.Filter(listing.Build(files, clock, listing.WithThumbnails(client.ThumbnailURL)), selected...)
				listing.Sort(rows)

				if asJSON {
					return renderer.JSON(out, rows)
				}
				if live {
					fmt.Fprint(out, clearScreen)
				}
				return renderer.Table(out, rows)
			})
		},
	}

	cmd.Flags().IntVar(&soonHours, "soon-hours", 0, "Expiring-soon window in hours (default UPDOWN_SOON_HOURS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rows as JSON")
	cmd.Flags().StringSliceVarP(&buckets, "bucket", "b", nil, "Only show these buckets: expiring_soon, expiring_later, unlimited, expired")
	cmd.Flags().DurationVarP(&watch, "watch", "w", 0, "Refresh the listing at this interval until interrupted")

	return cmd
}
