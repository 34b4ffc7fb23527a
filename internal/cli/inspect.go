package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/simpleupdown/updown/pkg/expiry"
	"github.com/simpleupdown/updown/pkg/listing"
)

type inspection struct {
	Input string `json:"input"`
	State string `json:"state"`
	expiry.Status
}

func newInspectCommand(a *app) *cobra.Command {
	var (
		soonHours int
		asJSON    bool
		nowFlag   string
	)

	cmd := &cobra.Command{
		Use:   "inspect <timestamp>...",
		Short: "Show how expiry timestamps are classified",
		Long: `Classify raw expiry timestamps the way the listing does. Zone-less values
are read as UTC. Pass "" to see how a missing timestamp is treated.`,
		Example: `  updown inspect 2024-01-07T12:00:00
  updown inspect --now 2024-01-05T09:00:00Z "" garbage 2124-01-01T00:00:00`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.cfg.clockOptions(soonHours)
			if err != nil {
				return err
			}
			opts = append(opts, expiry.WithLabels(expiry.NewTranslatedLabels(a.tr, a.lang)))
			if nowFlag != "" {
				now, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return fmt.Errorf("%w: --now: %w", ErrInvalidArgument, err)
				}
				opts = append(opts, expiry.WithNow(func() time.Time { return now }))
			}
			clock := expiry.New(opts...)

			results := make([]inspection, 0, len(args))
			for _, raw := range args {
				st := clock.Describe(raw)
				results = append(results, inspection{Input: raw, State: st.State.String(), Status: st})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			renderer := listing.NewRenderer(a.tr, a.lang)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "INPUT\tSTATE\t%s\t%s\t%s\n",
				a.text(listing.KeyHeaderStatus, "STATUS"),
				a.text(listing.KeyHeaderLeft, "TIME LEFT"),
				a.text(listing.KeyHeaderExpires, "EXPIRES"))
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					strconv.Quote(r.Input), r.State,
					renderer.BucketLabel(r.Bucket), r.TimeLeft, dashIfEmpty(r.ExpiresAt))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&soonHours, "soon-hours", 0, "Expiring-soon window in hours (default UPDOWN_SOON_HOURS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluate at this RFC 3339 instant instead of the current time")

	return cmd
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
