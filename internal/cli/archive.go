package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simpleupdown/updown/pkg/archive"
	"github.com/simpleupdown/updown/pkg/storage"
)

func newArchiveCommand(a *app) *cobra.Command {
	var (
		buckets     []string
		concurrency int
		soonHours   int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Copy files that are about to expire into local or S3 storage",
		Long: `Download every file in the selected buckets (expiring_soon by default) and
store it under <sha256>/<file name>. Files already present are skipped.

The destination is configured with ARCHIVE_DRIVER (local or s3), ARCHIVE_DIR
for local storage and the ARCHIVE_S3_* variables for S3-compatible storage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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
			store, err := a.archiveStorage(ctx)
			if err != nil {
				return err
			}

			report, err := archive.New(client, store, clock,
				archive.WithBuckets(selected...),
				archive.WithConcurrency(concurrency),
				archive.WithLogger(a.logger),
			).Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				for _, it := range report.Archived {
					fmt.Fprintf(out, "+ %s\t%s\n", it.Key, it.URL)
				}
				for _, f := range report.Failed {
					fmt.Fprintf(out, "! %s\t%s\n", f.Key, f.Error)
				}
				fmt.Fprintln(out, a.text("archive.summary",
					"archived %{archived}, skipped %{skipped}, failed %{failed}",
					"archived", strconv.Itoa(len(report.Archived)),
					"skipped", strconv.Itoa(len(report.Skipped)),
					"failed", strconv.Itoa(len(report.Failed)),
				))
			}

			if len(report.Failed) > 0 {
				return fmt.Errorf("%w: %d failed", ErrArchiveIncomplete, len(report.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&buckets, "bucket", "b", nil, "Buckets to archive (default expiring_soon)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Parallel transfers (default min(4, CPUs))")
	cmd.Flags().IntVar(&soonHours, "soon-hours", 0, "Expiring-soon window in hours (default UPDOWN_SOON_HOURS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func (a *app) archiveStorage(ctx context.Context) (storage.Storage, error) {
	cfg := a.cfg.Archive
	switch cfg.Driver {
	case "", "local":
		return storage.NewLocalStorage(cfg.Dir, cfg.BaseURL)
	case "s3":
		return storage.NewS3Storage(ctx, cfg.s3Config())
	default:
		return nil, fmt.Errorf("%w: unknown ARCHIVE_DRIVER %q", ErrInvalidConfig, cfg.Driver)
	}
}
