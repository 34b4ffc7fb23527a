// Package archive copies files that are about to expire from the backend
// into a storage.Storage before the backend deletes them.
//
// An Archiver lists the backend, classifies every record with an
// expiry.Clock and downloads those in the selected buckets (ExpiringSoon by
// default). Objects are stored under "<sha256>/<sanitized file name>", so
// re-running an archive only transfers files not archived yet.
//
//	a := archive.New(client, store, clock,
//	    archive.WithBuckets(expiry.ExpiringSoon, expiry.ExpiringLater),
//	    archive.WithConcurrency(4),
//	)
//	report, err := a.Run(ctx)
//	if err != nil {
//	    return err // listing failed or ctx was cancelled
//	}
//	if err := report.Err(); err != nil {
//	    // some files failed; report.Archived and report.Skipped are still valid
//	}
package archive
