// Package listing turns the backend file listing into display rows and
// renders them as an aligned text table or JSON.
//
// Rows are derived with an expiry.Clock, so every Build reflects the time of
// the call. Watch re-renders on an interval for a live view:
//
//	r := listing.NewRenderer(translator, "en")
//	err := listing.Watch(ctx, 30*time.Second, func(ctx context.Context) error {
//	    files, err := client.ListFiles(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    rows := listing.Build(files, clock)
//	    listing.Sort(rows)
//	    return r.Table(os.Stdout, rows)
//	})
package listing
