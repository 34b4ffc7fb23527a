package listing

import (
	"context"
	"time"
)

// Watch calls render immediately and then on every tick of interval until
// ctx is done. It returns nil on cancellation and the first render error
// otherwise. A non-positive interval renders once.
func Watch(ctx context.Context, interval time.Duration, render func(context.Context) error) error {
	if err := render(ctx); err != nil {
		return err
	}
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := render(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
