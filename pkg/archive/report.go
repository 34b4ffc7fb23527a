package archive

import (
	"errors"
	"fmt"

	"github.com/simpleupdown/updown/pkg/expiry"
)

// Item identifies one archived or considered file.
type Item struct {
	Hash   string        `json:"hash"`
	Name   string        `json:"name"`
	Key    string        `json:"key"`
	URL    string        `json:"url,omitempty"`
	Bucket expiry.Bucket `json:"bucket"`
	Size   int64         `json:"size"`
}

// Failure is an Item that could not be archived.
type Failure struct {
	Item
	Err error `json:"-"`
	// Error mirrors Err for JSON output.
	Error string `json:"error"`
}

// Report summarises one Run.
type Report struct {
	// Selected counts records whose bucket was selected.
	Selected int       `json:"selected"`
	Archived []Item    `json:"archived"`
	Skipped  []Item    `json:"skipped"`
	Failed   []Failure `json:"failed"`
}

// Err joins the per-file failures, or returns nil when there were none.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("%s (%s): %w", f.Name, f.Hash, f.Err))
	}
	return errors.Join(errs...)
}
