package listing

import (
	"cmp"
	"slices"
	"time"

	"github.com/simpleupdown/updown/pkg/expiry"
	"github.com/simpleupdown/updown/pkg/fileinfo"
	"github.com/simpleupdown/updown/pkg/updown"
)

// Row is one file prepared for display.
type Row struct {
	Name      string        `json:"name"`
	Icon      string        `json:"icon"`
	Kind      string        `json:"kind"`
	Size      int64         `json:"size"`
	SizeLabel string        `json:"size_label"`
	TimeLeft  string        `json:"time_left"`
	ExpiresAt string        `json:"expires_at"`
	Bucket    expiry.Bucket `json:"bucket"`
	Hash      string        `json:"hash"`

	// ThumbnailURL is set for image files when Build is given WithThumbnails.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	remaining time.Duration
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	thumbnail func(hash string) string
}

// WithThumbnails links image rows to the URL returned by fn, typically
// (*updown.Client).ThumbnailURL.
func WithThumbnails(fn func(hash string) string) BuildOption {
	return func(c *buildConfig) {
		c.thumbnail = fn
	}
}

// Remaining is the time left at Build, zero for missing or unparsable
// timestamps.
func (r Row) Remaining() time.Duration { return r.remaining }

// Build derives one row per record. A nil clock means expiry.New().
func Build(records []updown.FileRecord, clock *expiry.Clock, opts ...BuildOption) []Row {
	if clock == nil {
		clock = expiry.New()
	}
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		st := clock.Describe(rec.ExpireTime)
		kind := fileinfo.KindOf(rec.FileName)
		var thumb string
		if cfg.thumbnail != nil && rec.Hash.SHA256 != "" && fileinfo.IsImage(rec.FileName) {
			thumb = cfg.thumbnail(rec.Hash.SHA256)
		}
		rows = append(rows, Row{
			Name:         rec.FileName,
			Icon:         kind.Icon(),
			Kind:         kind.String(),
			Size:         rec.FileSize,
			SizeLabel:    fileinfo.FormatSize(rec.FileSize),
			TimeLeft:     st.TimeLeft,
			ExpiresAt:    st.ExpiresAt,
			Bucket:       st.Bucket,
			Hash:         rec.Hash.SHA256,
			ThumbnailURL: thumb,
			remaining:    st.Remaining,
		})
	}
	return rows
}

// Filter keeps rows whose bucket is one of buckets. No buckets keeps all.
func Filter(rows []Row, buckets ...expiry.Bucket) []Row {
	if len(buckets) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if slices.Contains(buckets, r.Bucket) {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders rows by remaining time, soonest first, with unlimited rows
// last. Ties are broken by name.
func Sort(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		au, bu := a.Bucket == expiry.Unlimited, b.Bucket == expiry.Unlimited
		switch {
		case au && !bu:
			return 1
		case !au && bu:
			return -1
		case !au:
			if c := cmp.Compare(a.remaining, b.remaining); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Count returns how many rows fall into bucket.
func Count(rows []Row, bucket expiry.Bucket) int {
	n := 0
	for _, r := range rows {
		if r.Bucket == bucket {
			n++
		}
	}
	return n
}
