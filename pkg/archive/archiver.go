package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simpleupdown/updown/pkg/expiry"
	"github.com/simpleupdown/updown/pkg/logger"
	"github.com/simpleupdown/updown/pkg/storage"
	"github.com/simpleupdown/updown/pkg/updown"
)

// Source is the backend side of an archive run. *updown.Client implements it.
type Source interface {
	ListFiles(ctx context.Context) ([]updown.FileRecord, error)
	Download(ctx context.Context, hash string) (*updown.Download, error)
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithBuckets selects which expiry buckets are archived. An empty list keeps
// the default.
func WithBuckets(buckets ...expiry.Bucket) Option {
	return func(a *Archiver) {
		if len(buckets) > 0 {
			a.buckets = slices.Clone(buckets)
		}
	}
}

// WithConcurrency bounds parallel transfers. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(a *Archiver) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Archiver) {
		if l != nil {
			a.logger = l
		}
	}
}

// Archiver copies selected backend files into a Storage.
type Archiver struct {
	src         Source
	dst         storage.Storage
	clock       *expiry.Clock
	buckets     []expiry.Bucket
	concurrency int
	logger      *slog.Logger
}

// New returns an Archiver. A nil clock means expiry.New().
func New(src Source, dst storage.Storage, clock *expiry.Clock, opts ...Option) *Archiver {
	if clock == nil {
		clock = expiry.New()
	}
	a := &Archiver{
		src:         src,
		dst:         dst,
		clock:       clock,
		buckets:     []expiry.Bucket{expiry.ExpiringSoon},
		concurrency: min(4, runtime.NumCPU()),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logger.Component("archive"))
	return a
}

// Key returns the storage key used for a record.
func Key(rec updown.FileRecord) string {
	return rec.Hash.SHA256 + "/" + storage.SanitizeName(rec.FileName)
}

type outcome int

const (
	outcomeArchived outcome = iota
	outcomeSkipped
	outcomeFailed
)

type result struct {
	item    Item
	outcome outcome
	err     error
}

// Run archives every selected file. Per-file failures are collected in the
// report; the returned error is non-nil only when listing fails or ctx is
// cancelled.
func (a *Archiver) Run(ctx context.Context) (*Report, error) {
	records, err := a.src.ListFiles(ctx)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	var items []Item
	for _, rec := range records {
		b := a.clock.Classify(rec.ExpireTime)
		if !slices.Contains(a.buckets, b) {
			continue
		}
		items = append(items, Item{
			Hash:   rec.Hash.SHA256,
			Name:   rec.FileName,
			Key:    Key(rec),
			Bucket: b,
			Size:   rec.FileSize,
		})
	}

	a.logger.InfoContext(ctx, "archive started",
		slog.Int("listed", len(records)), slog.Int("selected", len(items)),
		slog.Int("concurrency", a.concurrency))

	// Each goroutine writes its own slot; Wait orders the writes before the
	// reads below.
	results := make([]result, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i] = a.archiveOne(gctx, item)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Selected: len(items),
		Archived: []Item{},
		Skipped:  []Item{},
		Failed:   []Failure{},
	}
	for _, r := range results {
		switch r.outcome {
		case outcomeArchived:
			report.Archived = append(report.Archived, r.item)
		case outcomeSkipped:
			report.Skipped = append(report.Skipped, r.item)
		default:
			report.Failed = append(report.Failed, Failure{Item: r.item, Err: r.err, Error: r.err.Error()})
		}
	}

	a.logger.InfoContext(ctx, "archive finished",
		slog.Int("archived", len(report.Archived)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

func (a *Archiver) archiveOne(ctx context.Context, item Item) result {
	log := a.logger.With(logger.FileHash(item.Hash), logger.FileName(item.Name))
	fail := func(err error) result {
		log.WarnContext(ctx, "file not archived", logger.Error(err))
		return result{item: item, outcome: outcomeFailed, err: err}
	}

	if item.Hash == "" {
		return fail(ErrMissingHash)
	}

	exists, err := a.dst.Exists(ctx, item.Key)
	if err != nil {
		return fail(errors.Join(ErrStoreFailed, err))
	}
	if exists {
		item.URL = a.dst.URL(item.Key)
		log.DebugContext(ctx, "already archived")
		return result{item: item, outcome: outcomeSkipped}
	}

	start := time.Now()
	dl, err := a.src.Download(ctx, item.Hash)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrDownloadFailed, err))
	}
	defer dl.Close()

	// Streamed downloads carry no Content-Length; the listing knows the size.
	size := dl.Size
	if size < 0 && item.Size > 0 {
		size = item.Size
	}
	obj, err := a.dst.Put(ctx, item.Key, dl, size, dl.ContentType)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrStoreFailed, err))
	}

	item.Size = obj.Size
	item.URL = a.dst.URL(item.Key)
	log.InfoContext(ctx, "file archived", logger.Duration(time.Since(start)), slog.Int64("size", obj.Size))
	return result{item: item, outcome: outcomeArchived}
}
