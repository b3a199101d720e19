// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

/*
Package fetcher copies images from an object store into the local cache.

FetchAll takes a list of object references and returns one result per
reference, in input order. A reference whose file name is already cached is
answered without any network access. The rest are downloaded in batches:
items inside a batch run concurrently, batches run one after another with a
short pause in between to keep pressure on the object store low.

	f := fetcher.New(getter, cacheDir, fetcher.OptionsFromConfig(cfg.Fetch))
	results := f.FetchAll(ctx, []string{"s3://bucket/2024/01/cam1.jpg"})

Downloads stream into a temporary file in the cache directory that is renamed
into place only after the whole body has been written, so readers never see
partial images. Concurrent requests for the same file name share a single
download. When enabled, a circuit breaker stops calling the object store
after a run of failures.
*/
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/eventlens/internal/cache"
	"github.com/tomtom215/eventlens/internal/config"
	"github.com/tomtom215/eventlens/internal/logging"
	"github.com/tomtom215/eventlens/internal/metrics"
	"github.com/tomtom215/eventlens/internal/models"
)

// ErrObjectNotFound is returned by an ObjectGetter when the object does not
// exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectGetter reads objects from a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// FetchError describes why one reference could not be fetched.
type FetchError struct {
	Ref string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options tune batching and protection of the object store.
type Options struct {
	BatchSize         int
	BatchPause        time.Duration
	ItemTimeout       time.Duration // 0 disables the per-item timeout
	RequestsPerSecond float64       // 0 = unlimited
	BreakerEnabled    bool
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{
		BatchSize:      3,
		BatchPause:     200 * time.Millisecond,
		ItemTimeout:    60 * time.Second,
		BreakerEnabled: true,
	}
}

// OptionsFromConfig converts the fetch section of the configuration.
func OptionsFromConfig(cfg config.FetchConfig) Options {
	return Options{
		BatchSize:         cfg.BatchSize,
		BatchPause:        cfg.BatchPause,
		ItemTimeout:       cfg.ItemTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		BreakerEnabled:    cfg.BreakerEnabled,
	}
}

// Fetcher downloads objects into a cache directory. It is safe for
// concurrent use.
type Fetcher struct {
	getter  ObjectGetter
	cache   *cache.Dir
	opts    Options
	limiter *rate.Limiter
	breaker *breaker // nil when disabled
	flight  singleflight.Group

	pause func(ctx context.Context, d time.Duration) error
}

// New returns a Fetcher storing into dir.
func New(getter ObjectGetter, dir *cache.Dir, opts Options) *Fetcher {
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	f := &Fetcher{
		getter:  getter,
		cache:   dir,
		opts:    opts,
		limiter: rate.NewLimiter(limit, max(opts.BatchSize, 1)),
		pause:   sleepContext,
	}
	if opts.BreakerEnabled {
		f.breaker = newBreaker(breakerName)
	}
	return f
}

// BreakerState returns the circuit breaker state, or "disabled".
func (f *Fetcher) BreakerState() string {
	if f.breaker == nil {
		return "disabled"
	}
	return f.breaker.State()
}

// FetchAll fetches every reference and returns one result per reference in
// input order. It never fails as a whole; per-item errors are reported in the
// results. When ctx is canceled the remaining references are reported as
// failed.
func (f *Fetcher) FetchAll(ctx context.Context, refs []string) []models.FetchResult {
	results := make([]models.FetchResult, len(refs))
	log := logging.Ctx(ctx)
	log.Info().Int("count", len(refs)).Int("batch_size", f.opts.BatchSize).Msg("Fetching images")

	for start := 0; start < len(refs); start += f.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			for i := start; i < len(refs); i++ {
				results[i] = failure(refs[i], err)
			}
			break
		}

		end := min(start+f.opts.BatchSize, len(refs))
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = f.Fetch(ctx, refs[i])
				return nil
			})
		}
		_ = g.Wait()

		if end < len(refs) && f.opts.BatchPause > 0 {
			if err := f.pause(ctx, f.opts.BatchPause); err != nil {
				for i := end; i < len(refs); i++ {
					results[i] = failure(refs[i], err)
				}
				break
			}
		}
	}

	ok := 0
	for i := range results {
		if results[i].Success {
			ok++
		}
	}
	log.Info().Int("succeeded", ok).Int("failed", len(results)-ok).Msg("Image fetch complete")
	return results
}

// Fetch fetches a single reference.
func (f *Fetcher) Fetch(ctx context.Context, raw string) models.FetchResult {
	start := time.Now()
	log := logging.Ctx(ctx)

	ref, err := ParseReference(raw)
	if err != nil {
		metrics.RecordImageFetch(metrics.OutcomeFailed, time.Since(start), 0)
		log.Warn().Err(err).Str("ref", raw).Msg("Rejected object reference")
		return failure(raw, err)
	}

	if f.cache.Exists(ref.Filename) {
		metrics.RecordImageFetch(metrics.OutcomeCached, time.Since(start), 0)
		log.Debug().Str("file", ref.Filename).Msg("Image already cached")
		return f.success(ref, true)
	}

	// The download is shared by every caller waiting on this filename, so it
	// runs detached from any one caller and is bounded by ItemTimeout alone.
	ch := f.flight.DoChan(ref.Filename, func() (interface{}, error) {
		if f.cache.Exists(ref.Filename) {
			return int64(-1), nil
		}
		return f.download(context.WithoutCancel(ctx), ref)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.RecordImageFetch(metrics.OutcomeFailed, time.Since(start), 0)
		log.Debug().Str("ref", raw).Msg("Caller left before image download finished")
		return failure(raw, ctx.Err())
	}

	v, err := res.Val, res.Err
	if err != nil {
		metrics.RecordImageFetch(metrics.OutcomeFailed, time.Since(start), 0)
		log.Warn().Err(err).Str("ref", raw).Msg("Image download failed")
		return failure(raw, err)
	}

	n, _ := v.(int64)
	if n < 0 {
		metrics.RecordImageFetch(metrics.OutcomeCached, time.Since(start), 0)
		return f.success(ref, true)
	}
	metrics.RecordImageFetch(metrics.OutcomeDownloaded, time.Since(start), n)
	log.Info().Str("file", ref.Filename).Int64("bytes", n).Dur("duration", time.Since(start)).Msg("Image downloaded")
	return f.success(ref, false)
}

func (f *Fetcher) download(ctx context.Context, ref Reference) (int64, error) {
	metrics.TrackFetchInFlight(true)
	defer metrics.TrackFetchInFlight(false)

	if f.opts.ItemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.ItemTimeout)
		defer cancel()
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return 0, &FetchError{Ref: ref.Raw, Err: err}
	}

	get := func() (int64, error) {
		body, err := f.getter.GetObject(ctx, ref.Bucket, ref.Key)
		if err != nil {
			return 0, err
		}
		defer body.Close()
		return f.cache.Store(ref.Filename, body)
	}

	var (
		n   int64
		err error
	)
	if f.breaker != nil {
		n, err = f.breaker.execute(get)
	} else {
		n, err = get()
	}
	if err != nil {
		return 0, &FetchError{Ref: ref.Raw, Err: err}
	}
	return n, nil
}

func (f *Fetcher) success(ref Reference, cached bool) models.FetchResult {
	local, _ := f.cache.Path(ref.Filename)
	return models.FetchResult{
		Success:   true,
		S3Path:    ref.Raw,
		Filename:  ref.Filename,
		LocalPath: local,
		Cached:    cached,
	}
}

// failure reports err without the FetchError prefix; the result already
// carries the reference.
func failure(ref string, err error) models.FetchResult {
	var fe *FetchError
	if errors.As(err, &fe) {
		err = fe.Err
	}
	return models.FetchResult{S3Path: ref, Error: err.Error()}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
