package usecase

import (
	"context"
	"sync"
	"time"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/logger"
)

// Fetcher runs the six scoring feeds concurrently, each under its own
// timeout, and collects whatever succeeded.
type Fetcher struct {
	source        repository.MarketData
	metrics       repository.Metrics
	log           *logger.Logger
	sourceTimeout time.Duration
}

func NewFetcher(source repository.MarketData, metrics repository.Metrics, log *logger.Logger, sourceTimeout time.Duration) *Fetcher {
	return &Fetcher{
		source:        source,
		metrics:       metrics,
		log:           log,
		sourceTimeout: sourceTimeout,
	}
}

// FetchAll fans out to every feed and waits for all of them. A slow or
// failing feed never blocks the others; its error lands in Errors and
// the caller decides whether the run can proceed.
func (f *Fetcher) FetchAll(ctx context.Context) *models.SourceSet {
	set := &models.SourceSet{Errors: make(map[string]error)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	run := func(source string, fetch func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, f.sourceTimeout)
			defer cancel()

			start := time.Now()
			err := fetch(fctx)
			f.metrics.RecordFetchDuration(source, time.Since(start).Seconds())

			if err != nil {
				f.metrics.RecordSourceError(source)
				f.log.Warn("source fetch failed",
					logger.String("source", source),
					logger.Error(err))
				mu.Lock()
				set.Errors[source] = err
				mu.Unlock()
			}
		}()
	}

	run(models.SourceEarnings, func(ctx context.Context) error {
		recs, err := f.source.EarningsCalendar(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		set.Earnings = recs
		mu.Unlock()
		return nil
	})
	run(models.SourceVolume, func(ctx context.Context) error {
		recs, err := f.source.MostActive(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		set.Volume = recs
		mu.Unlock()
		return nil
	})
	run(models.SourceRSI, func(ctx context.Context) error {
		recs, err := f.source.RSI(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		set.RSI = recs
		mu.Unlock()
		return nil
	})
	run(models.SourceMarketCap, func(ctx context.Context) error {
		recs, err := f.source.MarketCaps(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		set.MarketCaps = recs
		mu.Unlock()
		return nil
	})
	run(models.SourceNews, func(ctx context.Context) error {
		recs, err := f.source.PositiveNews(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		set.News = recs
		mu.Unlock()
		return nil
	})
	run(models.SourceGapUp, func(ctx context.Context) error {
		recs, err := f.source.GapUps(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		set.GapUps = recs
		mu.Unlock()
		return nil
	})

	wg.Wait()
	return set
}
