package usecase

import (
	"context"
	"fmt"
	"time"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/cache"
	"Stock100/pkg/logger"
	"Stock100/pkg/util"
)

// Feed cache keys are the sanitized upstream endpoint path under a
// common prefix, so the weekly cleanup can pattern-delete them all.
const (
	feedKeyPrefix   = "feeds"
	gainersEndpoint = "stock_market/gainers"
)

func feedKey(endpoint string) string {
	return cache.GenerateKey(feedKeyPrefix, util.SanitizeKey(endpoint))
}

// FeedService serves cached market feeds that sit outside the scoring
// pipeline, currently the top-gainers list.
type FeedService struct {
	source repository.MarketData
	cache  cache.Service
	log    *logger.Logger
	ttl    time.Duration
}

func NewFeedService(source repository.MarketData, cacheSvc cache.Service, log *logger.Logger, ttl time.Duration) *FeedService {
	return &FeedService{
		source: source,
		cache:  cacheSvc,
		log:    log,
		ttl:    ttl,
	}
}

// Gainers returns up to limit top gainers, from cache when fresh.
func (f *FeedService) Gainers(ctx context.Context, limit int) ([]models.GainerView, error) {
	key := feedKey(gainersEndpoint)

	var cached []models.GainerView
	if err := f.cache.Get(ctx, key, &cached); err == nil {
		return clip(cached, limit), nil
	}

	recs, err := f.source.Gainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch gainers: %w", err)
	}

	views := make([]models.GainerView, 0, len(recs))
	for _, r := range recs {
		name := r.Name
		if name == "" {
			name = r.CompanyName
		}
		views = append(views, models.GainerView{
			Symbol:        r.Symbol,
			Name:          name,
			ChangePercent: fmt.Sprintf("%.2f%%", r.ChangesPercentage),
		})
	}

	if err := f.cache.Set(ctx, key, views, f.ttl); err != nil {
		f.log.Warn("gainers cache write failed", logger.Error(err))
	}
	return clip(views, limit), nil
}

// RefreshGainers repopulates the gainers cache, used by the scheduler
// so market-hours requests hit warm data.
func (f *FeedService) RefreshGainers(ctx context.Context) error {
	if err := f.cache.Delete(ctx, feedKey(gainersEndpoint)); err != nil {
		f.log.Warn("gainers cache invalidation failed", logger.Error(err))
	}
	_, err := f.Gainers(ctx, 0)
	return err
}

// CleanupStale drops every cached feed entry.
func (f *FeedService) CleanupStale(ctx context.Context) error {
	return f.cache.DeleteByPattern(ctx, cache.BuildPattern(feedKeyPrefix))
}

func clip(views []models.GainerView, limit int) []models.GainerView {
	if limit > 0 && len(views) > limit {
		return views[:limit]
	}
	return views
}
