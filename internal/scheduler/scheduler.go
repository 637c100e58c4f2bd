package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"Stock100/internal/usecase"
	"Stock100/pkg/config"
	"Stock100/pkg/logger"
	"Stock100/pkg/util"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs the recurring jobs: warming the gainers cache during
// market hours, computing the daily picks, and weekly cache cleanup.
type Scheduler struct {
	cron   *gocron.Scheduler
	engine *usecase.Engine
	feeds  *usecase.FeedService
	log    *logger.Logger

	marketOpen  int // minutes since midnight
	marketClose int
}

func New(cfg *config.Config, engine *usecase.Engine, feeds *usecase.FeedService, log *logger.Logger) (*Scheduler, error) {
	open, err := util.ParseClock(cfg.Scheduler.MarketOpen)
	if err != nil {
		return nil, fmt.Errorf("market open: %w", err)
	}
	closeAt, err := util.ParseClock(cfg.Scheduler.MarketClose)
	if err != nil {
		return nil, fmt.Errorf("market close: %w", err)
	}

	s := &Scheduler{
		cron:        gocron.NewScheduler(time.Local),
		engine:      engine,
		feeds:       feeds,
		log:         log,
		marketOpen:  open,
		marketClose: closeAt,
	}

	if _, err := s.cron.Every(cfg.Scheduler.GainersEvery).Minutes().Do(s.refreshGainers); err != nil {
		return nil, fmt.Errorf("schedule gainers job: %w", err)
	}
	if _, err := s.cron.Every(1).Day().At(cfg.Scheduler.PicksAt).Do(s.computePicks); err != nil {
		return nil, fmt.Errorf("schedule picks job: %w", err)
	}
	if _, err := s.cron.Every(1).Week().Sunday().At(cfg.Scheduler.CleanupAt).Do(s.cleanup); err != nil {
		return nil, fmt.Errorf("schedule cleanup job: %w", err)
	}

	return s, nil
}

// Start begins running jobs asynchronously.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
	s.log.Info("scheduler started", logger.Int("jobs", len(s.cron.Jobs())))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

// marketIsOpen gates jobs that only matter while the market trades.
func (s *Scheduler) marketIsOpen(now time.Time) bool {
	return util.IsWeekday(now) && util.WithinWindow(now, s.marketOpen, s.marketClose)
}

func (s *Scheduler) refreshGainers() {
	if !s.marketIsOpen(time.Now()) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.feeds.RefreshGainers(ctx); err != nil {
		s.log.Warn("scheduled gainers refresh failed", logger.Error(err))
	}
}

func (s *Scheduler) computePicks() {
	if !util.IsWeekday(time.Now()) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	// TopPredictions is a no-op when today's snapshot already exists,
	// so a restart after the morning run does not refetch.
	result := s.engine.TopPredictions(ctx)
	s.log.Info("scheduled picks run",
		logger.String("date", result.Date),
		logger.Int("buy_long", len(result.BuyLong)))
}

func (s *Scheduler) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.feeds.CleanupStale(ctx); err != nil {
		s.log.Warn("scheduled cache cleanup failed", logger.Error(err))
	}
}
