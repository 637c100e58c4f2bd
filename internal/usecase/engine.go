package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/logger"
	"Stock100/pkg/util"
)

const sinkPublishTimeout = 10 * time.Second

// Engine orchestrates the daily prediction pipeline: serve the day's
// snapshot when one exists, otherwise fetch, score, rank, persist and
// publish. Source failures degrade to the latest stored snapshot and
// finally to an empty result; callers of TopPredictions never see an
// error.
type Engine struct {
	fetcher *Fetcher
	scorer  *Scorer
	ranker  *Ranker
	store   repository.SnapshotStore
	sinks   []repository.ResultSink
	metrics repository.Metrics
	log     *logger.Logger

	// computeMu keeps concurrent cache misses from racing the same
	// upstream fetch within this process.
	computeMu sync.Mutex
}

func NewEngine(
	fetcher *Fetcher,
	scorer *Scorer,
	ranker *Ranker,
	store repository.SnapshotStore,
	sinks []repository.ResultSink,
	metrics repository.Metrics,
	log *logger.Logger,
) *Engine {
	return &Engine{
		fetcher: fetcher,
		scorer:  scorer,
		ranker:  ranker,
		store:   store,
		sinks:   sinks,
		metrics: metrics,
		log:     log,
	}
}

// TopPredictions returns the ranked picks for today. The result is
// always well shaped; on total source failure the lists are empty.
func (e *Engine) TopPredictions(ctx context.Context) models.PredictionResult {
	date := util.Today()

	if snap, ok := e.lookup(ctx, date); ok {
		e.metrics.RecordRun("cached")
		return snap.PredictionResult
	}

	e.computeMu.Lock()
	defer e.computeMu.Unlock()

	// Another caller may have computed while we waited on the mutex.
	if snap, ok := e.lookup(ctx, date); ok {
		e.metrics.RecordRun("cached")
		return snap.PredictionResult
	}

	result, err := e.compute(ctx, date)
	if err != nil {
		return e.fallback(ctx, date, err)
	}
	e.metrics.RecordRun("fresh")
	return result
}

// Refresh recomputes today's picks regardless of any existing snapshot.
// Unlike TopPredictions it reports source failures to the caller.
func (e *Engine) Refresh(ctx context.Context) (models.PredictionResult, error) {
	e.computeMu.Lock()
	defer e.computeMu.Unlock()

	result, err := e.compute(ctx, util.Today())
	if err != nil {
		return models.PredictionResult{}, err
	}
	e.metrics.RecordRun("fresh")
	return result, nil
}

func (e *Engine) lookup(ctx context.Context, date string) (*models.Snapshot, bool) {
	snap, err := e.store.Get(ctx, date)
	if err != nil {
		if !errors.Is(err, repository.ErrSnapshotNotFound) {
			e.metrics.RecordSnapshotOp("get", "error")
			e.log.Warn("snapshot lookup failed", logger.Error(err))
		} else {
			e.metrics.RecordSnapshotOp("get", "miss")
		}
		return nil, false
	}
	e.metrics.RecordSnapshotOp("get", "hit")
	return snap, true
}

// compute runs the full fetch, aggregate, score and rank pipeline. It
// fails only when a structurally required source (volume, RSI, market
// cap) is down; optional sources degrade to neutral contributions.
func (e *Engine) compute(ctx context.Context, date string) (models.PredictionResult, error) {
	set := e.fetcher.FetchAll(ctx)

	for _, source := range []string{models.SourceVolume, models.SourceRSI, models.SourceMarketCap} {
		if err := set.Errors[source]; err != nil {
			return models.PredictionResult{}, fmt.Errorf("required source %s unavailable: %w", source, err)
		}
	}

	signals := BuildSignals(set)
	scored := e.scorer.ScoreAll(signals, set.Failed(models.SourceEarnings))
	e.metrics.RecordScoredSymbols(len(scored))

	result := e.ranker.Rank(date, scored)

	if err := e.store.Put(ctx, models.NewSnapshot(result)); err != nil {
		// A write failure costs us tomorrow's fallback, not today's answer.
		e.metrics.RecordSnapshotOp("put", "error")
		e.log.Error("snapshot write failed", logger.Error(err))
	} else {
		e.metrics.RecordSnapshotOp("put", "ok")
	}

	e.publish(result)

	e.log.Info("pipeline run complete",
		logger.String("date", date),
		logger.Int("scored", len(scored)),
		logger.Int("buy_long", len(result.BuyLong)),
		logger.Int("hold", len(result.Hold)))
	return result, nil
}

// fallback serves the latest stored snapshot from any date, or an empty
// well-shaped result when the store has nothing.
func (e *Engine) fallback(ctx context.Context, date string, cause error) models.PredictionResult {
	e.log.Error("pipeline compute failed", logger.Error(cause))

	snap, err := e.store.Latest(ctx)
	if err == nil {
		e.metrics.RecordRun("fallback")
		e.log.Warn("serving stale snapshot",
			logger.String("requested", date),
			logger.String("served", snap.Date))
		return snap.PredictionResult
	}
	if !errors.Is(err, repository.ErrSnapshotNotFound) {
		e.log.Error("snapshot fallback failed", logger.Error(err))
	}

	e.metrics.RecordRun("empty")
	return models.EmptyResult(date)
}

// publish hands the fresh result to every sink, best effort.
func (e *Engine) publish(result models.PredictionResult) {
	for _, sink := range e.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sinkPublishTimeout)
		if err := sink.Publish(ctx, result); err != nil {
			e.log.Warn("result sink publish failed",
				logger.String("sink", sink.Name()),
				logger.Error(err))
		}
		cancel()
	}
}
