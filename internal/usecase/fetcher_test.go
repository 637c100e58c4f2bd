package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stock100/internal/domain/models"
)

type slowSource struct {
	fakeMarketData
	delay time.Duration
}

func (s *slowSource) RSI(ctx context.Context) ([]models.RSIRecord, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
		return []models.RSIRecord{{Symbol: "AAA", RSI: 20}}, nil
	}
}

func TestFetchAllCollectsEverySource(t *testing.T) {
	source := healthySource()
	f := NewFetcher(source, noopMetrics{}, testLogger(t), time.Second)

	set := f.FetchAll(context.Background())

	require.Empty(t, set.Errors)
	assert.Len(t, set.Earnings, 1)
	assert.Len(t, set.Volume, 1)
	assert.Len(t, set.RSI, 1)
	assert.Len(t, set.MarketCaps, 1)
}

func TestFetchAllPartialFailure(t *testing.T) {
	source := healthySource()
	source.newsErr = errors.New("news down")
	f := NewFetcher(source, noopMetrics{}, testLogger(t), time.Second)

	set := f.FetchAll(context.Background())

	assert.True(t, set.Failed(models.SourceNews))
	assert.False(t, set.Failed(models.SourceVolume))
	assert.Len(t, set.Volume, 1, "healthy sources still deliver")
}

func TestFetchAllSourceTimeout(t *testing.T) {
	source := &slowSource{delay: 200 * time.Millisecond}
	source.volume = []models.VolumeRecord{{Symbol: "AAA", Volume: 1}}
	f := NewFetcher(source, noopMetrics{}, testLogger(t), 20*time.Millisecond)

	set := f.FetchAll(context.Background())

	assert.True(t, set.Failed(models.SourceRSI), "slow source must time out")
	assert.Len(t, set.Volume, 1)
}
