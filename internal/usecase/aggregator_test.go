package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stock100/internal/domain/models"
)

func TestBuildSignalsJoinsAllFeeds(t *testing.T) {
	set := &models.SourceSet{
		Earnings:   []models.EarningsRecord{{Symbol: "AAA", EPS: 2, EPSEstimated: 1}},
		Volume:     []models.VolumeRecord{{Symbol: "AAA", Volume: 4e7}},
		RSI:        []models.RSIRecord{{Symbol: "AAA", RSI: 20}},
		MarketCaps: []models.MarketCapRecord{{Symbol: "AAA", MarketCap: 5e10}},
		News:       []models.NewsRecord{{Symbol: "AAA", Title: "beats estimates"}},
		GapUps:     []models.GapRecord{{Symbol: "BBB"}},
		Errors:     map[string]error{},
	}

	signals := BuildSignals(set)
	require.Len(t, signals, 1)

	got := signals[0]
	assert.Equal(t, "AAA", got.Symbol)
	assert.True(t, got.EPSAvailable)
	assert.Equal(t, 2.0, got.EPS)
	assert.Equal(t, int64(4e7), got.Volume)
	assert.Equal(t, 20.0, got.RSI)
	assert.Equal(t, 5e10, got.MarketCap)
	assert.True(t, got.HasPositiveNews)
	assert.False(t, got.HasGapUp, "gap for another symbol must not leak")
}

func TestBuildSignalsAppliesDefaults(t *testing.T) {
	set := &models.SourceSet{
		Earnings: []models.EarningsRecord{{Symbol: "ZZZ", EPS: 1, EPSEstimated: 1}},
		Errors:   map[string]error{},
	}

	signals := BuildSignals(set)
	require.Len(t, signals, 1)

	got := signals[0]
	assert.Equal(t, defaultVolume, got.Volume)
	assert.Equal(t, defaultRSI, got.RSI)
	assert.Equal(t, defaultMarketCap, got.MarketCap)
	assert.False(t, got.HasPositiveNews)
	assert.False(t, got.HasGapUp)
}

func TestBuildSignalsUniverseFallsBackToActives(t *testing.T) {
	set := &models.SourceSet{
		Volume: []models.VolumeRecord{{Symbol: "AAA", Volume: 100}, {Symbol: "BBB", Volume: 200}},
		Errors: map[string]error{models.SourceEarnings: errors.New("upstream down")},
	}

	signals := BuildSignals(set)
	require.Len(t, signals, 2)
	assert.Equal(t, "AAA", signals[0].Symbol)
	assert.Equal(t, "BBB", signals[1].Symbol)
	assert.False(t, signals[0].EPSAvailable)
}

func TestBuildSignalsEmptyEarningsUsesActives(t *testing.T) {
	set := &models.SourceSet{
		Earnings: []models.EarningsRecord{},
		Volume:   []models.VolumeRecord{{Symbol: "CCC", Volume: 1}},
		Errors:   map[string]error{},
	}

	signals := BuildSignals(set)
	require.Len(t, signals, 1)
	assert.Equal(t, "CCC", signals[0].Symbol)
}

func TestBuildSignalsDuplicatesLastWriteWins(t *testing.T) {
	set := &models.SourceSet{
		Earnings: []models.EarningsRecord{
			{Symbol: "DUP", EPS: 1, EPSEstimated: 1},
			{Symbol: "DUP", EPS: 9, EPSEstimated: 1},
		},
		Volume: []models.VolumeRecord{
			{Symbol: "DUP", Volume: 10},
			{Symbol: "DUP", Volume: 20},
		},
		Errors: map[string]error{},
	}

	signals := BuildSignals(set)
	require.Len(t, signals, 1, "universe must be deduplicated")
	assert.Equal(t, 9.0, signals[0].EPS)
	assert.Equal(t, int64(20), signals[0].Volume)
}
