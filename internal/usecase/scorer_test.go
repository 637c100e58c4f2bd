package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Stock100/internal/domain/models"
)

func TestScoreKnownSignal(t *testing.T) {
	s := NewScorer(testConfig())

	// eps surprise +1.0 -> 60; cap 5e10 -> ~24.96; news -> 100
	// vol 4e7 -> ~79.96; rsi 20 -> 87.5; no gap -> 0
	got := s.Score(models.SignalRecord{
		Symbol:          "AAA",
		EPS:             2.0,
		EPSEstimated:    1.0,
		EPSAvailable:    true,
		Volume:          4e7,
		RSI:             20,
		MarketCap:       5e10,
		HasPositiveNews: true,
	}, false)

	assert.Equal(t, 54, got.LongBuyScore)
	assert.Equal(t, 50, got.ShortBuyScore)
	assert.Equal(t, 46, got.LongSellScore)
	assert.Equal(t, 50, got.ShortSellScore)
	assert.InDelta(t, 52.0, got.AverageScore, 1e-9)
}

func TestScoreSellIsExactComplement(t *testing.T) {
	s := NewScorer(testConfig())

	signals := []models.SignalRecord{
		{Symbol: "A", EPS: 5, EPSEstimated: -3, EPSAvailable: true, Volume: 1e8, RSI: 5, MarketCap: 3e11, HasPositiveNews: true, HasGapUp: true},
		{Symbol: "B", EPSAvailable: false, Volume: 0, RSI: 99, MarketCap: 1e7},
		{Symbol: "C", EPS: 1, EPSEstimated: 1, EPSAvailable: true, Volume: 2e6, RSI: 50, MarketCap: 1e9},
	}
	for _, scored := range s.ScoreAll(signals, false) {
		assert.Equal(t, 100, scored.LongBuyScore+scored.LongSellScore, "symbol %s", scored.Symbol)
		assert.Equal(t, 100, scored.ShortBuyScore+scored.ShortSellScore, "symbol %s", scored.Symbol)
	}
}

func TestScoreBoundsStayInRange(t *testing.T) {
	s := NewScorer(testConfig())

	extreme := []models.SignalRecord{
		{Symbol: "MAX", EPS: 100, EPSEstimated: 0, EPSAvailable: true, Volume: 1e12, RSI: 0, MarketCap: 1e13, HasPositiveNews: true, HasGapUp: true},
		{Symbol: "MIN", EPS: -100, EPSEstimated: 0, EPSAvailable: true, Volume: 0, RSI: 100, MarketCap: 0},
	}
	for _, scored := range s.ScoreAll(extreme, false) {
		for _, v := range []int{scored.LongBuyScore, scored.ShortBuyScore, scored.LongSellScore, scored.ShortSellScore} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestScoreNeutralEPSWhenUnavailable(t *testing.T) {
	s := NewScorer(testConfig())

	sig := models.SignalRecord{Symbol: "NOEPS", Volume: 4e7, RSI: 20, MarketCap: 5e10}

	perSymbol := s.Score(sig, false)
	wholeRun := s.Score(models.SignalRecord{
		Symbol: "NOEPS", EPS: 2, EPSEstimated: 1, EPSAvailable: true,
		Volume: 4e7, RSI: 20, MarketCap: 5e10,
	}, true)

	// 0.4*50 + 0.4*24.96 + 0 -> 30
	assert.Equal(t, 30, perSymbol.LongBuyScore)
	assert.Equal(t, perSymbol.LongBuyScore, wholeRun.LongBuyScore,
		"run-wide neutral must equal per-symbol neutral")
	// momentum side unaffected by EPS availability
	assert.Equal(t, 50, perSymbol.ShortBuyScore)
}
