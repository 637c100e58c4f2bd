package usecase

import (
	"Stock100/internal/domain/models"
	"Stock100/pkg/config"
)

// Metric normalization bounds. Values outside these ranges clamp to the
// score extremes.
const (
	epsSurpriseMin = -5.0
	epsSurpriseMax = 5.0
	volumeMin      = 1e5
	volumeMax      = 5e7
	rsiMin         = 10.0
	rsiMax         = 90.0
	marketCapMin   = 1e8
	marketCapMax   = 2e11
)

// neutralScore stands in for a metric whose source is unavailable.
const neutralScore = 50.0

// Scorer turns joined signal records into composite scores using the
// configured weights.
type Scorer struct {
	cfg config.Config
}

func NewScorer(cfg *config.Config) *Scorer {
	return &Scorer{cfg: *cfg}
}

// Score computes the four composite scores for one symbol.
//
// Sell scores are the exact complement of the matching buy score, so a
// symbol strong on the buy side is by construction weak on the sell side.
// epsNeutral forces the EPS component to its neutral midpoint; it is set
// for the whole run when the earnings source is down.
func (s *Scorer) Score(sig models.SignalRecord, epsNeutral bool) models.ScoredSymbol {
	w := s.cfg.Scoring

	epsScore := neutralScore
	if sig.EPSAvailable && !epsNeutral {
		epsScore = Normalize(sig.EPS-sig.EPSEstimated, epsSurpriseMin, epsSurpriseMax)
	}
	volumeScore := Normalize(float64(sig.Volume), volumeMin, volumeMax)
	rsiScore := 100 - Normalize(sig.RSI, rsiMin, rsiMax)
	capScore := Normalize(sig.MarketCap, marketCapMin, marketCapMax)
	newsScore := boolScore(sig.HasPositiveNews)
	gapScore := boolScore(sig.HasGapUp)

	longBuy := roundScore(w.EPSWeight*epsScore + w.CapWeight*capScore + w.NewsWeight*newsScore)
	shortBuy := roundScore(w.VolumeWeight*volumeScore + w.RSIWeight*rsiScore + w.GapWeight*gapScore)

	return models.ScoredSymbol{
		Symbol:         sig.Symbol,
		LongBuyScore:   longBuy,
		ShortBuyScore:  shortBuy,
		LongSellScore:  100 - longBuy,
		ShortSellScore: 100 - shortBuy,
		AverageScore:   float64(longBuy+shortBuy) / 2,
	}
}

// ScoreAll scores every signal in order.
func (s *Scorer) ScoreAll(signals []models.SignalRecord, epsNeutral bool) []models.ScoredSymbol {
	out := make([]models.ScoredSymbol, 0, len(signals))
	for _, sig := range signals {
		out = append(out, s.Score(sig, epsNeutral))
	}
	return out
}

func boolScore(b bool) float64 {
	if b {
		return 100
	}
	return 0
}
