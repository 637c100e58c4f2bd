package usecase

import (
	"Stock100/internal/domain/models"
)

// Fallback values for symbols missing from a feed. The neutral RSI and
// mid-size cap keep absent metrics from dominating either direction.
const (
	defaultVolume    int64   = 0
	defaultRSI       float64 = 50
	defaultMarketCap float64 = 1e9
)

// BuildSignals joins the fetched feeds into one SignalRecord per symbol.
//
// The scoring universe is the earnings calendar when it is available and
// non-empty, otherwise the most-active list. Duplicate symbols within a
// feed resolve last-write-wins. EPS data is optional per symbol; volume,
// RSI and market cap fall back to defaults when a symbol is absent from
// those feeds.
func BuildSignals(set *models.SourceSet) []models.SignalRecord {
	earnings := make(map[string]models.EarningsRecord, len(set.Earnings))
	for _, r := range set.Earnings {
		earnings[r.Symbol] = r
	}
	volumes := make(map[string]int64, len(set.Volume))
	for _, r := range set.Volume {
		volumes[r.Symbol] = r.Volume
	}
	rsis := make(map[string]float64, len(set.RSI))
	for _, r := range set.RSI {
		rsis[r.Symbol] = r.RSI
	}
	caps := make(map[string]float64, len(set.MarketCaps))
	for _, r := range set.MarketCaps {
		caps[r.Symbol] = r.MarketCap
	}
	news := make(map[string]bool, len(set.News))
	for _, r := range set.News {
		news[r.Symbol] = true
	}
	gaps := make(map[string]bool, len(set.GapUps))
	for _, r := range set.GapUps {
		gaps[r.Symbol] = true
	}

	base := baseSymbols(set)
	signals := make([]models.SignalRecord, 0, len(base))
	for _, symbol := range base {
		sig := models.SignalRecord{
			Symbol:          symbol,
			Volume:          defaultVolume,
			RSI:             defaultRSI,
			MarketCap:       defaultMarketCap,
			HasPositiveNews: news[symbol],
			HasGapUp:        gaps[symbol],
		}
		if e, ok := earnings[symbol]; ok && !set.Failed(models.SourceEarnings) {
			sig.EPS = e.EPS
			sig.EPSEstimated = e.EPSEstimated
			sig.EPSAvailable = true
		}
		if v, ok := volumes[symbol]; ok {
			sig.Volume = v
		}
		if r, ok := rsis[symbol]; ok {
			sig.RSI = r
		}
		if c, ok := caps[symbol]; ok {
			sig.MarketCap = c
		}
		signals = append(signals, sig)
	}
	return signals
}

// baseSymbols picks the scoring universe, deduplicated in first-seen order.
func baseSymbols(set *models.SourceSet) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(symbol string) {
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		out = append(out, symbol)
	}

	if !set.Failed(models.SourceEarnings) && len(set.Earnings) > 0 {
		for _, r := range set.Earnings {
			add(r.Symbol)
		}
		return out
	}
	for _, r := range set.Volume {
		add(r.Symbol)
	}
	return out
}
