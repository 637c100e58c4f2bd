package usecase

import (
	"testing"

	"Stock100/pkg/config"
	"Stock100/pkg/logger"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scoring.EPSWeight = 0.4
	cfg.Scoring.CapWeight = 0.4
	cfg.Scoring.NewsWeight = 0.2
	cfg.Scoring.VolumeWeight = 0.3
	cfg.Scoring.RSIWeight = 0.3
	cfg.Scoring.GapWeight = 0.4
	cfg.Scoring.TopN = 10
	cfg.Scoring.HoldLow = 40
	cfg.Scoring.HoldHigh = 60
	cfg.Scoring.HoldCap = 20
	return cfg
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("create test logger: %v", err)
	}
	return log
}
