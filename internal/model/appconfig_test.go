package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	assert.Equal(t, DefaultSettings(), cfg.Settings)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Wood_Cost_Report", cfg.ReportName)
	assert.Equal(t, []string{"csv"}, cfg.OutputFormats)
	assert.Equal(t, 0.1, cfg.STLUnitScale)
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Settings.PricePerM3 = 2500
	cfg.Settings.Currency = "EUR"
	cfg.Settings.SawKerf = 3
	cfg.Settings.UseSnapping = false
	cfg.Settings.StockSizes = []int{3000, 4000}
	cfg.Settings.Algorithm = AlgorithmBestFit

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	assert.Equal(t, 2500.0, s.PricePerM3)
	assert.Equal(t, "EUR", s.Currency)
	assert.Equal(t, 3, s.SawKerf)
	assert.False(t, s.UseSnapping)
	assert.Equal(t, []int{3000, 4000}, s.StockSizes)
	assert.Equal(t, AlgorithmBestFit, s.Algorithm)

	cfg.Settings.StockSizes[0] = 1
	assert.Equal(t, 3000, s.StockSizes[0])
}

func TestApplyToSettings_KeepsUnsetFields(t *testing.T) {
	cfg := AppConfig{Settings: Settings{UseSnapping: true, SawKerf: -1, MinOffcutLength: -1}}

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)
	assert.Equal(t, DefaultSettings(), s)
}
