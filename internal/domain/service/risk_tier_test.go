package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
)

func TestTierForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		tier  models.RiskTier
		color models.TierColor
	}{
		{0, models.TierMinimal, models.ColorGreen},
		{19.999, models.TierMinimal, models.ColorGreen},
		{20.0, models.TierLow, models.ColorGold},
		{49.999, models.TierLow, models.ColorGold},
		{50.0, models.TierModerate, models.ColorOrange},
		{74.999, models.TierModerate, models.ColorOrange},
		{75.0, models.TierHigh, models.ColorRed},
		{100.0, models.TierHigh, models.ColorRed},
		{-5, models.TierMinimal, models.ColorGreen},
		{math.NaN(), models.TierMinimal, models.ColorGreen},
		{math.Inf(1), models.TierHigh, models.ColorRed},
	}
	for _, tt := range tests {
		tier, color := service.TierForScore(tt.score)
		assert.Equal(t, tt.tier, tier, "score %v", tt.score)
		assert.Equal(t, tt.color, color, "score %v", tt.score)
	}
}

func TestClassifyProbability_ExactlyPoint75IsHigh(t *testing.T) {
	tier, color := service.ClassifyProbability(0.75)
	assert.Equal(t, models.TierHigh, tier)
	assert.Equal(t, models.ColorRed, color)
}

func TestTierBands_PartitionScoreRange(t *testing.T) {
	bands := service.TierBands()
	assert.Len(t, bands, 4)
	assert.Equal(t, 0.0, bands[0].Min)
	assert.Equal(t, 100.0, bands[len(bands)-1].Max)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].Max, bands[i].Min, "gap between %s and %s", bands[i-1].Tier, bands[i].Tier)
	}
	for _, b := range bands {
		tier, color := service.TierForScore(b.Min)
		assert.Equal(t, b.Tier, tier)
		assert.Equal(t, b.Color, color)
	}
	assert.Equal(t, []models.RiskTier{models.TierMinimal, models.TierLow, models.TierModerate, models.TierHigh}, service.AllTiers())
}
