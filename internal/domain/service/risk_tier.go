package service

import "github.com/turtacn/gdmrisk/internal/domain/models"

// TierBand describes the score range of a tier. Max is exclusive except for
// the top tier.
type TierBand struct {
	Tier  models.RiskTier  `json:"tier" yaml:"tier"`
	Color models.TierColor `json:"color" yaml:"color"`
	Min   float64          `json:"min_score" yaml:"min_score"`
	Max   float64          `json:"max_score" yaml:"max_score"`
}

// tierBands is ordered from lowest to highest score.
var tierBands = []TierBand{
	{Tier: models.TierMinimal, Color: models.ColorGreen, Min: 0, Max: 20},
	{Tier: models.TierLow, Color: models.ColorGold, Min: 20, Max: 50},
	{Tier: models.TierModerate, Color: models.ColorOrange, Min: 50, Max: 75},
	{Tier: models.TierHigh, Color: models.ColorRed, Min: 75, Max: 100},
}

// TierForScore maps a percentage score to its tier. Thresholds are checked
// from high to low and everything below 20, NaN included, is Minimal Risk.
func TierForScore(score float64) (models.RiskTier, models.TierColor) {
	switch {
	case score >= 75:
		return models.TierHigh, models.ColorRed
	case score >= 50:
		return models.TierModerate, models.ColorOrange
	case score >= 20:
		return models.TierLow, models.ColorGold
	default:
		return models.TierMinimal, models.ColorGreen
	}
}

// ClassifyProbability maps a class-1 probability to its tier.
func ClassifyProbability(p float64) (models.RiskTier, models.TierColor) {
	return TierForScore(p * 100)
}

// AllTiers lists the four tiers in ascending order of risk.
func AllTiers() []models.RiskTier {
	out := make([]models.RiskTier, len(tierBands))
	for i, b := range tierBands {
		out[i] = b.Tier
	}
	return out
}

// TierBands returns the score bands in ascending order.
func TierBands() []TierBand {
	return append([]TierBand(nil), tierBands...)
}
