package service

import (
	"strings"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/pkg/errors"
)

func sections(pairs ...models.MealSection) []models.MealSection { return pairs }

func section(label string, items ...string) models.MealSection {
	return models.MealSection{Label: label, Items: items}
}

func sectioned(v models.DietVariant, s []models.MealSection) models.DietPlan {
	return models.DietPlan{Variant: v, Label: v.Label(), Sections: s}
}

func advice(v models.DietVariant, items ...string) models.DietPlan {
	return models.DietPlan{Variant: v, Label: v.Label(), GeneralAdvice: items}
}

// guidanceTable is read-only after package init. Lookups hand out clones.
var guidanceTable = map[models.RiskTier]models.GuidancePlan{
	models.TierHigh: {
		Tier:        models.TierHigh,
		Description: "This suggests a high probability of GDM. It is essential to consult your doctor promptly. The following diet focuses on strict blood sugar control, which is crucial for a healthy pregnancy under these conditions.",
		Variants: []models.DietPlan{
			sectioned(models.VariantVeg, sections(
				section("Breakfast", "Vegetable Oats or Dalia (Porridge)", "Ragi Idli/Dosa with minimal chutney", "Moong Dal Chilla with vegetables"),
				section("Lunch", "Large Salad with grilled Paneer/Tofu", "Karela (Bitter Gourd) Sabzi with 1-2 Millet (Bajra/Jowar) Rotis", "Lentil soup (Dal) without rice"),
				section("Dinner", "Cauliflower Rice with Vegetable Curry", "Steamed vegetables with a small portion of quinoa", "Clear vegetable and lentil soup"),
				section("Foods to Avoid", "White Rice, Sugar, Maida (refined flour)", "Fried Foods, Processed Snacks", "Sweet Fruits (e.g., Mango, Grapes, Banana)", "Root Vegetables (e.g., Potato, Sweet Potato)"),
			)),
			sectioned(models.VariantNonVeg, sections(
				section("Breakfast", "Egg white omelette with spinach and mushrooms", "Boiled Eggs (2)"),
				section("Lunch", "Grilled Fish with sautéed vegetables", "Skinless Chicken curry (thin, soupy gravy) with a large salad", "Clear chicken and vegetable broth"),
				section("Dinner", "Baked Chicken breast with greens", "Fish Tikka (baked, not fried)", "Scrambled eggs with vegetables"),
				section("Foods to Avoid", "Red Meat (Mutton)", "Fried Fish/Chicken", "Sugary Drinks & Fruit Juices", "Full-fat dairy"),
			)),
		},
	},
	models.TierModerate: {
		Tier:        models.TierModerate,
		Description: "The model indicates a significant risk of GDM. Discussing these results with your healthcare provider is highly recommended. This diet plan focuses on proactive management of blood sugar.",
		Variants: []models.DietPlan{
			sectioned(models.VariantVeg, sections(
				section("Breakfast", "Oats Upma with vegetables", "Moong Dal Chilla", "Greek Yogurt with a few berries"),
				section("Lunch", "Quinoa with Mixed Vegetable Curry", "Brown Rice (small portion) with Dal Tadka and a large Salad", "Millet Roti with Paneer Bhurji"),
				section("Dinner", "Grilled Tofu with Sautéed Vegetables", "Lentil Soup (Dal) with a side of steamed greens", "Besan Kadhi with Brown Rice (small portion)"),
				section("Foods to Limit", "Potatoes and other root vegetables", "White Bread/Rice (switch to whole grains)", "Sweets and desserts", "Sweetened beverages"),
			)),
			sectioned(models.VariantNonVeg, sections(
				section("Breakfast", "Scrambled Eggs (whole eggs) with Spinach", "Oats with small pieces of chicken"),
				section("Lunch", "Grilled Fish with Brown Rice and Sabzi", "Chicken Curry (less oil) with Millet Roti", "Egg Bhurji with whole wheat toast"),
				section("Dinner", "Chicken Tikka (baked) with Mint Chutney and Salad", "Fish Curry with limited brown rice", "Clear Chicken Soup"),
				section("Foods to Limit", "High-fat gravies", "Processed meats (sausages, salami)", "Full-fat dairy products"),
			)),
		},
	},
	models.TierLow: {
		Tier:        models.TierLow,
		Description: "The model suggests a low likelihood of GDM. This is a great status to maintain. The following suggestions focus on a preventative, healthy pregnancy diet.",
		Variants: []models.DietPlan{
			sectioned(models.VariantVeg, sections(
				section("Breakfast", "Idli/Dosa with Sambhar", "Poha with vegetables", "Whole wheat paratha with curd"),
				section("Lunch", "Standard Thali: Roti, Sabzi, Dal, Rice (portion control), Salad", "Rajma Chawal with a side of raita"),
				section("Dinner", "Paneer Tikka Masala with whole wheat roti", "Vegetable Pulao with Raita", "Dal Makhani (homemade, less butter)"),
				section("Good Habits", "Stay hydrated with water", "Include a variety of colorful vegetables", "Choose whole fruits over juices"),
			)),
			sectioned(models.VariantNonVeg, sections(
				section("Breakfast", "Omelette with whole wheat bread", "Keema Paratha (limited oil)"),
				section("Lunch", "Chicken Biryani (homemade, less oil) with Raita", "Fish Fry (pan-fried) with Dal and Rice"),
				section("Dinner", "Butter Chicken (homemade, healthier version) with Naan", "Mutton Curry (lean cuts, occasional) with Roti"),
				section("Good Habits", "Choose lean cuts of meat", "Prefer grilling, baking, or stir-frying over deep-frying"),
			)),
		},
	},
	models.TierMinimal: {
		Tier:        models.TierMinimal,
		Description: "Excellent! The model indicates a minimal risk of GDM. Your focus should be on continuing a balanced and nutritious diet for a healthy pregnancy.",
		Variants: []models.DietPlan{
			advice(models.VariantVeg,
				"Continue eating a balanced diet rich in fiber, vitamins, and minerals.",
				"Ensure you are getting adequate protein from sources like paneer, dal, and legumes.",
				"There are no specific restrictions, but moderation is always key for long-term health and a healthy pregnancy.",
			),
			advice(models.VariantNonVeg,
				"Your current dietary patterns appear healthy for your pregnancy.",
				"Continue to include lean proteins like chicken, fish, and eggs.",
				"Focus on maintaining a healthy pregnancy weight as advised by your doctor.",
			),
		},
	},
}

// tierSlugs maps URL-friendly names to tiers.
var tierSlugs = map[string]models.RiskTier{
	"high":     models.TierHigh,
	"moderate": models.TierModerate,
	"low":      models.TierLow,
	"minimal":  models.TierMinimal,
}

// LookupGuidance returns a copy of the guidance plan for tier.
func LookupGuidance(tier models.RiskTier) (models.GuidancePlan, error) {
	plan, ok := guidanceTable[tier]
	if !ok {
		return models.GuidancePlan{}, errors.ErrUnknownTier(string(tier))
	}
	return plan.Clone(), nil
}

// ParseTier resolves a slug ("high") or a tier name ("High Risk"),
// case-insensitively.
func ParseTier(s string) (models.RiskTier, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if tier, ok := tierSlugs[key]; ok {
		return tier, nil
	}
	for _, tier := range AllTiers() {
		if strings.EqualFold(key, string(tier)) {
			return tier, nil
		}
	}
	return "", errors.ErrUnknownTier(s)
}

// TierSlug returns the URL-friendly name of tier.
func TierSlug(tier models.RiskTier) string {
	for slug, t := range tierSlugs {
		if t == tier {
			return slug
		}
	}
	return ""
}
