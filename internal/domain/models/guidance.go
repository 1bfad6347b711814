package models

// DietVariant identifies one of the two dietary traditions of a plan.
type DietVariant string

const (
	VariantVeg    DietVariant = "Indian (Veg)"
	VariantNonVeg DietVariant = "Indian (Non-Veg)"
)

// Label returns the display label of the variant.
func (v DietVariant) Label() string {
	switch v {
	case VariantVeg:
		return "Indian (Vegetarian)"
	case VariantNonVeg:
		return "Indian (Non-Vegetarian)"
	default:
		return string(v)
	}
}

// MealSection is a labelled, ordered list of diet items.
type MealSection struct {
	Label string   `json:"label" yaml:"label"`
	Items []string `json:"items" yaml:"items"`
}

// DietPlan is one variant of a tier's guidance. Exactly one of Sections and
// GeneralAdvice is populated.
type DietPlan struct {
	Variant       DietVariant   `json:"variant" yaml:"variant"`
	Label         string        `json:"label" yaml:"label"`
	Sections      []MealSection `json:"sections,omitempty" yaml:"sections,omitempty"`
	GeneralAdvice []string      `json:"general_advice,omitempty" yaml:"general_advice,omitempty"`
}

// IsGeneralAdvice reports whether the plan is a general advice list.
func (d DietPlan) IsGeneralAdvice() bool {
	return len(d.GeneralAdvice) > 0 && len(d.Sections) == 0
}

// GuidancePlan is the dietary guidance for one risk tier.
type GuidancePlan struct {
	Tier        RiskTier   `json:"tier" yaml:"tier"`
	Description string     `json:"description" yaml:"description"`
	Variants    []DietPlan `json:"variants" yaml:"variants"`
}

// Variant returns the plan for v.
func (g GuidancePlan) Variant(v DietVariant) (DietPlan, bool) {
	for _, p := range g.Variants {
		if p.Variant == v {
			return p, true
		}
	}
	return DietPlan{}, false
}

// Clone returns a deep copy of the plan.
func (g GuidancePlan) Clone() GuidancePlan {
	out := GuidancePlan{Tier: g.Tier, Description: g.Description}
	out.Variants = make([]DietPlan, len(g.Variants))
	for i, p := range g.Variants {
		cp := DietPlan{Variant: p.Variant, Label: p.Label}
		if p.Sections != nil {
			cp.Sections = make([]MealSection, len(p.Sections))
			for j, s := range p.Sections {
				cp.Sections[j] = MealSection{Label: s.Label, Items: append([]string(nil), s.Items...)}
			}
		}
		if p.GeneralAdvice != nil {
			cp.GeneralAdvice = append([]string(nil), p.GeneralAdvice...)
		}
		out.Variants[i] = cp
	}
	return out
}

// Disclaimer accompanies every assessment result.
const Disclaimer = "This is an educational tool, not medical advice. Please consult your doctor or a registered dietitian for a personalized pregnancy nutrition plan."
