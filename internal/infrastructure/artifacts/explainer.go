package artifacts

import (
	"fmt"
	"math"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
)

const (
	kindLinearExplainer = "linear_explainer"

	// roundTripTolerance bounds |base + sum(phi) - decision(x)|, scaled by
	// the magnitude of the decision value.
	roundTripTolerance = 1e-9
)

// LinearExplainer computes exact additive attributions for a linear model:
// phi_i = coef_i * (x_i - background_i).
type LinearExplainer struct {
	Kind           string    `json:"kind"`
	FeatureNames   []string  `json:"feature_names"`
	Coefficients   []float64 `json:"coefficients"`
	BackgroundMean []float64 `json:"background_mean"`
	ExpectedValue  float64   `json:"expected_value"`

	coef       service.Vector
	background service.Vector
}

func (e *LinearExplainer) validate() error {
	if e.Kind != kindLinearExplainer {
		return fmt.Errorf("kind %q, want %q", e.Kind, kindLinearExplainer)
	}
	if err := checkFeatureNames(e.FeatureNames); err != nil {
		return err
	}
	if err := toVector("coefficients", e.Coefficients, &e.coef); err != nil {
		return err
	}
	return toVector("background_mean", e.BackgroundMean, &e.background)
}

// Attribute returns the expected value and per-feature contributions.
func (e *LinearExplainer) Attribute(x service.Vector) (float64, service.Vector) {
	var phi service.Vector
	for i := range x {
		phi[i] = e.coef[i] * (x[i] - e.background[i])
	}
	return e.ExpectedValue, phi
}

// verifyRoundTrip checks that the explainer reproduces the classifier's
// decision function on the background point and on each unit axis.
func verifyRoundTrip(explainer service.Explainer, classifier service.Classifier, background service.Vector) error {
	probes := make([]service.Vector, 0, models.FeatureCount+1)
	probes = append(probes, background)
	for i := 0; i < models.FeatureCount; i++ {
		p := background
		p[i]++
		probes = append(probes, p)
	}

	for _, x := range probes {
		base, phi := explainer.Attribute(x)
		got := base
		for _, v := range phi {
			got += v
		}
		want := classifier.DecisionFunction(x)
		if math.Abs(got-want) > roundTripTolerance*math.Max(1, math.Abs(want)) {
			return fmt.Errorf("explainer reconstructs %.12f, classifier gives %.12f at %v", got, want, x)
		}
	}
	return nil
}
