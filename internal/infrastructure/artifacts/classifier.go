package artifacts

import (
	"fmt"
	"math"

	"github.com/turtacn/gdmrisk/internal/domain/service"
)

const (
	kindLogisticRegression = "logistic_regression"
	defaultThreshold       = 0.5
)

// LogisticClassifier is a binary logistic regression over scaled features.
type LogisticClassifier struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	// Threshold is optional; when absent the decision threshold is 0.5.
	Threshold *float64 `json:"threshold,omitempty"`

	coef      service.Vector
	threshold float64
}

func (c *LogisticClassifier) validate() error {
	if c.Kind != kindLogisticRegression {
		return fmt.Errorf("kind %q, want %q", c.Kind, kindLogisticRegression)
	}
	if err := checkFeatureNames(c.FeatureNames); err != nil {
		return err
	}
	if err := toVector("coefficients", c.Coefficients, &c.coef); err != nil {
		return err
	}
	c.threshold = defaultThreshold
	if c.Threshold != nil {
		c.threshold = *c.Threshold
	}
	if c.threshold <= 0 || c.threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0,1)", c.threshold)
	}
	return nil
}

// DecisionFunction returns the log-odds of the positive class.
func (c *LogisticClassifier) DecisionFunction(x service.Vector) float64 {
	z := c.Intercept
	for i := range x {
		z += c.coef[i] * x[i]
	}
	return z
}

// PredictProba returns [P(class0), P(class1)].
func (c *LogisticClassifier) PredictProba(x service.Vector) [2]float64 {
	p := sigmoid(c.DecisionFunction(x))
	return [2]float64{1 - p, p}
}

// Predict returns 1 when the positive-class probability reaches the threshold.
func (c *LogisticClassifier) Predict(x service.Vector) int {
	if c.PredictProba(x)[1] >= c.threshold {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
