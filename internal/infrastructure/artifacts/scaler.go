package artifacts

import (
	"fmt"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
)

const kindStandardScaler = "standard_scaler"

// StandardScaler is a per-feature affine normalization fitted at training time.
type StandardScaler struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`

	mean  service.Vector
	scale service.Vector
}

func (s *StandardScaler) validate() error {
	if s.Kind != kindStandardScaler {
		return fmt.Errorf("kind %q, want %q", s.Kind, kindStandardScaler)
	}
	if err := checkFeatureNames(s.FeatureNames); err != nil {
		return err
	}
	if err := toVector("mean", s.Mean, &s.mean); err != nil {
		return err
	}
	if err := toVector("scale", s.Scale, &s.scale); err != nil {
		return err
	}
	for i, v := range s.scale {
		// scikit-learn stores a unit scale for constant features
		if v == 0 {
			s.scale[i] = 1
		}
	}
	return nil
}

// Transform returns (x - mean) / scale for every feature.
func (s *StandardScaler) Transform(x service.Vector) service.Vector {
	var out service.Vector
	for i := range x {
		out[i] = (x[i] - s.mean[i]) / s.scale[i]
	}
	return out
}

// checkFeatureNames requires the exact training-time order.
func checkFeatureNames(names []string) error {
	if len(names) != models.FeatureCount {
		return fmt.Errorf("feature_names has %d entries, want %d", len(names), models.FeatureCount)
	}
	for i, name := range names {
		if name != models.FeatureNames[i] {
			return fmt.Errorf("feature_names[%d] is %q, want %q", i, name, models.FeatureNames[i])
		}
	}
	return nil
}

func toVector(field string, values []float64, dst *service.Vector) error {
	if len(values) != models.FeatureCount {
		return fmt.Errorf("%s has %d entries, want %d", field, len(values), models.FeatureCount)
	}
	copy(dst[:], values)
	return nil
}
