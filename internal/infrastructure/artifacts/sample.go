package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/pkg/constants"
)

// Sample artifacts fitted on the Pima Indians diabetes data set.
var (
	sampleMean  = []float64{3.85, 121.66, 72.39, 29.11, 140.67, 32.46, 0.472, 33.24}
	sampleScale = []float64{3.37, 30.44, 12.10, 8.79, 86.38, 6.88, 0.331, 11.75}
	sampleCoef  = []float64{0.39, 1.12, -0.05, 0.04, -0.08, 0.68, 0.30, 0.18}
)

const sampleIntercept = -0.87

// SampleArtifacts returns a consistent scaler, classifier and explainer set.
func SampleArtifacts() (*StandardScaler, *LogisticClassifier, *LinearExplainer) {
	names := models.FeatureNames[:]
	background := make([]float64, models.FeatureCount)

	threshold := defaultThreshold
	expected := sampleIntercept
	for i, c := range sampleCoef {
		expected += c * background[i]
	}

	return &StandardScaler{
			Kind:         kindStandardScaler,
			FeatureNames: append([]string(nil), names...),
			Mean:         append([]float64(nil), sampleMean...),
			Scale:        append([]float64(nil), sampleScale...),
		}, &LogisticClassifier{
			Kind:         kindLogisticRegression,
			FeatureNames: append([]string(nil), names...),
			Coefficients: append([]float64(nil), sampleCoef...),
			Intercept:    sampleIntercept,
			Threshold:    &threshold,
			threshold:    threshold,
		}, &LinearExplainer{
			Kind:           kindLinearExplainer,
			FeatureNames:   append([]string(nil), names...),
			Coefficients:   append([]float64(nil), sampleCoef...),
			BackgroundMean: background,
			ExpectedValue:  expected,
		}
}

// WriteSample writes the sample artifact set into dir, creating it if needed.
func WriteSample(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact dir: %w", err)
	}

	scaler, classifier, explainer := SampleArtifacts()
	files := map[string]interface{}{
		constants.ScalerFileName:     scaler,
		constants.ClassifierFileName: classifier,
		constants.ExplainerFileName:  explainer,
	}
	for name, v := range files {
		if err := WriteJSON(filepath.Join(dir, name), v); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact file: %w", err)
	}
	return nil
}
