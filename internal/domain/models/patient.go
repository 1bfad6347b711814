package models

// FeatureCount is the number of clinical features the model consumes.
const FeatureCount = 8

// FeatureNames is the training-time feature order. Every vector handed to the
// scaler, classifier or explainer uses exactly this order.
var FeatureNames = [FeatureCount]string{
	"Pregnancies",
	"Glucose",
	"BloodPressure",
	"SkinThickness",
	"Insulin",
	"BMI",
	"DiabetesPedigreeFunction",
	"Age",
}

// Feature indexes into a canonical vector.
const (
	IdxPregnancies = iota
	IdxGlucose
	IdxBloodPressure
	IdxSkinThickness
	IdxInsulin
	IdxBMI
	IdxDiabetesPedigreeFunction
	IdxAge
)

// PatientRecord holds the eight clinical measurements of one assessment.
// It is passed by value and never mutated after construction.
type PatientRecord struct {
	Pregnancies              int     `json:"pregnancies" yaml:"pregnancies"`
	Glucose                  int     `json:"glucose" yaml:"glucose"`
	BloodPressure            int     `json:"blood_pressure" yaml:"blood_pressure"`
	SkinThickness            int     `json:"skin_thickness" yaml:"skin_thickness"`
	Insulin                  int     `json:"insulin" yaml:"insulin"`
	BMI                      float64 `json:"bmi" yaml:"bmi"`
	DiabetesPedigreeFunction float64 `json:"diabetes_pedigree_function" yaml:"diabetes_pedigree_function"`
	Age                      int     `json:"age" yaml:"age"`
}

// Vector returns the record in canonical feature order.
func (p PatientRecord) Vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		IdxPregnancies:              float64(p.Pregnancies),
		IdxGlucose:                  float64(p.Glucose),
		IdxBloodPressure:            float64(p.BloodPressure),
		IdxSkinThickness:            float64(p.SkinThickness),
		IdxInsulin:                  float64(p.Insulin),
		IdxBMI:                      p.BMI,
		IdxDiabetesPedigreeFunction: p.DiabetesPedigreeFunction,
		IdxAge:                      float64(p.Age),
	}
}

// ImputedRecord is a PatientRecord after sentinel substitution.
type ImputedRecord struct {
	PatientRecord

	// Imputed lists the features that were replaced, in canonical order.
	Imputed []string `json:"imputed_features"`
}

// NormalizedVector is an imputed record in the classifier's scaled space.
type NormalizedVector [FeatureCount]float64
