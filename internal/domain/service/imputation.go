package service

import "github.com/turtacn/gdmrisk/internal/domain/models"

// MissingSentinel marks a clinical measurement as not taken.
const MissingSentinel = 0

// ImputationMedians are the population medians substituted for a sentinel
// value. Only these five features are ever imputed; Pregnancies,
// DiabetesPedigreeFunction and Age always pass through.
var ImputationMedians = map[string]float64{
	"Glucose":       117,
	"BloodPressure": 72,
	"SkinThickness": 29,
	"Insulin":       125,
	"BMI":           32.3,
}

// Impute replaces sentinel zeros in the five measurement fields with their
// medians. Non-zero values are kept as given, plausible or not.
func Impute(p models.PatientRecord) models.ImputedRecord {
	out := models.ImputedRecord{PatientRecord: p}

	if p.Glucose == MissingSentinel {
		out.Glucose = int(ImputationMedians["Glucose"])
		out.Imputed = append(out.Imputed, "Glucose")
	}
	if p.BloodPressure == MissingSentinel {
		out.BloodPressure = int(ImputationMedians["BloodPressure"])
		out.Imputed = append(out.Imputed, "BloodPressure")
	}
	if p.SkinThickness == MissingSentinel {
		out.SkinThickness = int(ImputationMedians["SkinThickness"])
		out.Imputed = append(out.Imputed, "SkinThickness")
	}
	if p.Insulin == MissingSentinel {
		out.Insulin = int(ImputationMedians["Insulin"])
		out.Imputed = append(out.Imputed, "Insulin")
	}
	if p.BMI == MissingSentinel {
		out.BMI = ImputationMedians["BMI"]
		out.Imputed = append(out.Imputed, "BMI")
	}

	return out
}
