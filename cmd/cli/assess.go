package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/gdmrisk/internal/application"
	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/repository"
	"github.com/turtacn/gdmrisk/internal/infrastructure/artifacts"
	"github.com/turtacn/gdmrisk/internal/infrastructure/persistence"
)

var (
	assessInputFile string
	assessRecord    bool
	assessFields    struct {
		pregnancies, glucose, bloodPressure, skinThickness, insulin, age int
		bmi, pedigree                                                     float64
	}
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score one patient record against the local model artifacts",
	Long: `Score one patient record. Values come from --file (YAML or JSON, using the
API field names) and/or individual flags; flags win. A 0 for glucose, blood
pressure, skin thickness, insulin or BMI means "not measured" and is imputed.`,
	Example: `  gdm-admin assess --pregnancies 6 --glucose 148 --blood-pressure 72 \
    --skin-thickness 35 --insulin 0 --bmi 33.6 --pedigree 0.627 --age 50`,
	RunE: runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.StringVarP(&assessInputFile, "file", "f", "", "read the patient record from a YAML or JSON file")
	f.BoolVar(&assessRecord, "record", false, "store the outcome in the audit database when it is enabled")
	f.IntVar(&assessFields.pregnancies, "pregnancies", 0, "number of pregnancies")
	f.IntVar(&assessFields.glucose, "glucose", 0, "plasma glucose (mg/dL), 0 if not measured")
	f.IntVar(&assessFields.bloodPressure, "blood-pressure", 0, "diastolic blood pressure (mm Hg), 0 if not measured")
	f.IntVar(&assessFields.skinThickness, "skin-thickness", 0, "triceps skin fold (mm), 0 if not measured")
	f.IntVar(&assessFields.insulin, "insulin", 0, "2-hour serum insulin (mu U/ml), 0 if not measured")
	f.Float64Var(&assessFields.bmi, "bmi", 0, "body mass index, 0 if not measured")
	f.Float64Var(&assessFields.pedigree, "pedigree", 0, "diabetes pedigree function")
	f.IntVar(&assessFields.age, "age", 0, "age in years")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := cliLogger()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	req, err := buildAssessRequest(cmd)
	if err != nil {
		return err
	}

	store, err := artifacts.Load(ctx, cfg.Artifacts.Dir, log)
	if err != nil {
		return err
	}

	var repo repository.AssessmentRepository
	if assessRecord && cfg.Database.Enabled {
		db, err := persistence.NewDBConnection(ctx, &cfg.Database, log)
		if err != nil {
			return err
		}
		defer persistence.Close(db)
		repo = persistence.NewAssessmentRepository(db, log)
	}

	svc, err := application.NewAssessmentService(store, repo, nil, nil, log)
	if err != nil {
		return err
	}
	resp, err := svc.Assess(ctx, req)
	if err != nil {
		return err
	}
	return printOutput(cmd.OutOrStdout(), resp)
}

func buildAssessRequest(cmd *cobra.Command) (*dto.AssessmentRequest, error) {
	req := &dto.AssessmentRequest{}
	if assessInputFile != "" {
		raw, err := os.ReadFile(assessInputFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", assessInputFile, err)
		}
		// YAML is a superset of JSON, so one decoder covers both.
		if err := yaml.Unmarshal(raw, req); err != nil {
			return nil, fmt.Errorf("parse %s: %w", assessInputFile, err)
		}
	}

	flags := cmd.Flags()
	setInt := func(name string, v int, dst **int) {
		if flags.Changed(name) {
			val := v
			*dst = &val
		}
	}
	setFloat := func(name string, v float64, dst **float64) {
		if flags.Changed(name) {
			val := v
			*dst = &val
		}
	}
	setInt("pregnancies", assessFields.pregnancies, &req.Pregnancies)
	setInt("glucose", assessFields.glucose, &req.Glucose)
	setInt("blood-pressure", assessFields.bloodPressure, &req.BloodPressure)
	setInt("skin-thickness", assessFields.skinThickness, &req.SkinThickness)
	setInt("insulin", assessFields.insulin, &req.Insulin)
	setFloat("bmi", assessFields.bmi, &req.BMI)
	setFloat("pedigree", assessFields.pedigree, &req.DiabetesPedigreeFunction)
	setInt("age", assessFields.age, &req.Age)
	return req, nil
}
