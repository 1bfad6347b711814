package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/infrastructure/artifacts"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configFile, artifactsDir, outputFormat, logLevel = "", "", "json", "warn"
		assessInputFile = ""
		for _, name := range []string{"pregnancies", "glucose", "blood-pressure", "skin-thickness", "insulin", "bmi", "pedigree", "age"} {
			if f := assessCmd.Flags().Lookup(name); f != nil {
				f.Changed = false
			}
		}
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, artifacts.WriteSample(dir))
	return dir
}

func TestAssessCommand(t *testing.T) {
	dir := sampleDir(t)
	out, err := execute(t, "assess", "--artifacts", dir,
		"--pregnancies", "6", "--glucose", "148", "--blood-pressure", "72",
		"--skin-thickness", "35", "--insulin", "0", "--bmi", "33.6",
		"--pedigree", "0.627", "--age", "50")
	require.NoError(t, err)

	var resp dto.AssessmentResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"Insulin"}, resp.ImputedFeatures)
	assert.Equal(t, 125, resp.Imputed.Insulin)
	assert.Equal(t, resp.Assessment.Tier, resp.Guidance.Tier)
	assert.Len(t, resp.ModelVersions, 3)
}

func TestAssessCommand_MissingField(t *testing.T) {
	dir := sampleDir(t)
	_, err := execute(t, "assess", "--artifacts", dir, "--glucose", "120")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
}

func TestArtifactsVerify(t *testing.T) {
	dir := sampleDir(t)
	out, err := execute(t, "artifacts", "verify", "--artifacts", dir)
	require.NoError(t, err)

	var got struct {
		Versions map[string]string `json:"versions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Versions, 3)
	for _, v := range got.Versions {
		assert.Len(t, v, 12)
	}
}

func TestArtifactsVerify_MissingDir(t *testing.T) {
	_, err := execute(t, "artifacts", "verify", "--artifacts", t.TempDir())
	assert.Error(t, err)
}

func TestGuidanceCommand(t *testing.T) {
	out, err := execute(t, "guidance", "high", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, string(models.TierHigh))

	_, err = execute(t, "guidance", "extreme")
	assert.Error(t, err)
}

func TestAuditCommand_DatabaseDisabled(t *testing.T) {
	_, err := execute(t, "audit", "stats", "--artifacts", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.enabled")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "tiers", "--format", "xml")
	assert.Error(t, err)
}
