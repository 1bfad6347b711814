package artifacts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
	"github.com/turtacn/gdmrisk/internal/infrastructure/artifacts"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, artifacts.WriteSample(dir))
	return dir
}

func TestLoad_SampleArtifacts(t *testing.T) {
	dir := sampleDir(t)

	store, err := artifacts.Load(context.Background(), dir, logger.NewNoopLogger())
	require.NoError(t, err)

	versions := store.Versions()
	require.Len(t, versions, 3)
	for name, v := range versions {
		assert.Len(t, v, constants.ArtifactVersionLength, name)
	}

	// mutating the returned map leaves the store untouched
	versions[artifacts.NameScaler] = "changed"
	assert.NotEqual(t, "changed", store.Versions()[artifacts.NameScaler])
}

func TestLoad_RepositoryArtifacts(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "artifacts")
	if _, err := os.Stat(dir); err != nil {
		t.Skip("repository artifacts not present")
	}
	_, err := artifacts.Load(context.Background(), dir, nil)
	require.NoError(t, err)
}

func TestLoad_ScalerTransform(t *testing.T) {
	store, err := artifacts.Load(context.Background(), sampleDir(t), nil)
	require.NoError(t, err)

	x := service.Vector{3.85, 121.66, 72.39, 29.11, 140.67, 32.46, 0.472, 33.24}
	got := store.Scaler().Transform(x)
	for i := range got {
		assert.InDelta(t, 0, got[i], 1e-12, models.FeatureNames[i])
	}
}

func TestLoad_ClassifierProbabilities(t *testing.T) {
	store, err := artifacts.Load(context.Background(), sampleDir(t), nil)
	require.NoError(t, err)
	c := store.Classifier()

	var zero service.Vector
	proba := c.PredictProba(zero)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-12)
	assert.InDelta(t, -0.87, c.DecisionFunction(zero), 1e-12)
	assert.Equal(t, 0, c.Predict(zero))

	high := service.Vector{2, 3, 0, 0, 0, 2, 1, 1}
	assert.Equal(t, 1, c.Predict(high))
	assert.Greater(t, c.PredictProba(high)[1], 0.5)
}

func TestLoad_ClassifierThreshold(t *testing.T) {
	high := service.Vector{0.5, 0.5, 0, 0, 0, 0.5, 0, 0} // p ≈ 0.56

	tests := []struct {
		name      string
		threshold *float64
		want      int
	}{
		{"omitted defaults to 0.5", nil, 1},
		{"explicit 0.9", func() *float64 { v := 0.9; return &v }(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := sampleDir(t)
			_, c, _ := artifacts.SampleArtifacts()
			c.Threshold = tt.threshold
			require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ClassifierFileName), c))

			store, err := artifacts.Load(context.Background(), dir, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.Classifier().Predict(high))
		})
	}
}

func TestLoad_ExplainerRoundTrip(t *testing.T) {
	store, err := artifacts.Load(context.Background(), sampleDir(t), nil)
	require.NoError(t, err)

	x := service.Vector{-0.8, 1.2, -0.3, 0.5, -0.7, 2.1, 0.4, -1.1}
	base, phi := store.Explainer().Attribute(x)
	sum := base
	for _, v := range phi {
		sum += v
	}
	assert.InDelta(t, store.Classifier().DecisionFunction(x), sum, 1e-9)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, dir string)
	}{
		{
			name: "missing classifier",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, constants.ClassifierFileName)))
			},
		},
		{
			name: "corrupt scaler",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ScalerFileName), []byte("{not json"), 0o644))
			},
		},
		{
			name: "reordered feature names",
			mutate: func(t *testing.T, dir string) {
				s, _, _ := artifacts.SampleArtifacts()
				s.FeatureNames[0], s.FeatureNames[1] = s.FeatureNames[1], s.FeatureNames[0]
				require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ScalerFileName), s))
			},
		},
		{
			name: "wrong coefficient length",
			mutate: func(t *testing.T, dir string) {
				_, c, _ := artifacts.SampleArtifacts()
				c.Coefficients = c.Coefficients[:7]
				require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ClassifierFileName), c))
			},
		},
		{
			name: "explicit zero threshold",
			mutate: func(t *testing.T, dir string) {
				_, c, _ := artifacts.SampleArtifacts()
				zero := 0.0
				c.Threshold = &zero
				require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ClassifierFileName), c))
			},
		},
		{
			name: "wrong kind",
			mutate: func(t *testing.T, dir string) {
				_, _, e := artifacts.SampleArtifacts()
				e.Kind = "tree_explainer"
				require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ExplainerFileName), e))
			},
		},
		{
			name: "explainer does not match classifier",
			mutate: func(t *testing.T, dir string) {
				_, _, e := artifacts.SampleArtifacts()
				e.ExpectedValue += 0.25
				require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ExplainerFileName), e))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := sampleDir(t)
			tt.mutate(t, dir)

			store, err := artifacts.Load(context.Background(), dir, nil)
			require.Error(t, err)
			assert.Nil(t, store)

			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, constants.ErrCodeArtifactInvalid, appErr.Code())
		})
	}
}

func TestWatcher_FlagsChangedArtifact(t *testing.T) {
	dir := sampleDir(t)
	store, err := artifacts.Load(context.Background(), dir, nil)
	require.NoError(t, err)

	w, err := artifacts.NewWatcher(store, nil)
	require.NoError(t, err)
	defer w.Close()

	notified := make(chan string, 1)
	w.OnStale(func(file string) { notified <- file })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	assert.False(t, w.Stale())

	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	_, c, _ := artifacts.SampleArtifacts()
	c.Intercept = -1
	require.NoError(t, artifacts.WriteJSON(filepath.Join(dir, constants.ClassifierFileName), c))

	select {
	case file := <-notified:
		assert.Equal(t, constants.ClassifierFileName, filepath.Base(file))
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the changed artifact")
	}
	assert.True(t, w.Stale())

	// the loaded artifacts are unchanged
	var zero service.Vector
	assert.InDelta(t, -0.87, store.Classifier().DecisionFunction(zero), 1e-12)
}
