// Package artifacts loads the pre-trained scaler, classifier and explainer
// from JSON files and exposes them as immutable, shareable values.
package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/turtacn/gdmrisk/internal/domain/service"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// Artifact names used in version maps and log fields.
const (
	NameScaler     = "scaler"
	NameClassifier = "classifier"
	NameExplainer  = "explainer"
)

// Store holds the loaded artifacts. It is never mutated after Load and is
// safe for concurrent use without locking.
type Store struct {
	dir        string
	scaler     *StandardScaler
	classifier *LogisticClassifier
	explainer  *LinearExplainer
	versions   map[string]string
	files      map[string]string
}

// Load reads and validates all three artifacts from dir. Any failure is
// returned as an artifact_invalid error and must stop startup.
func Load(ctx context.Context, dir string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNoopLogger()
	}

	s := &Store{
		dir:        dir,
		scaler:     &StandardScaler{},
		classifier: &LogisticClassifier{},
		explainer:  &LinearExplainer{},
		versions:   make(map[string]string, 3),
		files:      make(map[string]string, 3),
	}

	steps := []struct {
		name     string
		file     string
		target   interface{}
		validate func() error
	}{
		{NameScaler, constants.ScalerFileName, s.scaler, s.scaler.validate},
		{NameClassifier, constants.ClassifierFileName, s.classifier, s.classifier.validate},
		{NameExplainer, constants.ExplainerFileName, s.explainer, s.explainer.validate},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		version, err := readArtifact(path, step.target)
		if err != nil {
			return nil, errors.ErrArtifactInvalid(step.name, err.Error()).WithCause(err)
		}
		if err := step.validate(); err != nil {
			return nil, errors.ErrArtifactInvalid(step.name, err.Error()).WithCause(err)
		}
		s.versions[step.name] = version
		s.files[step.name] = path

		log.Info(ctx, "Artifact loaded", logger.Fields{
			"artifact": step.name,
			"path":     path,
			"version":  version,
		})
	}

	if err := verifyRoundTrip(s.explainer, s.classifier, s.explainer.background); err != nil {
		return nil, errors.ErrArtifactInvalid(NameExplainer, err.Error()).WithCause(err)
	}

	return s, nil
}

// readArtifact decodes the JSON file at path into target and returns the
// truncated SHA-256 of its contents.
func readArtifact(path string, target interface{}) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact file: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return "", fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:constants.ArtifactVersionLength], nil
}

func (s *Store) Scaler() service.Scaler { return s.scaler }

func (s *Store) Classifier() service.Classifier { return s.classifier }

func (s *Store) Explainer() service.Explainer { return s.explainer }

// Dir returns the directory the artifacts were loaded from.
func (s *Store) Dir() string { return s.dir }

// Versions returns a copy of the artifact name to version map.
func (s *Store) Versions() map[string]string {
	out := make(map[string]string, len(s.versions))
	for k, v := range s.versions {
		out[k] = v
	}
	return out
}

// Files returns a copy of the artifact name to file path map.
func (s *Store) Files() map[string]string {
	out := make(map[string]string, len(s.files))
	for k, v := range s.files {
		out[k] = v
	}
	return out
}
