package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacesedan/trendcast/internal/features"
	"gopkg.in/yaml.v3"
)

const MANIFEST_FILE = "manifest.yaml"

// StageFiles names the artifacts of one pipeline stage and the feature order its
// vectors were built with at training time.
type StageFiles struct {
	Scaler              string   `yaml:"scaler,omitempty"`
	Encoder             string   `yaml:"encoder,omitempty"`
	Classifier          string   `yaml:"classifier"`
	CategoricalFeatures []string `yaml:"categorical_features,omitempty"`
	Features            []string `yaml:"features,omitempty"`
}

// Manifest describes an artifact directory. Missing entries keep their defaults.
type Manifest struct {
	Version    int        `yaml:"version"`
	Text       StageFiles `yaml:"text"`
	Tabular    StageFiles `yaml:"tabular"`
	Psych      StageFiles `yaml:"psych"`
	Meta       StageFiles `yaml:"meta"`
	ClipValues string     `yaml:"clip_values"`
}

// DefaultManifest matches the file set the training pipeline writes.
func DefaultManifest() Manifest {
	return Manifest{
		Version: 1,
		Text: StageFiles{
			Scaler:     "text_scaler.json",
			Classifier: "text_lr.json",
		},
		Tabular: StageFiles{
			Encoder:             "ohe.json",
			Classifier:          "rf_calibrated.json",
			CategoricalFeatures: features.CategoricalFeatureNames,
			Features:            features.TabularNumericFeatureNames,
		},
		Psych: StageFiles{
			Scaler:     "psych_scaler.json",
			Classifier: "psych_lr.json",
			Features:   features.PsychFeatureNames,
		},
		Meta: StageFiles{
			Classifier: "meta_lr.json",
			Features:   features.MetaFeatureNames,
		},
		ClipValues: "clip_values.json",
	}
}

// LoadManifest reads dir/manifest.yaml over the defaults. A missing file is not an error.
func LoadManifest(dir string) (Manifest, error) {
	m := DefaultManifest()
	path := filepath.Join(dir, MANIFEST_FILE)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return m, nil
}

// CheckFeatureOrder compares the declared feature order of every stage with the order
// the feature builders produce.
func (m Manifest) CheckFeatureOrder() error {
	var errs []error
	check := func(stage string, declared, built []string) {
		if err := sameOrder(declared, built); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s features: %v", ErrContractViolation, stage, err))
		}
	}
	check("tabular categorical", m.Tabular.CategoricalFeatures, features.CategoricalFeatureNames)
	check("tabular numeric", m.Tabular.Features, features.TabularNumericFeatureNames)
	check("psych", m.Psych.Features, features.PsychFeatureNames)
	check("meta", m.Meta.Features, features.MetaFeatureNames)
	return errors.Join(errs...)
}

func sameOrder(declared, built []string) error {
	if len(declared) != len(built) {
		return fmt.Errorf("declared %d, pipeline builds %d", len(declared), len(built))
	}
	for i := range built {
		if declared[i] != built[i] {
			return fmt.Errorf("position %d is %q, pipeline builds %q", i, declared[i], built[i])
		}
	}
	return nil
}
