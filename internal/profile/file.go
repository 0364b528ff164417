package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// DefaultFileName is the profile file name used when none is given.
const DefaultFileName = "profile.yaml"

// calorieTargetKey is accepted in files but always ignored.
const calorieTargetKey = "calorie_target"

// Template is the starter profile written by Save when no values are known,
// prefilled with the form's suggested values.
func Template() UserProfile {
	p := New()
	p.Age = "23"
	p.HeightCM = "170"
	p.WeightKG = "70"
	return p
}

var fileComments = map[Field]string{
	FieldAge:           "Age in years (10-100)",
	FieldHeightCM:      "Height in centimetres (100-250)",
	FieldWeightKG:      "Weight in kilograms (30-200)",
	FieldActivityLevel: "Activity multiplier: 1.2, 1.375, 1.55, 1.725 or 1.9",
	FieldGoal:          "loss | gain | muscle",
	FieldDeficiency:    "none | iron | vitd | protein",
	FieldChronic:       "none | diabetes | hypertension",
	FieldCuisinePref:   "Free text, e.g. Indian or Mediterranean",
	FieldFoodType:      "none | vegetarian | vegan | non-vegetarian",
}

// Loader reads and writes profile YAML files.
// Use afero.NewMemMapFs() in tests.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a Loader on the given filesystem.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// NewOsLoader creates a Loader on the real filesystem.
func NewOsLoader() *Loader {
	return NewLoader(afero.NewOsFs())
}

// Load reads a profile file. Missing keys keep the form defaults; every present key
// goes through Update, so enum spellings are normalized exactly as form input is.
func (l *Loader) Load(path string) (UserProfile, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return UserProfile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes profile YAML.
func Parse(data []byte) (UserProfile, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return UserProfile{}, fmt.Errorf("parse profile: %w", err)
	}

	var unknown []string
	for key := range raw {
		if key == calorieTargetKey {
			if raw[key] != nil {
				slog.Warn("calorie_target is reserved and ignored")
			}
			continue
		}
		if _, ok := fieldLabels[Field(key)]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return UserProfile{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}

	p := New()
	for _, f := range Fields {
		v, ok := raw[string(f)]
		if !ok {
			continue
		}
		s, err := scalarString(v)
		if err != nil {
			return UserProfile{}, fmt.Errorf("%s: %w", f, err)
		}
		if p, err = p.Update(f, s); err != nil {
			return UserProfile{}, err
		}
	}
	return p, nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: expected a scalar, got %T", ErrInvalidValue, v)
}

// Save writes p as commented YAML, creating parent directories as needed.
func (l *Loader) Save(path string, p UserProfile) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := l.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}
	if err := afero.WriteFile(l.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write profile %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a profile file is already present at path.
func (l *Loader) Exists(path string) (bool, error) {
	_, err := l.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Marshal renders p as YAML in form order. Numeric values are written unquoted.
func Marshal(p UserProfile) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range Fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: string(f), HeadComment: fileComments[f]}
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: p.Value(f)}
		if !f.Numeric() {
			val.Tag = "!!str"
		}
		doc.Content = append(doc.Content, key, val)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}
