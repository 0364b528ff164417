// Package profile holds the user profile captured by the form: raw field
// capture, enum normalization, derived metrics and submission validation.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrUnknownField is returned when an update names a field the profile does not have.
	ErrUnknownField = errors.New("unknown profile field")
	// ErrInvalidValue is returned when an enum field receives a value outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// Field names a profile field. Values match the request/response keys.
type Field string

const (
	FieldAge           Field = "age"
	FieldHeightCM      Field = "height_cm"
	FieldWeightKG      Field = "weight_kg"
	FieldActivityLevel Field = "activity_level"
	FieldGoal          Field = "goal"
	FieldDeficiency    Field = "deficiency"
	FieldChronic       Field = "chronic"
	FieldCuisinePref   Field = "cuisine_pref"
	FieldFoodType      Field = "food_type"
)

// Fields lists every editable field in form order.
var Fields = []Field{
	FieldAge,
	FieldHeightCM,
	FieldWeightKG,
	FieldActivityLevel,
	FieldGoal,
	FieldDeficiency,
	FieldChronic,
	FieldCuisinePref,
	FieldFoodType,
}

var fieldLabels = map[Field]string{
	FieldAge:           "Age",
	FieldHeightCM:      "Height (cm)",
	FieldWeightKG:      "Weight (kg)",
	FieldActivityLevel: "Activity Level",
	FieldGoal:          "Goal",
	FieldDeficiency:    "Deficiency",
	FieldChronic:       "Chronic",
	FieldCuisinePref:   "Cuisine Preference",
	FieldFoodType:      "Food Type",
}

// Label returns the human-readable form label.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Numeric reports whether the field holds a raw number string.
func (f Field) Numeric() bool {
	switch f {
	case FieldAge, FieldHeightCM, FieldWeightKG, FieldActivityLevel:
		return true
	}
	return false
}

// ParseField resolves a field name, accepting either the key or dashes for underscores.
func ParseField(name string) (Field, error) {
	key := Field(strings.ReplaceAll(strings.TrimSpace(strings.ToLower(name)), "-", "_"))
	if _, ok := fieldLabels[key]; ok {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Goal is the user's training goal.
type Goal string

const (
	GoalLoss   Goal = "loss"
	GoalGain   Goal = "gain"
	GoalMuscle Goal = "muscle"
)

// Deficiency is a nutrient deficiency the plan should address.
type Deficiency string

const (
	DeficiencyNone    Deficiency = "none"
	DeficiencyIron    Deficiency = "iron"
	DeficiencyVitD    Deficiency = "vitd"
	DeficiencyProtein Deficiency = "protein"
)

// Chronic is a chronic condition the plan should respect.
type Chronic string

const (
	ChronicNone         Chronic = "none"
	ChronicDiabetes     Chronic = "diabetes"
	ChronicHypertension Chronic = "hypertension"
)

// FoodType is the dietary preference. Canonical values are lower-case and hyphenated.
type FoodType string

const (
	FoodTypeNone          FoodType = "none"
	FoodTypeVegetarian    FoodType = "vegetarian"
	FoodTypeVegan         FoodType = "vegan"
	FoodTypeNonVegetarian FoodType = "non-vegetarian"
)

// Activity levels are the standard TDEE multipliers.
const (
	ActivitySedentary  = "1.2"
	ActivityLight      = "1.375"
	ActivityModerate   = "1.55"
	ActivityActive     = "1.725"
	ActivityVeryActive = "1.9"

	DefaultActivityLevel = ActivityModerate
)

// Option is one selectable value of an enumerated field.
type Option struct {
	Value string
	Label string
}

// Options returns the selectable values of an enumerated field, in form order.
// Free-text and plain numeric fields return nil.
func Options(f Field) []Option {
	switch f {
	case FieldActivityLevel:
		return []Option{
			{ActivitySedentary, "Sedentary (1.2)"},
			{ActivityLight, "Lightly active (1.375)"},
			{ActivityModerate, "Moderately active (1.55)"},
			{ActivityActive, "Very active (1.725)"},
			{ActivityVeryActive, "Extra active (1.9)"},
		}
	case FieldGoal:
		return []Option{
			{string(GoalLoss), "Weight Loss"},
			{string(GoalGain), "Weight Gain"},
			{string(GoalMuscle), "Muscle Gain"},
		}
	case FieldDeficiency:
		return []Option{
			{string(DeficiencyNone), "None"},
			{string(DeficiencyIron), "Iron"},
			{string(DeficiencyVitD), "Vitamin D"},
			{string(DeficiencyProtein), "Protein"},
		}
	case FieldChronic:
		return []Option{
			{string(ChronicNone), "None"},
			{string(ChronicDiabetes), "Diabetes"},
			{string(ChronicHypertension), "Hypertension"},
		}
	case FieldFoodType:
		return []Option{
			{string(FoodTypeNone), "No Preference"},
			{string(FoodTypeVegetarian), "Vegetarian"},
			{string(FoodTypeVegan), "Vegan"},
			{string(FoodTypeNonVegetarian), "Non-Vegetarian"},
		}
	}
	return nil
}

// Aliases accepted at the profile boundary, keyed by normalized spelling.
// Historical clients sent "Vegetarian" and "Non-Vegetarian"; both fold to the canonical value.
var (
	goalAliases = map[string]Goal{
		"loss": GoalLoss, "weight loss": GoalLoss,
		"gain": GoalGain, "weight gain": GoalGain,
		"muscle": GoalMuscle, "muscle gain": GoalMuscle,
	}
	deficiencyAliases = map[string]Deficiency{
		"": DeficiencyNone, "none": DeficiencyNone,
		"iron":  DeficiencyIron,
		"vitd":  DeficiencyVitD, "vit d": DeficiencyVitD, "vitamin d": DeficiencyVitD,
		"protein": DeficiencyProtein,
	}
	chronicAliases = map[string]Chronic{
		"": ChronicNone, "none": ChronicNone,
		"diabetes":     ChronicDiabetes,
		"hypertension": ChronicHypertension,
	}
	foodTypeAliases = map[string]FoodType{
		"": FoodTypeNone, "none": FoodTypeNone, "no preference": FoodTypeNone,
		"vegetarian": FoodTypeVegetarian, "veg": FoodTypeVegetarian,
		"vegan":          FoodTypeVegan,
		"non-vegetarian": FoodTypeNonVegetarian, "non vegetarian": FoodTypeNonVegetarian,
		"nonvegetarian": FoodTypeNonVegetarian, "non-veg": FoodTypeNonVegetarian,
		"non veg": FoodTypeNonVegetarian,
	}
)

// normalizeKey case-folds s and collapses underscores and runs of whitespace.
func normalizeKey(s string) string {
	folded := cases.Fold().String(s)
	folded = strings.ReplaceAll(folded, "_", " ")
	return strings.Join(strings.Fields(folded), " ")
}

// ParseGoal normalizes a goal value.
func ParseGoal(raw string) (Goal, error) {
	if g, ok := goalAliases[normalizeKey(raw)]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w %q for %s", ErrInvalidValue, raw, FieldGoal)
}

// ParseDeficiency normalizes a deficiency value.
func ParseDeficiency(raw string) (Deficiency, error) {
	if d, ok := deficiencyAliases[normalizeKey(raw)]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w %q for %s", ErrInvalidValue, raw, FieldDeficiency)
}

// ParseChronic normalizes a chronic condition value.
func ParseChronic(raw string) (Chronic, error) {
	if c, ok := chronicAliases[normalizeKey(raw)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w %q for %s", ErrInvalidValue, raw, FieldChronic)
}

// ParseFoodType normalizes a food type value to its canonical casing.
func ParseFoodType(raw string) (FoodType, error) {
	if ft, ok := foodTypeAliases[normalizeKey(raw)]; ok {
		return ft, nil
	}
	return "", fmt.Errorf("%w %q for %s", ErrInvalidValue, raw, FieldFoodType)
}

// UserProfile is the form state. Numeric fields keep the raw text the user typed
// so partially typed decimals survive until submission-time coercion.
type UserProfile struct {
	Age           string     `json:"age" yaml:"age"`
	HeightCM      string     `json:"height_cm" yaml:"height_cm"`
	WeightKG      string     `json:"weight_kg" yaml:"weight_kg"`
	ActivityLevel string     `json:"activity_level" yaml:"activity_level"`
	Goal          Goal       `json:"goal" yaml:"goal"`
	Deficiency    Deficiency `json:"deficiency" yaml:"deficiency"`
	Chronic       Chronic    `json:"chronic" yaml:"chronic"`
	CuisinePref   string     `json:"cuisine_pref" yaml:"cuisine_pref"`
	FoodType      FoodType   `json:"food_type" yaml:"food_type"`
	// CalorieTarget is reserved; requests always send null.
	CalorieTarget *float64 `json:"calorie_target" yaml:"calorie_target,omitempty"`
}

// New returns a profile with the form defaults and empty biometrics.
func New() UserProfile {
	return UserProfile{
		ActivityLevel: DefaultActivityLevel,
		Goal:          GoalLoss,
		Deficiency:    DeficiencyNone,
		Chronic:       ChronicNone,
		FoodType:      FoodTypeNone,
	}
}

// Update returns a copy of p with one field set from raw input.
// Numeric fields store raw verbatim and are never rejected here; range limits are
// advisory (see Advisories). Enum fields are normalized, and an out-of-domain value
// returns an error with p unchanged.
func (p UserProfile) Update(field Field, raw string) (UserProfile, error) {
	switch field {
	case FieldAge:
		p.Age = raw
	case FieldHeightCM:
		p.HeightCM = raw
	case FieldWeightKG:
		p.WeightKG = raw
	case FieldActivityLevel:
		p.ActivityLevel = raw
	case FieldGoal:
		g, err := ParseGoal(raw)
		if err != nil {
			return p, err
		}
		p.Goal = g
	case FieldDeficiency:
		d, err := ParseDeficiency(raw)
		if err != nil {
			return p, err
		}
		p.Deficiency = d
	case FieldChronic:
		c, err := ParseChronic(raw)
		if err != nil {
			return p, err
		}
		p.Chronic = c
	case FieldCuisinePref:
		p.CuisinePref = raw
	case FieldFoodType:
		ft, err := ParseFoodType(raw)
		if err != nil {
			return p, err
		}
		p.FoodType = ft
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return p, nil
}

// Value returns the current value of a field as text.
func (p UserProfile) Value(field Field) string {
	switch field {
	case FieldAge:
		return p.Age
	case FieldHeightCM:
		return p.HeightCM
	case FieldWeightKG:
		return p.WeightKG
	case FieldActivityLevel:
		return p.ActivityLevel
	case FieldGoal:
		return string(p.Goal)
	case FieldDeficiency:
		return string(p.Deficiency)
	case FieldChronic:
		return string(p.Chronic)
	case FieldCuisinePref:
		return p.CuisinePref
	case FieldFoodType:
		return string(p.FoodType)
	}
	return ""
}

// OptionLabel returns the display label for the field's current value, or the raw
// value for fields without options.
func (p UserProfile) OptionLabel(field Field) string {
	v := p.Value(field)
	for _, o := range Options(field) {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}
