package profile

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requiredForSubmission are checked in this order.
var requiredForSubmission = []Field{FieldAge, FieldHeightCM, FieldWeightKG}

// ValidationResult reports whether a profile may be submitted.
type ValidationResult struct {
	OK            bool    `json:"ok"`
	MissingFields []Field `json:"missing_fields,omitempty"`
}

// ValidateForSubmission fails when age, height or weight is empty or not numeric.
// Enums and numeric ranges are not checked.
func ValidateForSubmission(p UserProfile) ValidationResult {
	var missing []Field
	for _, f := range requiredForSubmission {
		if _, ok := ParseNumber(p.Value(f)); !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return ValidationResult{MissingFields: missing}
	}
	return ValidationResult{OK: true}
}

// Err returns nil when OK, otherwise an *IncompleteError.
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return &IncompleteError{Fields: r.MissingFields}
}

// IncompleteError blocks a submission because required numeric fields are missing.
type IncompleteError struct {
	Fields []Field
}

func (e *IncompleteError) Error() string {
	labels := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		labels[i] = f.Label()
	}
	return "please enter a number for: " + strings.Join(labels, ", ")
}

// Advisory is a non-blocking warning about an out-of-range value.
type Advisory struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// advisoryInput is the coerced view of a profile that range tags run against.
// Nil pointers are fields that could not be coerced; they are skipped.
type advisoryInput struct {
	Age           *int     `json:"age" validate:"omitempty,min=10,max=100"`
	HeightCM      *float64 `json:"height_cm" validate:"omitempty,min=100,max=250"`
	WeightKG      *float64 `json:"weight_kg" validate:"omitempty,min=30,max=200"`
	ActivityLevel *string  `json:"activity_level" validate:"omitempty,oneof=1.2 1.375 1.55 1.725 1.9"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		return name
	})
	return v
}

// Advisories returns range warnings for the numeric fields that parse.
func Advisories(p UserProfile) []Advisory {
	var in advisoryInput
	if age, ok := ParseInteger(p.Age); ok {
		in.Age = &age
	}
	if h, ok := ParseNumber(p.HeightCM); ok {
		in.HeightCM = &h
	}
	if w, ok := ParseNumber(p.WeightKG); ok {
		in.WeightKG = &w
	}
	if a, ok := ParseNumber(p.ActivityLevel); ok {
		canonical := strconv.FormatFloat(a, 'f', -1, 64)
		in.ActivityLevel = &canonical
	} else if strings.TrimSpace(p.ActivityLevel) != "" {
		raw := p.ActivityLevel
		in.ActivityLevel = &raw
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Advisory{{Message: err.Error()}}
	}

	out := make([]Advisory, 0, len(verrs))
	for _, fe := range verrs {
		f := Field(fe.Field())
		out = append(out, Advisory{Field: f, Message: advisoryMessage(f, fe)})
	}
	return out
}

func advisoryMessage(f Field, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s is below the usual minimum of %s", f.Label(), fe.Param())
	case "max":
		return fmt.Sprintf("%s is above the usual maximum of %s", f.Label(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s should be one of %s", f.Label(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s failed %s", f.Label(), fe.Tag())
}
