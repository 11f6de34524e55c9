// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput reports a UserInputs value outside the accepted domain.
var ErrInvalidInput = errors.New("invalid input")

// UserInputs is the validated questionnaire the scoring engine consumes.
// Values are never mutated after construction.
type UserInputs struct {
	Age             int             `json:"age" validate:"gte=18,lte=100"`
	DailyCigarettes int             `json:"daily_cigarettes" validate:"gte=0,lte=80"`
	SmokingYears    int             `json:"smoking_years" validate:"gte=0,lte=60"`
	WorkEnvironment WorkEnvironment `json:"work_environment" validate:"required,work_environment"`
	GeneticHistory  GeneticHistory  `json:"genetic_history" validate:"required,genetic_history"`
	Exercise        Exercise        `json:"exercise" validate:"required,exercise"`
	Diet            Diet            `json:"diet" validate:"required,diet"`
	HeightCM        float64         `json:"height_cm" validate:"gte=100,lte=220"`
	WeightKG        float64         `json:"weight_kg" validate:"gte=30,lte=200"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError lists every rejected field of a UserInputs value.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Param != "" {
			parts[i] = fmt.Sprintf("%s: %s=%s", f.Field, f.Rule, f.Param)
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Rule)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("work_environment", func(fl validator.FieldLevel) bool {
			return WorkEnvironment(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("genetic_history", func(fl validator.FieldLevel) bool {
			return GeneticHistory(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("exercise", func(fl validator.FieldLevel) bool {
			return Exercise(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("diet", func(fl validator.FieldLevel) bool {
			return Diet(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// Validate checks numeric ranges and enum membership. The returned error,
// if any, is a *ValidationError wrapping ErrInvalidInput.
func (u UserInputs) Validate() error {
	err := getValidator().Struct(u)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// Clamp returns a copy with every numeric field forced into its accepted
// range. Enum fields are left untouched.
func (u UserInputs) Clamp() UserInputs {
	u.Age = clampInt(u.Age, AgeRange)
	u.DailyCigarettes = clampInt(u.DailyCigarettes, DailyCigarettesRange)
	u.SmokingYears = clampInt(u.SmokingYears, SmokingYearsRange)
	u.HeightCM = clampFloat(u.HeightCM, HeightRange)
	u.WeightKG = clampFloat(u.WeightKG, WeightRange)
	return u
}

func clampInt(v int, r Range) int {
	return int(clampFloat(float64(v), r))
}

func clampFloat(v float64, r Range) float64 {
	switch {
	case v < r.Min:
		return r.Min
	case v > r.Max:
		return r.Max
	default:
		return v
	}
}
