package recipe

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// FieldError names one draft field that failed validation
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists every reason a draft cannot be submitted
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field + " (" + f.Rule + ")"
	}
	return domain.ErrMsgInvalidDraft + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidDraft
}

// draftCheck is the validated view of a draft
type draftCheck struct {
	Name              string             `json:"name" validate:"notblank"`
	Ingredients       []string           `json:"ingredients" validate:"min=1"`
	PreparationMethod []string           `json:"preparationMethod" validate:"min=1,dive,notblank"`
	PreparationTime   int                `json:"preparationTime" validate:"gt=0"`
	NutritionalValues map[string]float64 `json:"nutritionalValues"`

	requireNutrition bool
}

var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		d := sl.Current().Interface().(draftCheck)
		if d.requireNutrition && len(d.NutritionalValues) == 0 {
			sl.ReportError(d.NutritionalValues, "nutritionalValues", "NutritionalValues", "required", "")
		}
	}, draftCheck{})
	return v
}

func validateDraft(d draftCheck) error {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldName(fe), Rule: fe.Tag()})
	}
	return out
}

// fieldName drops the struct prefix and any dive index
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
