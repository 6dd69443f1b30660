package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/terra-clan/content-engine/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// contentValidate checks the YAML file structs. Custom tags:
//   - notblank: string is non-empty after trimming whitespace
//   - slug:     lower-case dash-separated identifier
//   - pattern:  member of the closed concept pattern set
var contentValidate *validator.Validate

func init() {
	contentValidate = validator.New()

	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("slug", func(fl validator.FieldLevel) bool {
		return isSlug(fl.Field().String())
	})
	mustRegister("pattern", func(fl validator.FieldLevel) bool {
		return models.Pattern(fl.Field().String()).IsValid()
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := contentValidate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validator: %v", tag, err))
	}
}

func isSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// structDefects runs the struct validator and converts failures to defects
func structDefects(file, ref string, v interface{}) []Defect {
	err := contentValidate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Defect{{File: file, Ref: ref, Message: err.Error()}}
	}

	defects := make([]Defect, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		defects = append(defects, Defect{
			File:    file,
			Ref:     ref,
			Message: describeFieldError(fe),
		})
	}
	return defects
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "slug":
		return fmt.Sprintf("%s %q is not a lower-case dash-separated id", field, fe.Value())
	case "pattern":
		return fmt.Sprintf("%s %q is not a known concept pattern", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of [%s]", field, fe.Value(), fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
