package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/i18n"
)

// Global validator instance for reuse
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name rather than the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// isodate accepts the ISO-8601 shapes the backend and date inputs produce.
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseDate(fl.Field().String())
		return ok
	})

	return v
}

// FieldErrors maps a field name to the key of its first validation message.
type FieldErrors map[string]i18n.Key

// tagMessages maps validation tags to message keys.
var tagMessages = map[string]i18n.Key{
	"required": i18n.ErrRequired,
	"oneof":    i18n.ErrInvalidStatus,
	"isodate":  i18n.ErrInvalid,
}

// runSchema validates schema and converts failures into FieldErrors.
func runSchema(schema any) FieldErrors {
	errs := FieldErrors{}

	err := validate.Struct(schema)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FieldTitle] = i18n.ErrInvalid
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		key, ok := tagMessages[fe.Tag()]
		if !ok {
			key = i18n.ErrInvalid
		}

		// Element errors like keywords[2] belong to the list field.
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
			if fe.Tag() == "required" {
				key = i18n.ErrEmptyKeyword
			}
		}

		if _, seen := errs[field]; !seen {
			errs[field] = key
		}
	}
	return errs
}
