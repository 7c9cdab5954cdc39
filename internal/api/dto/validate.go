package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/staffdesk/staff-service/pkg/util/errorutil"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks struct tags and returns a VALIDATION_FAILED error keyed by JSON field names.
func Validate(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return apperrors.NewValidationErrors(err)
	}
	return nil
}
