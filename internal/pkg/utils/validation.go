package utils

import (
	"provider-directory/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var fhirIDPattern = regexp.MustCompile(constvars.RegexFhirID)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("fhir_id", validateFhirID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateURLParamID checks a resource id taken from the request path.
func ValidateURLParamID(id string) error {
	return validate.Var(id, "required,fhir_id")
}

func validateFhirID(fl validator.FieldLevel) bool {
	return fhirIDPattern.MatchString(fl.Field().String())
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
