package utils

import (
	"net/http"
	"provider-directory/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// DecodeAndValidate reads a JSON body into target and runs its validate tags.
func DecodeAndValidate(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(target); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
