package utils

import (
	"provider-directory/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURLParamID(t *testing.T) {
	assert.NoError(t, ValidateURLParamID("abc-123.4"))
	assert.Error(t, ValidateURLParamID(""))
	assert.Error(t, ValidateURLParamID("Practitioner/1"))
	assert.Error(t, ValidateURLParamID("has space"))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type payload struct {
		FullName string `json:"full_name" validate:"required"`
	}

	err := ValidateStruct(payload{})
	assert.Error(t, err)
	assert.Equal(t, "full_name is required", exceptions.FormatFirstValidationError(err))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"provider", "client"}, SplitCSV(" provider, ,client,"))
	assert.Nil(t, SplitCSV(""))
}
