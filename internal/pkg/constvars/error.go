package constvars

// Validation messages, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"oneof":         "must be one of %s",
	"gte":           "must be greater than or equal to %s",
	"datetime":      "must be a date in %s format",
	"dive":          "contains an invalid item",
	"required_with": "is required together with %s",
}

// Tags whose message embeds the validator param
var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"oneof":         true,
	"gte":           true,
	"datetime":      true,
	"required_with": true,
}
