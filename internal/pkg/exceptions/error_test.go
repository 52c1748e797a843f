package exceptions

import (
	"context"
	"errors"
	"fmt"
	"provider-directory/internal/pkg/constvars"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	t.Run("direct kind", func(t *testing.T) {
		err := ErrFHIRResourceNotFound(nil, constvars.ResourcePractitioner, "P1")
		assert.True(t, IsKind(err, KindNotFound))
		assert.False(t, IsKind(err, KindRemoteRejected))
		assert.Equal(t, constvars.StatusNotFound, err.StatusCode)
	})

	t.Run("kind survives rewrapping", func(t *testing.T) {
		inner := ErrDuplicatePractitioner(2, "a@b.c")
		outer := BuildNewCustomError(inner, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, "redeem failed")
		wrapped := fmt.Errorf("handler: %w", outer)

		assert.True(t, IsKind(wrapped, KindDuplicatePractitioner))
		assert.Equal(t, KindInternal, KindOf(wrapped))
		assert.Len(t, outer.Locations, 2)
	})

	t.Run("rate limiting has its own kind", func(t *testing.T) {
		err := ErrTooManyRequests(nil)
		assert.Equal(t, KindRateLimited, KindOf(err))
		assert.False(t, IsKind(err, KindInvalidInput))
		assert.Equal(t, constvars.StatusTooManyRequests, err.StatusCode)
	})

	t.Run("plain error has no kind", func(t *testing.T) {
		assert.False(t, IsKind(errors.New("boom"), KindInternal))
		assert.False(t, IsKind(nil, KindNotFound))
	})
}

func TestCustomErrorUnwrap(t *testing.T) {
	err := ErrRemoteUnavailable(context.DeadlineExceeded, constvars.ResourceOrganization)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "FHIR store unavailable while calling Organization")
	assert.Contains(t, err.Error(), "error_test.go")
}

func TestFormatFirstValidationError(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Tier  string `validate:"oneof=user admin"`
	}
	validate := validator.New()

	t.Run("required", func(t *testing.T) {
		err := validate.Struct(payload{Tier: "user"})
		assert.Equal(t, "email is required", FormatFirstValidationError(err))
	})

	t.Run("oneof lists options", func(t *testing.T) {
		err := validate.Struct(payload{Email: "a@b.c", Tier: "root"})
		assert.Equal(t, "tier must be one of user, admin", FormatFirstValidationError(err))
	})

	t.Run("non validation error", func(t *testing.T) {
		assert.Equal(t, constvars.ErrClientInvalidInput, FormatFirstValidationError(errors.New("x")))
	})
}
