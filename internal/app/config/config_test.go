package config

import (
	"provider-directory/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewInternalConfig()
		assert.Equal(t, constvars.CredentialModeStatic, cfg.Credential.Mode)
		assert.Equal(t, constvars.InviteCodeSourceFile, cfg.Onboarding.InviteCodeSource)
		assert.Equal(t, constvars.DefaultPlaceholderName, cfg.Directory.PlaceholderName)
		assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CREDENTIAL_MODE", constvars.CredentialModeServiceAccount)
		t.Setenv("FHIR_REQUEST_TIMEOUT", "5s")
		t.Setenv("FHIR_REQUESTS_PER_SECOND", "2.5")
		t.Setenv("APP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("APP_MAX_REQUEST", "not-a-number")

		cfg := NewInternalConfig()
		assert.Equal(t, constvars.CredentialModeServiceAccount, cfg.Credential.Mode)
		assert.Equal(t, 5*time.Second, cfg.FHIR.RequestTimeout)
		assert.Equal(t, 2.5, cfg.FHIR.RequestsPerSecond)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
		assert.Equal(t, 100, cfg.App.MaxRequests)
	})
}
