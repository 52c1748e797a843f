package config

import (
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
			Enabled:  utils.GetEnvBool("MINIO_ENABLED", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                      utils.GetEnvString("APP_PORT", "8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:            utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestTimeout:            utils.GetEnvDuration("APP_REQUEST_TIMEOUT", 60*time.Second),
			ShutdownTimeout:           utils.GetEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		FHIR: FHIR{
			BaseUrl:           utils.GetEnvString("FHIR_BASE_URL", "http://localhost:8081/fhir"),
			RequestTimeout:    utils.GetEnvDuration("FHIR_REQUEST_TIMEOUT", 30*time.Second),
			RequestsPerSecond: utils.GetEnvFloat("FHIR_REQUESTS_PER_SECOND", 10),
			Burst:             utils.GetEnvInt("FHIR_BURST", 20),
		},
		Credential: Credential{
			Mode:           utils.GetEnvString("CREDENTIAL_MODE", constvars.CredentialModeStatic),
			StaticToken:    utils.GetEnvString("CREDENTIAL_STATIC_TOKEN", ""),
			KeyFile:        utils.GetEnvString("CREDENTIAL_KEY_FILE", ""),
			TokenURL:       utils.GetEnvString("CREDENTIAL_TOKEN_URL", ""),
			Scope:          utils.GetEnvString("CREDENTIAL_SCOPE", "https://www.googleapis.com/auth/cloud-healthcare"),
			CacheInRedis:   utils.GetEnvBool("CREDENTIAL_CACHE_IN_REDIS", false),
			RequestTimeout: utils.GetEnvDuration("CREDENTIAL_REQUEST_TIMEOUT", 15*time.Second),
		},
		Onboarding: Onboarding{
			InviteCodeSource: utils.GetEnvString("ONBOARDING_INVITE_CODE_SOURCE", constvars.InviteCodeSourceFile),
			InviteCodesFile:  utils.GetEnvString("ONBOARDING_INVITE_CODES_FILE", "invite_codes.json"),
			EventQueue:       utils.GetEnvString("ONBOARDING_EVENT_QUEUE", "directory.onboarding"),
		},
		Directory: Directory{
			PlaceholderName: utils.GetEnvString("DIRECTORY_PLACEHOLDER_NAME", constvars.DefaultPlaceholderName),
			ExportBucket:    utils.GetEnvString("DIRECTORY_EXPORT_BUCKET", "directory-exports"),
		},
	}
}
