package config

import "time"

type InternalConfig struct {
	App        App        `mapstructure:"app"`
	FHIR       FHIR       `mapstructure:"fhir"`
	Credential Credential `mapstructure:"credential"`
	Onboarding Onboarding `mapstructure:"onboarding"`
	Directory  Directory  `mapstructure:"directory"`
}

type App struct {
	Env                       string        `mapstructure:"env"`
	Port                      string        `mapstructure:"port"`
	Version                   string        `mapstructure:"version"`
	EndpointPrefix            string        `mapstructure:"endpoint_prefix"`
	AllowedOrigins            []string      `mapstructure:"allowed_origins"`
	MaxRequests               int           `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds int           `mapstructure:"max_time_requests_per_seconds"`
	RequestTimeout            time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout           time.Duration `mapstructure:"shutdown_timeout"`
}

type FHIR struct {
	BaseUrl        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// RequestsPerSecond paces outbound calls to the store. Zero or less disables pacing.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Credential selects how bearer tokens for the FHIR store are obtained.
type Credential struct {
	Mode           string        `mapstructure:"mode"`
	StaticToken    string        `mapstructure:"static_token"`
	KeyFile        string        `mapstructure:"key_file"`
	TokenURL       string        `mapstructure:"token_url"`
	Scope          string        `mapstructure:"scope"`
	CacheInRedis   bool          `mapstructure:"cache_in_redis"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type Onboarding struct {
	InviteCodeSource string `mapstructure:"invite_code_source"`
	InviteCodesFile  string `mapstructure:"invite_codes_file"`
	EventQueue       string `mapstructure:"event_queue"`
}

type Directory struct {
	PlaceholderName string `mapstructure:"placeholder_name"`
	ExportBucket    string `mapstructure:"export_bucket"`
}
