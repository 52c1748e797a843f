package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "PRVDIR_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	CredentialModeStatic         = "static"
	CredentialModeServiceAccount = "service_account"
)

const (
	InviteCodeSourceFile  = "file"
	InviteCodeSourceRedis = "redis"
)

const (
	RegexFhirID = `^[A-Za-z0-9\-\.]{1,64}$`
)
