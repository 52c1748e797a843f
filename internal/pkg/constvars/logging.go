package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingResourceTypeKey   = "resource_type"
	LoggingResourceIDKey     = "resource_id"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingOrganizationIDKey = "organization_id"
	LoggingRoleIDKey         = "role_id"
	LoggingRolesKey          = "roles"
	LoggingEmailKey          = "email"
	LoggingInviteTierKey     = "invite_tier"
	LoggingPageCountKey      = "page_count"
	LoggingCollectedKey      = "collected"
	LoggingPatchOpsKey       = "patch_ops"
	LoggingObjectNameKey     = "object_name"
)
