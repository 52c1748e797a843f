package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientDirectoryUnavailable          = "the provider directory is unavailable, please try again later"
	ErrClientDirectoryRejected             = "the provider directory rejected the request"
	ErrClientResourceNotFound              = "the requested %s does not exist"
	ErrClientInvalidInviteCode             = "the invite code is not valid"
	ErrClientDuplicatePractitioner         = "more than one practitioner is registered with this email, please contact an administrator"
	ErrClientInvalidInput                  = "the request is not valid"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientExportUnavailable             = "directory export is not configured"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "request validation failed"
	ErrDevTooManyRequests            = "request rate limit exceeded"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevURLParamIDValidationFailed = "url param %s validation failed"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevDecodeResponse             = "failed to decode %s response"
	ErrDevNoCredential               = "no bearer credential could be obtained for the FHIR store"
	ErrDevCredentialRejected         = "FHIR store rejected the bearer credential"
	ErrDevCredentialKeyInvalid       = "service account key is invalid"
	ErrDevTokenExchange              = "token exchange with %s failed"
	ErrDevFHIRResourceNotFound       = "FHIR %s %s not found"
	ErrDevFHIRCreateRejected         = "FHIR store rejected create of %s"
	ErrDevFHIRUpdateRejected         = "FHIR store rejected update of %s"
	ErrDevFHIRDeleteRejected         = "FHIR store rejected delete of %s"
	ErrDevFHIRPatchRejected          = "FHIR store rejected patch of %s"
	ErrDevFHIRPatchOpUnsupported     = "unsupported patch op %q at %s"
	ErrDevFHIRRequestRejected        = "FHIR store rejected request for %s"
	ErrDevFHIRUnavailable            = "FHIR store unavailable while calling %s"
	ErrDevPaginationFailed           = "pagination of %s failed after %d pages"
	ErrDevPaginationLoop             = "next link %s already visited"
	ErrDevDuplicatePractitioner      = "found %d practitioners with email %s"
	ErrDevInvalidInviteCode          = "invite code not found in any tier"
	ErrDevInviteCodeTierConflict     = "invite code %s present in both tiers"
	ErrDevInviteCodeLookup           = "invite code lookup failed"
	ErrDevRedisGet                   = "failed to get key %s from redis"
	ErrDevRedisSet                   = "failed to set key %s in redis"
	ErrDevRedisDelete                = "failed to delete key %s from redis"
	ErrDevRabbitMQPublish            = "failed to publish message to queue %s"
	ErrDevMinioCreateObject          = "failed to create object in bucket %s"
	ErrDevObjectStorageDisabled      = "object storage disabled, cannot write to bucket %s"
)
