package exceptions

import (
	"fmt"
	"provider-directory/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return buildKindError(err, KindInvalidInput, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidationFailed, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return buildKindError(err, KindInvalidInput, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrInvalidInput = func(err error, clientMessage string) *CustomError {
		return buildKindError(err, KindInvalidInput, constvars.StatusBadRequest, clientMessage, constvars.ErrDevInvalidInput)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return buildKindError(err, KindInvalidInput, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return buildKindError(err, KindRateLimited, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests)
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return buildKindError(err, KindRemoteRejected, constvars.StatusBadGateway, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevDecodeResponse, resource))
	}
)

// Directory store failures
var (
	ErrUnauthenticated = func(err error) *CustomError {
		return buildKindError(err, KindUnauthenticated, constvars.StatusBadGateway, constvars.ErrClientDirectoryUnavailable, constvars.ErrDevNoCredential)
	}
	ErrCredentialRejected = func(err error) *CustomError {
		return buildKindError(err, KindUnauthenticated, constvars.StatusBadGateway, constvars.ErrClientDirectoryUnavailable, constvars.ErrDevCredentialRejected)
	}
	ErrCredentialKeyInvalid = func(err error) *CustomError {
		return buildKindError(err, KindUnauthenticated, constvars.StatusBadGateway, constvars.ErrClientDirectoryUnavailable, constvars.ErrDevCredentialKeyInvalid)
	}
	ErrTokenExchange = func(err error, tokenURL string) *CustomError {
		return buildKindError(err, KindUnauthenticated, constvars.StatusBadGateway, constvars.ErrClientDirectoryUnavailable, fmt.Sprintf(constvars.ErrDevTokenExchange, tokenURL))
	}
	ErrFHIRResourceNotFound = func(err error, resource, id string) *CustomError {
		return buildKindError(err, KindNotFound, constvars.StatusNotFound, fmt.Sprintf(constvars.ErrClientResourceNotFound, resource), fmt.Sprintf(constvars.ErrDevFHIRResourceNotFound, resource, id))
	}
	ErrCreateFHIRResource = func(err error, resource string) *CustomError {
		return buildKindError(err, KindRemoteRejected, constvars.StatusUnprocessableEntity, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevFHIRCreateRejected, resource))
	}
	ErrUpdateFHIRResource = func(err error, resource string) *CustomError {
		return buildKindError(err, KindRemoteRejected, constvars.StatusUnprocessableEntity, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevFHIRUpdateRejected, resource))
	}
	ErrDeleteFHIRResource = func(err error, resource string) *CustomError {
		return buildKindError(err, KindRemoteRejected, constvars.StatusUnprocessableEntity, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevFHIRDeleteRejected, resource))
	}
	ErrGetFHIRResource = func(err error, resource string) *CustomError {
		return buildKindError(err, KindRemoteRejected, constvars.StatusUnprocessableEntity, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevFHIRRequestRejected, resource))
	}
	ErrPatchFHIRResource = func(err error, resource string) *CustomError {
		return buildKindError(err, KindPatchRejected, constvars.StatusUnprocessableEntity, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevFHIRPatchRejected, resource))
	}
	ErrPatchOpUnsupported = func(op, path string) *CustomError {
		return buildKindError(nil, KindPatchRejected, constvars.StatusUnprocessableEntity, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevFHIRPatchOpUnsupported, op, path))
	}
	ErrRemoteUnavailable = func(err error, resource string) *CustomError {
		return buildKindError(err, KindRemoteUnavailable, constvars.StatusServiceUnavailable, constvars.ErrClientDirectoryUnavailable, fmt.Sprintf(constvars.ErrDevFHIRUnavailable, resource))
	}
	ErrPaginationFailed = func(err error, resource string, pages int) *CustomError {
		return buildKindError(err, KindPaginationFailed, constvars.StatusBadGateway, constvars.ErrClientDirectoryUnavailable, fmt.Sprintf(constvars.ErrDevPaginationFailed, resource, pages))
	}
	ErrPaginationLoop = func(link string) *CustomError {
		return buildKindError(nil, KindRemoteRejected, constvars.StatusBadGateway, constvars.ErrClientDirectoryRejected, fmt.Sprintf(constvars.ErrDevPaginationLoop, link))
	}
)

// Directory domain failures
var (
	ErrDuplicatePractitioner = func(count int, email string) *CustomError {
		return buildKindError(nil, KindDuplicatePractitioner, constvars.StatusConflict, constvars.ErrClientDuplicatePractitioner, fmt.Sprintf(constvars.ErrDevDuplicatePractitioner, count, email))
	}
	ErrInvalidInviteCode = func() *CustomError {
		return buildKindError(nil, KindInvalidCode, constvars.StatusBadRequest, constvars.ErrClientInvalidInviteCode, constvars.ErrDevInvalidInviteCode)
	}
	ErrInviteCodeTierConflict = func(code string) *CustomError {
		return buildKindError(nil, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInviteCodeTierConflict, code))
	}
	ErrInviteCodeLookup = func(err error) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevInviteCodeLookup)
	}
)

// Infrastructure failures
var (
	ErrRedisGet = func(err error, key string) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGet, key))
	}
	ErrRedisSet = func(err error, key string) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisSet, key))
	}
	ErrRedisDelete = func(err error, key string) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisDelete, key))
	}
	ErrRabbitMQPublish = func(err error, queue string) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queue))
	}
	ErrObjectStorageDisabled = func(bucket string) *CustomError {
		return buildKindError(nil, KindRemoteUnavailable, constvars.StatusServiceUnavailable, constvars.ErrClientExportUnavailable, fmt.Sprintf(constvars.ErrDevObjectStorageDisabled, bucket))
	}
	ErrMinioCreateObject = func(err error, bucket string) *CustomError {
		return buildKindError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioCreateObject, bucket))
	}
)
