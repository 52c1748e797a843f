package capacity

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type capacityUsecase struct {
	PractitionerRoleFhirClient contracts.PractitionerRoleFhirClient
	Log                        *zap.Logger
}

func NewCapacityUsecase(practitionerRoleFhirClient contracts.PractitionerRoleFhirClient, logger *zap.Logger) contracts.CapacityUsecase {
	return &capacityUsecase{
		PractitionerRoleFhirClient: practitionerRoleFhirClient,
		Log:                        logger,
	}
}

func (uc *capacityUsecase) GetCapacity(ctx context.Context, practitionerRoleID string) (*fhir_dto.Capacity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("capacityUsecase.GetCapacity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
	)

	record, err := uc.PractitionerRoleFhirClient.FindPractitionerRoleByID(ctx, practitionerRoleID)
	if err != nil {
		return nil, err
	}

	index := capacityIndex(&record.Role)
	if index < 0 {
		return nil, nil
	}
	capacity, err := fhir_dto.CapacityFromExtension(record.Role.Extension[index])
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}
	return &capacity, nil
}

func (uc *capacityUsecase) SetCapacity(ctx context.Context, practitionerRoleID string, capacity fhir_dto.Capacity) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("capacityUsecase.SetCapacity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
	)

	return uc.apply(ctx, practitionerRoleID,
		func(role *fhir_dto.PractitionerRole) []fhir_dto.PatchOperation {
			return PlanCapacityPatch(role, capacity)
		},
		func(record *fhir_dto.PractitionerRoleRecord) error {
			return setCapacityExtension(record, capacity)
		},
	)
}

func (uc *capacityUsecase) SetAvailability(ctx context.Context, practitionerRoleID string, availability []fhir_dto.AvailableTime) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("capacityUsecase.SetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
	)

	return uc.apply(ctx, practitionerRoleID,
		func(role *fhir_dto.PractitionerRole) []fhir_dto.PatchOperation {
			return PlanAvailabilityPatch(role, availability)
		},
		func(record *fhir_dto.PractitionerRoleRecord) error {
			return record.Document.Set("availableTime", availability)
		},
	)
}

// apply re-reads the role, patches it with the planned ops, and when the
// store refuses the patch writes the whole document once with the change
// made locally.
func (uc *capacityUsecase) apply(
	ctx context.Context,
	practitionerRoleID string,
	plan func(role *fhir_dto.PractitionerRole) []fhir_dto.PatchOperation,
	applyLocally func(record *fhir_dto.PractitionerRoleRecord) error,
) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	record, err := uc.PractitionerRoleFhirClient.FindPractitionerRoleByID(ctx, practitionerRoleID)
	if err != nil {
		uc.Log.Error("capacityUsecase.apply error calling PractitionerRoleFhirClient.FindPractitionerRoleByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
			zap.Error(err),
		)
		return nil, err
	}

	ops := plan(&record.Role)
	patched, err := uc.PractitionerRoleFhirClient.PatchPractitionerRole(ctx, practitionerRoleID, ops)
	if err == nil {
		return patched, nil
	}
	if !exceptions.IsKind(err, exceptions.KindPatchRejected) {
		uc.Log.Error("capacityUsecase.apply error calling PractitionerRoleFhirClient.PatchPractitionerRole",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Warn("capacityUsecase.apply patch rejected, writing whole document",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
		zap.Error(err),
	)
	if err := applyLocally(record); err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return uc.PractitionerRoleFhirClient.UpdatePractitionerRole(ctx, practitionerRoleID, record.Document)
}

// setCapacityExtension writes the capacity extension into the raw extension
// member at the same position the patch would have used.
func setCapacityExtension(record *fhir_dto.PractitionerRoleRecord, capacity fhir_dto.Capacity) error {
	var extensions []json.RawMessage
	if raw, ok := record.Document["extension"]; ok {
		if err := json.Unmarshal(raw, &extensions); err != nil {
			return err
		}
	}

	value, err := json.Marshal(capacity.ToExtension(constvars.FhirCapacityExtensionURL))
	if err != nil {
		return err
	}

	if index := capacityIndex(&record.Role); index >= 0 && index < len(extensions) {
		extensions[index] = value
	} else {
		extensions = append(extensions, value)
	}
	return record.Document.Set("extension", extensions)
}
