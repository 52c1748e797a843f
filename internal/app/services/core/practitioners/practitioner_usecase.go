package practitioners

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"provider-directory/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type practitionerUsecase struct {
	PractitionerFhirClient contracts.PractitionerFhirClient
	PlaceholderName        string
	Log                    *zap.Logger
}

// NewPractitionerUsecase builds the practitioner admin usecase. Records whose
// given or family name equals placeholderName are removed by CleanupPlaceholders.
func NewPractitionerUsecase(
	practitionerFhirClient contracts.PractitionerFhirClient,
	placeholderName string,
	logger *zap.Logger,
) contracts.PractitionerUsecase {
	if strings.TrimSpace(placeholderName) == "" {
		placeholderName = constvars.DefaultPlaceholderName
	}
	return &practitionerUsecase{
		PractitionerFhirClient: practitionerFhirClient,
		PlaceholderName:        placeholderName,
		Log:                    logger,
	}
}

func (uc *practitionerUsecase) AddPractitioner(ctx context.Context, request *requests.AddPractitioner) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.AddPractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	existing, err := uc.PractitionerFhirClient.FindPractitionerByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("practitionerUsecase.AddPractitioner error calling PractitionerFhirClient.FindPractitionerByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(existing) > 0 {
		return nil, exceptions.ErrDuplicatePractitioner(len(existing), request.Email)
	}

	created, err := uc.PractitionerFhirClient.CreatePractitioner(ctx, buildPractitioner(request))
	if err != nil {
		uc.Log.Error("practitionerUsecase.AddPractitioner error calling PractitionerFhirClient.CreatePractitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return created, nil
}

func (uc *practitionerUsecase) ListPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.ListPractitioners called", zap.String(constvars.LoggingRequestIDKey, requestID))

	practitioners, err := uc.PractitionerFhirClient.FindAllPractitioners(ctx)
	if err != nil {
		uc.Log.Error("practitionerUsecase.ListPractitioners error calling PractitionerFhirClient.FindAllPractitioners",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return practitioners, nil
}

func (uc *practitionerUsecase) GetPractitioner(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.GetPractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	if strings.TrimSpace(practitionerID) == "" {
		return nil, exceptions.ErrInvalidInput(nil, "practitioner id is required")
	}

	record, err := uc.PractitionerFhirClient.FindPractitionerByID(ctx, practitionerID)
	if err != nil {
		uc.Log.Error("practitionerUsecase.GetPractitioner error calling PractitionerFhirClient.FindPractitionerByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
		return nil, err
	}
	return &record.Practitioner, nil
}

func (uc *practitionerUsecase) DeletePractitioner(ctx context.Context, practitionerID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.DeletePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	if strings.TrimSpace(practitionerID) == "" {
		return exceptions.ErrInvalidInput(nil, "practitioner id is required")
	}
	return uc.PractitionerFhirClient.DeletePractitioner(ctx, practitionerID)
}

// CleanupPlaceholders deletes practitioners named exactly after the
// placeholder sentinel. On a failed delete it stops and returns the ids
// removed so far alongside the error.
func (uc *practitionerUsecase) CleanupPlaceholders(ctx context.Context) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("practitionerUsecase.CleanupPlaceholders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("placeholder_name", uc.PlaceholderName),
	)

	candidates, err := uc.PractitionerFhirClient.FindPractitionersByName(ctx, uc.PlaceholderName)
	if err != nil {
		uc.Log.Error("practitionerUsecase.CleanupPlaceholders error calling PractitionerFhirClient.FindPractitionersByName",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	deleted := []string{}
	for _, practitioner := range candidates {
		if !isPlaceholder(practitioner, uc.PlaceholderName) {
			continue
		}
		if err := uc.PractitionerFhirClient.DeletePractitioner(ctx, practitioner.ID); err != nil {
			uc.Log.Error("practitionerUsecase.CleanupPlaceholders error calling PractitionerFhirClient.DeletePractitioner",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPractitionerIDKey, practitioner.ID),
				zap.Strings("deleted", deleted),
				zap.Error(err),
			)
			return deleted, err
		}
		deleted = append(deleted, practitioner.ID)
	}

	uc.Log.Info("practitionerUsecase.CleanupPlaceholders finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("deleted_count", len(deleted)),
	)
	return deleted, nil
}

func isPlaceholder(practitioner fhir_dto.Practitioner, sentinel string) bool {
	for _, name := range practitioner.Name {
		if name.Family == sentinel {
			return true
		}
		for _, given := range name.Given {
			if given == sentinel {
				return true
			}
		}
	}
	return false
}

func buildPractitioner(request *requests.AddPractitioner) *fhir_dto.Practitioner {
	active := true
	telecom := []fhir_dto.ContactPoint{{
		System: constvars.FhirContactSystemEmail,
		Value:  request.Email,
		Use:    constvars.FhirContactUseWork,
	}}
	if request.Phone != "" {
		telecom = append(telecom, fhir_dto.ContactPoint{
			System: constvars.FhirContactSystemPhone,
			Value:  request.Phone,
			Use:    constvars.FhirContactUseWork,
		})
	}

	return &fhir_dto.Practitioner{
		ResourceType: constvars.ResourcePractitioner,
		Active:       &active,
		Name: []fhir_dto.HumanName{{
			Use:    constvars.FhirNameUseOfficial,
			Family: request.Family,
			Given:  request.Given,
		}},
		Telecom:   telecom,
		Gender:    request.Gender,
		BirthDate: request.BirthDate,
	}
}
