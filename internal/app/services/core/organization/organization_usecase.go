package organization

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"provider-directory/internal/pkg/utils"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type organizationUsecase struct {
	OrganizationFhirClient contracts.OrganizationFhirClient
	ObjectStorage          contracts.ObjectStorage
	ExportBucket           string
	Now                    func() time.Time
	Log                    *zap.Logger
}

func NewOrganizationUsecase(
	organizationFhirClient contracts.OrganizationFhirClient,
	objectStorage contracts.ObjectStorage,
	exportBucket string,
	logger *zap.Logger,
) contracts.OrganizationUsecase {
	return &organizationUsecase{
		OrganizationFhirClient: organizationFhirClient,
		ObjectStorage:          objectStorage,
		ExportBucket:           exportBucket,
		Now:                    time.Now,
		Log:                    logger,
	}
}

func (uc *organizationUsecase) AddOrganization(ctx context.Context, request *requests.AddOrganization) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.AddOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("organization_name", request.Name),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	created, err := uc.OrganizationFhirClient.CreateOrganization(ctx, buildOrganization(request))
	if err != nil {
		uc.Log.Error("organizationUsecase.AddOrganization error calling OrganizationFhirClient.CreateOrganization",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return created, nil
}

func (uc *organizationUsecase) ListOrganizations(ctx context.Context) ([]fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.ListOrganizations called", zap.String(constvars.LoggingRequestIDKey, requestID))

	organizations, err := uc.OrganizationFhirClient.FindAllOrganizations(ctx)
	if err != nil {
		uc.Log.Error("organizationUsecase.ListOrganizations error calling OrganizationFhirClient.FindAllOrganizations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return organizations, nil
}

func (uc *organizationUsecase) GetOrganization(ctx context.Context, organizationID string) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.GetOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	if strings.TrimSpace(organizationID) == "" {
		return nil, exceptions.ErrInvalidInput(nil, "organization id is required")
	}

	organization, err := uc.OrganizationFhirClient.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		uc.Log.Error("organizationUsecase.GetOrganization error calling OrganizationFhirClient.FindOrganizationByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrganizationIDKey, organizationID),
			zap.Error(err),
		)
		return nil, err
	}
	return organization, nil
}

// ExportDirectory writes every organization as one JSON array object.
// A failed collect writes nothing.
func (uc *organizationUsecase) ExportDirectory(ctx context.Context) (*responses.DirectoryExport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("organizationUsecase.ExportDirectory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("bucket", uc.ExportBucket),
	)

	organizations, err := uc.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	if organizations == nil {
		organizations = []fhir_dto.Organization{}
	}

	data, err := json.Marshal(organizations)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := utils.GenerateExportObjectName(uc.Now())
	if err := uc.ObjectStorage.PutJSON(ctx, uc.ExportBucket, objectName, data); err != nil {
		uc.Log.Error("organizationUsecase.ExportDirectory error calling ObjectStorage.PutJSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("organizationUsecase.ExportDirectory wrote snapshot",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingCollectedKey, len(organizations)),
	)
	return &responses.DirectoryExport{ObjectName: objectName, Count: len(organizations)}, nil
}

func buildOrganization(request *requests.AddOrganization) *fhir_dto.Organization {
	active := true
	organization := &fhir_dto.Organization{
		ResourceType: constvars.ResourceOrganization,
		Active:       &active,
		Name:         request.Name,
	}
	if request.Type != "" {
		organization.Type = []fhir_dto.CodeableConcept{{
			Coding: []fhir_dto.Coding{{System: constvars.FhirOrganizationTypeSystem, Code: request.Type}},
		}}
	}

	contact := fhir_dto.OrganizationContact{
		Purpose: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{
				System: constvars.FhirContactEntityTypeSystem,
				Code:   constvars.FhirContactEntityTypeAdmin,
			}},
		},
	}
	if request.ContactName != "" {
		contact.Name = &fhir_dto.HumanName{Text: request.ContactName}
	}
	for _, point := range []fhir_dto.ContactPoint{
		{System: constvars.FhirContactSystemPhone, Value: request.Phone},
		{System: constvars.FhirContactSystemEmail, Value: request.Email},
		{System: constvars.FhirContactSystemFax, Value: request.Fax},
	} {
		if point.Value != "" {
			contact.Telecom = append(contact.Telecom, point)
		}
	}
	if request.Address != nil {
		contact.Address = &fhir_dto.Address{
			Use:        constvars.FhirAddressUseWork,
			Type:       constvars.FhirAddressTypeBoth,
			Text:       request.Address.City,
			Line:       request.Address.Line,
			City:       request.Address.City,
			State:      request.Address.State,
			PostalCode: request.Address.PostalCode,
			Country:    request.Address.Country,
		}
	}
	if request.PeriodStart != "" || request.PeriodEnd != "" {
		contact.Period = &fhir_dto.Period{Start: request.PeriodStart, End: request.PeriodEnd}
	}

	organization.Contact = []fhir_dto.OrganizationContact{contact}
	return organization
}
