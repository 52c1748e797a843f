package contracts

import (
	"context"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/fhir_dto"
)

type PractitionerFhirClient interface {
	CreatePractitioner(ctx context.Context, request *fhir_dto.Practitioner) (*fhir_dto.Practitioner, error)
	FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.PractitionerRecord, error)
	FindPractitionerByEmail(ctx context.Context, email string) ([]fhir_dto.Practitioner, error)
	FindPractitionersByName(ctx context.Context, name string) ([]fhir_dto.Practitioner, error)
	FindAllPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, error)
	UpdatePractitioner(ctx context.Context, practitionerID string, doc fhir_dto.Document) (*fhir_dto.Practitioner, error)
	DeletePractitioner(ctx context.Context, practitionerID string) error
}

type PractitionerUsecase interface {
	AddPractitioner(ctx context.Context, request *requests.AddPractitioner) (*fhir_dto.Practitioner, error)
	ListPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, error)
	GetPractitioner(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error)
	DeletePractitioner(ctx context.Context, practitionerID string) error
	CleanupPlaceholders(ctx context.Context) ([]string, error)
}
