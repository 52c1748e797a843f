package contracts

import (
	"context"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/fhir_dto"
)

type OrganizationFhirClient interface {
	CreateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error)
	FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error)
	FindAllOrganizations(ctx context.Context) ([]fhir_dto.Organization, error)
}

type OrganizationUsecase interface {
	AddOrganization(ctx context.Context, request *requests.AddOrganization) (*fhir_dto.Organization, error)
	ListOrganizations(ctx context.Context) ([]fhir_dto.Organization, error)
	GetOrganization(ctx context.Context, organizationID string) (*fhir_dto.Organization, error)
	ExportDirectory(ctx context.Context) (*responses.DirectoryExport, error)
}
