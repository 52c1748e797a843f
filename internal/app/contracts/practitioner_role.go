package contracts

import (
	"context"
	"provider-directory/internal/pkg/fhir_dto"
)

type PractitionerRoleFhirClient interface {
	CreatePractitionerRole(ctx context.Context, request *fhir_dto.PractitionerRole) (*fhir_dto.PractitionerRole, error)
	CreatePractitionerRoles(ctx context.Context, requests []fhir_dto.PractitionerRole) ([]string, error)
	FindPractitionerRoleByID(ctx context.Context, practitionerRoleID string) (*fhir_dto.PractitionerRoleRecord, error)
	FindPractitionerRolesByPractitionerID(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRoleRecord, error)
	FindAllPractitionerRoles(ctx context.Context) ([]fhir_dto.PractitionerRole, error)
	UpdatePractitionerRole(ctx context.Context, practitionerRoleID string, doc fhir_dto.Document) (*fhir_dto.PractitionerRole, error)
	PatchPractitionerRole(ctx context.Context, practitionerRoleID string, ops []fhir_dto.PatchOperation) (*fhir_dto.PractitionerRole, error)
}
