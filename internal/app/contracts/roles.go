package contracts

import (
	"context"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/fhir_dto"
)

type RoleUsecase interface {
	EnsureRole(ctx context.Context, practitionerID, organizationID string, roles []string) (*responses.EnsureRole, error)
	ListRoles(ctx context.Context) ([]responses.RoleSummary, error)
	GetRolesByPractitioner(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRole, error)
	CreateRoles(ctx context.Context, request *requests.CreateRoles) (*responses.CreateRoles, error)
	UpdateRole(ctx context.Context, practitionerRoleID string, doc fhir_dto.Document) (*fhir_dto.PractitionerRole, error)
}
