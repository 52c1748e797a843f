package contracts

import (
	"context"
	"provider-directory/internal/pkg/fhir_dto"
)

type CapacityUsecase interface {
	GetCapacity(ctx context.Context, practitionerRoleID string) (*fhir_dto.Capacity, error)
	SetCapacity(ctx context.Context, practitionerRoleID string, capacity fhir_dto.Capacity) (*fhir_dto.PractitionerRole, error)
	SetAvailability(ctx context.Context, practitionerRoleID string, availability []fhir_dto.AvailableTime) (*fhir_dto.PractitionerRole, error)
}
