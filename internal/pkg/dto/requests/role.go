package requests

import "provider-directory/internal/pkg/fhir_dto"

type EnsureRole struct {
	PractitionerID string   `json:"practitioner_id" validate:"required"`
	OrganizationID string   `json:"organization_id" validate:"required"`
	Roles          []string `json:"roles" validate:"required,min=1,dive,required"`
}

type CreateRoles struct {
	Roles []EnsureRole `json:"roles" validate:"required,min=1,dive"`
}

type SetCapacity struct {
	fhir_dto.Capacity
}

type SetAvailability struct {
	AvailableTime []fhir_dto.AvailableTime `json:"available_time" validate:"required,min=1,dive"`
}
