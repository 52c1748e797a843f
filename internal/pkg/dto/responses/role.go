package responses

import "provider-directory/internal/pkg/fhir_dto"

type EnsureRole struct {
	Role    *fhir_dto.PractitionerRole `json:"role"`
	Created bool                       `json:"created"`
}

type RoleSummary struct {
	ID               string   `json:"id"`
	PractitionerID   string   `json:"practitioner_id"`
	PractitionerName string   `json:"practitioner_name,omitempty"`
	OrganizationID   string   `json:"organization_id"`
	OrganizationName string   `json:"organization_name,omitempty"`
	Roles            []string `json:"roles"`
	Active           bool     `json:"active"`
}

type CreateRoles struct {
	Locations []string `json:"locations"`
}
