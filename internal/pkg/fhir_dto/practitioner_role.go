package fhir_dto

type PractitionerRole struct {
	ResourceType  string            `json:"resourceType"`
	ID            string            `json:"id,omitempty"`
	Meta          *Meta             `json:"meta,omitempty"`
	Active        *bool             `json:"active,omitempty"`
	Period        *Period           `json:"period,omitempty"`
	Practitioner  *Reference        `json:"practitioner,omitempty"`
	Organization  *Reference        `json:"organization,omitempty"`
	Code          []CodeableConcept `json:"code,omitempty"`
	Specialty     []CodeableConcept `json:"specialty,omitempty"`
	AvailableTime []AvailableTime   `json:"availableTime,omitempty"`
	Extension     []Extension       `json:"extension,omitempty"`
}

// RoleCodes flattens code[].coding[].code in document order.
func (pr *PractitionerRole) RoleCodes() []string {
	var codes []string
	for _, concept := range pr.Code {
		for _, coding := range concept.Coding {
			if coding.Code != "" {
				codes = append(codes, coding.Code)
			}
		}
	}
	return codes
}

func (pr *PractitionerRole) OrganizationReference() string {
	if pr.Organization == nil {
		return ""
	}
	return pr.Organization.Reference
}

func (pr *PractitionerRole) PractitionerReference() string {
	if pr.Practitioner == nil {
		return ""
	}
	return pr.Practitioner.Reference
}
