package fhir_dto

type Organization struct {
	ResourceType string                `json:"resourceType"`
	ID           string                `json:"id,omitempty"`
	Meta         *Meta                 `json:"meta,omitempty"`
	Active       *bool                 `json:"active,omitempty"`
	Identifier   []Identifier          `json:"identifier,omitempty"`
	Type         []CodeableConcept     `json:"type,omitempty"`
	Name         string                `json:"name,omitempty"`
	Alias        []string              `json:"alias,omitempty"`
	Telecom      []ContactPoint        `json:"telecom,omitempty"`
	Address      []Address             `json:"address,omitempty"`
	PartOf       *Reference            `json:"partOf,omitempty"`
	Contact      []OrganizationContact `json:"contact,omitempty"`
}

type OrganizationContact struct {
	Purpose *CodeableConcept `json:"purpose,omitempty"`
	Name    *HumanName       `json:"name,omitempty"`
	Telecom []ContactPoint   `json:"telecom,omitempty"`
	Address *Address         `json:"address,omitempty"`
	Period  *Period          `json:"period,omitempty"`
}
