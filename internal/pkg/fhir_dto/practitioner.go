package fhir_dto

import "strings"

type Practitioner struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id,omitempty"`
	Meta         *Meta          `json:"meta,omitempty"`
	Active       *bool          `json:"active,omitempty"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
	Address      []Address      `json:"address,omitempty"`
	Extension    []Extension    `json:"extension,omitempty"`
}

// Email returns the first email contact point value.
func (p *Practitioner) Email() string {
	for _, telecom := range p.Telecom {
		if telecom.System == "email" {
			return telecom.Value
		}
	}
	return ""
}

// DisplayName renders the first name entry as "Given Family".
func (p *Practitioner) DisplayName() string {
	if len(p.Name) == 0 {
		return ""
	}
	name := p.Name[0]
	if name.Text != "" {
		return name.Text
	}
	parts := append([]string{}, name.Given...)
	if name.Family != "" {
		parts = append(parts, name.Family)
	}
	return strings.Join(parts, " ")
}
