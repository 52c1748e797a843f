package responses

type Redeem struct {
	Tier                string `json:"tier"`
	PractitionerID      string `json:"practitioner_id"`
	OrganizationID      string `json:"organization_id,omitempty"`
	RoleID              string `json:"role_id,omitempty"`
	PractitionerCreated bool   `json:"practitioner_created"`
	RoleCreated         bool   `json:"role_created"`
	Message             string `json:"message"`
}

type Capabilities struct {
	Roles    []string `json:"roles"`
	Subjects []string `json:"subjects"`
}
