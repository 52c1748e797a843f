package requests

type AddOrganization struct {
	Name        string   `json:"name" validate:"required"`
	Type        string   `json:"type"`
	ContactName string   `json:"contact_name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Fax         string   `json:"fax"`
	Address     *Address `json:"address"`
	PeriodStart string   `json:"period_start" validate:"omitempty,datetime=2006-01-02"`
	PeriodEnd   string   `json:"period_end" validate:"omitempty,datetime=2006-01-02"`
}

type Address struct {
	Line       []string `json:"line"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
}
