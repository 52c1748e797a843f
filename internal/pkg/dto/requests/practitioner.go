package requests

type AddPractitioner struct {
	Given     []string `json:"given" validate:"required,min=1,dive,required"`
	Family    string   `json:"family" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone"`
	Gender    string   `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	BirthDate string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
}
