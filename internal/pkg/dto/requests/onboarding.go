package requests

// RedeemInviteCode carries the code plus the identity asserted by the upstream authenticator.
type RedeemInviteCode struct {
	Code     string `json:"code" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
}
