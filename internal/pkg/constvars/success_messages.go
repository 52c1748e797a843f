package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	OnboardingRedeemSuccess    = "invite code redeemed"
	CapabilitiesDerivedSuccess = "capabilities derived"
	RoleEnsuredSuccess         = "role ensured"
	RolesListedSuccess         = "roles listed"
	RolesCreatedSuccess        = "roles created"
	RoleUpdatedSuccess         = "role updated"
	CapacityFetchedSuccess     = "capacity fetched"
	CapacityUpdatedSuccess     = "capacity updated"
	CapacityNotSetSuccess      = "no capacity data found for this practitioner role"
	AvailabilityUpdatedSuccess = "availability updated"
	PractitionerCreatedSuccess = "practitioner created"
	PractitionersListedSuccess = "practitioners listed"
	PractitionerFetchedSuccess = "practitioner fetched"
	PractitionerDeletedSuccess = "practitioner deleted"
	PlaceholdersCleanedSuccess = "placeholder practitioners removed"
	OrganizationCreatedSuccess = "organization created"
	OrganizationsListedSuccess = "organizations listed"
	OrganizationFetchedSuccess = "organization fetched"
	DirectoryExportedSuccess   = "organization directory exported"
)
