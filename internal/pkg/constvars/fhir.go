package constvars

const (
	ResourcePractitioner     = "Practitioner"
	ResourcePractitionerRole = "PractitionerRole"
	ResourceOrganization     = "Organization"
	ResourceBundle           = "Bundle"
	ResourceOperationOutcome = "OperationOutcome"
)

const (
	FhirBundleTypeTransaction = "transaction"
	FhirBundleLinkNext        = "next"
	FhirContactSystemEmail    = "email"
	FhirContactSystemPhone    = "phone"
	FhirContactSystemFax      = "fax"
	FhirContactUseWork        = "work"
	FhirNameUseOfficial       = "official"
)

const (
	FhirPatchOpAdd     = "add"
	FhirPatchOpReplace = "replace"
)

const (
	FhirPathExtensionAppend = "/extension/-"
	FhirPathExtensionIndex  = "/extension/%d"
	FhirPathAvailableTime   = "/availableTime"
)

const (
	FhirCapacityExtensionURL = "https://combinebh.org/resources/FHIRResources/PractitionerCapacityFHIRExtension.html"
	FhirCapacityChildren     = "children"
	FhirCapacityAdults       = "adults"
	FhirCapacityTeens        = "teens"
	FhirCapacityCouples      = "couples"
	FhirCapacityFamilies     = "families"
)

const (
	FhirContactEntityTypeSystem = "http://terminology.hl7.org/CodeSystem/contactentity-type"
	FhirContactEntityTypeAdmin  = "ADMIN"
	FhirRoleCodeSystem          = "http://combinebh.org/fhir/CodeSystem/practitioner-role"
)

const (
	FhirReferenceFormat = "%s/%s"
	FhirSearchPageSize  = "100"
)

// Role codes carried on PractitionerRole.code
const (
	RoleAdmin       = "admin"
	RoleOrgAdmin    = "orgadmin"
	RoleSupervisor  = "supervisor"
	RoleProvider    = "provider"
	RoleCoordinator = "coordinator"
	RoleReferrer    = "referrer"
	RoleClient      = "client"
)

const (
	InviteTierUser  = "user"
	InviteTierAdmin = "admin"
)

const (
	DefaultPlaceholderName      = "Placeholder"
	DirectoryExportObjectFormat = "organizations/%s.json"
)

const (
	FhirOrganizationTypeSystem = "http://terminology.hl7.org/CodeSystem/organization-type"
	FhirAddressUseWork         = "work"
	FhirAddressTypeBoth        = "both"
)
