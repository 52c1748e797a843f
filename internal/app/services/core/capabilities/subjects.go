package capabilities

import "provider-directory/internal/pkg/constvars"

// Subject is one navigable area of the directory and the roles that may see it.
type Subject struct {
	Name         string
	AllowedRoles []string
	SubSubjects  []Subject
}

const (
	admin       = constvars.RoleAdmin
	orgadmin    = constvars.RoleOrgAdmin
	supervisor  = constvars.RoleSupervisor
	provider    = constvars.RoleProvider
	coordinator = constvars.RoleCoordinator
	referrer    = constvars.RoleReferrer
	client      = constvars.RoleClient
)

var (
	staffAndClients = []string{admin, orgadmin, provider, client}
	referralRoles   = []string{admin, orgadmin, supervisor, provider, coordinator, referrer, client}
)

// Subjects is the navigation table Derive evaluates.
var Subjects = []Subject{
	{Name: "Provider Clients", AllowedRoles: []string{admin, provider}},
	{Name: "Organization Clients", AllowedRoles: []string{admin, orgadmin}},
	{Name: "Cori Clients", AllowedRoles: []string{admin}},
	{Name: "Organization Staff", AllowedRoles: []string{admin, orgadmin}},
	{Name: "Organization Admin", AllowedRoles: []string{admin, orgadmin}},
	{Name: "Cori Staff", AllowedRoles: []string{admin}},
	{
		Name:         "User Settings",
		AllowedRoles: staffAndClients,
		SubSubjects: []Subject{
			{Name: "SMSSettings", AllowedRoles: staffAndClients},
			{Name: "EmailSettings", AllowedRoles: staffAndClients},
			{Name: "GovernmentName", AllowedRoles: staffAndClients},
			{Name: "PreferredName", AllowedRoles: staffAndClients},
			{Name: "Pronouns", AllowedRoles: staffAndClients},
			{Name: "DemoData", AllowedRoles: []string{admin, provider}},
		},
	},
	{
		Name:         "Consents",
		AllowedRoles: staffAndClients,
		SubSubjects: []Subject{
			{Name: "SMSConsents", AllowedRoles: staffAndClients},
			{Name: "EmailConsents", AllowedRoles: staffAndClients},
			{Name: "ROIs", AllowedRoles: staffAndClients},
			{Name: "RevokeConsents", AllowedRoles: []string{admin, client}},
		},
	},
	{Name: "OrganizationSearch", AllowedRoles: []string{admin, client}},
	{
		Name:         "Notifications",
		AllowedRoles: staffAndClients,
		SubSubjects: []Subject{
			{Name: "ReadNotifications", AllowedRoles: staffAndClients},
			{Name: "DeleteNotifications", AllowedRoles: []string{admin, orgadmin}},
		},
	},
	{
		Name:         "Messages",
		AllowedRoles: staffAndClients,
		SubSubjects: []Subject{
			{Name: "CreateMessage", AllowedRoles: staffAndClients},
			{Name: "ReadMessages", AllowedRoles: staffAndClients},
			{Name: "ReplyMessage", AllowedRoles: staffAndClients},
			{Name: "ForwardMessage", AllowedRoles: []string{admin, orgadmin, provider}},
			{Name: "DeleteMessage", AllowedRoles: []string{admin, orgadmin}},
		},
	},
	{Name: "Capacity", AllowedRoles: []string{admin, provider}},
	{
		Name:         "Referrals",
		AllowedRoles: referralRoles,
		SubSubjects: []Subject{
			{Name: "CreateReferral", AllowedRoles: []string{admin, orgadmin, provider, coordinator, referrer, client}},
			{Name: "DeleteReferral", AllowedRoles: []string{admin, orgadmin, client}},
			{Name: "ReferralHistory", AllowedRoles: []string{admin, orgadmin, supervisor, coordinator, client}},
			{Name: "LeaveReferral", AllowedRoles: []string{admin, client}},
		},
	},
	{
		Name:         "Admin",
		AllowedRoles: []string{admin, orgadmin},
		SubSubjects: []Subject{
			{Name: "AllOrganizations", AllowedRoles: []string{admin}},
			{Name: "AllStaff", AllowedRoles: []string{admin, orgadmin}},
			{Name: "AllReferrals", AllowedRoles: []string{admin}},
		},
	},
	{
		Name:         "Records",
		AllowedRoles: []string{admin, client},
		SubSubjects: []Subject{
			{Name: "OwnRecords", AllowedRoles: []string{admin, client}},
			{Name: "InsuranceInfo", AllowedRoles: []string{admin, client}},
		},
	},
}
