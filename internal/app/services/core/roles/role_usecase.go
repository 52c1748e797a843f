package roles

import (
	"context"
	"fmt"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type roleUsecase struct {
	PractitionerRoleFhirClient contracts.PractitionerRoleFhirClient
	PractitionerFhirClient     contracts.PractitionerFhirClient
	OrganizationFhirClient     contracts.OrganizationFhirClient
	Log                        *zap.Logger
}

func NewRoleUsecase(
	practitionerRoleFhirClient contracts.PractitionerRoleFhirClient,
	practitionerFhirClient contracts.PractitionerFhirClient,
	organizationFhirClient contracts.OrganizationFhirClient,
	logger *zap.Logger,
) contracts.RoleUsecase {
	return &roleUsecase{
		PractitionerRoleFhirClient: practitionerRoleFhirClient,
		PractitionerFhirClient:     practitionerFhirClient,
		OrganizationFhirClient:     organizationFhirClient,
		Log:                        logger,
	}
}

// EnsureRole makes the practitioner hold at least the given role codes at
// the organization. It holds no lock: two concurrent first calls for the
// same pair can each create a record.
func (uc *roleUsecase) EnsureRole(ctx context.Context, practitionerID, organizationID string, roles []string) (*responses.EnsureRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.EnsureRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
		zap.Strings(constvars.LoggingRolesKey, roles),
	)

	if strings.TrimSpace(practitionerID) == "" || strings.TrimSpace(organizationID) == "" || len(roles) == 0 {
		return nil, exceptions.ErrInvalidInput(nil, "practitioner, organization and at least one role are required")
	}

	records, err := uc.PractitionerRoleFhirClient.FindPractitionerRolesByPractitionerID(ctx, practitionerID)
	if err != nil {
		uc.Log.Error("roleUsecase.EnsureRole error calling PractitionerRoleFhirClient.FindPractitionerRolesByPractitionerID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// The store's organization filter is not trusted; match the reference here.
	orgReference := fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourceOrganization, organizationID)
	var matches []fhir_dto.PractitionerRoleRecord
	for _, record := range records {
		if record.Role.OrganizationReference() == orgReference {
			matches = append(matches, record)
		}
	}

	if len(matches) == 0 {
		return uc.createRole(ctx, practitionerID, orgReference, roles)
	}

	if len(matches) > 1 {
		duplicates := make([]string, 0, len(matches)-1)
		for _, record := range matches[1:] {
			duplicates = append(duplicates, record.Role.ID)
		}
		uc.Log.Warn("roleUsecase.EnsureRole found duplicate roles for practitioner and organization, merging into the first",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleIDKey, matches[0].Role.ID),
			zap.Strings("duplicate_role_ids", duplicates),
		)
	}

	target := matches[0]
	merged, added, err := mergeRoleCodes(target.Document["code"], roles)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}
	target.Document["code"] = merged

	updated, err := uc.PractitionerRoleFhirClient.UpdatePractitionerRole(ctx, target.Role.ID, target.Document)
	if err != nil {
		uc.Log.Error("roleUsecase.EnsureRole error calling PractitionerRoleFhirClient.UpdatePractitionerRole",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleIDKey, target.Role.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("roleUsecase.EnsureRole merged role codes",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, target.Role.ID),
		zap.Strings(constvars.LoggingRolesKey, added),
	)
	return &responses.EnsureRole{Role: updated, Created: false}, nil
}

func (uc *roleUsecase) createRole(ctx context.Context, practitionerID, orgReference string, roles []string) (*responses.EnsureRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	active := true
	role := &fhir_dto.PractitionerRole{
		ResourceType: constvars.ResourcePractitionerRole,
		Active:       &active,
		Practitioner: &fhir_dto.Reference{
			Reference: fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourcePractitioner, practitionerID),
		},
		Organization: &fhir_dto.Reference{Reference: orgReference},
		Code:         roleCodings(roles),
	}

	created, err := uc.PractitionerRoleFhirClient.CreatePractitionerRole(ctx, role)
	if err != nil {
		uc.Log.Error("roleUsecase.EnsureRole error calling PractitionerRoleFhirClient.CreatePractitionerRole",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.EnsureRole{Role: created, Created: true}, nil
}

// ListRoles returns every role with practitioner and organization names
// resolved from one listing of each.
func (uc *roleUsecase) ListRoles(ctx context.Context) ([]responses.RoleSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.ListRoles called", zap.String(constvars.LoggingRequestIDKey, requestID))

	var (
		roles         []fhir_dto.PractitionerRole
		practitioners []fhir_dto.Practitioner
		organizations []fhir_dto.Organization
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = uc.PractitionerRoleFhirClient.FindAllPractitionerRoles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		practitioners, err = uc.PractitionerFhirClient.FindAllPractitioners(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		organizations, err = uc.OrganizationFhirClient.FindAllOrganizations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.Log.Error("roleUsecase.ListRoles error collecting directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	practitionerNames := make(map[string]string, len(practitioners))
	for i := range practitioners {
		practitionerNames[fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourcePractitioner, practitioners[i].ID)] = practitioners[i].DisplayName()
	}
	organizationNames := make(map[string]string, len(organizations))
	for _, organization := range organizations {
		organizationNames[fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourceOrganization, organization.ID)] = organization.Name
	}

	summaries := make([]responses.RoleSummary, 0, len(roles))
	for i := range roles {
		role := &roles[i]
		practitionerRef := role.PractitionerReference()
		organizationRef := role.OrganizationReference()
		summaries = append(summaries, responses.RoleSummary{
			ID:               role.ID,
			PractitionerID:   strings.TrimPrefix(practitionerRef, constvars.ResourcePractitioner+"/"),
			PractitionerName: practitionerNames[practitionerRef],
			OrganizationID:   strings.TrimPrefix(organizationRef, constvars.ResourceOrganization+"/"),
			OrganizationName: organizationNames[organizationRef],
			Roles:            role.RoleCodes(),
			Active:           role.Active != nil && *role.Active,
		})
	}

	uc.Log.Info("roleUsecase.ListRoles succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCollectedKey, len(summaries)),
	)
	return summaries, nil
}

func (uc *roleUsecase) GetRolesByPractitioner(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.GetRolesByPractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	records, err := uc.PractitionerRoleFhirClient.FindPractitionerRolesByPractitionerID(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	roles := make([]fhir_dto.PractitionerRole, 0, len(records))
	for _, record := range records {
		roles = append(roles, record.Role)
	}
	return roles, nil
}

// CreateRoles creates every role in one transaction. It does not check for
// existing records; EnsureRole is the idempotent path.
func (uc *roleUsecase) CreateRoles(ctx context.Context, request *requests.CreateRoles) (*responses.CreateRoles, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.CreateRoles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDataKey, len(request.Roles)),
	)

	active := true
	roles := make([]fhir_dto.PractitionerRole, 0, len(request.Roles))
	for _, input := range request.Roles {
		roles = append(roles, fhir_dto.PractitionerRole{
			ResourceType: constvars.ResourcePractitionerRole,
			Active:       &active,
			Practitioner: &fhir_dto.Reference{
				Reference: fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourcePractitioner, input.PractitionerID),
			},
			Organization: &fhir_dto.Reference{
				Reference: fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourceOrganization, input.OrganizationID),
			},
			Code: roleCodings(input.Roles),
		})
	}

	locations, err := uc.PractitionerRoleFhirClient.CreatePractitionerRoles(ctx, roles)
	if err != nil {
		uc.Log.Error("roleUsecase.CreateRoles error calling PractitionerRoleFhirClient.CreatePractitionerRoles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.CreateRoles{Locations: locations}, nil
}

// UpdateRole replaces the stored PractitionerRole with doc as a whole. An id
// or resourceType missing from doc is taken from the path; one that
// disagrees is refused before the store is called.
func (uc *roleUsecase) UpdateRole(ctx context.Context, practitionerRoleID string, doc fhir_dto.Document) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("roleUsecase.UpdateRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
	)

	if strings.TrimSpace(practitionerRoleID) == "" || len(doc) == 0 {
		return nil, exceptions.ErrInvalidInput(nil, "practitioner role id and document are required")
	}
	if resourceType := gjson.ParseBytes(doc["resourceType"]).String(); resourceType != "" && resourceType != constvars.ResourcePractitionerRole {
		return nil, exceptions.ErrInvalidInput(fmt.Errorf("resourceType %s", resourceType), "document must be a PractitionerRole")
	}
	if id := doc.ID(); id != "" && id != practitionerRoleID {
		return nil, exceptions.ErrInvalidInput(fmt.Errorf("document id %s, path id %s", id, practitionerRoleID), "document id does not match the path")
	}

	if err := doc.Set("resourceType", constvars.ResourcePractitionerRole); err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	if err := doc.Set("id", practitionerRoleID); err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	updated, err := uc.PractitionerRoleFhirClient.UpdatePractitionerRole(ctx, practitionerRoleID, doc)
	if err != nil {
		uc.Log.Error("roleUsecase.UpdateRole error calling PractitionerRoleFhirClient.UpdatePractitionerRole",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
			zap.Error(err),
		)
		return nil, err
	}
	return updated, nil
}
