package practitionerRoles

import (
	"context"
	"fmt"
	"net/url"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/app/services/fhir_store/pagination"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type practitionerRoleFhirClient struct {
	Client contracts.DirectoryClient
	Log    *zap.Logger
}

func NewPractitionerRoleFhirClient(client contracts.DirectoryClient, logger *zap.Logger) contracts.PractitionerRoleFhirClient {
	return &practitionerRoleFhirClient{
		Client: client,
		Log:    logger,
	}
}

func (c *practitionerRoleFhirClient) CreatePractitionerRole(ctx context.Context, request *fhir_dto.PractitionerRole) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.CreatePractitionerRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerReference()),
		zap.String(constvars.LoggingOrganizationIDKey, request.OrganizationReference()),
	)

	request.ResourceType = constvars.ResourcePractitionerRole
	body, err := c.Client.Create(ctx, constvars.ResourcePractitionerRole, request)
	if err != nil {
		return nil, err
	}
	return decodeRole(body)
}

// CreatePractitionerRoles posts every role in one transaction bundle and
// returns the locations the store assigned, in request order.
func (c *practitionerRoleFhirClient) CreatePractitionerRoles(ctx context.Context, requests []fhir_dto.PractitionerRole) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.CreatePractitionerRoles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDataKey, len(requests)),
	)

	bundle := &fhir_dto.FHIRBundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeTransaction,
		Entry:        make([]fhir_dto.Entry, 0, len(requests)),
	}
	for i := range requests {
		role := requests[i]
		role.ResourceType = constvars.ResourcePractitionerRole
		raw, err := json.Marshal(role)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		bundle.Entry = append(bundle.Entry, fhir_dto.Entry{
			FullURL:  "urn:uuid:" + uuid.NewString(),
			Resource: raw,
			Request: &fhir_dto.EntryRequest{
				Method: constvars.MethodPost,
				URL:    constvars.ResourcePractitionerRole,
			},
		})
	}

	result, err := c.Client.Transaction(ctx, bundle)
	if err != nil {
		return nil, err
	}

	locations := make([]string, 0, len(result.Entry))
	for _, entry := range result.Entry {
		if entry.Response == nil {
			return nil, exceptions.ErrDecodeResponse(fmt.Errorf("transaction entry without response"), constvars.ResourceBundle)
		}
		locations = append(locations, entry.Response.Location)
	}
	return locations, nil
}

func (c *practitionerRoleFhirClient) FindPractitionerRoleByID(ctx context.Context, practitionerRoleID string) (*fhir_dto.PractitionerRoleRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.FindPractitionerRoleByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
	)

	body, err := c.Client.Read(ctx, constvars.ResourcePractitionerRole, practitionerRoleID)
	if err != nil {
		return nil, err
	}

	doc, err := fhir_dto.ParseDocument(body)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}
	return toRecord(doc)
}

// FindPractitionerRolesByPractitionerID searches by practitioner only; the
// store's organization filter cannot be trusted, so callers match the
// organization reference themselves.
func (c *practitionerRoleFhirClient) FindPractitionerRolesByPractitionerID(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRoleRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.FindPractitionerRolesByPractitionerID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	params := url.Values{}
	params.Set("practitioner", fmt.Sprintf(constvars.FhirReferenceFormat, constvars.ResourcePractitioner, practitionerID))
	docs, err := pagination.Collect[fhir_dto.Document](ctx, c.Client, constvars.ResourcePractitionerRole, params)
	if err != nil {
		return nil, err
	}

	records := make([]fhir_dto.PractitionerRoleRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := toRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (c *practitionerRoleFhirClient) FindAllPractitionerRoles(ctx context.Context) ([]fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.FindAllPractitionerRoles called", zap.String(constvars.LoggingRequestIDKey, requestID))

	params := url.Values{}
	params.Set("_count", constvars.FhirSearchPageSize)
	return pagination.Collect[fhir_dto.PractitionerRole](ctx, c.Client, constvars.ResourcePractitionerRole, params)
}

func (c *practitionerRoleFhirClient) UpdatePractitionerRole(ctx context.Context, practitionerRoleID string, doc fhir_dto.Document) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.UpdatePractitionerRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
	)

	body, err := c.Client.Update(ctx, constvars.ResourcePractitionerRole, practitionerRoleID, doc)
	if err != nil {
		return nil, err
	}
	return decodeRole(body)
}

func (c *practitionerRoleFhirClient) PatchPractitionerRole(ctx context.Context, practitionerRoleID string, ops []fhir_dto.PatchOperation) (*fhir_dto.PractitionerRole, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerRoleFhirClient.PatchPractitionerRole called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleIDKey, practitionerRoleID),
		zap.Any(constvars.LoggingPatchOpsKey, ops),
	)

	body, err := c.Client.Patch(ctx, constvars.ResourcePractitionerRole, practitionerRoleID, ops)
	if err != nil {
		return nil, err
	}
	return decodeRole(body)
}

func decodeRole(body []byte) (*fhir_dto.PractitionerRole, error) {
	var role fhir_dto.PractitionerRole
	if err := json.Unmarshal(body, &role); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}
	return &role, nil
}

func toRecord(doc fhir_dto.Document) (*fhir_dto.PractitionerRoleRecord, error) {
	record := &fhir_dto.PractitionerRoleRecord{Document: doc}
	if err := doc.Decode(&record.Role); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}
	return record, nil
}
