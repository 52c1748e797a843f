package organizations

import (
	"context"
	"net/url"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/app/services/fhir_store/pagination"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type organizationFhirClient struct {
	Client contracts.DirectoryClient
	Log    *zap.Logger
}

func NewOrganizationFhirClient(client contracts.DirectoryClient, logger *zap.Logger) contracts.OrganizationFhirClient {
	return &organizationFhirClient{
		Client: client,
		Log:    logger,
	}
}

func (c *organizationFhirClient) CreateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.CreateOrganization called", zap.String(constvars.LoggingRequestIDKey, requestID))

	request.ResourceType = constvars.ResourceOrganization
	body, err := c.Client.Create(ctx, constvars.ResourceOrganization, request)
	if err != nil {
		return nil, err
	}

	var organization fhir_dto.Organization
	if err := json.Unmarshal(body, &organization); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}
	return &organization, nil
}

func (c *organizationFhirClient) FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.FindOrganizationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	body, err := c.Client.Read(ctx, constvars.ResourceOrganization, organizationID)
	if err != nil {
		return nil, err
	}

	var organization fhir_dto.Organization
	if err := json.Unmarshal(body, &organization); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}
	return &organization, nil
}

func (c *organizationFhirClient) FindAllOrganizations(ctx context.Context) ([]fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.FindAllOrganizations called", zap.String(constvars.LoggingRequestIDKey, requestID))

	params := url.Values{}
	params.Set("_count", constvars.FhirSearchPageSize)
	organizations, err := pagination.Collect[fhir_dto.Organization](ctx, c.Client, constvars.ResourceOrganization, params)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindAllOrganizations error collecting pages",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCollectedKey, len(organizations)),
			zap.Error(err),
		)
		return nil, err
	}
	return organizations, nil
}
